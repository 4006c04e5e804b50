package automatic

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"lukechampine.com/frand"
)

const seedFileHeader = "# yahtzee game seeds, one per game (base64 URL-safe, 32 bytes each)"

var ErrBadSeed = errors.New("bad seed")

// GenerateSeeds creates n random seeds, one per game.
func GenerateSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds
}

// EncodeSeed is the text form of a seed used in seed files.
func EncodeSeed(seed [32]byte) string {
	return base64.RawURLEncoding.EncodeToString(seed[:])
}

func DecodeSeed(s string) ([32]byte, error) {
	var seed [32]byte
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return seed, fmt.Errorf("%w: %w", ErrBadSeed, err)
	}
	if len(decoded) != len(seed) {
		return seed, fmt.Errorf("%w: %d bytes, want %d", ErrBadSeed, len(decoded), len(seed))
	}
	copy(seed[:], decoded)
	return seed, nil
}

// SaveSeeds writes seeds to path so a run can be replayed.
func SaveSeeds(seeds [][32]byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, seedFileHeader)
	for _, seed := range seeds {
		fmt.Fprintln(w, EncodeSeed(seed))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadSeeds(path string) ([][32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSeeds(f)
}

// readSeeds skips blank lines and # comments.
func readSeeds(r io.Reader) ([][32]byte, error) {
	var seeds [][32]byte
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seed, err := DecodeSeed(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		seeds = append(seeds, seed)
	}
	return seeds, scanner.Err()
}
