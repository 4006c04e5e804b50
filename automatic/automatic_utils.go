package automatic

// Batch runs: many computer-played games, spread over worker goroutines.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/yahtzee/config"
	"github.com/domino14/yahtzee/report"
)

const (
	GamesFile     = "games.csv"
	TurnsFile     = "turns.csv"
	SummaryYAML   = "summary.yaml"
	SummaryText   = "summary.txt"
	HistogramFile = "histogram.txt"
	SeedsFile     = "seeds.txt"

	runDirLayout = "20060102-150405"
)

var (
	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
	ErrTooManyGames   = errors.New("not enough memory for that many games")
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int

	runLock sync.Mutex
)

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

// bytesPerGame approximates what a run keeps in memory for each game.
var bytesPerGame = uint64(unsafe.Sizeof(report.GameRecord{})) + 32 + 16

// RunOptions overrides the config for a single run.
type RunOptions struct {
	// NumGames overrides num-games when positive.
	NumGames int
	// Seeds, when set, are played one game each, ignoring NumGames and
	// the seed file.
	Seeds [][32]byte
}

// RunResult is what a finished (or cancelled) run produced.
type RunResult struct {
	OutputDir string
	// Records are in seed order. A cancelled run holds only the games
	// that finished.
	Records   []report.GameRecord
	Summary   *report.Summary
	Cancelled bool
}

type job struct {
	idx  int
	seed [32]byte
}

// StartGames plays a batch of games and writes its output files into a
// new timestamped directory under output-dir. It blocks until the games
// are done or ctx is cancelled. A game that breaks the rules ends the
// whole run with that error, and the run directory is removed.
func StartGames(ctx context.Context, cfg *config.Config, opts RunOptions) (*RunResult, error) {
	if !runLock.TryLock() {
		return nil, ErrAlreadyPlaying
	}
	defer runLock.Unlock()
	logger := zerolog.Ctx(ctx)

	seeds, err := runSeeds(cfg, opts)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, errors.New("no games to play")
	}

	outDir, err := makeRunDir(cfg.GetString(config.ConfigOutputDir))
	if err != nil {
		return nil, err
	}
	if err := SaveSeeds(seeds, filepath.Join(outDir, SeedsFile)); err != nil {
		return nil, errors.Join(err, os.RemoveAll(outDir))
	}

	var logChan chan string
	logDone := make(chan error, 1)
	if cfg.GetBool(config.ConfigLogTurns) {
		turnsFile, err := os.Create(filepath.Join(outDir, TurnsFile))
		if err != nil {
			return nil, errors.Join(err, os.RemoveAll(outDir))
		}
		logChan = make(chan string, 100)
		go func() {
			_, werr := turnsFile.WriteString(turnLogHeader)
			for msg := range logChan {
				if werr == nil {
					_, werr = turnsFile.WriteString(msg)
				}
			}
			logDone <- errors.Join(werr, turnsFile.Close())
			logger.Debug().Msg("turn-logger-done")
		}()
	} else {
		logDone <- nil
	}

	threads := cfg.GetInt(config.ConfigThreads)
	logger.Info().Int("games", len(seeds)).Int("threads", threads).
		Str("strategy", cfg.GetString(config.ConfigStrategy)).Str("dir", outDir).Msg("starting-games")

	GamesPlayed.Set(0)
	records := make([]report.GameRecord, len(seeds))
	done := make([]bool, len(seeds))
	jobs := make(chan job, 100)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i, seed := range seeds {
			select {
			case jobs <- job{idx: i, seed: seed}:
			case <-gctx.Done():
				logger.Info().Int("queued", i).Msg("stopped-queueing")
				return nil
			}
			if (i+1)%1000 == 0 {
				logger.Debug().Int("queued", i+1).Msg("queued-jobs")
			}
		}
		return nil
	})

	for range threads {
		r, err := NewGameRunner(logChan, cfg)
		if err != nil {
			// stop the feeder and any workers already started
			g.Go(func() error { return err })
			break
		}
		g.Go(func() error {
			defer r.Close()
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				if gctx.Err() != nil {
					return nil
				}
				rec, err := r.PlayGame(j.seed)
				if err != nil {
					return err
				}
				// each index is written by exactly one worker
				records[j.idx] = rec
				done[j.idx] = true
				GamesPlayed.Add(1)
				if n := GamesPlayed.Value(); n%1000 == 0 {
					logger.Info().Int64("played", n).Msg("games-played")
				}
			}
			return nil
		})
	}

	err = g.Wait()
	if logChan != nil {
		close(logChan)
	}
	logErr := <-logDone
	if err != nil {
		// a broken run leaves no partial output behind
		logger.Error().Err(err).Str("dir", outDir).Msg("run-aborted")
		return nil, errors.Join(err, os.RemoveAll(outDir))
	}
	if logErr != nil {
		return nil, errors.Join(fmt.Errorf("writing %s: %w", TurnsFile, logErr), os.RemoveAll(outDir))
	}

	res := &RunResult{OutputDir: outDir, Cancelled: ctx.Err() != nil}
	for i, rec := range records {
		if done[i] {
			res.Records = append(res.Records, rec)
		}
	}
	res.Summary = report.Summarize(res.Records)
	if res.Cancelled {
		logger.Info().Int("played", len(res.Records)).Msg("run-cancelled")
	}
	if err := writeOutputs(outDir, res, cfg.GetInt(config.ConfigHistogramBins)); err != nil {
		return res, err
	}
	logger.Info().Int("games", res.Summary.Games).Float64("mean", res.Summary.Mean).
		Str("dir", outDir).Msg("all-games-finished")
	return res, nil
}

func runSeeds(cfg *config.Config, opts RunOptions) ([][32]byte, error) {
	if len(opts.Seeds) > 0 {
		return opts.Seeds, nil
	}
	if path := cfg.GetString(config.ConfigSeedFile); path != "" {
		seeds, err := LoadSeeds(path)
		if err != nil {
			return nil, err
		}
		return seeds, checkMemory(len(seeds))
	}
	n := opts.NumGames
	if n <= 0 {
		n = cfg.GetInt(config.ConfigNumGames)
	}
	if err := checkMemory(n); err != nil {
		return nil, err
	}
	return GenerateSeeds(n), nil
}

// checkMemory refuses runs whose records would not fit in a quarter of
// the machine's memory. Unknown memory sizes are let through.
func checkMemory(n int) error {
	total := memory.TotalMemory()
	if total == 0 {
		return nil
	}
	if need := uint64(n) * bytesPerGame; need > total/4 {
		return fmt.Errorf("%w: %d games need about %d bytes, have %d", ErrTooManyGames, n, need, total)
	}
	return nil
}

// makeRunDir creates a fresh directory named after the current time,
// adding a suffix if a run in the same second already took the name.
func makeRunDir(base string) (string, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	name := filepath.Join(base, time.Now().Format(runDirLayout))
	dir := name
	for i := 1; ; i++ {
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		dir = fmt.Sprintf("%s-%d", name, i)
	}
}

func writeOutputs(dir string, res *RunResult, bins int) error {
	f, err := os.Create(filepath.Join(dir, GamesFile))
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := report.WriteCSVHeader(w); err != nil {
		f.Close()
		return err
	}
	for _, rec := range res.Records {
		if err := w.Write(rec.CSVRow()); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := errors.Join(w.Error(), f.Close()); err != nil {
		return err
	}

	return errors.Join(
		writeFile(filepath.Join(dir, SummaryYAML), res.Summary.WriteYAML),
		writeFile(filepath.Join(dir, SummaryText), res.Summary.WriteText),
		writeFile(filepath.Join(dir, HistogramFile), func(w io.Writer) error {
			return report.WriteHistogram(w, res.Records, bins)
		}),
	)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return errors.Join(write(f), f.Close())
}
