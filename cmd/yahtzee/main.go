package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/yahtzee/config"
	"github.com/domino14/yahtzee/shell"
)

var (
	GitVersion string
)

//go:embed yahtzee.txt
var banner string

func main() {
	// Relative paths in the config (output dir, scripts, seed files) are
	// resolved against the executable's directory.
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	args := os.Args[1:]
	argsLine := strings.TrimSpace(strings.Join(args, " "))
	if argsLine == "" {
		fmt.Println(banner)
		fmt.Println(GitVersion)
	}

	cfg := &config.Config{}
	if err := cfg.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	cfg.AdjustRelativePaths(exPath)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i any) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i any) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("debug-logging-on")
	log.Debug().Str("exec-path", exPath).Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

	if p := cfg.GetString(config.ConfigCPUProfile); p != "" {
		f, err := os.Create(p)
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Debug().Msg("got-quit-signal")
		close(done)
	}()

	if argsLine == "" {
		sc := shell.NewShellController(cfg, exPath, GitVersion)
		go sc.Loop(sig)
		<-done
		sc.Cleanup()
	} else {
		sc := shell.NewOneShotController(cfg, exPath, GitVersion)
		go func() {
			<-done
			sc.Stop()
		}()
		sc.Execute(sig, argsLine)
		sc.Cleanup()
	}

	if p := cfg.GetString(config.ConfigMemProfile); p != "" {
		f, err := os.Create(p)
		if err != nil {
			panic("could not create memory profile: " + err.Error())
		}
		defer f.Close()
		memstats := &runtime.MemStats{}
		runtime.ReadMemStats(memstats)
		log.Debug().Interface("memstats", memstats).Msg("memory-stats")
		if err := pprof.WriteHeapProfile(f); err != nil {
			panic("could not write memory profile: " + err.Error())
		}
		log.Info().Msg("wrote-memory-profile")
	}
}
