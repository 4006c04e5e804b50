// Package shell is the interactive front end: a readline loop, or a single
// command from the command line, driving single games and batch runs.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/yahtzee/automatic"
	"github.com/domino14/yahtzee/config"
	"github.com/domino14/yahtzee/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errExit              = errors.New("exit")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config     *config.Config
	execPath   string
	gitVersion string

	lastSheet *game.Sheet

	// batch run state
	runMtx    sync.Mutex
	runCancel context.CancelFunc
	runDone   chan struct{}
	lastRun   *automatic.RunResult
	lastErr   error
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewShellController sets up readline. Messages go to readline's stderr.
func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, execPath, gitVersion, nil)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32myahtzee>\033[0m ",
		HistoryFile:     filepath.Join(os.TempDir(), "yahtzee-readline.tmp"),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

// NewOneShotController prints to stdout and has no readline; use it with
// Execute.
func NewOneShotController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	return newController(cfg, execPath, gitVersion, os.Stdout)
}

func newController(cfg *config.Config, execPath, gitVersion string, out io.Writer) *ShellController {
	return &ShellController{
		out:        out,
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
	}
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if len(f) < 2 || !strings.HasPrefix(f, "-") {
			cmd.args = append(cmd.args, f)
			continue
		}
		if i+1 == len(fields) {
			return nil, errWrongOptionSyntax
		}
		key := f[1:]
		cmd.options[key] = append(cmd.options[key], fields[i+1])
		i++
	}
	return cmd, nil
}

func (sc *ShellController) dispatch(cmd *shellcmd, sig chan os.Signal) (*Response, error) {
	switch cmd.cmd {
	case "exit":
		sig <- syscall.SIGINT
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "play":
		return sc.play(cmd)
	case "score":
		return sc.score(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "set":
		return sc.set(cmd)
	case "show":
		return sc.show(cmd)
	case "script":
		return sc.script(cmd)
	}
	return nil, fmt.Errorf("command %q not found; try help", cmd.cmd)
}

// handle runs one line and prints its result. Only errExit is returned.
func (sc *ShellController) handle(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	resp, err := sc.dispatch(cmd, sig)
	if err == errExit {
		return err
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

// Execute runs a single command and waits for any batch run it started.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	sc.handle(line, sig)
	sc.waitForRun()
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		if sc.handle(strings.TrimSpace(line), sig) == errExit {
			break
		}
	}
	log.Debug().Msg("exiting-readline-loop")
}

// Stop cancels a running batch, if any, without waiting for it.
func (sc *ShellController) Stop() {
	sc.runMtx.Lock()
	cancel := sc.runCancel
	sc.runMtx.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Cleanup stops a running batch and waits for it to write its output.
func (sc *ShellController) Cleanup() {
	sc.Stop()
	sc.waitForRun()
}

func (sc *ShellController) waitForRun() {
	sc.runMtx.Lock()
	done := sc.runDone
	sc.runMtx.Unlock()
	if done != nil {
		<-done
	}
}
