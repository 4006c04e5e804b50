package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/yahtzee/automatic"
	"github.com/domino14/yahtzee/config"
	"github.com/domino14/yahtzee/dice"
	"github.com/domino14/yahtzee/game"
	"github.com/domino14/yahtzee/report"
	"github.com/domino14/yahtzee/scoring"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) StringDefault(key string, defaultS string) string {
	if s := c.String(key); s != "" {
		return s
	}
	return defaultS
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage()), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}

// play plays one game and shows every turn and the final sheet.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	name := cmd.options.StringDefault("strategy", sc.config.GetString(config.ConfigStrategy))
	var seed [32]byte
	if s := cmd.options.String("seed"); s != "" {
		var err error
		if seed, err = automatic.DecodeSeed(s); err != nil {
			return nil, err
		}
	} else {
		seed = automatic.GenerateSeeds(1)[0]
	}

	r, err := automatic.NewGameRunnerWithStrategy(name, nil, sc.config)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	g := r.NewGame(seed)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Game %s, strategy %s\nseed %s\n\n", automatic.GameID(seed), name,
		automatic.EncodeSeed(g.Roller().Seed()))
	g.SetTurnLogger(func(rec *game.TurnRecord) {
		sb.WriteString(rec.ToDisplayText())
		sb.WriteString("\n")
	})
	sheet, err := g.PlayGame()
	if err != nil {
		return nil, errors.Join(err, r.StrategyErr())
	}
	sc.lastSheet = sheet
	sb.WriteString("\n")
	sb.WriteString(sheet.ToDisplayText())
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// score shows what a roll is worth, in one category or in all of them:
//
//	score full_house 3 3 3 5 5
//	score 33355
func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: score [category] <dice>")
	}
	cat, err := scoring.ParseCategory(cmd.args[0])
	rollArgs := cmd.args
	if err == nil {
		rollArgs = cmd.args[1:]
	}
	roll, rerr := dice.Parse(strings.Join(rollArgs, " "))
	if rerr != nil {
		return nil, rerr
	}
	if err == nil {
		return msg(fmt.Sprintf("%v in %v: %d", roll, cat, scoring.Score(roll, cat))), nil
	}
	var sb strings.Builder
	for _, c := range scoring.AllCategories() {
		fmt.Fprintf(&sb, "%-20s %d\n", c, scoring.Score(roll, c))
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// autoplay starts a batch run in the background. "autoplay stop" cancels
// it and "autoplay status" shows progress.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		switch cmd.args[0] {
		case "stop":
			sc.runMtx.Lock()
			cancel := sc.runCancel
			sc.runMtx.Unlock()
			if cancel == nil || !sc.running() {
				return nil, errors.New("no running games to stop")
			}
			cancel()
			return msg("stopping; finished games will still be written"), nil
		case "status":
			return msg(fmt.Sprintf("running: %v, games played: %d",
				sc.running(), automatic.GamesPlayed.Value())), nil
		default:
			return nil, fmt.Errorf("unknown autoplay argument %q", cmd.args[0])
		}
	}
	if sc.running() {
		return nil, automatic.ErrAlreadyPlaying
	}

	cfg := sc.config.Clone()
	settings := map[string]string{
		"threads":  config.ConfigThreads,
		"strategy": config.ConfigStrategy,
		"seedfile": config.ConfigSeedFile,
		"logturns": config.ConfigLogTurns,
	}
	for opt, key := range settings {
		if v := cmd.options.String(opt); v != "" {
			if err := cfg.SetChecked(key, v); err != nil {
				return nil, err
			}
		}
	}
	games, err := cmd.options.IntDefault("games", cfg.GetInt(config.ConfigNumGames))
	if err != nil {
		return nil, err
	}
	if games < 1 {
		return nil, errors.New("games must be at least 1")
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctx = log.Logger.WithContext(ctx)
	done := make(chan struct{})
	sc.runMtx.Lock()
	sc.runCancel, sc.runDone = cancel, done
	sc.runMtx.Unlock()

	// printed here so it always comes before the results
	sc.showMessage(fmt.Sprintf("playing %d games with the %s strategy", games, cfg.GetString(config.ConfigStrategy)))
	go func() {
		defer close(done)
		defer cancel()
		res, err := automatic.StartGames(ctx, cfg, automatic.RunOptions{NumGames: games})
		sc.runMtx.Lock()
		sc.lastRun, sc.lastErr = res, err
		sc.runMtx.Unlock()
		if err != nil {
			sc.showError(err)
			return
		}
		sc.showMessage(runText(res))
	}()
	return nil, nil
}

func (sc *ShellController) running() bool {
	sc.runMtx.Lock()
	done := sc.runDone
	sc.runMtx.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

func runText(res *automatic.RunResult) string {
	var sb strings.Builder
	if res.Cancelled {
		sb.WriteString("Run was cancelled.\n")
	}
	res.Summary.WriteText(&sb)
	fmt.Fprintf(&sb, "\nOutput written to %s", res.OutputDir)
	return sb.String()
}

// analyze summarizes a games.csv from an earlier run.
func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: analyze <games.csv>")
	}
	bins, err := cmd.options.IntDefault("bins", sc.config.GetInt(config.ConfigHistogramBins))
	if err != nil {
		return nil, err
	}
	summary, records, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := summary.WriteText(&sb); err != nil {
		return nil, err
	}
	if len(records) > 0 {
		sb.WriteString("\n")
		if err := report.WriteHistogram(&sb, records, bins); err != nil {
			return nil, err
		}
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	switch len(cmd.args) {
	case 0:
		return msg(sc.settingsText()), nil
	case 1:
		if !sc.config.IsKnownKey(cmd.args[0]) {
			return nil, fmt.Errorf("unknown setting %q", cmd.args[0])
		}
		return msg(fmt.Sprintf("%s: %v", cmd.args[0], sc.config.Get(cmd.args[0]))), nil
	}
	key, value := cmd.args[0], strings.Join(cmd.args[1:], " ")
	if err := sc.config.SetChecked(key, value); err != nil {
		return nil, err
	}
	if key == config.ConfigDebug {
		if sc.config.GetBool(config.ConfigDebug) {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}
	return msg("set " + key + " to " + value), nil
}

func (sc *ShellController) settingsText() string {
	settings := sc.config.SanitizedSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%-16s %v\n", k, settings[k])
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	what := "sheet"
	if len(cmd.args) > 0 {
		what = cmd.args[0]
	}
	switch what {
	case "sheet":
		if sc.lastSheet == nil {
			return nil, errors.New("no game played yet; try play")
		}
		return msg(strings.TrimRight(sc.lastSheet.ToDisplayText(), "\n")), nil
	case "run":
		sc.runMtx.Lock()
		res, err := sc.lastRun, sc.lastErr
		sc.runMtx.Unlock()
		if err != nil {
			return nil, fmt.Errorf("last run failed: %w", err)
		}
		if res == nil {
			if sc.running() {
				return nil, errors.New("the run is not done yet; try autoplay status")
			}
			return nil, errors.New("no run yet; try autoplay")
		}
		return msg(runText(res)), nil
	case "settings":
		return msg(sc.settingsText()), nil
	case "version":
		return msg(sc.gitVersion), nil
	}
	return nil, fmt.Errorf("cannot show %q", what)
}
