package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/yahtzee/config"
	"github.com/domino14/yahtzee/scoring"
	"github.com/domino14/yahtzee/strategy"
)

// ShellCompleter completes command names, options and known values.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // e.g. "-games"
	Args    []string // values for plain arguments
}

var commandMetadata = map[string]CommandMetadata{
	"play": {
		Options: []string{"-strategy", "-seed"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-strategy", "-seedfile", "-logturns"},
		Args:    []string{"stop", "status"},
	},
	"analyze": {
		Options: []string{"-bins"},
	},
	"show": {
		Args: []string{"sheet", "run", "settings", "version"},
	},
}

var commandNames = []string{
	"help", "play", "score", "autoplay", "analyze", "set", "show", "script", "exit",
}

var boolValues = []string{"true", "false"}

func categoryCodes() []string {
	codes := make([]string, 0, scoring.NumCategories)
	for _, c := range scoring.AllCategories() {
		codes = append(codes, c.Code())
	}
	return codes
}

// argValues lists the values a command's plain arguments can take.
func argValues(cmdName string) []string {
	switch cmdName {
	case "set":
		return config.Keys()
	case "score":
		return categoryCodes()
	case "help":
		return helpTopics()
	}
	return commandMetadata[cmdName].Args
}

// Do implements the readline.AutoComplete interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// probably an unterminated quote
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "strategy":
				completions = strategy.Names()
			case "logturns":
				completions = boolValues
			default:
				// a value with no fixed choices
				return nil, 0
			}
		} else if cmdName == "set" && lastCompleteField == config.ConfigStrategy {
			completions = strategy.Names()
		}

		if completions == nil {
			if strings.HasPrefix(prefix, "-") {
				completions = commandMetadata[cmdName].Options
			} else if args := argValues(cmdName); len(args) > 0 {
				completions = args
			} else {
				completions = commandMetadata[cmdName].Options
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
