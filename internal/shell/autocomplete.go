package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

var commandNames = []string{
	"new", "custom", "drop", "hint", "show", "save", "load", "list",
	"delete", "presets", "level", "help", "exit",
}

var kindValues = []string{"human", "computer"}

// Completer completes command names, preset names and player kinds
type Completer struct {
	s *Shell
}

func NewCompleter(s *Shell) *Completer {
	return &Completer{s: s}
}

// candidates returns what may follow the already typed fields
func (c *Completer) candidates(fields []string) []string {
	if len(fields) == 0 {
		return commandNames
	}
	switch fields[0] {
	case "new":
		if len(fields) == 1 {
			return append(c.s.presets.Names(), kindValues...)
		}
		return kindValues
	case "custom":
		if len(fields) == 4 {
			return []string{"rectangle", "cylinder"}
		}
		if len(fields) > 4 {
			return kindValues
		}
	case "level":
		return []string{"1", "2", "3", "4", "5"}
	}
	return nil
}

// Do implements the readline.AutoCompleter interface
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	if !endsWithSpace && len(fields) > 0 {
		prefix, fields = fields[len(fields)-1], fields[:len(fields)-1]
	}

	var matches [][]rune
	for _, cand := range c.candidates(fields) {
		if strings.HasPrefix(cand, prefix) {
			matches = append(matches, []rune(cand[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
