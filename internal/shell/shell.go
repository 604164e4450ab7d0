package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"connectx/internal/game"
	"connectx/internal/store"
)

var (
	errNoGame = errors.New("no game in progress; start one with `new`")
	errUsage  = errors.New("usage")
)

// Shell is an interactive console game. Execute runs one command line and is
// independent of the readline loop.
type Shell struct {
	out     io.Writer
	repo    store.Repository
	presets *store.Presets
	depth   int
	level   int

	g       *game.Game
	savedID string
	name    string
}

// New returns a shell writing to out. depth is the search depth of the
// strongest level and of hints.
func New(out io.Writer, repo store.Repository, presets *store.Presets, depth int) *Shell {
	if depth < 1 {
		depth = game.DefaultDepth
	}
	return &Shell{out: out, repo: repo, presets: presets, depth: depth, level: 5}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new [preset] [p1kind p2kind] - start a game; kinds are human or computer (default human computer)\n")
	io.WriteString(w, "custom W H N rectangle|cylinder [p1kind p2kind] - start a game on a custom board\n")
	io.WriteString(w, "drop <col> - drop a piece in column col (1-based)\n")
	io.WriteString(w, "hint - suggest a move for the side to move\n")
	io.WriteString(w, "show - print the board\n")
	io.WriteString(w, "save [name] - save the current game\n")
	io.WriteString(w, "load <id> - load a saved game\n")
	io.WriteString(w, "list - list saved games\n")
	io.WriteString(w, "delete <id> - delete a saved game\n")
	io.WriteString(w, "presets - list board presets\n")
	io.WriteString(w, "level <1-5> - computer strength\n")
	io.WriteString(w, "exit - quit\n")
}

// Execute runs a single command line. quit is true after exit.
func (s *Shell) Execute(ctx context.Context, line string) (quit bool, err error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return false, err
	}
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "exit", "quit", "bye":
		return true, nil
	case "help", "?":
		usage(s.out)
	case "new":
		err = s.cmdNew(args)
	case "custom":
		err = s.cmdCustom(args)
	case "drop", "d":
		err = s.cmdDrop(args)
	case "hint":
		err = s.cmdHint()
	case "show":
		err = s.cmdShow()
	case "save":
		err = s.cmdSave(ctx, args)
	case "load":
		err = s.cmdLoad(ctx, args)
	case "list", "ls":
		err = s.cmdList(ctx)
	case "delete", "rm":
		err = s.cmdDelete(ctx, args)
	case "presets":
		s.cmdPresets()
	case "level":
		err = s.cmdLevel(args)
	default:
		// a bare number drops a piece
		if _, convErr := strconv.Atoi(cmd); convErr == nil {
			err = s.cmdDrop(fields)
		} else {
			err = fmt.Errorf("unknown command %q, try help", cmd)
		}
	}
	return false, err
}

func parseKinds(args []string) (game.PlayerKind, game.PlayerKind, error) {
	k1, k2 := game.Human, game.Computer
	if len(args) == 0 {
		return k1, k2, nil
	}
	if len(args) != 2 {
		return k1, k2, fmt.Errorf("%w: give both player kinds", errUsage)
	}
	var err error
	if k1, err = game.ParsePlayerKind(args[0]); err != nil {
		return k1, k2, err
	}
	if k2, err = game.ParsePlayerKind(args[1]); err != nil {
		return k1, k2, err
	}
	return k1, k2, nil
}

func (s *Shell) cmdNew(args []string) error {
	preset := "classic"
	if len(args) == 1 || len(args) == 3 {
		preset, args = args[0], args[1:]
	}
	cfg, err := s.presets.Get(preset)
	if err != nil {
		return err
	}
	k1, k2, err := parseKinds(args)
	if err != nil {
		return err
	}
	return s.start(cfg, k1, k2)
}

func (s *Shell) cmdCustom(args []string) error {
	if len(args) != 4 && len(args) != 6 {
		return fmt.Errorf("%w: custom W H N rectangle|cylinder [p1kind p2kind]", errUsage)
	}
	var dims [3]int
	for i := range dims {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", errUsage, args[i])
		}
		dims[i] = n
	}
	topo, err := game.ParseTopology(args[3])
	if err != nil {
		return err
	}
	cfg, err := game.NewConfig(dims[0], dims[1], dims[2], topo)
	if err != nil {
		return err
	}
	k1, k2, err := parseKinds(args[4:])
	if err != nil {
		return err
	}
	return s.start(cfg, k1, k2)
}

func (s *Shell) seatName(kind game.PlayerKind, seat int) string {
	if kind == game.Computer {
		return "Bot " + game.LevelName(s.level)
	}
	return fmt.Sprintf("Player %d", seat)
}

func (s *Shell) start(cfg game.Config, k1, k2 game.PlayerKind) error {
	g, err := game.NewGame(cfg, s.seatName(k1, 1), s.seatName(k2, 2))
	if err != nil {
		return err
	}
	g.Player1Kind, g.Player2Kind = k1, k2
	s.g, s.savedID, s.name = g, "", ""
	s.printf("new game: %s\n", cfg)
	return s.settle()
}

// settle lets computer seats play, then prints the position
func (s *Shell) settle() error {
	g := s.g
	engine := game.ForLevel(s.level, s.depth)
	for !g.Over && game.KindOf(g, g.NextPlayer) == game.Computer {
		side := g.NextPlayer
		col, err := engine.GetBestMove(g.Board, side, g.Config)
		if err != nil {
			return err
		}
		if err := game.Play(g, col); err != nil {
			return err
		}
		s.printf("%s plays column %d\n", game.NameOf(g, side), col+1)
	}
	return s.cmdShow()
}

func (s *Shell) cmdDrop(args []string) error {
	if s.g == nil {
		return errNoGame
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: drop <col>", errUsage)
	}
	col, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q is not a column", errUsage, args[0])
	}
	if !s.g.Over && game.KindOf(s.g, s.g.NextPlayer) == game.Computer {
		return errors.New("the computer is to move")
	}
	if err := game.Play(s.g, col-1); err != nil {
		return err
	}
	return s.settle()
}

func (s *Shell) cmdHint() error {
	if s.g == nil {
		return errNoGame
	}
	if s.g.Over {
		return game.ErrGameOver
	}
	res, err := game.NewMinimax(s.depth).Search(s.g.Board, s.g.NextPlayer, s.g.Config)
	if err != nil {
		return err
	}
	s.printf("hint: column %d (%s)\n", res.Column+1, res.Reason)
	log.Debug().Int64("score", res.Score).Int("nodes", res.Nodes).Msg("hint")
	return nil
}

func (s *Shell) cmdShow() error {
	g := s.g
	if g == nil {
		return errNoGame
	}
	io.WriteString(s.out, game.ToDisplayText(g.Board, g.WinningCells))
	switch {
	case g.Over && g.Winner != game.Empty:
		s.printf("%s (%s) wins\n", game.NameOf(g, g.Winner), g.Winner)
	case g.Over:
		s.printf("draw\n")
	default:
		s.printf("%s (%s) to move\n", game.NameOf(g, g.NextPlayer), g.NextPlayer)
	}
	return nil
}

func (s *Shell) cmdSave(ctx context.Context, args []string) error {
	if s.g == nil {
		return errNoGame
	}
	if len(args) > 0 {
		s.name = strings.Join(args, " ")
	}
	sg := store.FromGame(s.g, s.name)
	sg.ID = s.savedID
	id, err := s.repo.Save(ctx, sg)
	if err != nil {
		return err
	}
	s.savedID, s.name = id, sg.Name
	s.printf("saved as %s\n", id)
	return nil
}

func (s *Shell) cmdLoad(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: load <id>", errUsage)
	}
	sg, err := s.repo.Load(ctx, args[0])
	if err != nil {
		return err
	}
	g, err := sg.Restore()
	if err != nil {
		return err
	}
	s.g, s.savedID, s.name = g, sg.ID, sg.Name
	s.printf("loaded %s (%s)\n", sg.ID, g.Config)
	return s.settle()
}

func (s *Shell) cmdList(ctx context.Context) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		s.printf("no saved games\n")
		return nil
	}
	for _, sm := range list {
		s.printf("%-32s %-20s %dx%d/%d %-9s %3d moves  %s\n", sm.ID, sm.Name,
			sm.Width, sm.Height, sm.WinLength, sm.Topology, sm.MoveCount, sm.SavedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func (s *Shell) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", errUsage)
	}
	if err := s.repo.Delete(ctx, args[0]); err != nil {
		return err
	}
	if args[0] == s.savedID {
		s.savedID = ""
	}
	s.printf("deleted %s\n", args[0])
	return nil
}

func (s *Shell) cmdPresets() {
	all := s.presets.All()
	for _, name := range s.presets.Names() {
		p := all[name]
		s.printf("%-12s %dx%d connect %d (%s)\n", name, p.Width, p.Height, p.WinLength, p.Topology)
	}
}

func (s *Shell) cmdLevel(args []string) error {
	if len(args) == 0 {
		s.printf("level %d (%s)\n", s.level, game.LevelName(s.level))
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > 5 {
		return fmt.Errorf("%w: level <1-5>", errUsage)
	}
	s.level = n
	s.printf("level %d (%s)\n", n, game.LevelName(n))
	return nil
}

// Loop reads commands until exit, EOF or an interrupt on an empty line
func (s *Shell) Loop(ctx context.Context, historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mconnectx>\033[0m ",
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewCompleter(s),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	s.out = l.Stdout()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		quit, err := s.Execute(ctx, line)
		if err != nil {
			fmt.Fprintf(l.Stderr(), "error: %v\n", err)
			log.Debug().Err(err).Str("line", line).Msg("command-failed")
		}
		if quit || ctx.Err() != nil {
			log.Debug().Msg("exiting-readline-loop")
			return nil
		}
	}
}
