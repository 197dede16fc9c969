package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/yourusername/bgrules/internal/positionid"
	"github.com/yourusername/bgrules/internal/stats"
	"github.com/yourusername/bgrules/pkg/engine"
	"github.com/yourusername/bgrules/pkg/external"
	"github.com/yourusername/bgrules/pkg/match"
)

// maxPasses bounds automatic passing. Two players stuck on the bar against
// closed boards would otherwise pass forever.
const maxPasses = 64

var errNoFile = errors.New("save file required (-f)")

// load parses the shared flags and reads the save file.
func load(fs *flag.FlagSet, o *options, args []string, out io.Writer) (*app, *engine.Game, error) {
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	a, err := newApp(*o, out)
	if err != nil {
		return nil, nil, err
	}
	if a.path == "" {
		a.close()
		return nil, nil, errNoFile
	}

	g, err := match.LoadFile(a.path, a.roller)
	if err != nil {
		a.close()
		return nil, nil, err
	}
	a.log.Debugw("game loaded", "file", a.path, "turns", len(g.Turns()))
	return a, g, nil
}

func (a *app) save(g *engine.Game) error {
	if err := match.SaveFile(a.path, g); err != nil {
		return err
	}
	a.log.Debugw("game saved", "file", a.path)
	return nil
}

func (a *app) show(g *engine.Game) {
	p := newPalette(a.cfg.Color)
	renderBoard(a.out, g.Board(), p)
	renderTurn(a.out, g, p)
	fmt.Fprintf(a.out, " Position ID: %s\n", positionid.ForGame(g))
}

// passTurns hands the dice over as long as the player on roll cannot play.
func (a *app) passTurns(g *engine.Game) {
	for n := 0; g.Winner() == engine.NoColor && g.TurnOver(); n++ {
		if n == maxPasses {
			a.log.Warnw("both players blocked, stopped passing", "passes", n)
			return
		}
		a.log.Infow("no legal play, passing", "player", g.Player(), "roll", g.Dice())
		fmt.Fprintf(a.out, " %s cannot play %s\n", g.Player(), formatRoll(g.Dice()))
		g.EndTurn()
	}
}

func cmdNew(args []string, out io.Writer) error {
	fs := newFlagSet("new", out)
	var o options
	o.register(fs)
	force := fs.Bool("force", false, "Overwrite an existing save file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if o.file == "" {
		o.file = petname.Generate(2, "-") + ".bg"
	}

	a, err := newApp(o, out)
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := os.Stat(a.path); err == nil && !*force {
		return fmt.Errorf("%s already exists, use -force to overwrite", a.path)
	}

	g := engine.NewGame(a.roller)
	a.log.Infow("new game", "file", a.path, "player", g.Player(), "roll", g.Dice())
	a.passTurns(g)
	if err := a.save(g); err != nil {
		return err
	}

	fmt.Fprintf(out, " Game saved to %s\n\n", a.path)
	a.show(g)
	return nil
}

func cmdShow(args []string, out io.Writer) error {
	fs := newFlagSet("show", out)
	var o options
	o.register(fs)
	a, g, err := load(fs, &o, args, out)
	if err != nil {
		return err
	}
	defer a.close()

	a.show(g)
	return nil
}

// play runs one enter or move request, passing the dice on when the player
// has nothing left to play.
func play(a *app, g *engine.Game, apply func() error) error {
	if w := g.Winner(); w != engine.NoColor {
		return fmt.Errorf("the game is over, %s won", w)
	}
	if err := apply(); err != nil {
		var hit *engine.ForcedHitError
		if errors.As(err, &hit) {
			return fmt.Errorf("you have to hit on %02d: %w", hit.Point+1, engine.ErrMustHit)
		}
		return err
	}

	a.passTurns(g)
	if err := a.save(g); err != nil {
		return err
	}
	a.show(g)
	return nil
}

func cmdEnter(args []string, out io.Writer) error {
	fs := newFlagSet("enter", out)
	var o options
	o.register(fs)
	by := fs.Int("by", 0, "Die value used to enter")
	a, g, err := load(fs, &o, args, out)
	if err != nil {
		return err
	}
	defer a.close()

	return play(a, g, func() error {
		a.log.Infow("enter", "player", g.Player(), "by", *by)
		return g.Enter(*by)
	})
}

func cmdMove(args []string, out io.Writer) error {
	fs := newFlagSet("move", out)
	var o options
	o.register(fs)
	from := fs.Int("from", 0, "Point to move from (1-24)")
	by := fs.Int("by", 0, "Die value to move by")
	a, g, err := load(fs, &o, args, out)
	if err != nil {
		return err
	}
	defer a.close()

	if *from < 1 || *from > engine.NumPoints {
		return fmt.Errorf("point %d out of range 1-%d", *from, engine.NumPoints)
	}

	return play(a, g, func() error {
		a.log.Infow("move", "player", g.Player(), "from", *from, "by", *by)
		return g.Move(engine.OnPoint(*from-1), *by)
	})
}

func cmdEnd(args []string, out io.Writer) error {
	fs := newFlagSet("end", out)
	var o options
	o.register(fs)
	a, g, err := load(fs, &o, args, out)
	if err != nil {
		return err
	}
	defer a.close()

	if w := g.Winner(); w != engine.NoColor {
		return fmt.Errorf("the game is over, %s won", w)
	}
	if err := g.CheckEndTurn(); err != nil {
		return err
	}
	a.log.Infow("end turn", "player", g.Player(), "roll", g.Dice())
	g.EndTurn()
	a.passTurns(g)
	if err := a.save(g); err != nil {
		return err
	}
	a.show(g)
	return nil
}

func cmdWatch(args []string, out io.Writer) error {
	fs := newFlagSet("watch", out)
	var o options
	o.register(fs)
	to := fs.Int("to", -1, "Plays to replay from the opening position")
	back := fs.Int("back", 0, "Plays to step back from the end")
	resume := fs.Bool("resume", false, "Drop everything after the watched position and save")
	a, g, err := load(fs, &o, args, out)
	if err != nil {
		return err
	}
	defer a.close()

	end := g.Clone()
	steps := 0
	if *to >= 0 {
		g.WatchStart()
		for steps < *to && g.WatchNext() {
			steps++
		}
	} else {
		g.WatchEnd(end)
		for steps < *back && g.WatchPrev() {
			steps++
		}
	}
	turn, move := g.Cursor()
	a.log.Debugw("watch", "steps", steps, "turn", turn, "move", move)
	fmt.Fprintf(out, " Turn %d, play %d\n\n", turn+1, move+1)
	a.show(g)

	if *resume {
		g.ResumeHere()
		if err := a.save(g); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n Resumed, game saved to %s\n", a.path)
	}
	return nil
}

func cmdExport(args []string, out io.Writer) error {
	fs := newFlagSet("export", out)
	var o options
	o.register(fs)
	format := fs.String("format", "mat", "Export format (mat or sgf)")
	dest := fs.String("o", "", "Output file (default stdout)")
	event := fs.String("event", "", "Event name")
	a, g, err := load(fs, &o, args, out)
	if err != nil {
		return err
	}
	defer a.close()

	m := match.NewMatch(a.cfg.WhiteName, a.cfg.RedName, g)
	m.Event = *event

	var export func(io.Writer, *match.Match) error
	switch strings.ToLower(*format) {
	case "mat":
		export = match.ExportMAT
	case "sgf":
		export = match.ExportSGF
	default:
		return fmt.Errorf("unknown export format %q", *format)
	}

	if *dest == "" {
		return export(out, m)
	}
	f, err := os.Create(*dest)
	if err != nil {
		return err
	}
	if err := export(f, m); err != nil {
		f.Close()
		return err
	}
	a.log.Infow("game exported", "format", *format, "file", *dest)
	return f.Close()
}

func cmdStats(args []string, out io.Writer) error {
	fs := newFlagSet("stats", out)
	var o options
	o.register(fs)
	a, g, err := load(fs, &o, args, out)
	if err != nil {
		return err
	}
	defer a.close()

	s := stats.Compute(g)
	p := newPalette(a.cfg.Color)
	names := map[engine.Color]string{engine.White: a.cfg.WhiteName, engine.Red: a.cfg.RedName}
	for _, c := range []engine.Color{engine.White, engine.Red} {
		ps := s.Player(c)
		fmt.Fprintf(out, " %s (%s)\n", p.of(c).Sprint(names[c]), c)
		fmt.Fprintf(out, "   turns: %d  doublets: %d  dances: %d\n", ps.Turns, ps.Doublets, ps.Dances)
		fmt.Fprintf(out, "   hits: %d  entries: %d  out: %02d\n", ps.Hits, ps.Entries, ps.BearOffs)
		fmt.Fprintf(out, "   pips rolled: %d  played: %d  left: %d\n", ps.PipsRolled, ps.PipsPlayed, ps.PipCount)
		fmt.Fprintf(out, "   pips per turn: %.2f ± %.2f  efficiency: %.1f%%\n",
			ps.MeanPips, ps.StdDevPips, ps.Efficiency*100)
	}
	return nil
}

func cmdFIBS(args []string, out io.Writer) error {
	fs := newFlagSet("fibs", out)
	var o options
	o.register(fs)
	as := fs.String("as", "W", "Color seen as \"you\" (W or R)")
	a, g, err := load(fs, &o, args, out)
	if err != nil {
		return err
	}
	defer a.close()

	you := engine.ColorFromChar(strings.ToUpper(*as + " ")[0])
	if you == engine.NoColor {
		return fmt.Errorf("unknown color %q", *as)
	}
	yourName, oppName := a.cfg.WhiteName, a.cfg.RedName
	if you == engine.Red {
		yourName, oppName = oppName, yourName
	}

	fmt.Fprintln(out, external.NewFIBSBoard(g, you, yourName, oppName))
	return nil
}
