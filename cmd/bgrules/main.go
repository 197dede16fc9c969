// bgrules - a two-player backgammon rules referee driven through save files
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yourusername/bgrules/internal/config"
	"github.com/yourusername/bgrules/pkg/engine"
)

type command func(args []string, out io.Writer) error

var commands = map[string]command{
	"new":    cmdNew,
	"show":   cmdShow,
	"enter":  cmdEnter,
	"move":   cmdMove,
	"end":    cmdEnd,
	"watch":  cmdWatch,
	"export": cmdExport,
	"stats":  cmdStats,
	"fibs":   cmdFIBS,
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(name string, args []string, out io.Writer) error {
	switch name {
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", name)
	}
	return cmd(args, out)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `bgrules - Backgammon rules referee

Usage: bgrules <command> [options]

Commands:
  new       Start a game and write it to a save file
  show      Print the board, the roll and what has to be played
  enter     Enter a checker from the bar
  move      Move a checker from a point
  end       Pass the dice to the other player
  watch     Replay a saved game
  export    Write the game in MAT or SGF notation
  stats     Print per player statistics
  fibs      Print the FIBS board line of the game

Every command accepts -f <file> and -config <file>.
Use "bgrules <command> -h" for command-specific help.

Points are numbered 1 to 24 as printed on the board.`)
}

// NewLogger builds the production zap logger at the configured level. An
// unknown level keeps the production default.
func NewLogger(level string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}

// options are the flags shared by every command.
type options struct {
	config string
	file   string
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.config, "config", "", "Config file (yaml, json or toml)")
	fs.StringVar(&o.file, "f", "", "Save file")
}

// app is what a command needs once its flags are parsed.
type app struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	out    io.Writer
	roller engine.Roller
	path   string
}

func newApp(o options, out io.Writer) (*app, error) {
	cfg, err := config.Setup(o.config)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	a := &app{
		cfg:    cfg,
		log:    NewLogger(cfg.LogLevel),
		out:    out,
		roller: engine.NewRandRoller(seed),
	}
	if o.file != "" {
		a.path = o.file
		if !filepath.IsAbs(a.path) {
			a.path = filepath.Join(cfg.SaveDir, a.path)
		}
	}
	return a, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
