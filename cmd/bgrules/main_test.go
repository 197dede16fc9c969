package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bgrules/pkg/engine"
	"github.com/yourusername/bgrules/pkg/match"
)

// setupEnv points the configuration at a fresh save directory.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BGRULES_SAVE_DIR", dir)
	t.Setenv("BGRULES_SEED", "42")
	t.Setenv("BGRULES_COLOR", "false")
	t.Setenv("BGRULES_LOG_LEVEL", "error")
	return dir
}

func runCmd(t *testing.T, name string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(name, args, &out)
	return out.String(), err
}

// writeOpening saves a game where White opens with 6-5.
func writeOpening(t *testing.T, dir string) string {
	t.Helper()
	rolls := []int{6, 5}
	g := engine.NewGame(engine.RollerFunc(func() int {
		v := rolls[0]
		rolls = append(rolls[1:], v)
		return v
	}))
	require.NoError(t, match.SaveFile(filepath.Join(dir, "opening.bg"), g))
	return "opening.bg"
}

func loadSaved(t *testing.T, dir, name string) *engine.Game {
	t.Helper()
	g, err := match.LoadFile(filepath.Join(dir, name), engine.NewRandRoller(1))
	require.NoError(t, err)
	return g
}

func TestRunHelpAndUnknown(t *testing.T) {
	out, err := runCmd(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "Commands:")

	_, err = runCmd(t, "rollout")
	assert.Error(t, err)
}

func TestNewWritesSave(t *testing.T) {
	dir := setupEnv(t)

	out, err := runCmd(t, "new", "-f", "game.bg")
	require.NoError(t, err)
	assert.Contains(t, out, "Game saved to")
	assert.Contains(t, out, "Position ID: ")

	g := loadSaved(t, dir, "game.bg")
	assert.Len(t, g.Turns(), 1)
	assert.NotEqual(t, engine.NoColor, g.Player())

	_, err = runCmd(t, "new", "-f", "game.bg")
	assert.Error(t, err)
	_, err = runCmd(t, "new", "-f", "game.bg", "-force")
	assert.NoError(t, err)
}

func TestNewDefaultName(t *testing.T) {
	dir := setupEnv(t)

	_, err := runCmd(t, "new")
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(dir, "*.bg"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestShow(t *testing.T) {
	dir := setupEnv(t)
	name := writeOpening(t, dir)

	out, err := runCmd(t, "show", "-f", name)
	require.NoError(t, err)
	assert.Contains(t, out, " 12 11 10 09 08 07 |   | 06 05 04 03 02 01")
	assert.Contains(t, out, " 13 14 15 16 17 18 |   | 19 20 21 22 23 24")
	assert.Contains(t, out, "White to play, roll: 6 5")
	assert.Contains(t, out, "Position ID: 4HPwATDgc/ABMA")
	assert.Contains(t, out, "out: 00")
}

func TestCommandsNeedAFile(t *testing.T) {
	setupEnv(t)

	_, err := runCmd(t, "show")
	assert.ErrorIs(t, err, errNoFile)

	_, err = runCmd(t, "show", "-f", "missing.bg")
	assert.ErrorIs(t, err, match.ErrFileAccess)
}

func TestMovePassesTheDice(t *testing.T) {
	dir := setupEnv(t)
	name := writeOpening(t, dir)

	out, err := runCmd(t, "move", "-f", name, "-from", "1", "-by", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "roll: _ 5")

	g := loadSaved(t, dir, name)
	assert.Equal(t, 1, g.Board().Point(0).Count())
	assert.Equal(t, 1, g.Board().Point(6).Count())
	assert.Equal(t, engine.White, g.Player())

	_, err = runCmd(t, "move", "-f", name, "-from", "7", "-by", "5")
	require.NoError(t, err)

	g = loadSaved(t, dir, name)
	assert.Equal(t, engine.Red, g.Player())
	require.Len(t, g.Turns(), 2)
	assert.Len(t, g.Turns()[0].Moves, 2)
	assert.Equal(t, 6, g.Board().Point(11).Count())
}

func TestMoveRejections(t *testing.T) {
	dir := setupEnv(t)
	name := writeOpening(t, dir)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"die not rolled", []string{"-from", "1", "-by", "3"}, engine.ErrDieUnavailable},
		{"empty point", []string{"-from", "2", "-by", "5"}, engine.ErrNotYourChecker},
		{"blocked", []string{"-from", "1", "-by", "5"}, engine.ErrPointBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, "move", append([]string{"-f", name}, tt.args...)...)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, engine.ErrIllegalMove)
		})
	}

	_, err := runCmd(t, "move", "-f", name, "-from", "25", "-by", "6")
	assert.Error(t, err)

	_, err = runCmd(t, "enter", "-f", name, "-by", "6")
	assert.ErrorIs(t, err, engine.ErrNothingToEnter)

	g := loadSaved(t, dir, name)
	assert.Equal(t, engine.DefaultBoard(), g.Board())
}

func TestEnd(t *testing.T) {
	dir := setupEnv(t)
	name := writeOpening(t, dir)

	_, err := runCmd(t, "end", "-f", name)
	assert.ErrorIs(t, err, engine.ErrTurnNotOver)

	g := loadSaved(t, dir, name)
	assert.Equal(t, engine.White, g.Player())
	assert.Len(t, g.Turns(), 1)

	// A roll that cannot be played may be passed.
	b := engine.EmptyBoard()
	for i := 18; i < 24; i++ {
		b.SetPoint(i, engine.White, 2)
	}
	b.AddToOff(engine.White, 3)
	b.SetPoint(5, engine.Red, 14)
	b.AddToBar(engine.Red, 1)
	blocked, err := engine.Restore(b, engine.Red, engine.NewDiceRoll(3, 5), nil, engine.NewRandRoller(1))
	require.NoError(t, err)
	require.NoError(t, match.SaveFile(filepath.Join(dir, "blocked.bg"), blocked))

	_, err = runCmd(t, "end", "-f", "blocked.bg")
	require.NoError(t, err)

	g = loadSaved(t, dir, "blocked.bg")
	assert.Equal(t, engine.White, g.Player())
}

func TestWatchAndResume(t *testing.T) {
	dir := setupEnv(t)
	name := writeOpening(t, dir)
	_, err := runCmd(t, "move", "-f", name, "-from", "1", "-by", "6")
	require.NoError(t, err)
	_, err = runCmd(t, "move", "-f", name, "-from", "7", "-by", "5")
	require.NoError(t, err)

	out, err := runCmd(t, "watch", "-f", name, "-to", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Turn 1, play 0")
	assert.Contains(t, out, "Position ID: 4HPwATDgc/ABMA")

	out, err = runCmd(t, "watch", "-f", name, "-back", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Turn 1, play 2")

	// Watching does not touch the file.
	g := loadSaved(t, dir, name)
	assert.Equal(t, engine.Red, g.Player())

	_, err = runCmd(t, "watch", "-f", name, "-to", "1", "-resume")
	require.NoError(t, err)

	g = loadSaved(t, dir, name)
	assert.Equal(t, engine.White, g.Player())
	require.Len(t, g.Turns(), 1)
	assert.Len(t, g.Turns()[0].Moves, 1)
	assert.Equal(t, 1, g.Board().Point(6).Count())
	assert.NoError(t, g.CheckMove(engine.OnPoint(6), 5))
}

func TestExport(t *testing.T) {
	dir := setupEnv(t)
	name := writeOpening(t, dir)
	_, err := runCmd(t, "move", "-f", name, "-from", "1", "-by", "6")
	require.NoError(t, err)
	_, err = runCmd(t, "move", "-f", name, "-from", "7", "-by", "5")
	require.NoError(t, err)

	out, err := runCmd(t, "export", "-f", name)
	require.NoError(t, err)
	assert.Contains(t, out, "65: 24/18 18/13")

	dest := filepath.Join(dir, "game.sgf")
	_, err = runCmd(t, "export", "-f", name, "-format", "sgf", "-o", dest)
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "GM[6]")
	assert.Contains(t, string(data), ";W[65xrrm]")

	_, err = runCmd(t, "export", "-f", name, "-format", "pgn")
	assert.Error(t, err)
}

func TestStatsAndFIBS(t *testing.T) {
	dir := setupEnv(t)
	name := writeOpening(t, dir)
	_, err := runCmd(t, "move", "-f", name, "-from", "1", "-by", "6")
	require.NoError(t, err)

	out, err := runCmd(t, "stats", "-f", name)
	require.NoError(t, err)
	assert.Contains(t, out, "pips rolled: 11  played: 6")

	out, err = runCmd(t, "fibs", "-f", name)
	require.NoError(t, err)
	assert.Contains(t, out, "board:White:Red:1:0:0:")

	out, err = runCmd(t, "fibs", "-f", name, "-as", "r")
	require.NoError(t, err)
	assert.Contains(t, out, "board:Red:White:")

	_, err = runCmd(t, "fibs", "-f", name, "-as", "x")
	assert.Error(t, err)
}

func TestFormatRoll(t *testing.T) {
	d := engine.NewDiceRoll(3, 3)
	d.Use(3)
	assert.Equal(t, "_ 3 3 3", formatRoll(d))

	d = engine.NewDiceRoll(6, 1)
	d.Use(1)
	assert.Equal(t, "6 _", formatRoll(d))
}
