package match

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/bgrules/pkg/engine"
)

// The save format is line based:
//
//	BOARD
//	point #0 W 2
//	...
//
//	bar W 0
//	bar R 0
//
//	out W 0
//	out R 0
//
//	player W
//	roll v:6 v:5 u:0 u:0 d_u:0
//
//	HISTORY len:1
//	turn dice:6 dice:5 move_count:1
//	move f:0 b:6 h:0
//
// Positions in move lines use the legacy integer codes of engine.Position.

var (
	// ErrMalformed is returned when a save file does not hold a valid game.
	ErrMalformed = errors.New("wrong data in file")

	// ErrFileAccess is returned when a save file cannot be opened or read.
	ErrFileAccess = errors.New("cannot access file")
)

const (
	fileHeader    = "BOARD"
	historyHeader = "HISTORY"

	maxPreallocTurns = 256
)

var (
	pointLineRE   = regexp.MustCompile(`^point #(\d+) (\S) (\d+)$`)
	barLineRE     = regexp.MustCompile(`^bar (\S) (\d+)$`)
	outLineRE     = regexp.MustCompile(`^out (\S) (\d+)$`)
	playerLineRE  = regexp.MustCompile(`^player (\S)$`)
	rollLineRE    = regexp.MustCompile(`^roll v:(\d+) v:(\d+) u:(\d+) u:(\d+) d_u:(\d+)$`)
	historyLineRE = regexp.MustCompile(`^` + historyHeader + ` len:(\d+)$`)
	turnLineRE    = regexp.MustCompile(`^turn dice:(\d+) dice:(\d+) move_count:(\d+)$`)
	moveLineRE    = regexp.MustCompile(`^move f:(-?\d+) b:(\d+) h:(\d+)$`)
)

// Encode writes g in the save format.
func Encode(w io.Writer, g *engine.Game) error {
	bw := bufio.NewWriter(w)
	b := g.Board()

	fmt.Fprintf(bw, "%s\n", fileHeader)
	for i := 0; i < engine.NumPoints; i++ {
		p := b.Point(i)
		if p.Empty() {
			continue
		}
		fmt.Fprintf(bw, "point #%d %c %d\n", i, p.Color().Char(), p.Count())
	}

	fmt.Fprintf(bw, "\n")
	fmt.Fprintf(bw, "bar %c %d\n", engine.WhiteChar, b.BarCount(engine.White))
	fmt.Fprintf(bw, "bar %c %d\n", engine.RedChar, b.BarCount(engine.Red))

	fmt.Fprintf(bw, "\n")
	fmt.Fprintf(bw, "out %c %d\n", engine.WhiteChar, b.OffCount(engine.White))
	fmt.Fprintf(bw, "out %c %d\n", engine.RedChar, b.OffCount(engine.Red))
	fmt.Fprintf(bw, "\n")

	d := g.Dice()
	v1, v2 := d.Values()
	fmt.Fprintf(bw, "player %c\n", g.Player().Char())
	fmt.Fprintf(bw, "roll v:%d v:%d u:%d u:%d d_u:%d\n",
		v1, v2, boolToInt(d.Used1()), boolToInt(d.Used2()), d.DoubletUses())

	turns := g.Turns()
	fmt.Fprintf(bw, "\n%s len:%d\n", historyHeader, len(turns))
	for _, t := range turns {
		fmt.Fprintf(bw, "turn dice:%d dice:%d move_count:%d\n", t.Dice1, t.Dice2, len(t.Moves))
		for _, m := range t.Moves {
			fmt.Fprintf(bw, "move f:%d b:%d h:%d\n", m.From.Code(), m.By, boolToInt(m.Hit))
		}
	}

	return bw.Flush()
}

// SaveFile writes g to path, replacing any existing file.
func SaveFile(path string, g *engine.Game) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrFileAccess, path, err)
	}
	if err := Encode(f, g); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a game saved with SaveFile. Dice rolled after loading come
// from roller; a nil roller gets a time-seeded one.
func LoadFile(path string, roller engine.Roller) (*engine.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFileAccess, path, err)
	}
	defer f.Close()

	g, err := Decode(f, roller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Decode reads a game in the save format. Any error other than a read
// failure wraps ErrMalformed and no partial game is returned.
func Decode(r io.Reader, roller engine.Roller) (*engine.Game, error) {
	d := &decoder{sc: bufio.NewScanner(r)}

	board, err := d.board()
	if err != nil {
		return nil, err
	}
	player, dice, err := d.playerRoll()
	if err != nil {
		return nil, err
	}
	log, err := d.history()
	if err != nil {
		return nil, err
	}
	if d.next() {
		return nil, d.errorf("unexpected data after history")
	}
	if err := d.sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	g, err := engine.Restore(board, player, dice, log, roller)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return g, nil
}

// decoder walks the non-blank lines of a save file.
type decoder struct {
	sc   *bufio.Scanner
	line int
	text string
}

// next advances to the next non-blank line.
func (d *decoder) next() bool {
	for d.sc.Scan() {
		d.line++
		d.text = strings.TrimRight(d.sc.Text(), " \t\r")
		if d.text != "" {
			return true
		}
	}
	d.text = ""
	return false
}

func (d *decoder) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, d.line, fmt.Sprintf(format, args...))
}

// expect reads the next line and matches it against re.
func (d *decoder) expect(re *regexp.Regexp, what string) ([]string, error) {
	if !d.next() {
		if err := d.sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
		}
		return nil, d.errorf("missing %s", what)
	}
	m := re.FindStringSubmatch(d.text)
	if m == nil {
		return nil, d.errorf("expected %s, got %q", what, d.text)
	}
	return m, nil
}

// ints converts the numeric submatches of a line.
func (d *decoder) ints(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, s := range fields {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, d.errorf("bad number %q", s)
		}
		out[i] = n
	}
	return out, nil
}

func (d *decoder) board() (engine.Board, error) {
	b := engine.EmptyBoard()

	if !d.next() || d.text != fileHeader {
		return b, d.errorf("missing %s header", fileHeader)
	}

	seen := make(map[int]bool)
	for d.next() {
		m := pointLineRE.FindStringSubmatch(d.text)
		if m == nil {
			break
		}
		v, err := d.ints([]string{m[1], m[3]})
		if err != nil {
			return b, err
		}
		id, count := v[0], v[1]
		if id >= engine.NumPoints {
			return b, d.errorf("point #%d out of range", id)
		}
		if seen[id] {
			return b, d.errorf("point #%d listed twice", id)
		}
		seen[id] = true
		c := engine.ColorFromChar(m[2][0])
		if c == engine.NoColor || len(m[2]) != 1 {
			return b, d.errorf("unknown checker %q", m[2])
		}
		if count < 1 || count > engine.CheckersPerSide {
			return b, d.errorf("point #%d holds %d checkers", id, count)
		}
		b.SetPoint(id, c, count)
	}

	// The line after the points is already read.
	for i, c := range []engine.Color{engine.White, engine.Red} {
		if i > 0 && !d.next() {
			return b, d.errorf("missing bar line")
		}
		n, err := d.counter(barLineRE, "bar", c)
		if err != nil {
			return b, err
		}
		b.AddToBar(c, n)
	}
	for _, c := range []engine.Color{engine.White, engine.Red} {
		if !d.next() {
			return b, d.errorf("missing out line")
		}
		n, err := d.counter(outLineRE, "out", c)
		if err != nil {
			return b, err
		}
		b.AddToOff(c, n)
	}

	if err := b.Validate(); err != nil {
		return b, d.errorf("%v", err)
	}
	return b, nil
}

// counter parses the current line as a bar or out line for color c.
func (d *decoder) counter(re *regexp.Regexp, what string, c engine.Color) (int, error) {
	m := re.FindStringSubmatch(d.text)
	if m == nil {
		return 0, d.errorf("expected %s line, got %q", what, d.text)
	}
	if engine.ColorFromChar(m[1][0]) != c || len(m[1]) != 1 {
		return 0, d.errorf("%s line for %s expected, got %q", what, c, m[1])
	}
	v, err := d.ints(m[2:3])
	if err != nil {
		return 0, err
	}
	if v[0] > engine.CheckersPerSide {
		return 0, d.errorf("%s %c %d exceeds %d", what, c.Char(), v[0], engine.CheckersPerSide)
	}
	return v[0], nil
}

func (d *decoder) playerRoll() (engine.Color, engine.DiceRoll, error) {
	m, err := d.expect(playerLineRE, "player line")
	if err != nil {
		return engine.NoColor, engine.DiceRoll{}, err
	}
	player := engine.ColorFromChar(m[1][0])
	if player == engine.NoColor {
		return engine.NoColor, engine.DiceRoll{}, d.errorf("unknown player %q", m[1])
	}

	m, err = d.expect(rollLineRE, "roll line")
	if err != nil {
		return engine.NoColor, engine.DiceRoll{}, err
	}
	v, err := d.ints(m[1:])
	if err != nil {
		return engine.NoColor, engine.DiceRoll{}, err
	}
	if v[2] > 1 || v[3] > 1 {
		return engine.NoColor, engine.DiceRoll{}, d.errorf("used flags must be 0 or 1")
	}
	dice, err := engine.RestoreDiceRoll(v[0], v[1], v[2] == 1, v[3] == 1, v[4])
	if err != nil {
		return engine.NoColor, engine.DiceRoll{}, d.errorf("%v", err)
	}
	return player, dice, nil
}

func (d *decoder) history() (*engine.TurnLog, error) {
	m, err := d.expect(historyLineRE, historyHeader+" header")
	if err != nil {
		return nil, err
	}
	v, err := d.ints(m[1:])
	if err != nil {
		return nil, err
	}

	// The count is untrusted; the log grows past this as turns are read.
	n := v[0]
	log := engine.NewTurnLog(min(n, maxPreallocTurns))
	for i := 0; i < n; i++ {
		t, err := d.turn()
		if err != nil {
			return nil, err
		}
		log.Push(t)
	}
	return log, nil
}

func (d *decoder) turn() (engine.TurnEntry, error) {
	var t engine.TurnEntry

	m, err := d.expect(turnLineRE, "turn line")
	if err != nil {
		return t, err
	}
	v, err := d.ints(m[1:])
	if err != nil {
		return t, err
	}
	if !validDie(v[0]) || !validDie(v[1]) {
		return t, d.errorf("dice %d-%d out of range", v[0], v[1])
	}
	if v[2] > engine.MaxMovesPerTurn {
		return t, d.errorf("move_count %d exceeds %d", v[2], engine.MaxMovesPerTurn)
	}
	t.Dice1, t.Dice2 = v[0], v[1]

	for j := 0; j < v[2]; j++ {
		mv, err := d.move()
		if err != nil {
			return t, err
		}
		t.AddMove(mv)
	}
	return t, nil
}

func (d *decoder) move() (engine.MoveEntry, error) {
	m, err := d.expect(moveLineRE, "move line")
	if err != nil {
		return engine.MoveEntry{}, err
	}
	v, err := d.ints(m[1:])
	if err != nil {
		return engine.MoveEntry{}, err
	}

	from, err := engine.PositionFromCode(v[0])
	if err != nil || from.IsOff() {
		return engine.MoveEntry{}, d.errorf("bad origin f:%d", v[0])
	}
	if !validDie(v[1]) {
		return engine.MoveEntry{}, d.errorf("bad die b:%d", v[1])
	}
	if v[2] > 1 {
		return engine.MoveEntry{}, d.errorf("hit flag must be 0 or 1")
	}
	return engine.MoveEntry{From: from, By: v[1], Hit: v[2] == 1}, nil
}

func validDie(v int) bool { return v >= 1 && v <= 6 }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
