// Package notation reads and writes the line-based text form of game
// actions:
//
//	move unit_10 tile_20
//	take unit_13 unit_64
//	enpassant unit_13 unit_64
//	cast unit_04 unit_03
//	bot 2        # let the bot play at depth 2
package notation

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"runechess/internal/bot"
	"runechess/internal/game"
)

var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Keyword", Pattern: `(?i)\b(?:move|take|enpassant|cast|bot)\b`},
	{Name: "UnitID", Pattern: `unit_\d\d`},
	{Name: "TileID", Pattern: `tile_\d\d`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

type statement struct {
	Action *actionStmt `parser:"  @@"`
	Bot    *botStmt    `parser:"| @@"`
}

type actionStmt struct {
	Verb   string `parser:"@(\"move\" | \"take\" | \"enpassant\" | \"cast\")"`
	Unit   string `parser:"@UnitID"`
	Target string `parser:"@(UnitID | TileID)"`
}

type botStmt struct {
	Keyword string `parser:"@\"bot\""`
	Depth   int    `parser:"@Int?"`
}

var parser = participle.MustBuild[statement](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
	participle.CaseInsensitive("Keyword"),
)

// Step is one parsed line. Bot steps carry no move; the bot picks it when
// the step is played.
type Step struct {
	Line  int      `json:"line"`
	Move  bot.Move `json:"move"`
	Bot   bool     `json:"bot,omitempty"`
	Depth int      `json:"depth,omitempty"`
}

func (s Step) String() string {
	if s.Bot {
		if s.Depth > 0 {
			return fmt.Sprintf("bot %d", s.Depth)
		}
		return "bot"
	}
	return Format(s.Move)
}

// ParseLine parses a single action.
func ParseLine(line string) (Step, error) {
	stmt, err := parser.ParseString("", line)
	if err != nil {
		return Step{}, errors.Wrapf(err, "parse %q", strings.TrimSpace(line))
	}
	if stmt.Bot != nil {
		return Step{Bot: true, Depth: stmt.Bot.Depth}, nil
	}
	kind, ok := game.ParseCommandKind(strings.ToLower(stmt.Action.Verb))
	if !ok {
		return Step{}, errors.Errorf("parse %q: unknown verb %q", strings.TrimSpace(line), stmt.Action.Verb)
	}
	if kind == game.CommandMove && !game.IsTileID(stmt.Action.Target) {
		return Step{}, errors.Errorf("parse %q: move needs a tile target", strings.TrimSpace(line))
	}
	if (kind == game.CommandCapture || kind == game.CommandEnPassant) && !game.IsUnitID(stmt.Action.Target) {
		return Step{}, errors.Errorf("parse %q: %s needs a unit target", strings.TrimSpace(line), kind)
	}
	return Step{Move: bot.Move{UnitID: stmt.Action.Unit, TargetID: stmt.Action.Target, Kind: kind}}, nil
}

// ParseScript parses one action per line, skipping blank and comment lines.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		step, err := ParseLine(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		step.Line = n
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return steps, nil
}

// Format writes m in the form ParseLine reads.
func Format(m bot.Move) string {
	return fmt.Sprintf("%s %s %s", m.Kind, m.UnitID, m.TargetID)
}
