package bot

import (
	"strings"

	"runechess/internal/game"
)

// Weights tune the leaf evaluation. Material keys are unit kind names.
type Weights struct {
	Material   map[string]float64 `mapstructure:"material" yaml:"material"`
	SpellBonus float64            `mapstructure:"spell_bonus" yaml:"spell_bonus"`
	CheckBonus float64            `mapstructure:"check_bonus" yaml:"check_bonus"`
	MateBonus  float64            `mapstructure:"mate_bonus" yaml:"mate_bonus"`
	// Mobility scores each action available to the side to move at a leaf.
	Mobility float64 `mapstructure:"mobility" yaml:"mobility"`
}

func DefaultWeights() Weights {
	return Weights{
		Material: map[string]float64{
			"peasant":  1,
			"priest":   2,
			"knight":   3,
			"rogue":    3,
			"druid":    2,
			"wolf":     2,
			"mage":     5,
			"dragon":   8,
			"king":     10,
			"princess": 100,
		},
		SpellBonus: 1,
		CheckBonus: 100,
		MateBonus:  1000,
	}
}

// Values resolves the material table by kind. Unknown names are ignored and
// missing kinds fall back to the default weight.
func (w Weights) Values() [game.NumKinds]float64 {
	var out [game.NumKinds]float64
	defaults := DefaultWeights().Material
	for k := 0; k < game.NumKinds; k++ {
		name := strings.ToLower(game.UnitKind(k).String())
		v, ok := w.Material[name]
		if !ok {
			v = defaults[name]
		}
		out[k] = v
	}
	return out
}

// evaluate scores pos from root's point of view.
func (b *Bot) evaluate(pos Position, root game.Color) float64 {
	if pos.IsStaleMate() || pos.Is50MoveRule() || pos.IsInsufficientMaterial() {
		return 0
	}

	score := 0.0
	for _, u := range pos.AllUnits() {
		if u.Captured {
			continue
		}
		v := b.values[u.Kind]
		if !u.UsedSpell && u.Kind.Spell() != game.SpellNone {
			v += b.weights.SpellBonus
		}
		if u.Color != root {
			v = -v
		}
		score += v
	}

	// Threats against the side to move count for its opponent.
	sign := 1.0
	if pos.Turn() == root {
		sign = -1
	}
	if pos.IsCheck() {
		score += sign * b.weights.CheckBonus
	}
	if pos.IsMate() {
		score += sign * b.weights.MateBonus
	}
	if b.weights.Mobility != 0 && !pos.IsMate() {
		score -= sign * b.weights.Mobility * float64(len(pos.Actions()))
	}
	return score
}
