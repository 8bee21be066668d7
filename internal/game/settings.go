package game

// Settings are per-game rule switches.
type Settings struct {
	// ValidateMoves filters moves and casts that would expose the mover's Princess.
	ValidateMoves bool `mapstructure:"validate_moves" yaml:"validate_moves" json:"validateMoves"`
	// ValidatePlayerColor rejects actions by units of the side not to move.
	ValidatePlayerColor bool `mapstructure:"validate_player_color" yaml:"validate_player_color" json:"validatePlayerColor"`
	// UnlimitedSpells lets every unit cast repeatedly.
	UnlimitedSpells bool `mapstructure:"unlimited_spells" yaml:"unlimited_spells" json:"unlimitedSpells"`
	EnableBot       bool `mapstructure:"enable_bot" yaml:"enable_bot" json:"enableBot"`
	// HalfMoveLimit is the number of turns without capture or peasant move that draws the game.
	HalfMoveLimit int `mapstructure:"half_move_limit" yaml:"half_move_limit" json:"halfMoveLimit"`
	// CheckInvariants panics when an accepted action leaves the board inconsistent.
	CheckInvariants bool `mapstructure:"check_invariants" yaml:"check_invariants" json:"checkInvariants"`
}

const DefaultHalfMoveLimit = 50

func DefaultSettings() Settings {
	return Settings{
		ValidateMoves:       true,
		ValidatePlayerColor: true,
		EnableBot:           true,
		HalfMoveLimit:       DefaultHalfMoveLimit,
	}
}
