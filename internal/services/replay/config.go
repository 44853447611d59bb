package replay

import "time"

// Config controls how the opponent's side is played during single-side replay
type Config struct {
	// MinOpponentDelay is the shortest pause before an opponent move
	MinOpponentDelay time.Duration
	// OpponentJitter is the width of the random extra pause added on top
	OpponentJitter time.Duration
}

// DefaultConfig returns the delays used by the server
func DefaultConfig() Config {
	return Config{
		MinOpponentDelay: 500 * time.Millisecond,
		OpponentJitter:   500 * time.Millisecond,
	}
}
