package positions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is the direction of a position or of an order.
type Action int

const (
	Long Action = iota
	Short
)

// ParseAction parses user input into an Action.
//
// Orders are usually typed as buy/sell and positions as long/short, both
// spellings are accepted everywhere.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "long", "b", "buy":
		return Long, nil
	case "s", "short", "sell":
		return Short, nil
	default:
		return 0, fmt.Errorf("'%s' is not valid position type (long/short)", s)
	}
}

// Opposite returns the action that closes this one.
func (a Action) Opposite() Action {
	if a == Long {
		return Short
	}
	return Long
}

// String returns the position wording: Long or Short.
func (a Action) String() string {
	switch a {
	case Long:
		return "Long"
	case Short:
		return "Short"
	default:
		return "unknown"
	}
}

// OrderString returns the order wording: Buy or Sell.
func (a Action) OrderString() string {
	if a == Long {
		return "Buy"
	}
	return "Sell"
}

// code is the persisted form of an action.
func (a Action) code() string {
	if a == Long {
		return "L"
	}
	return "S"
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.code())
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "L":
		*a = Long
	case "S":
		*a = Short
	default:
		return fmt.Errorf("unknown action code %q", s)
	}
	return nil
}
