package types

// Action is the closed set of decisions a strategy can emit.
type Action string

const (
	// ActionBuy tells the caller to open or add to a long position
	ActionBuy Action = "buy"
	// ActionSell tells the caller to reduce or exit a position
	ActionSell Action = "sell"
	// ActionHold tells the caller to do nothing
	ActionHold Action = "hold"
)

// Valid reports whether the action is one of buy, sell or hold.
func (a Action) Valid() bool {
	switch a {
	case ActionBuy, ActionSell, ActionHold:
		return true
	default:
		return false
	}
}

const (
	// MinStrength is the lowest conviction score a signal may carry
	MinStrength = 0.0
	// MaxStrength is the highest conviction score a signal may carry
	MaxStrength = 100.0
)

// Signal is the output of a single strategy evaluation.
type Signal struct {
	// Action is the decision
	Action Action `json:"action"`
	// Strength is a heuristic conviction score in [0, 100], not a probability
	Strength float64 `json:"strength"`
	// Price is the reference price the signal is valid against
	Price float64 `json:"price"`
	// Reasoning is a human readable explanation of the decision
	Reasoning string `json:"reasoning"`
	// Indicators holds every quantity the decision was based on.
	// Values are float64, []float64 or string.
	Indicators map[string]any `json:"indicators"`
}

// Float returns a numeric indicator value.
func (s Signal) Float(name string) (float64, bool) {
	v, ok := s.Indicators[name].(float64)

	return v, ok
}

// Floats returns a list-valued indicator such as a grid ladder.
func (s Signal) Floats(name string) ([]float64, bool) {
	v, ok := s.Indicators[name].([]float64)

	return v, ok
}

// Label returns a string indicator value such as an exchange name.
func (s Signal) Label(name string) (string, bool) {
	v, ok := s.Indicators[name].(string)

	return v, ok
}
