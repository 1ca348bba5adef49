package domain

// SendState is the advisory in-flight flag of the controller.
type SendState int

const (
	StateIdle SendState = iota
	StateSending
)

// String returns a human-readable representation of the state.
func (s SendState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSending:
		return "Sending"
	default:
		return "Unknown"
	}
}
