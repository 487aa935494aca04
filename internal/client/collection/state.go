package collection

// State is the phase of the most recent action on a collection.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	LoadFailed
	Mutating
	MutationFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "load failed"
	case Mutating:
		return "mutating"
	case MutationFailed:
		return "mutation failed"
	default:
		return "unknown"
	}
}
