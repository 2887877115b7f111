package session

// Status is the position of a session in its lifecycle.
// Uninitialized -> Prepared -> {Playing <-> Paused} -> Released.
type Status int32

const (
	Uninitialized Status = iota
	Prepared
	Playing
	Paused
	Released
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Prepared:
		return "prepared"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == Released
}
