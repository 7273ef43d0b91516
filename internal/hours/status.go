package hours

// Status is the outcome of an opening-hours query. Unknown and Closed are
// distinct: only Closed means the data confirms the place is shut.
type Status int

const (
	Unknown Status = iota
	Open
	Closed
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Label is the badge text shown next to a competitor. Unknown has no badge.
func (s Status) Label() string {
	switch s {
	case Open:
		return "OPEN"
	case Closed:
		return "CLOSED"
	default:
		return ""
	}
}

// Known reports whether the status is backed by hours data.
func (s Status) Known() bool {
	return s != Unknown
}
