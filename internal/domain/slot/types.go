package slot

type Kind string

const (
	// KindCustom is a concrete bookable occurrence, either created directly
	// by an admin or materialized from a recurring template.
	KindCustom Kind = "custom"
	// KindRecurring is a stored template. Templates are never bookable
	// themselves; the materializer expands them into KindCustom slots.
	KindRecurring Kind = "recurring"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindCustom, KindRecurring:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked:
		return true
	default:
		return false
	}
}
