package reservation

// Status is the per-side lifecycle of a booking. Teacher and student each
// hold their own status and transition independently.
type Status string

const (
	StatusReserved  Status = "reserved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// State is the composite reservation state derived from the two side
// statuses. It is computed on read and never stored, so the two columns
// remain the single source of truth.
type State string

const (
	StatePending        State = "pending"
	StateFullyCompleted State = "fully_completed"
	StateCancelled      State = "cancelled"
)

// CompositeState derives the reservation state: cancellation by either side
// cancels the booking for both; full completion requires both sides.
func CompositeState(teacherStatus, studentStatus Status) State {
	if teacherStatus == StatusCancelled || studentStatus == StatusCancelled {
		return StateCancelled
	}
	if teacherStatus == StatusCompleted && studentStatus == StatusCompleted {
		return StateFullyCompleted
	}
	return StatePending
}
