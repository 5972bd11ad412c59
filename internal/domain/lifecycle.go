package domain

// EditableStatuses are the statuses in which Save, Approve, and Reject
// are permitted. Approved, rejected, and exported invoices are
// read-only from the review UI's perspective.
var EditableStatuses = map[InvoiceStatus]bool{
	StatusPendingUserConfirmation: true,
	StatusPendingReview:           true,
}

// transitions is the full review-workflow transition table. Approve
// and Reject move either pending status to its terminal counterpart;
// export is a bulk action applied only to approved invoices.
var transitions = map[InvoiceStatus][]InvoiceStatus{
	StatusPendingUserConfirmation: {StatusApproved, StatusRejected},
	StatusPendingReview:           {StatusApproved, StatusRejected},
	StatusApproved:                {StatusExported},
}

// Editable reports whether an invoice in the given status may be
// saved, approved, or rejected.
func (s InvoiceStatus) Editable() bool {
	return EditableStatuses[s]
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another.
func CanTransition(from, to InvoiceStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition when the lifecycle does
// not permit the move. Callers must treat this as a refusal to report,
// never something to apply silently.
func CheckTransition(from, to InvoiceStatus) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	return nil
}
