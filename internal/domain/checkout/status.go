package checkout

// CheckoutStatus represents the lifecycle status of a checkout session.
// It is orthogonal to the current step. ABANDONED and EXPIRED bar all entry;
// CONFIRMED and COMPLETED leave only the confirmation view accessible.
type CheckoutStatus string

const (
	StatusActive    CheckoutStatus = "ACTIVE"
	StatusConfirmed CheckoutStatus = "CONFIRMED"
	StatusCompleted CheckoutStatus = "COMPLETED"
	StatusAbandoned CheckoutStatus = "ABANDONED"
	StatusExpired   CheckoutStatus = "EXPIRED"
)

// IsValid checks if the status is a known CheckoutStatus
func (s CheckoutStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusConfirmed, StatusCompleted, StatusAbandoned, StatusExpired:
		return true
	}
	return false
}

// String returns the string representation of CheckoutStatus
func (s CheckoutStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s CheckoutStatus) CanTransitionTo(target CheckoutStatus) bool {
	switch s {
	case StatusActive:
		return target == StatusConfirmed || target == StatusAbandoned || target == StatusExpired
	case StatusConfirmed:
		return target == StatusCompleted
	case StatusCompleted, StatusAbandoned, StatusExpired:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for statuses that end the checkout lifecycle.
// CONFIRMED is terminal for business mutation (only completion follows).
func (s CheckoutStatus) IsTerminal() bool {
	return s != StatusActive
}

// BarsEntry returns true for statuses under which no checkout view is
// accessible anymore
func (s CheckoutStatus) BarsEntry() bool {
	return s == StatusAbandoned || s == StatusExpired
}

// ConfirmationOnly returns true for statuses under which only the
// confirmation view remains accessible
func (s CheckoutStatus) ConfirmationOnly() bool {
	return s == StatusConfirmed || s == StatusCompleted
}
