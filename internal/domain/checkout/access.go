package checkout

// Redirect is the navigation target a caller must send the customer to when
// a requested checkout step is not accessible
type Redirect struct {
	Path string
}

// ValidateStepAccess decides whether a customer may view the requested step
// of a session. It returns nil when access is allowed, or the redirect target
// otherwise.
//
// The navigation policy is separate from the session's own transition rules:
// this function never mutates state, so it can be exercised with session
// fixtures across every status/step combination.
//
// Rules, in priority order:
//  1. No session: back to the cart.
//  2. Abandoned or expired sessions bar every step.
//  3. Confirmed or completed sessions leave only the confirmation view.
//  4. Active sessions allow backward navigation (requested <= current) and
//     redirect forward jumps to the current step.
func ValidateStepAccess(session *CheckoutSession, requested CheckoutStep) *Redirect {
	if session == nil {
		return &Redirect{Path: PathCart}
	}

	if session.Status.BarsEntry() {
		return &Redirect{Path: PathCart}
	}

	if session.Status.ConfirmationOnly() {
		if requested == StepConfirmation {
			return nil
		}
		return &Redirect{Path: StepConfirmation.Path()}
	}

	// Status is ACTIVE: allow the current step and anything before it
	if requested.After(session.CurrentStep) {
		return &Redirect{Path: session.CurrentStep.Path()}
	}

	return nil
}
