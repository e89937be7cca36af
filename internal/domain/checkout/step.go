package checkout

// CheckoutStep represents one page/stage of the multi-step checkout flow.
// Steps are totally ordered; a session only moves forward by successfully
// submitting the data for its current step.
type CheckoutStep string

const (
	StepBuyerInfo    CheckoutStep = "BUYER_INFO"
	StepDelivery     CheckoutStep = "DELIVERY"
	StepPayment      CheckoutStep = "PAYMENT"
	StepReview       CheckoutStep = "REVIEW"
	StepConfirmation CheckoutStep = "CONFIRMATION"
)

// stepOrder defines the total order of checkout steps
var stepOrder = map[CheckoutStep]int{
	StepBuyerInfo:    0,
	StepDelivery:     1,
	StepPayment:      2,
	StepReview:       3,
	StepConfirmation: 4,
}

// stepPaths maps each step to its navigation path
var stepPaths = map[CheckoutStep]string{
	StepBuyerInfo:    "/checkout/buyer-info",
	StepDelivery:     "/checkout/delivery",
	StepPayment:      "/checkout/payment",
	StepReview:       "/checkout/review",
	StepConfirmation: "/checkout/confirmation",
}

// PathCart is the navigation path of the cart page, the fallback target when
// no checkout session is accessible
const PathCart = "/cart"

// AllSteps returns every checkout step in flow order
func AllSteps() []CheckoutStep {
	return []CheckoutStep{StepBuyerInfo, StepDelivery, StepPayment, StepReview, StepConfirmation}
}

// IsValid checks if the step is a known CheckoutStep
func (s CheckoutStep) IsValid() bool {
	_, ok := stepOrder[s]
	return ok
}

// String returns the string representation of CheckoutStep
func (s CheckoutStep) String() string {
	return string(s)
}

// Order returns the position of the step in the total order
func (s CheckoutStep) Order() int {
	return stepOrder[s]
}

// Path returns the navigation path for the step
func (s CheckoutStep) Path() string {
	return stepPaths[s]
}

// Before returns true if this step comes strictly before the other
func (s CheckoutStep) Before(other CheckoutStep) bool {
	return stepOrder[s] < stepOrder[other]
}

// After returns true if this step comes strictly after the other
func (s CheckoutStep) After(other CheckoutStep) bool {
	return stepOrder[s] > stepOrder[other]
}

// Next returns the step following this one in the total order.
// The second return value is false for the final step.
func (s CheckoutStep) Next() (CheckoutStep, bool) {
	switch s {
	case StepBuyerInfo:
		return StepDelivery, true
	case StepDelivery:
		return StepPayment, true
	case StepPayment:
		return StepReview, true
	case StepReview:
		return StepConfirmation, true
	}
	return s, false
}
