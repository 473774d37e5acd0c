package enums

// CheckoutState tracks a single checkout attempt through its lifecycle.
type CheckoutState string

const (
	CheckoutStateIdle             CheckoutState = "idle"
	CheckoutStateValidating       CheckoutState = "validating"
	CheckoutStateSubmitting       CheckoutState = "submitting"
	CheckoutStateValidationFailed CheckoutState = "validation_failed"
	CheckoutStateSubmitFailed     CheckoutState = "submit_failed"
	CheckoutStateSucceeded        CheckoutState = "succeeded"
)

// String implements fmt.Stringer.
func (c CheckoutState) String() string {
	return string(c)
}

// InFlight reports whether an attempt in this state still holds the
// single-checkout slot.
func (c CheckoutState) InFlight() bool {
	return c == CheckoutStateValidating || c == CheckoutStateSubmitting
}
