package cart

// MergeStrategy selects how an anonymous cart and a registered account cart
// are reconciled when the anonymous session becomes an authenticated one.
// The strategy is a user decision, never inferred.
type MergeStrategy string

const (
	// MergeStrategyBoth unions both carts, summing quantities of shared products
	MergeStrategyBoth MergeStrategy = "MERGE_BOTH"
	// MergeStrategyUseAccountCart keeps the account cart verbatim and discards the anonymous one
	MergeStrategyUseAccountCart MergeStrategy = "USE_ACCOUNT_CART"
	// MergeStrategyUseAnonymousCart replaces the account cart's items with the anonymous cart's
	MergeStrategyUseAnonymousCart MergeStrategy = "USE_ANONYMOUS_CART"
)

// IsValid checks if the strategy is a known MergeStrategy
func (s MergeStrategy) IsValid() bool {
	switch s {
	case MergeStrategyBoth, MergeStrategyUseAccountCart, MergeStrategyUseAnonymousCart:
		return true
	}
	return false
}

// String returns the string representation of MergeStrategy
func (s MergeStrategy) String() string {
	return string(s)
}
