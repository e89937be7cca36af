// Package acl provides the Anti-Corruption Layer for the Checkout bounded
// context's view of articles.
//
// Product identity, pricing, and stock availability are owned by three
// independent contexts and updated asynchronously of the checkout flow.
// Rather than coupling checkout to any one upstream schema, each source is
// treated as an independent keyed lookup and the join happens here, in the
// CompositeArticleResolver.
//
// The join tolerates partial absence asymmetrically:
//
//   - a product missing from the identity source is omitted from the result
//     (treated as nonexistent);
//   - a product with identity but no price fails the whole resolution
//     (a line item cannot be shown without a price);
//   - a product with no stock record resolves to zero/unavailable
//     (stock absence means "not yet provisioned", not a fault).
//
// Snapshots are produced fresh on every call and never persisted as a source
// of truth. Checkout resolves twice with different intents: at start the
// result is frozen into line items, at confirmation a fresh resolution is
// compared against that snapshot to detect drift.
package acl
