// Package resolver maps free-text fragments to record identifiers in the
// remote record store.
//
// Inputs are short, often truncated or mis-OCR'd strings (a customer name,
// a product code) extracted from scanned documents. The store is
// authoritative and remote; there is no local copy and no guarantee of an
// exact match. Resolution proceeds in three layers:
//
//  1. Candidate fetch: per lookup field, a bounded candidate pool is pulled
//     from the store with the fewest round trips that produce anything —
//     exact equality first, then progressively shorter substrings, then
//     wildcard fallbacks.
//  2. Window match: the longest contiguous substring of the normalized
//     input shared with any candidate decides which candidates survive,
//     with prefix agreement preferred over mid-string agreement.
//  3. Tie-break: among survivors the winner minimizes
//     (len(normalized value), normalized value, record ID) — shortest,
//     then lexicographic, then lowest ID. Ambiguity is never an error;
//     the total order always yields exactly one record.
//
// Every candidate pool is built fresh inside a single FindID call and
// discarded on return. Nothing is cached across calls; within one call an
// identical store query is never repeated.
//
// Because a fuzzy resolution can silently pick an unintended record, every
// call emits a structured audit trail: one entry per evaluated
// (field, window) pair at debug level and one summary per call, keyed by a
// call ID.
package resolver
