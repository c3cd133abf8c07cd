package resolver

import (
	"strings"
	"unicode/utf8"
)

// windowObserver is called once per evaluated (field, window) pair with the
// candidates that survived it. Used for the audit trail.
type windowObserver func(field, window string, offset, length int, matched []Candidate)

// matchWindow finds the candidates agreeing on the best shared substring of
// the normalized input.
//
// If any candidate equals the normalized input, all such exact matches win
// outright (deduplicated by record ID) and no window scan happens.
//
// Otherwise windows are tried longest first — length L from len(input) down
// to 1, offset 0 before interior offsets — so noise glued onto either end of
// the input (OCR garbage, truncated prefixes) only costs the scan a few
// levels instead of poisoning the match. Per field, in priority order, the
// pool is filtered to candidates containing the window; candidates whose
// value starts with the window are preferred as stronger evidence, falling
// back to the contains-only set. Survivors from all fields merge by record
// ID, and the first (L, O) pair with a non-empty merge wins.
//
// Returns the surviving candidates and the winning window, or nil if no
// window at any length matched.
func matchWindow(normalizedInput string, pools []fieldPool, observe windowObserver) ([]Candidate, string) {
	if exact := exactMatches(pools, normalizedInput); len(exact) > 0 {
		return exact, normalizedInput
	}

	runes := []rune(normalizedInput)
	for length := len(runes); length >= 1; length-- {
		for offset := 0; offset+length <= len(runes); offset++ {
			window := string(runes[offset : offset+length])

			var merged []Candidate
			byID := make(map[int64]struct{})
			for _, p := range pools {
				active := filterWindow(p.candidates, window)
				if observe != nil {
					observe(p.field, window, offset, length, active)
				}
				for _, c := range active {
					if _, dup := byID[c.ID]; dup {
						continue
					}
					byID[c.ID] = struct{}{}
					merged = append(merged, c)
				}
			}

			if len(merged) > 0 {
				return merged, window
			}
		}
	}

	return nil, ""
}

// filterWindow keeps candidates containing the window, preferring the
// subset whose value starts with it.
func filterWindow(candidates []Candidate, window string) []Candidate {
	var contains, prefix []Candidate
	for _, c := range candidates {
		if !strings.Contains(c.Normalized, window) {
			continue
		}
		contains = append(contains, c)
		if strings.HasPrefix(c.Normalized, window) {
			prefix = append(prefix, c)
		}
	}
	if len(prefix) > 0 {
		return prefix
	}
	return contains
}

// exactMatches collects candidates across all pools whose normalized value
// equals the normalized input, deduplicated by record ID.
func exactMatches(pools []fieldPool, normalizedInput string) []Candidate {
	var exact []Candidate
	byID := make(map[int64]struct{})
	for _, p := range pools {
		for _, c := range p.candidates {
			if c.Normalized != normalizedInput {
				continue
			}
			if _, dup := byID[c.ID]; dup {
				continue
			}
			byID[c.ID] = struct{}{}
			exact = append(exact, c)
		}
	}
	return exact
}

// less orders candidates by (len(normalized), normalized, ID): prefer the
// most specific matching value, then lexicographic order, then the lowest
// identifier. A total order, so the tie-break always has a single winner.
// Length counts characters, not bytes, so multibyte values compare fairly.
func less(a, b Candidate) bool {
	la, lb := utf8.RuneCountInString(a.Normalized), utf8.RuneCountInString(b.Normalized)
	if la != lb {
		return la < lb
	}
	if a.Normalized != b.Normalized {
		return a.Normalized < b.Normalized
	}
	return a.ID < b.ID
}

// selectCandidate applies the deterministic tie-break. candidates must be
// non-empty.
func selectCandidate(candidates []Candidate) Candidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if less(c, best) {
			best = c
		}
	}
	return best
}
