package resolver

// Candidate is one store record considered as a possible resolution of the
// input. Candidates are ephemeral: they exist only for the duration of one
// FindID call.
type Candidate struct {
	// ID is the record identifier in the store.
	ID int64

	// Normalized is the canonical form of the stored field value; all
	// matching happens against it.
	Normalized string

	// Raw is the field value exactly as stored, kept for the audit trail.
	Raw string
}

// fieldPool pairs a lookup field with its fetched candidates. Pools are
// kept in field priority order.
type fieldPool struct {
	field      string
	candidates []Candidate
}

// Resolution is the outcome of a successful FindID call: exactly one
// record identifier plus the evidence it was chosen on.
type Resolution struct {
	// ID is the resolved record identifier.
	ID int64 `json:"record_id"`

	// Raw is the stored value of the winning candidate's field.
	Raw string `json:"raw_value"`

	// Window is the shared substring the decision was made on; for exact
	// matches it equals the whole normalized input.
	Window string `json:"window"`

	// Exact reports whether the winner matched the normalized input exactly.
	Exact bool `json:"exact"`

	// Candidates is the number of candidates that survived matching and
	// entered the tie-break.
	Candidates int `json:"candidates"`
}
