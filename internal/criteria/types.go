package criteria

// #region kind

// Kind identifies the semantic form of a should-be criteria string.
type Kind string

const (
	KindExact               Kind = "exact"
	KindSet                 Kind = "set"
	KindRange               Kind = "range"
	KindTolerance           Kind = "tolerance"
	KindGreaterThan         Kind = "greater_than"
	KindGreaterThanPrevious Kind = "greater_than_previous"
	KindCrossReference      Kind = "cross_reference"
	KindComplexRange        Kind = "complex_range"
	KindUnvalidatable       Kind = "unvalidatable"
)

// #endregion

// #region criteria

// Criteria is the classified form of one should-be string. Only the fields
// relevant to Kind are populated.
type Criteria struct {
	Kind Kind

	Value       string   // KindExact: literal to match
	Members     []string // KindSet: allowed values ("blank" matches empty)
	Min, Max    string   // KindRange: inclusive bounds, domain decided at evaluation
	Target      float64  // KindTolerance: band center
	Tolerance   float64  // KindTolerance: band half-width
	Threshold   float64  // KindGreaterThan: strict lower bound
	Param       string   // KindGreaterThanPrevious: parameter key to compare against
	Reference   string   // KindCrossReference: parameter key holding the expected value
	Alternative string   // KindComplexRange: literal escape value, may be empty
}

// #endregion
