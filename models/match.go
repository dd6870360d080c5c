package models

// BetPair links a placement to its settlement by index in the event sequence
type BetPair struct {
	Key        string
	Placement  int
	Settlement int
}

// MatchResult is the outcome of pairing placements with settlements in a window.
// All indices refer to the prepared event sequence.
type MatchResult struct {
	Pairs            []BetPair
	Open             []int // placements without a settlement
	MissingPlacement []int // settlements without a placement
	Placements       int
	Settlements      int
}

// SettlementMatches maps each matched settlement index to its placement index
func (r *MatchResult) SettlementMatches() map[int]int {
	m := make(map[int]int, len(r.Pairs))
	for _, p := range r.Pairs {
		m[p.Settlement] = p.Placement
	}
	return m
}
