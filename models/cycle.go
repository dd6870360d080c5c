package models

import "time"

// SegmentMode controls what happens to events before the first funding event
type SegmentMode int

const (
	// SegmentStrict leaves leading events outside every cycle
	SegmentStrict SegmentMode = iota
	// SegmentMerged folds leading events into cycle 0
	SegmentMerged
)

// Cycle is a contiguous [Start, End) range of the prepared event sequence
type Cycle struct {
	Index  int
	Start  int
	End    int
	Anchor *int // index of the opening funding event; nil for the implicit cycle
}

// Len returns the number of events in the cycle
func (c Cycle) Len() int {
	return c.End - c.Start
}

// Window is a materialized run of consecutive cycles
type Window struct {
	From   int // first cycle index
	To     int // last cycle index, inclusive
	Start  int
	End    int
	Anchor *int
}

// CycleDescriptor describes a cycle boundary for listing
type CycleDescriptor struct {
	Index         int        `json:"index"`
	StartRow      int        `json:"start_row"`
	EndRow        int        `json:"end_row"`
	StartAt       *time.Time `json:"start_at"`
	AnchorKind    string     `json:"anchor_kind,omitempty"`
	AnchorAmount  float64    `json:"deposit_amount"`
	PaymentMethod *string    `json:"payment_method"`
	Label         string     `json:"label"`
}

// CycleList is the response of a cycle boundary query
type CycleList struct {
	Filename  string            `json:"filename"`
	AccountID string            `json:"member_id,omitempty"`
	TotalRows int               `json:"total_rows"`
	Cycles    []CycleDescriptor `json:"cycles"`
}
