package service

import "finanspanel/models"

// CycleOpener decides whether an event starts a new cycle
type CycleOpener func(e *models.Event) bool

// DefaultCycleOpener opens cycles on deposits, given bonuses and positive adjustments
func DefaultCycleOpener(e *models.Event) bool {
	return e.OpensCycle()
}

// SegmentCycles partitions a prepared event sequence into consecutive cycles.
// Each cycle starts at an opening event and ends before the next one. With no
// opening events the whole sequence is one implicit cycle without an anchor.
// In strict mode events before the first opener belong to no cycle; in merged
// mode they are folded into cycle 0.
func SegmentCycles(events []models.Event, mode models.SegmentMode, opens CycleOpener) []models.Cycle {
	if len(events) == 0 {
		return nil
	}
	if opens == nil {
		opens = DefaultCycleOpener
	}

	var openers []int
	for i := range events {
		if opens(&events[i]) {
			openers = append(openers, i)
		}
	}

	if len(openers) == 0 {
		return []models.Cycle{{Index: 0, Start: 0, End: len(events)}}
	}

	cycles := make([]models.Cycle, len(openers))
	for k, start := range openers {
		end := len(events)
		if k+1 < len(openers) {
			end = openers[k+1]
		}
		anchor := start
		cycles[k] = models.Cycle{Index: k, Start: start, End: end, Anchor: &anchor}
	}

	if mode == models.SegmentMerged {
		cycles[0].Start = 0
	}

	return cycles
}

// SelectWindow concatenates cycles [from, to] into one working window.
// The window's anchor is the anchor of its first cycle.
func SelectWindow(cycles []models.Cycle, from, to int) (models.Window, error) {
	if from < 0 || to < from || to >= len(cycles) {
		return models.Window{}, &models.InvalidCycleRangeError{From: from, To: to, Available: len(cycles)}
	}
	return models.Window{
		From:   from,
		To:     to,
		Start:  cycles[from].Start,
		End:    cycles[to].End,
		Anchor: cycles[from].Anchor,
	}, nil
}
