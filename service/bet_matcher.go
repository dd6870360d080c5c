package service

import (
	"strconv"

	"finanspanel/models"
)

// CorrelationKey derives the key used to pair a placement with its settlement.
// Reference id wins over the secondary bet id; without either the key is unique
// to the event's position, so such events can never match another row.
func CorrelationKey(e *models.Event, idx int) string {
	if e.Reference != "" {
		return "R:" + e.Reference
	}
	if e.BetCID != "" {
		return "C:" + e.BetCID
	}
	return "F:" + strconv.Itoa(idx)
}

type keyGroup struct {
	placements  []int
	settlements []int
}

// MatchBets pairs placements and settlements in events[start:end] that share a
// correlation key. Within a key, the n-th placement pairs with the n-th
// settlement in time order. Results are ordered by event position.
func MatchBets(events []models.Event, start, end int) models.MatchResult {
	var result models.MatchResult
	if start < 0 {
		start = 0
	}
	if end > len(events) {
		end = len(events)
	}
	if start >= end {
		return result
	}

	groups := make(map[string]*keyGroup)
	for i := start; i < end; i++ {
		e := &events[i]
		if !e.IsPlacement() && !e.IsSettlement() {
			continue
		}
		key := CorrelationKey(e, i)
		g, ok := groups[key]
		if !ok {
			g = &keyGroup{}
			groups[key] = g
		}
		if e.IsPlacement() {
			g.placements = append(g.placements, i)
			result.Placements++
		} else {
			g.settlements = append(g.settlements, i)
			result.Settlements++
		}
	}

	// partner[i-start] holds the settlement of a matched placement, or -1
	partner := make([]int, end-start)
	matched := make([]bool, end-start)
	for i := range partner {
		partner[i] = -1
	}
	for _, g := range groups {
		n := min(len(g.placements), len(g.settlements))
		for j := 0; j < n; j++ {
			p, s := g.placements[j], g.settlements[j]
			partner[p-start] = s
			matched[p-start] = true
			matched[s-start] = true
		}
	}

	for i := start; i < end; i++ {
		e := &events[i]
		switch {
		case e.IsPlacement() && matched[i-start]:
			result.Pairs = append(result.Pairs, models.BetPair{
				Key:        CorrelationKey(e, i),
				Placement:  i,
				Settlement: partner[i-start],
			})
		case e.IsPlacement():
			result.Open = append(result.Open, i)
		case e.IsSettlement() && !matched[i-start]:
			result.MissingPlacement = append(result.MissingPlacement, i)
		}
	}

	return result
}
