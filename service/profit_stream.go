package service

import (
	"github.com/shopspring/decimal"

	"finanspanel/models"
)

// sourceOrder fixes the order of per-source totals
var sourceOrder = []models.FundingSource{models.SourceMain, models.SourceBonus, models.SourceAdjustment}

// BuildProfitStream lists every settlement in the window with the funding
// source of the bet. A matched settlement is attributed from its placement;
// a settlement without placement is attributed from its own position.
func BuildProfitStream(events []models.Event, window models.Window, match models.MatchResult) models.ProfitStream {
	stream := models.ProfitStream{
		CycleIndex: window.To,
		CycleFrom:  window.From,
		CycleTo:    window.To,
		Rows:       []models.ProfitRow{},
		Totals:     []models.SourceTotal{},
	}

	placementOf := match.SettlementMatches()

	counts := make(map[models.FundingSource]int)
	sums := make(map[models.FundingSource]decimal.Decimal)

	for i := window.Start; i < window.End; i++ {
		e := &events[i]
		if !e.IsSettlement() {
			continue
		}

		origin, matched := placementOf[i]
		if !matched {
			origin = i
		}
		attr := AttributeSource(events, window.Start, origin)

		stream.Rows = append(stream.Rows, models.ProfitRow{
			At:        e.Timestamp,
			Source:    attr.Source,
			Amount:    money(e.Amount),
			Detail:    attr.Detail,
			Matched:   matched,
			Reference: identifier(e),
			Game:      e.Game,
		})

		counts[attr.Source]++
		sums[attr.Source] = sums[attr.Source].Add(e.Amount)
	}

	for _, source := range sourceOrder {
		if counts[source] == 0 {
			continue
		}
		stream.Totals = append(stream.Totals, models.SourceTotal{
			Source: source,
			Count:  counts[source],
			Amount: money(sums[source]),
		})
	}

	return stream
}
