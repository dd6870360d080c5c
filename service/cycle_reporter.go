package service

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finanspanel/models"
)

const (
	DefaultLateThreshold = 5 * time.Minute
	DefaultTopN          = 3
	DefaultItemCap       = 50
)

// ReportOptions tunes the report thresholds and list sizes
type ReportOptions struct {
	LateThreshold time.Duration
	TopN          int
	ItemCap       int
}

// DefaultReportOptions returns the standard thresholds
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		LateThreshold: DefaultLateThreshold,
		TopN:          DefaultTopN,
		ItemCap:       DefaultItemCap,
	}
}

func (o ReportOptions) withDefaults() ReportOptions {
	if o.LateThreshold <= 0 {
		o.LateThreshold = DefaultLateThreshold
	}
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.ItemCap <= 0 {
		o.ItemCap = DefaultItemCap
	}
	return o
}

// BuildCycleReport aggregates a window of events and its match result into the
// reconciliation metrics. The caller fills in identity fields and global exposure.
func BuildCycleReport(events []models.Event, window models.Window, match models.MatchResult, opts ReportOptions) models.CycleReport {
	opts = opts.withDefaults()

	report := models.CycleReport{
		CycleIndex: window.To,
		CycleFrom:  window.From,
		CycleTo:    window.To,
		EventCount: window.End - window.Start,
	}
	if window.End > window.Start {
		report.WindowFrom = events[window.Start].Timestamp
		report.WindowTo = events[window.End-1].Timestamp
	}

	turnover := decimal.Zero
	profit := decimal.Zero
	for i := window.Start; i < window.End; i++ {
		e := &events[i]
		switch {
		case e.IsPlacement():
			turnover = turnover.Add(e.Amount.Abs())
			profit = profit.Add(e.Amount)
			report.PlacementCount++
		case e.IsSettlement():
			profit = profit.Add(e.Amount)
		}
		if report.Currency == nil && e.Currency != "" {
			report.Currency = stringPtr(e.Currency)
		}
	}

	requirement := decimal.Zero
	if window.Anchor != nil && events[*window.Anchor].Kind.Is(models.KindDeposit) {
		requirement = events[*window.Anchor].Amount
	}
	remaining := decimal.Max(requirement.Sub(turnover), decimal.Zero)

	report.Turnover = money(turnover)
	report.Profit = money(profit)
	report.Requirement = money(requirement)
	report.Remaining = money(remaining)

	report.Open = openBets(events, match.Open, opts.ItemCap)
	report.Late = lateSettlements(events, match.Pairs, opts)
	report.Missing = missingPlacements(events, match.MissingPlacement, opts.ItemCap)

	report.TopGames = rankBy(events, window, opts.TopN, func(e *models.Event) string { return e.Game })
	report.TopProviders = rankBy(events, window, opts.TopN, func(e *models.Event) string { return e.Provider })

	report.LastOperation, report.WagerSinceLastOp = lastOperation(events, window)

	return report
}

// SummarizeExposure totals the open placements of a match over a whole ledger
func SummarizeExposure(events []models.Event, match models.MatchResult) models.Exposure {
	total := decimal.Zero
	for _, i := range match.Open {
		total = total.Add(events[i].Amount.Abs())
	}
	return models.Exposure{Count: len(match.Open), TotalAmount: money(total)}
}

func openBets(events []models.Event, open []int, limit int) models.OpenBets {
	total := decimal.Zero
	items := make([]models.OpenItem, 0, min(len(open), limit))
	for _, i := range open {
		e := &events[i]
		total = total.Add(e.Amount.Abs())
		if len(items) < limit {
			items = append(items, models.OpenItem{
				ID:       identifier(e),
				PlacedAt: e.Timestamp,
				Amount:   money(e.Amount.Abs()),
				Game:     e.Game,
			})
		}
	}
	return models.OpenBets{Count: len(open), TotalAmount: money(total), Items: items}
}

func lateSettlements(events []models.Event, pairs []models.BetPair, opts ReportOptions) models.LateSettlements {
	late := models.LateSettlements{
		ThresholdMinutes: round2(opts.LateThreshold.Minutes()),
		Items:            []models.LateItem{},
	}

	var totalMinutes float64
	for _, pair := range pairs {
		p, s := &events[pair.Placement], &events[pair.Settlement]
		if p.Timestamp == nil || s.Timestamp == nil {
			continue
		}
		gap := s.Timestamp.Sub(*p.Timestamp)
		if gap <= opts.LateThreshold {
			continue
		}
		late.Count++
		totalMinutes += gap.Minutes()
		if len(late.Items) < opts.ItemCap {
			late.Items = append(late.Items, models.LateItem{
				ID:            identifier(p),
				PlacedAt:      p.Timestamp,
				SettledAt:     s.Timestamp,
				GapMinutes:    round2(gap.Minutes()),
				PlacedAmount:  money(p.Amount),
				SettledAmount: money(s.Amount),
			})
		}
	}
	late.TotalMinutes = round2(totalMinutes)

	return late
}

func missingPlacements(events []models.Event, missing []int, limit int) models.MissingPlacements {
	total := decimal.Zero
	items := make([]models.MissingItem, 0, min(len(missing), limit))
	for _, i := range missing {
		e := &events[i]
		total = total.Add(e.Amount)
		if len(items) < limit {
			items = append(items, models.MissingItem{
				ID:        identifier(e),
				SettledAt: e.Timestamp,
				Amount:    money(e.Amount),
			})
		}
	}
	return models.MissingPlacements{Count: len(missing), TotalAmount: money(total), Items: items}
}

type stat struct {
	name     string
	bets     int
	turnover decimal.Decimal
	settled  decimal.Decimal
	net      decimal.Decimal
}

func (s *stat) view() models.GameStat {
	return models.GameStat{
		Name:     s.name,
		Bets:     s.bets,
		Turnover: money(s.turnover),
		Settled:  money(s.settled),
		Net:      money(s.net),
		GGR:      money(s.settled.Sub(s.turnover)),
	}
}

// rankBy groups bets by the given dimension, in first-seen order so ties stay stable
func rankBy(events []models.Event, window models.Window, topN int, dimension func(e *models.Event) string) models.Rankings {
	index := make(map[string]*stat)
	var stats []*stat

	for i := window.Start; i < window.End; i++ {
		e := &events[i]
		if !e.IsPlacement() && !e.IsSettlement() {
			continue
		}
		name := dimension(e)
		if name == "" {
			continue
		}
		s, ok := index[name]
		if !ok {
			s = &stat{name: name}
			index[name] = s
			stats = append(stats, s)
		}
		s.net = s.net.Add(e.Amount)
		if e.IsPlacement() {
			s.bets++
			s.turnover = s.turnover.Add(e.Amount.Abs())
		} else {
			s.settled = s.settled.Add(e.Amount)
		}
	}

	rankings := models.Rankings{
		MostProfitable: []models.GameStat{},
		MostWagered:    []models.GameStat{},
	}

	profitable := make([]*stat, 0, len(stats))
	for _, s := range stats {
		if s.net.IsPositive() {
			profitable = append(profitable, s)
		}
	}
	sort.SliceStable(profitable, func(i, j int) bool {
		return profitable[i].net.GreaterThan(profitable[j].net)
	})
	for _, s := range profitable[:min(topN, len(profitable))] {
		rankings.MostProfitable = append(rankings.MostProfitable, s.view())
	}

	wagered := make([]*stat, 0, len(stats))
	for _, s := range stats {
		if s.bets > 0 {
			wagered = append(wagered, s)
		}
	}
	sort.SliceStable(wagered, func(i, j int) bool {
		return wagered[i].turnover.GreaterThan(wagered[j].turnover)
	})
	for _, s := range wagered[:min(topN, len(wagered))] {
		rankings.MostWagered = append(rankings.MostWagered, s.view())
	}

	return rankings
}

// lastOperation finds the latest funding event in the window and the turnover
// placed after it
func lastOperation(events []models.Event, window models.Window) (*models.LastOperation, models.WagerWindow) {
	last := -1
	for i := window.End - 1; i >= window.Start; i-- {
		if events[i].OpensCycle() {
			last = i
			break
		}
	}

	var wager models.WagerWindow
	from := window.Start
	if last >= 0 {
		from = last
	}
	if window.End > window.Start {
		wager.From = events[from].Timestamp
		wager.To = events[window.End-1].Timestamp
	}

	total := decimal.Zero
	for i := from; i < window.End; i++ {
		if events[i].IsPlacement() {
			total = total.Add(events[i].Amount.Abs())
			wager.Count++
		}
	}
	wager.Total = money(total)

	if last < 0 {
		return nil, wager
	}

	e := &events[last]
	op := &models.LastOperation{
		Type:   e.Kind.String(),
		At:     e.Timestamp,
		Amount: money(e.Amount),
	}
	switch e.Kind.Code {
	case models.KindBonusGiven:
		op.Type = "BONUS"
		detail := bonusDetail(e)
		kind := ClassifyBonus(detail)
		op.BonusDetail = &detail
		op.BonusKind = &kind
	default:
		op.Method = paymentDetail(e)
	}

	return op, wager
}

// ClassifyBonus buckets a bonus description into trial, freespin, cashback,
// deposit or other
func ClassifyBonus(detail string) string {
	d := strings.ToLower(detail)
	switch {
	case containsAny(d, []string{"trial", "deneme"}):
		return "trial"
	case containsAny(d, []string{"free", "spin"}):
		return "freespin"
	case containsAny(d, []string{"cashback", "kayıp", "kayip", "loss"}):
		return "cashback"
	case containsAny(d, []string{"deposit", "yatırım", "yatirim"}):
		return "deposit"
	}
	return "other"
}
