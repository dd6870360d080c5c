package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanspanel/models"
)

func TestBuildProfitStream(t *testing.T) {
	deposit := ev(0, models.Deposit, "1000", "")
	deposit.PaymentMethod = "Papara"
	bonus := ev(3, models.BonusGiven, "100", "")
	bonus.Details = "Freespin"

	events := []models.Event{
		deposit,
		ev(1, models.BetPlaced, "-100", "A"),
		ev(2, models.BetPlaced, "-50", "B"),
		bonus,
		ev(4, models.BetSettled, "180", "A"),
		ev(5, models.BetSettled, "40", "Z"),
		ev(6, models.BetPlaced, "-20", "C"),
		ev(7, models.BetSettled, "10", "C"),
	}
	window := wholeWindow(events, intPtr(0))

	stream := BuildProfitStream(events, window, MatchBets(events, window.Start, window.End))

	require.Len(t, stream.Rows, 3)

	// Settled after the bonus, but placed before it: funded by the deposit
	assert.Equal(t, models.SourceMain, stream.Rows[0].Source)
	assert.Equal(t, "Papara", *stream.Rows[0].Detail)
	assert.True(t, stream.Rows[0].Matched)
	assert.Equal(t, 180.0, stream.Rows[0].Amount)

	// Orphan settlement is attributed from its own position
	assert.Equal(t, models.SourceBonus, stream.Rows[1].Source)
	assert.False(t, stream.Rows[1].Matched)
	assert.Equal(t, "Z", *stream.Rows[1].Reference)

	assert.Equal(t, models.SourceBonus, stream.Rows[2].Source)
	assert.True(t, stream.Rows[2].Matched)

	for i := 1; i < len(stream.Rows); i++ {
		assert.False(t, stream.Rows[i].At.Before(*stream.Rows[i-1].At))
	}

	assert.Equal(t, []models.SourceTotal{
		{Source: models.SourceMain, Count: 1, Amount: 180},
		{Source: models.SourceBonus, Count: 2, Amount: 50},
	}, stream.Totals)
}

func TestBuildProfitStream_NoSettlements(t *testing.T) {
	events := []models.Event{ev(0, models.Deposit, "10", "")}

	stream := BuildProfitStream(events, wholeWindow(events, intPtr(0)), models.MatchResult{})

	assert.NotNil(t, stream.Rows)
	assert.Empty(t, stream.Rows)
	assert.Empty(t, stream.Totals)
}

func TestBuildProfitStream_NegativeAdjustmentIsTransparent(t *testing.T) {
	events := []models.Event{
		ev(0, models.Deposit, "100", ""),
		ev(1, models.Adjustment, "-50", ""),
		ev(2, models.BetPlaced, "-10", "A"),
		ev(3, models.BetSettled, "30", "A"),
	}

	stream := BuildProfitStream(events, wholeWindow(events, intPtr(0)), MatchBets(events, 0, len(events)))

	require.Len(t, stream.Rows, 1)
	assert.Equal(t, models.SourceMain, stream.Rows[0].Source)
}
