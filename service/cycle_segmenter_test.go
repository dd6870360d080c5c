package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanspanel/models"
)

func segmenterEvents() []models.Event {
	return []models.Event{
		ev(0, models.BetPlaced, "-10", "P"),
		ev(1, models.Deposit, "1000", ""),
		ev(2, models.BetPlaced, "-100", "A"),
		ev(3, models.Adjustment, "-50", ""),
		ev(4, models.BonusGiven, "200", ""),
		ev(5, models.BetSettled, "20", "A"),
		ev(6, models.Adjustment, "25", ""),
		ev(7, models.Withdrawal, "-300", ""),
	}
}

func TestSegmentCycles_Strict(t *testing.T) {
	events := segmenterEvents()

	cycles := SegmentCycles(events, models.SegmentStrict, nil)
	require.Len(t, cycles, 3)

	assert.Equal(t, models.Cycle{Index: 0, Start: 1, End: 4, Anchor: intPtr(1)}, cycles[0])
	assert.Equal(t, models.Cycle{Index: 1, Start: 4, End: 6, Anchor: intPtr(4)}, cycles[1])
	assert.Equal(t, models.Cycle{Index: 2, Start: 6, End: 8, Anchor: intPtr(6)}, cycles[2])
}

func TestSegmentCycles_MergedPartitionsSequence(t *testing.T) {
	events := segmenterEvents()

	cycles := SegmentCycles(events, models.SegmentMerged, DefaultCycleOpener)
	require.NotEmpty(t, cycles)

	// Consecutive ranges cover [0, n) exactly
	assert.Equal(t, 0, cycles[0].Start)
	for i := 1; i < len(cycles); i++ {
		assert.Equal(t, cycles[i-1].End, cycles[i].Start)
	}
	assert.Equal(t, len(events), cycles[len(cycles)-1].End)

	total := 0
	for _, c := range cycles {
		total += c.Len()
	}
	assert.Equal(t, len(events), total)

	// Anchors are unaffected by merging
	assert.Equal(t, 1, *cycles[0].Anchor)
}

func TestSegmentCycles_NoOpeners(t *testing.T) {
	events := []models.Event{
		ev(0, models.BetPlaced, "-10", "A"),
		ev(1, models.BetSettled, "15", "A"),
	}

	for _, mode := range []models.SegmentMode{models.SegmentStrict, models.SegmentMerged} {
		cycles := SegmentCycles(events, mode, nil)
		require.Len(t, cycles, 1)
		assert.Equal(t, 0, cycles[0].Start)
		assert.Equal(t, 2, cycles[0].End)
		assert.Nil(t, cycles[0].Anchor)
	}
}

func TestSegmentCycles_Empty(t *testing.T) {
	assert.Empty(t, SegmentCycles(nil, models.SegmentMerged, nil))
}

func TestSegmentCycles_CustomOpener(t *testing.T) {
	depositsOnly := func(e *models.Event) bool { return e.Kind.Is(models.KindDeposit) }

	cycles := SegmentCycles(segmenterEvents(), models.SegmentStrict, depositsOnly)
	require.Len(t, cycles, 1)
	assert.Equal(t, 8, cycles[0].End)
}

func TestSelectWindow(t *testing.T) {
	cycles := SegmentCycles(segmenterEvents(), models.SegmentMerged, nil)

	t.Run("single cycle", func(t *testing.T) {
		w, err := SelectWindow(cycles, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, models.Window{From: 1, To: 1, Start: 4, End: 6, Anchor: intPtr(4)}, w)
	})

	t.Run("range uses first anchor", func(t *testing.T) {
		w, err := SelectWindow(cycles, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, 0, w.Start)
		assert.Equal(t, 8, w.End)
		assert.Equal(t, 1, *w.Anchor)
	})

	t.Run("out of range", func(t *testing.T) {
		for _, r := range [][2]int{{-1, 0}, {2, 1}, {0, 3}, {3, 3}} {
			_, err := SelectWindow(cycles, r[0], r[1])
			var invalid *models.InvalidCycleRangeError
			require.True(t, errors.As(err, &invalid), "range %v", r)
			assert.Equal(t, 3, invalid.Available)
		}
	})

	t.Run("no cycles", func(t *testing.T) {
		_, err := SelectWindow(nil, -1, -1)
		assert.Error(t, err)
	})
}
