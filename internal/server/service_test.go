package server

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airamana21/asia-poker-computer/internal/evaluator"
	"github.com/airamana21/asia-poker-computer/internal/simulator"
)

func testAdvisor(t *testing.T, clock quartz.Clock) *AdvisorService {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Engine.Workers = 1
	cfg.Engine.DefaultSamples = 200
	cfg.Engine.MaxSamples = 10_000
	return NewAdvisorService(cfg, log.New(io.Discard), clock)
}

var testCards = []string{"AS", "AH", "KD", "QC", "9H", "5D", "2C"}

func TestAdvisorRecommend(t *testing.T) {
	advisor := testAdvisor(t, quartz.NewReal())

	seed := int64(42)
	rec, usedSeed, err := advisor.Recommend(context.Background(), RecommendData{
		Cards:   testCards,
		Samples: 300,
		Seed:    &seed,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, seed, usedSeed)
	assert.Equal(t, 300, rec.Samples)
	assert.False(t, rec.Canceled)
	assert.NotEmpty(t, rec.Ranked)
}

func TestAdvisorRecommendDefaultsSamples(t *testing.T) {
	advisor := testAdvisor(t, quartz.NewReal())

	rec, _, err := advisor.Recommend(context.Background(), RecommendData{
		Cards: testCards,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Samples)
}

func TestAdvisorRecommendPicksSeedWhenUnset(t *testing.T) {
	advisor := testAdvisor(t, quartz.NewReal())

	_, usedSeed, err := advisor.Recommend(context.Background(), RecommendData{
		Cards:   testCards,
		Samples: 50,
	}, nil)
	require.NoError(t, err)
	assert.NotZero(t, usedSeed)
}

func TestAdvisorRecommendCapsSamples(t *testing.T) {
	advisor := testAdvisor(t, quartz.NewReal())

	_, _, err := advisor.Recommend(context.Background(), RecommendData{
		Cards:   testCards,
		Samples: 50_000,
	}, nil)
	require.ErrorIs(t, err, simulator.ErrInvalidSamples)
}

func TestAdvisorRecommendRejectsBadHand(t *testing.T) {
	advisor := testAdvisor(t, quartz.NewReal())

	t.Run("unparseable card", func(t *testing.T) {
		_, _, err := advisor.Recommend(context.Background(), RecommendData{
			Cards: []string{"AS", "ZZ", "KD", "QC", "9H", "5D", "2C"},
		}, nil)
		require.ErrorIs(t, err, simulator.ErrInvalidHand)
	})

	t.Run("duplicate card", func(t *testing.T) {
		_, _, err := advisor.Recommend(context.Background(), RecommendData{
			Cards: []string{"AS", "AS", "KD", "QC", "9H", "5D", "2C"},
		}, nil)
		require.ErrorIs(t, err, simulator.ErrInvalidHand)
	})
}

// Drives the simulation timeout with a mock clock: the first progress
// report advances time past the deadline, and the run must come back
// canceled rather than complete.
func TestAdvisorRecommendTimeout(t *testing.T) {
	mock := quartz.NewMock(t)
	cfg := DefaultConfig()
	cfg.Engine.Workers = 1
	cfg.Engine.BatchSize = 10
	cfg.Engine.MaxSamples = 10_000_000
	cfg.Engine.SimTimeoutSeconds = 5
	advisor := NewAdvisorService(cfg, log.New(io.Discard), mock)

	fired := false
	progress := func(float64) {
		if fired {
			return
		}
		fired = true
		mock.Advance(5 * time.Second).MustWait(context.Background())
	}

	seed := int64(1)
	rec, _, err := advisor.Recommend(context.Background(), RecommendData{
		Cards:   testCards,
		Samples: 10_000,
		Seed:    &seed,
	}, progress)
	require.NoError(t, err)
	assert.True(t, rec.Canceled)
	assert.Less(t, rec.Samples, 10_000)
}

func TestAdvisorHouseWay(t *testing.T) {
	advisor := testAdvisor(t, quartz.NewReal())

	rp, err := advisor.HouseWay([]string{"AS", "AH", "AD", "AC", "KS", "KH", "KD"})
	require.NoError(t, err)
	assert.Equal(t, evaluator.FourOfAKind, rp.HighScore.Category())

	_, err = advisor.HouseWay([]string{"AS", "??"})
	require.ErrorIs(t, err, simulator.ErrInvalidHand)
}
