package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airamana21/asia-poker-computer/internal/deck"
	"github.com/airamana21/asia-poker-computer/internal/evaluator"
	"github.com/airamana21/asia-poker-computer/internal/partition"
	"github.com/airamana21/asia-poker-computer/internal/simulator"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(MessageTypeProgress, ProgressData{Fraction: 0.25})
	require.NoError(t, err)

	assert.Equal(t, MessageTypeProgress, msg.Type)
	assert.False(t, msg.Timestamp.IsZero())

	var data ProgressData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, 0.25, data.Fraction)
}

func TestMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage(MessageTypeRecommend, RecommendData{
		Cards:   []string{"AS", "KH", "10D", "9H", "9D", "2C", "XJ"},
		Samples: 5000,
	})
	require.NoError(t, err)
	msg.RequestID = "req-1"

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, MessageTypeRecommend, decoded.Type)
	assert.Equal(t, "req-1", decoded.RequestID)

	var data RecommendData
	require.NoError(t, json.Unmarshal(decoded.Data, &data))
	assert.Len(t, data.Cards, 7)
	assert.Equal(t, 5000, data.Samples)
	assert.Nil(t, data.Seed)
}

func TestPartitionInfoFrom(t *testing.T) {
	s := evaluator.NewScorer()
	hand := deck.MustParseCards("AS AH AD AC KS KH KD")
	rp, err := partition.HouseWay(hand, s)
	require.NoError(t, err)

	info := PartitionInfoFrom(rp)

	assert.Equal(t, "Four of a Kind", info.High.Category)
	assert.Len(t, info.High.Cards, 4)
	assert.Equal(t, "One Pair", info.Mid.Category)
	assert.Len(t, info.Mid.Cards, 2)
	assert.Equal(t, "High Card", info.Low.Category)
	assert.Equal(t, []string{"KD"}, info.Low.Cards)

	// Display order is descending, joker-then-spades first among equals
	assert.Equal(t, []string{"AS", "AH", "AD", "AC"}, info.High.Cards)
}

func TestResultInfoFrom(t *testing.T) {
	s := evaluator.NewScorer()
	hand := deck.MustParseCards("AS AH AD AC KS KH KD")
	rp, err := partition.HouseWay(hand, s)
	require.NoError(t, err)

	info := ResultInfoFrom(simulator.Result{
		Partition: rp,
		Wins:      80,
		Losses:    15,
		Pushes:    5,
	})

	assert.Equal(t, 80, info.Wins)
	assert.Equal(t, 15, info.Losses)
	assert.Equal(t, 5, info.Pushes)
	assert.Equal(t, 0.8, info.WinRate)
	assert.Less(t, info.CILow, info.WinRate)
	assert.Greater(t, info.CIHigh, info.WinRate)
}
