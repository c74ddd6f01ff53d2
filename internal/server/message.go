package server

import (
	"encoding/json"
	"time"

	"github.com/airamana21/asia-poker-computer/internal/deck"
	"github.com/airamana21/asia-poker-computer/internal/partition"
	"github.com/airamana21/asia-poker-computer/internal/simulator"
)

// MessageType identifies a WebSocket message
type MessageType string

const (
	// Client to server messages
	MessageTypeRecommend MessageType = "recommend"
	MessageTypeHouseWay  MessageType = "house_way"
	MessageTypeCancel    MessageType = "cancel"

	// Server to client messages
	MessageTypeProgress       MessageType = "progress"
	MessageTypeRecommendation MessageType = "recommendation"
	MessageTypeHouseWayResult MessageType = "house_way_result"
	MessageTypeCanceled       MessageType = "canceled"
	MessageTypeError          MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message is the base WebSocket message envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server

type RecommendData struct {
	Cards   []string `json:"cards"`
	Samples int      `json:"samples,omitempty"`
	Seed    *int64   `json:"seed,omitempty"`
}

type HouseWayData struct {
	Cards []string `json:"cards"`
}

// Server → Client

type ProgressData struct {
	Fraction float64 `json:"fraction"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GroupInfo describes one scored group of a partition
type GroupInfo struct {
	Cards    []string `json:"cards"`
	Category string   `json:"category"`
}

// PartitionInfo is the wire form of a ranked 4-2-1 partition
type PartitionInfo struct {
	High GroupInfo `json:"high"`
	Mid  GroupInfo `json:"mid"`
	Low  GroupInfo `json:"low"`
}

// ResultInfo is the wire form of one simulated partition's tallies
type ResultInfo struct {
	Partition PartitionInfo `json:"partition"`
	Wins      int           `json:"wins"`
	Losses    int           `json:"losses"`
	Pushes    int           `json:"pushes"`
	WinRate   float64       `json:"winRate"`
	CILow     float64       `json:"ciLow"`
	CIHigh    float64       `json:"ciHigh"`
}

type RecommendationData struct {
	Best    ResultInfo   `json:"best"`
	Ranked  []ResultInfo `json:"ranked"`
	Samples int          `json:"samples"`
	Seed    int64        `json:"seed"`
}

type HouseWayResultData struct {
	Partition PartitionInfo `json:"partition"`
}

type CanceledData struct {
	Samples int `json:"samples"`
}

// PartitionInfoFrom converts a ranked partition to its wire form, groups
// in descending display order
func PartitionInfoFrom(rp partition.RankedPartition) PartitionInfo {
	return PartitionInfo{
		High: GroupInfo{Cards: cardIDs(deck.SortDesc(rp.High[:])), Category: rp.HighScore.String()},
		Mid:  GroupInfo{Cards: cardIDs(deck.SortDesc(rp.Mid[:])), Category: rp.MidScore.String()},
		Low:  GroupInfo{Cards: cardIDs([]deck.Card{rp.Low}), Category: rp.LowScore.String()},
	}
}

// ResultInfoFrom converts a simulation result to its wire form
func ResultInfoFrom(r simulator.Result) ResultInfo {
	lo, hi := r.Proportion().ConfidenceInterval95()
	return ResultInfo{
		Partition: PartitionInfoFrom(r.Partition),
		Wins:      r.Wins,
		Losses:    r.Losses,
		Pushes:    r.Pushes,
		WinRate:   r.WinRate(),
		CILow:     lo,
		CIHigh:    hi,
	}
}

func cardIDs(cards []deck.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.String()
	}
	return ids
}
