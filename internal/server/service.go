package server

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/airamana21/asia-poker-computer/internal/deck"
	"github.com/airamana21/asia-poker-computer/internal/partition"
	"github.com/airamana21/asia-poker-computer/internal/randutil"
	"github.com/airamana21/asia-poker-computer/internal/simulator"
)

// AdvisorService runs the decision engine on behalf of connected clients,
// bounding each simulation by the configured timeout. The clock is
// injectable so tests can drive timeouts deterministically.
type AdvisorService struct {
	sim            *simulator.Simulator
	clock          quartz.Clock
	timeout        time.Duration
	defaultSamples int
	maxSamples     int
	logger         *log.Logger
}

// NewAdvisorService creates the service from server configuration
func NewAdvisorService(cfg *Config, logger *log.Logger, clock quartz.Clock) *AdvisorService {
	sim := simulator.New(simulator.Config{
		Workers:           cfg.Engine.Workers,
		ParallelThreshold: cfg.Engine.ParallelThreshold,
		BatchSize:         cfg.Engine.BatchSize,
		Logger:            logger.WithPrefix("simulator"),
	})
	return &AdvisorService{
		sim:            sim,
		clock:          clock,
		timeout:        time.Duration(cfg.Engine.SimTimeoutSeconds) * time.Second,
		defaultSamples: cfg.Engine.DefaultSamples,
		maxSamples:     cfg.Engine.MaxSamples,
		logger:         logger.WithPrefix("advisor"),
	}
}

// Recommend parses and validates the request, then runs the estimator.
// Returns the recommendation and the seed actually used, so unseeded runs
// can be replayed.
func (a *AdvisorService) Recommend(ctx context.Context, req RecommendData, progress func(float64)) (*simulator.Recommendation, int64, error) {
	hand, err := parseHand(req.Cards)
	if err != nil {
		return nil, 0, err
	}

	samples := req.Samples
	if samples == 0 {
		samples = a.defaultSamples
	}
	if samples > a.maxSamples {
		return nil, 0, fmt.Errorf("%w: %d exceeds maximum %d", simulator.ErrInvalidSamples, samples, a.maxSamples)
	}

	seed := randutil.ClockSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.timeout > 0 {
		timer := a.clock.AfterFunc(a.timeout, cancel)
		defer timer.Stop()
	}

	start := a.clock.Now()
	rec, err := a.sim.Recommend(runCtx, hand, samples, seed, progress)
	if err != nil {
		return nil, 0, err
	}
	a.logger.Info("simulation finished",
		"samples", rec.Samples, "seed", seed,
		"canceled", rec.Canceled, "elapsed", a.clock.Since(start))
	return rec, seed, nil
}

// HouseWay parses the hand and returns the instant house-way split
func (a *AdvisorService) HouseWay(cards []string) (partition.RankedPartition, error) {
	hand, err := parseHand(cards)
	if err != nil {
		return partition.RankedPartition{}, err
	}
	return a.sim.HouseWay(hand)
}

func parseHand(ids []string) ([]deck.Card, error) {
	hand := make([]deck.Card, 0, len(ids))
	for _, id := range ids {
		c, err := deck.ParseCard(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", simulator.ErrInvalidHand, err)
		}
		hand = append(hand, c)
	}
	return hand, nil
}
