package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/airamana21/asia-poker-computer/internal/deck"
	"github.com/airamana21/asia-poker-computer/internal/partition"
	"github.com/airamana21/asia-poker-computer/internal/randutil"
	"github.com/airamana21/asia-poker-computer/internal/simulator"
)

type CLI struct {
	Cards    []string `arg:"" help:"Seven cards in format '9H 10D AS ... XJ' (XJ is the joker)" required:"true"`
	Samples  int      `short:"n" help:"Number of Monte Carlo samples per candidate split" default:"100000"`
	Seed     *int64   `help:"Random seed for reproducible results"`
	Workers  int      `short:"w" help:"Worker goroutines (0 = number of CPUs, capped)" default:"0"`
	Top      int      `short:"t" help:"Number of ranked splits to display" default:"5"`
	HouseWay bool     `help:"Print the house-way split and exit without simulating"`
	NoBatch  bool     `help:"Disable batched scoring (slower, for troubleshooting)"`
	Verbose  bool     `short:"v" help:"Enable debug logging"`
}

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	redCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	pushStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	bestStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	logger := log.New(os.Stderr)
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	hand, err := parseHand(cli.Cards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hand: %v\n", err)
		kctx.Exit(1)
	}

	sim := simulator.New(simulator.Config{
		Workers:      cli.Workers,
		DisableBatch: cli.NoBatch,
		Logger:       logger,
	})

	if cli.HouseWay {
		rp, err := sim.HouseWay(hand)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			kctx.Exit(1)
		}
		displayHouseWay(rp)
		return
	}

	seed := randutil.ClockSeed()
	if cli.Seed != nil {
		seed = *cli.Seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	showBar := isTerminal(os.Stderr)
	onProgress := func(fraction float64) {
		if showBar {
			fmt.Fprintf(os.Stderr, "\r%s %3.0f%%", bar.ViewAs(fraction), fraction*100)
		}
	}

	startTime := time.Now()
	rec, err := sim.Recommend(ctx, hand, cli.Samples, seed, onProgress)
	duration := time.Since(startTime)
	if showBar {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", bar.Width+6))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		kctx.Exit(1)
	}

	displayRecommendation(rec, cli.Top, seed, duration)
	if rec.Canceled {
		kctx.Exit(130)
	}
}

func parseHand(args []string) ([]deck.Card, error) {
	// Accept both "9H 10D ..." as separate args and a single quoted string
	var tokens []string
	for _, arg := range args {
		tokens = append(tokens, strings.Fields(arg)...)
	}
	return deck.ParseCards(strings.Join(tokens, " "))
}

func displayHouseWay(rp partition.RankedPartition) {
	fmt.Printf("%s\n", headerStyle.Render("house way"))
	printPartition(os.Stdout, rp)
}

func displayRecommendation(rec *simulator.Recommendation, top int, seed int64, duration time.Duration) {
	fmt.Printf("%s\n", headerStyle.Render("recommended split"))
	printPartition(os.Stdout, rec.Best.Partition)
	fmt.Printf("\n")

	if top > len(rec.Ranked) {
		top = len(rec.Ranked)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("split"),
		winStyle.Render("win"),
		lossStyle.Render("loss"),
		pushStyle.Render("push"),
		headerStyle.Render("95% ci"))

	for i := 0; i < top; i++ {
		r := rec.Ranked[i]
		splitStr := formatPartition(r.Partition)
		if i == 0 {
			splitStr = bestStyle.Render(splitStr)
		} else {
			splitStr = handStyle.Render(splitStr)
		}
		lo, hi := r.Proportion().ConfidenceInterval95()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			splitStr,
			winStyle.Render(fmt.Sprintf("%.1f%%", r.WinRate()*100)),
			lossStyle.Render(fmt.Sprintf("%.1f%%", pct(r.Losses, r.Samples()))),
			pushStyle.Render(fmt.Sprintf("%.1f%%", pct(r.Pushes, r.Samples()))),
			fmt.Sprintf("%.1f-%.1f%%", lo*100, hi*100))
	}
	w.Flush()

	fmt.Printf("\n")
	status := ""
	if rec.Canceled {
		status = " (interrupted)"
	}
	rate := float64(rec.Samples) / duration.Seconds()
	fmt.Printf("%d samples per split in %v (%.0f/s, seed %d)%s\n",
		rec.Samples, duration.Truncate(time.Millisecond), rate, seed, status)
}

func printPartition(out *os.File, rp partition.RankedPartition) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "high\t%s\t%s\n",
		formatLabels(deck.SortDesc(rp.High[:])),
		categoryStyle.Render(rp.HighScore.String()))
	fmt.Fprintf(w, "mid\t%s\t%s\n",
		formatLabels(deck.SortDesc(rp.Mid[:])),
		categoryStyle.Render(rp.MidScore.String()))
	fmt.Fprintf(w, "low\t%s\t%s\n",
		formatLabels([]deck.Card{rp.Low}),
		categoryStyle.Render(rp.LowScore.String()))
	w.Flush()
}

// formatLabels renders suit-symbol card labels, red suits in red
func formatLabels(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		style := blackCardStyle
		if !card.IsJoker() && card.Suit.IsRed() {
			style = redCardStyle
		}
		parts[i] = style.Render(card.Label())
	}
	return strings.Join(parts, " ")
}

func formatPartition(rp partition.RankedPartition) string {
	return fmt.Sprintf("%s | %s | %s",
		formatCards(deck.SortDesc(rp.High[:])),
		formatCards(deck.SortDesc(rp.Mid[:])),
		rp.Low.String())
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
