// Command genmock generates a reproducible JSON fixture of mock predictions
// for front-end development and contract tests. It runs the same service
// path as the HTTP API, so fixtures carry advisory text and source tags
// exactly as /predict would return them.
//
// Usage:
//
//	go run ./cmd/genmock -seed 42 -n 200 -out data/mock/predictions.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"github.com/couchcryptid/enso-predictor-service/internal/observability"
	"github.com/couchcryptid/enso-predictor-service/internal/predictor"
	"github.com/jonboulle/clockwork"
)

var fixtureTime = time.Date(2024, time.December, 1, 6, 0, 0, 0, time.UTC)

// fixture is the on-disk format shared with cmd/validate.
type fixture struct {
	Seed        uint64         `json:"seed"`
	GeneratedAt time.Time      `json:"generated_at"`
	Predictions []fixtureEntry `json:"predictions"`
}

type fixtureEntry struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	domain.Prediction
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	seed := flag.Uint64("seed", 42, "random seed (must be non-zero for reproducible output)")
	n := flag.Int("n", 200, "number of predictions to generate")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *out == "" || *n <= 0 || *seed == 0 {
		flag.Usage()
		return fmt.Errorf("missing or invalid flags: -out, -n > 0, -seed != 0")
	}

	f, err := generate(*seed, *n)
	if err != nil {
		return err
	}
	if err := writeJSON(*out, f); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s (%d predictions)", *out, len(f.Predictions))

	printStats(f.Predictions)
	return nil
}

// generate produces n predictions over a deterministic coordinate sweep.
func generate(seed uint64, n int) (fixture, error) {
	// Fixed clock for reproducible PredictedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := predictor.New(
		predictor.NewLocalPredictor(domain.NewRandSource(seed), logger),
		logger,
		observability.NewMetricsForTesting(),
	)

	f := fixture{Seed: seed, GeneratedAt: fixtureTime, Predictions: make([]fixtureEntry, 0, n)}
	for i := range n {
		lat, lon := sweep(i)
		p, err := svc.Predict(context.Background(), lat, lon)
		if err != nil {
			return fixture{}, fmt.Errorf("prediction %d at (%s, %s): %w", i, lat, lon, err)
		}
		f.Predictions = append(f.Predictions, fixtureEntry{Latitude: lat, Longitude: lon, Prediction: p})
	}
	return f, nil
}

// sweep walks the tropical Pacific band in 2.5 degree steps.
func sweep(i int) (lat, lon string) {
	la := -20 + float64(i%17)*2.5
	lo := -180 + float64((i/17)%144)*2.5
	return fmt.Sprintf("%.1f", la), fmt.Sprintf("%.1f", lo)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// statsResult holds aggregated counts for printStats reporting.
type statsResult struct {
	labelCounts map[domain.Label]int
	bandCounts  map[string]int
	minConf     int
	maxConf     int
	sumConf     int
}

func collectStats(preds []fixtureEntry) statsResult {
	s := statsResult{
		labelCounts: map[domain.Label]int{},
		bandCounts:  map[string]int{},
		minConf:     100,
	}
	for i := range preds {
		p := &preds[i]
		s.labelCounts[p.Label]++
		s.bandCounts[domain.BandFor(p.Confidence).String()]++
		s.minConf = min(s.minConf, p.Confidence)
		s.maxConf = max(s.maxConf, p.Confidence)
		s.sumConf += p.Confidence
	}
	return s
}

func printStats(preds []fixtureEntry) {
	if len(preds) == 0 {
		return
	}
	stats := collectStats(preds)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(preds))
	fmt.Printf("By label: el_nino=%d, la_nina=%d, neutral=%d\n",
		stats.labelCounts[domain.LabelElNino],
		stats.labelCounts[domain.LabelLaNina],
		stats.labelCounts[domain.LabelNeutral])

	bands := make([]string, 0, len(stats.bandCounts))
	for b := range stats.bandCounts {
		bands = append(bands, b)
	}
	sort.Strings(bands)
	fmt.Print("By band:")
	for _, b := range bands {
		fmt.Printf(" %s=%d", b, stats.bandCounts[b])
	}
	fmt.Println()

	fmt.Printf("Confidence: min=%d max=%d mean=%.1f\n",
		stats.minConf, stats.maxConf, float64(stats.sumConf)/float64(len(preds)))

	first := preds[0]
	fmt.Printf("\nFirst prediction:\n")
	fmt.Printf("  At: (%s, %s)\n", first.Latitude, first.Longitude)
	fmt.Printf("  Label: %s, Confidence: %d\n", first.Label, first.Confidence)
	for _, line := range first.Features.Lines() {
		fmt.Printf("  %s\n", line)
	}
}
