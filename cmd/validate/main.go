// Command validate checks a prediction fixture produced by cmd/genmock. It
// verifies that every feature lies inside its regime ranges, that labels and
// confidences are consistent with the classifier, that advisory text matches
// the confidence band, and that the fixture regenerates byte-for-byte from
// its seed.
//
// Usage:
//
//	go run ./cmd/validate -fixture data/mock/predictions.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"github.com/couchcryptid/enso-predictor-service/internal/observability"
	"github.com/couchcryptid/enso-predictor-service/internal/predictor"
	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
)

// Jitter moves each regime score by less than 1, so the score gap moves by
// less than 2.
const maxJitterShift = 2.0

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

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("fixture", "", "path to the prediction fixture JSON")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *path); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, path string) int {
	fmt.Fprintln(out, "=== ENSO Fixture Validation ===")

	f, err := loadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateFeatureRanges(f.Predictions),
		validateClassification(f.Predictions),
		validateAdvisories(f.Predictions),
		validateReproducibility(f),
	}

	return report(out, phases, len(f.Predictions))
}

func report(out io.Writer, phases []*phase, total int) int {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := pass("PASS")
		if !p.passed() {
			status = fail(fmt.Sprintf("FAIL (%d errors)", len(p.errors)))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-32s %s\n", p.name, status)
	}

	fmt.Fprintf(out, "\nPredictions: %d\n", total)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func loadFixture(path string) (fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture{}, err
	}
	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return fixture{}, err
	}
	if len(f.Predictions) == 0 {
		return fixture{}, fmt.Errorf("no predictions in %s", path)
	}
	return f, nil
}

// ── Phases ──

func validateFeatureRanges(preds []fixtureEntry) *phase {
	p := &phase{name: "Feature ranges"}
	ranges := domain.Ranges()
	for i := range preds {
		for _, q := range domain.Quantities() {
			v := preds[i].Features.Get(q)
			b := ranges.Bounds(q)
			if !b.Contains(v) {
				p.errorf("prediction %d: %s=%g outside [%g,%g] ∪ [%g,%g]",
					i, q, v, b.A.Min, b.A.Max, b.B.Min, b.B.Max)
			}
		}
	}
	return p
}

func validateClassification(preds []fixtureEntry) *phase {
	p := &phase{name: "Classification consistency"}
	for i := range preds {
		checkClassification(p, i, &preds[i].Prediction)
	}
	return p
}

func checkClassification(p *phase, i int, pred *domain.Prediction) {
	if _, ok := domain.ParseLabel(string(pred.Label)); !ok {
		p.errorf("prediction %d: unknown label %q", i, pred.Label)
		return
	}

	switch pred.Label {
	case domain.LabelNeutral:
		if pred.Confidence < 50 || pred.Confidence > 80 {
			p.errorf("prediction %d: neutral confidence %d outside [50,80]", i, pred.Confidence)
		}
	default:
		if pred.Confidence < 70 || pred.Confidence > 95 {
			p.errorf("prediction %d: %s confidence %d outside [70,95]", i, pred.Label.Slug(), pred.Confidence)
		}
	}

	// Without jitter the gap is fixed; with it the gap can only move by maxJitterShift.
	s := domain.IndicatorScores(pred.Features)
	gap := s.ElNino - s.LaNina
	switch {
	case gap > 1+maxJitterShift && pred.Label != domain.LabelElNino:
		p.errorf("prediction %d: indicator gap %.1f forces El Niño, got %s", i, gap, pred.Label)
	case gap < -1-maxJitterShift && pred.Label != domain.LabelLaNina:
		p.errorf("prediction %d: indicator gap %.1f forces La Niña, got %s", i, gap, pred.Label)
	case pred.Label == domain.LabelElNino && gap <= 1-maxJitterShift:
		p.errorf("prediction %d: El Niño impossible with indicator gap %.1f", i, gap)
	case pred.Label == domain.LabelLaNina && gap >= maxJitterShift-1:
		p.errorf("prediction %d: La Niña impossible with indicator gap %.1f", i, gap)
	}
}

func validateAdvisories(preds []fixtureEntry) *phase {
	p := &phase{name: "Advisory alignment"}
	for i := range preds {
		pred := &preds[i]
		if want := domain.Advisory(pred.Label, pred.Confidence); pred.Advisory != want {
			p.errorf("prediction %d: %s at %d%% (%s band) has advisory %q, want %q",
				i, pred.Label.Slug(), pred.Confidence, domain.BandFor(pred.Confidence), pred.Advisory, want)
		}
	}
	return p
}

func validateReproducibility(f fixture) *phase {
	p := &phase{name: "Seed reproducibility"}
	if f.Seed == 0 {
		p.errorf("fixture has no seed")
		return p
	}

	domain.SetClock(clockwork.NewFakeClockAt(f.GeneratedAt))
	defer domain.SetClock(nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := predictor.New(
		predictor.NewLocalPredictor(domain.NewRandSource(f.Seed), logger),
		logger,
		observability.NewMetricsForTesting(),
	)

	for i := range f.Predictions {
		e := &f.Predictions[i]
		got, err := svc.Predict(context.Background(), e.Latitude, e.Longitude)
		if err != nil {
			p.errorf("prediction %d: regenerate: %v", i, err)
			return p
		}
		if got.Label != e.Label || got.Confidence != e.Confidence || got.Features != e.Features {
			p.errorf("prediction %d: regenerated %s/%d differs from fixture %s/%d",
				i, got.Label, got.Confidence, e.Label, e.Confidence)
			// Once the draw sequence diverges every later entry differs too.
			return p
		}
	}
	return p
}
