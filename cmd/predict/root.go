package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/enso-predictor-service/internal/adapter/remote"
	"github.com/couchcryptid/enso-predictor-service/internal/domain"
	"github.com/couchcryptid/enso-predictor-service/internal/observability"
	"github.com/couchcryptid/enso-predictor-service/internal/predictor"
	"github.com/couchcryptid/enso-predictor-service/internal/session"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	labelColor = map[domain.Label]*color.Color{
		domain.LabelElNino:  color.New(color.FgRed, color.Bold),
		domain.LabelLaNina:  color.New(color.FgBlue, color.Bold),
		domain.LabelNeutral: color.New(color.FgGreen, color.Bold),
	}
	headingColor = color.New(color.FgCyan, color.Bold)
	errorColor   = color.New(color.FgRed)
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ENSO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "enso-predict",
		Short:         "Predict the ENSO phase for a coordinate",
		Long:          "Predict whether El Niño, La Niña, or neutral conditions are expected at a latitude/longitude, with a farming advisory for the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if v.GetBool("no-color") {
				color.NoColor = true
			}
			opts := runOptions{
				lat:     v.GetString("lat"),
				lon:     v.GetString("lon"),
				remote:  v.GetString("remote"),
				timeout: v.GetDuration("timeout"),
				seed:    v.GetUint64("seed"),
				json:    v.GetBool("json"),
			}
			err := run(cmd.Context(), cmd.OutOrStdout(), opts)
			if err != nil {
				errorColor.Fprintln(cmd.ErrOrStderr(), "Error:", err) //nolint:errcheck // terminal output
			}
			return err
		},
	}

	f := cmd.Flags()
	f.String("lat", "", "latitude in degrees, -90 to 90")
	f.String("lon", "", "longitude in degrees, -180 to 180")
	f.String("remote", "", "base URL of a remote prediction backend (default: local mock)")
	f.Duration("timeout", 5*time.Second, "remote request timeout")
	f.Uint64("seed", 0, "seed for the mock predictor (0 picks one at random)")
	f.Bool("json", false, "print the prediction as JSON")
	f.Bool("no-color", false, "disable colored output")

	for _, name := range []string{"lat", "lon", "remote", "timeout", "seed", "json", "no-color"} {
		_ = v.BindPFlag(name, f.Lookup(name))
	}
	return cmd
}

type runOptions struct {
	lat, lon string
	remote   string
	timeout  time.Duration
	seed     uint64
	json     bool
}

func run(ctx context.Context, out io.Writer, opts runOptions) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// Unregistered: a one-shot CLI run has no /metrics endpoint.
	metrics := observability.NewMetricsForTesting()

	var p domain.Predictor
	if opts.remote != "" {
		p = remote.NewClient(opts.remote, opts.timeout, metrics, logger)
	} else {
		p = predictor.NewLocalPredictor(domain.NewRandSource(opts.seed), logger)
	}

	s := session.New(predictor.New(p, logger, metrics))
	prediction, err := s.Submit(ctx, opts.lat, opts.lon)
	if err != nil {
		return describeError(err)
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(prediction)
	}
	return render(out, prediction)
}

// describeError turns the error taxonomy into the message a user sees.
func describeError(err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return errors.New(ve.Message)
	}
	switch domain.ErrorKind(err) {
	case "connectivity":
		return fmt.Errorf("could not reach the prediction service: %w", err)
	case "server":
		return err
	default:
		return fmt.Errorf("error generating prediction: %w", err)
	}
}

func render(out io.Writer, p domain.Prediction) error {
	c, ok := labelColor[p.Label]
	if !ok {
		c = color.New(color.Bold)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Prediction: %s (%d%% confidence)\n", c.Sprint(p.Label), p.Confidence)
	b.WriteString(headingColor.Sprint("Weather data") + "\n")
	for _, line := range p.Features.Lines() {
		b.WriteString("  " + line + "\n")
	}
	if p.Advisory != "" {
		b.WriteString(headingColor.Sprint("Advisory") + "\n")
		b.WriteString("  " + p.Advisory + "\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}
