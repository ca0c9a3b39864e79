package domain

import "context"

// Predictor produces a prediction for a validated point.
type Predictor interface {
	Predict(ctx context.Context, at Coordinates) (Prediction, error)
}
