package domain

import (
	"math"
	"time"
)

// Label is the classifier verdict as shown to users.
type Label string

const (
	LabelElNino  Label = "El Niño"
	LabelLaNina  Label = "La Niña"
	LabelNeutral Label = "Neutral/Normal"
)

// ParseLabel maps a display string back to a Label.
func ParseLabel(s string) (Label, bool) {
	switch Label(s) {
	case LabelElNino, LabelLaNina, LabelNeutral:
		return Label(s), true
	}
	return "", false
}

// Slug returns a metric/log friendly form of the label.
func (l Label) Slug() string {
	switch l {
	case LabelElNino:
		return "el_nino"
	case LabelLaNina:
		return "la_nina"
	case LabelNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Source records where a prediction came from.
type Source string

const (
	SourceMock   Source = "mock"
	SourceRemote Source = "remote"
)

// Scores holds the post-jitter regime scores.
type Scores struct {
	ElNino float64 `json:"el_nino"`
	LaNina float64 `json:"la_nina"`
}

// Prediction is the immutable outcome of one request.
type Prediction struct {
	Label       Label         `json:"prediction"`
	Confidence  int           `json:"confidence"`
	Features    FeatureVector `json:"weather_data"`
	Advisory    string        `json:"advisory,omitempty"`
	Source      Source        `json:"source,omitempty"`
	PredictedAt time.Time     `json:"predicted_at"`
}

// Score thresholds.
const (
	sstWarm     = 300.0
	sstCool     = 298.0
	t2mWarm     = 299.0
	t2mCool     = 297.0
	mslLow      = 101000.0
	mslHigh     = 101200.0
	u10Calm     = 5.0
	v10Strong   = 7.0
	leadMargin  = 1.0
	maxRegime   = 95.0
	maxNeutral  = 90.0
	baseRegime  = 60.0
	baseNeutral = 50.0
)

// Classifier scores feature vectors against fixed thresholds plus jitter.
type Classifier struct {
	rng RandSource
}

// NewClassifier creates a Classifier drawing jitter from rng.
func NewClassifier(rng RandSource) *Classifier {
	return &Classifier{rng: rng}
}

// IndicatorScores returns the threshold scores before jitter.
func IndicatorScores(v FeatureVector) Scores {
	var s Scores

	if v[SeaSurfaceTemperature] > sstWarm {
		s.ElNino += 2
	}
	if v[SeaSurfaceTemperature] < sstCool {
		s.LaNina += 2
	}

	if v[Temperature2m] > t2mWarm {
		s.ElNino += 1.5
	}
	if v[Temperature2m] < t2mCool {
		s.LaNina += 1.5
	}

	if v[SeaLevelPressure] < mslLow {
		s.ElNino++
	}
	if v[SeaLevelPressure] > mslHigh {
		s.LaNina++
	}

	if math.Abs(v[ZonalWind]) < u10Calm {
		s.ElNino += 0.5
	}
	if math.Abs(v[MeridionalWind]) > v10Strong {
		s.LaNina += 0.5
	}

	return s
}

// Score applies jitter to the indicator scores. Two draws are consumed.
func (c *Classifier) Score(v FeatureVector) Scores {
	s := IndicatorScores(v)
	s.ElNino += c.jitter()
	s.LaNina += c.jitter()
	return s
}

// Classify scores v and turns the scores into a labelled prediction.
func (c *Classifier) Classify(v FeatureVector) Prediction {
	label, confidence := c.Decide(c.Score(v))
	return Prediction{
		Label:       label,
		Confidence:  confidence,
		Features:    v,
		PredictedAt: now(),
	}
}

// Decide maps post-jitter scores to a label and rounded confidence. A neutral
// outcome consumes one draw.
func (c *Classifier) Decide(s Scores) (Label, int) {
	switch {
	case s.ElNino > s.LaNina+leadMargin:
		return LabelElNino, roundConfidence(math.Min(maxRegime, baseRegime+(s.ElNino-s.LaNina)*10))
	case s.LaNina > s.ElNino+leadMargin:
		return LabelLaNina, roundConfidence(math.Min(maxRegime, baseRegime+(s.LaNina-s.ElNino)*10))
	default:
		return LabelNeutral, roundConfidence(math.Min(maxNeutral, baseNeutral+c.rng.Float64()*30))
	}
}

func (c *Classifier) jitter() float64 {
	return (c.rng.Float64() - 0.5) * 2
}

// roundConfidence rounds half up and clamps to [0, 100].
func roundConfidence(v float64) int {
	r := int(math.Floor(v + 0.5))
	return max(0, min(100, r))
}
