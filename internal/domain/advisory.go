package domain

// Band is a confidence range used to pick advisory text.
type Band int

const (
	BandLow      Band = iota // <= 30
	BandModerate             // 31-60
	BandStrong               // 61-80
	BandSevere               // > 80
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandModerate:
		return "moderate"
	case BandStrong:
		return "strong"
	default:
		return "severe"
	}
}

// BandFor places a confidence percentage in its band.
func BandFor(confidence int) Band {
	switch {
	case confidence <= 30:
		return BandLow
	case confidence <= 60:
		return BandModerate
	case confidence <= 80:
		return BandStrong
	default:
		return BandSevere
	}
}

const neutralAdvisory = "Conditions are stable. Maintain standard planting schedules and continue normal operations. Monitor forecasts for any developing anomalies."

var regimeAdvisories = map[Label][4]string{
	LabelElNino: {
		BandLow:      "Continue regular crop management. No significant El Niño signs yet, but begin monitoring moisture levels and temperatures.",
		BandModerate: "Prepare for drier-than-usual conditions. Consider switching to drought-resistant crops and optimize irrigation use.",
		BandStrong:   "Strong El Niño signal. Delay water-intensive crops. Mulch fields and schedule irrigation efficiently. Coordinate with local agri offices for advisories.",
		BandSevere:   "Severe El Niño expected. Implement drought contingency plans, protect seed banks, and activate crop insurance. Secure livestock water sources and shade structures.",
	},
	LabelLaNina: {
		BandLow:      "Conditions mostly normal. Keep drainage systems maintained and monitor for heavy rainfall shifts.",
		BandModerate: "Expect wetter seasons. Plant short-cycle or flood-resilient crops. Check irrigation canals and prepare for delays in harvest logistics.",
		BandStrong:   "Strong La Niña signal. Watch for field saturation, boost pest control, and delay planting of flood-sensitive crops. Coordinate with farmer groups.",
		BandSevere:   "Severe La Niña conditions likely. Harvest early if possible, reinforce bunds, and avoid lowland planting. Livestock should be relocated from flood-prone areas.",
	},
}

// Advisory returns the call-to-action text for a label and confidence.
// Unknown labels get no advisory.
func Advisory(label Label, confidence int) string {
	if label == LabelNeutral {
		return neutralAdvisory
	}
	texts, ok := regimeAdvisories[label]
	if !ok {
		return ""
	}
	return texts[BandFor(confidence)]
}

// WithAdvisory returns a copy of p carrying its advisory text.
func (p Prediction) WithAdvisory() Prediction {
	p.Advisory = Advisory(p.Label, p.Confidence)
	return p
}
