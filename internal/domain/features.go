package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Quantity identifies one of the eight indicators in a feature vector.
type Quantity int

const (
	ZonalWind Quantity = iota
	MeridionalWind
	Dewpoint
	Temperature2m
	SeaLevelPressure
	SeaSurfaceTemperature
	SurfacePressure
	SoilTemperature

	numQuantities
)

var quantityNames = [numQuantities]string{
	ZonalWind:             "u10",
	MeridionalWind:        "v10",
	Dewpoint:              "d2m",
	Temperature2m:         "t2m",
	SeaLevelPressure:      "msl",
	SeaSurfaceTemperature: "sst",
	SurfacePressure:       "sp",
	SoilTemperature:       "stl1",
}

// quantityAliases maps alternate wire names onto quantities.
var quantityAliases = map[string]Quantity{
	"mslp": SeaLevelPressure,
}

// Quantities returns every quantity in table order.
func Quantities() []Quantity {
	qs := make([]Quantity, numQuantities)
	for i := range qs {
		qs[i] = Quantity(i)
	}
	return qs
}

func (q Quantity) String() string {
	if q < 0 || q >= numQuantities {
		return fmt.Sprintf("quantity(%d)", int(q))
	}
	return quantityNames[q]
}

// ParseQuantity resolves a wire name (case-insensitive) to a Quantity.
func ParseQuantity(name string) (Quantity, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range quantityNames {
		if n == name {
			return Quantity(i), true
		}
	}
	q, ok := quantityAliases[name]
	return q, ok
}

// Interval is a closed numeric range.
type Interval struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the interval.
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Min && v <= iv.Max
}

// RegimeBounds holds the interval observed for a quantity under each regime.
type RegimeBounds struct {
	A Interval // El Niño
	B Interval // La Niña
}

// Contains reports whether v lies within either regime interval.
func (b RegimeBounds) Contains(v float64) bool {
	return b.A.Contains(v) || b.B.Contains(v)
}

// RangeTable maps each quantity to its regime bounds.
type RangeTable [numQuantities]RegimeBounds

// featureRanges is read-only after package init; Ranges hands out copies.
var featureRanges = RangeTable{
	ZonalWind: {
		A: Interval{-11.054672, 7.7734528},
		B: Interval{-13.78511, 7.89653},
	},
	MeridionalWind: {
		A: Interval{-10.202042, 6.925995},
		B: Interval{-10.954086, 9.750015},
	},
	Dewpoint: {
		A: Interval{292.1405, 299.39697},
		B: Interval{292.3739, 298.95984},
	},
	Temperature2m: {
		A: Interval{295.79492, 302.8485},
		B: Interval{294.292, 303.109},
	},
	SeaLevelPressure: {
		A: Interval{100543.25, 101353.625},
		B: Interval{100577.06, 101450.875},
	},
	SeaSurfaceTemperature: {
		A: Interval{296.2981, 304.02832},
		B: Interval{294.98413, 304.18286},
	},
	SurfacePressure: {
		A: Interval{100542.37, 101353.875},
		B: Interval{100578.64, 101452.91},
	},
	SoilTemperature: {
		A: Interval{296.29773, 304.02856},
		B: Interval{294.9851, 304.1825},
	},
}

// Ranges returns a copy of the feature range table.
func Ranges() RangeTable {
	return featureRanges
}

// Bounds returns the regime bounds for a single quantity.
func (t RangeTable) Bounds(q Quantity) RegimeBounds {
	return t[q]
}

// FeatureVector is one synthetic (or fetched) weather snapshot, indexed by Quantity.
type FeatureVector [numQuantities]float64

// Get returns the value for q.
func (v FeatureVector) Get(q Quantity) float64 {
	return v[q]
}

// Map returns the vector keyed by wire name.
func (v FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, numQuantities)
	for i, val := range v {
		m[quantityNames[i]] = val
	}
	return m
}

// MarshalJSON encodes the vector as an object with keys in table order.
func (v FeatureVector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, val := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", quantityNames[i])
		b, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", quantityNames[i], err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by wire name. Unknown keys are ignored.
func (v *FeatureVector) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode feature vector: %w", err)
	}
	var out FeatureVector
	for name, val := range raw {
		if q, ok := ParseQuantity(name); ok {
			out[q] = val
		}
	}
	*v = out
	return nil
}

// Lines renders each quantity as "NAME: value" with two decimals, in table order.
func (v FeatureVector) Lines() []string {
	lines := make([]string, 0, numQuantities)
	for i, val := range v {
		lines = append(lines, fmt.Sprintf("%s: %.2f", strings.ToUpper(quantityNames[i]), val))
	}
	return lines
}
