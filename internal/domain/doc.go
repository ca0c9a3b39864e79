// Package domain models the El Niño Southern Oscillation (ENSO) indicators used
// by the predictor and the rule-based classifier that scores them.
//
// # Indicators
//
// Eight near-surface quantities make up a feature vector. Names follow the
// ERA5 short names so vectors from a remote backend decode without renaming:
//
//	u10   10 m zonal wind (m/s)
//	v10   10 m meridional wind (m/s)
//	d2m   2 m dewpoint temperature (K)
//	t2m   2 m air temperature (K)
//	msl   mean sea-level pressure (Pa), "mslp" accepted on decode
//	sst   sea-surface temperature (K)
//	sp    surface pressure (Pa)
//	stl1  soil/skin temperature, level 1 (K)
//
// # Regimes
//
// Each quantity has one observed interval per regime: regime A (El Niño) and
// regime B (La Niña). Synthesis picks a [Regime] first:
//
//	r < 0.6         MixedPerQuantity  each quantity flips a coin between A and B
//	0.6 <= r < 0.8  RegimeA
//	r >= 0.8        RegimeB
//
// # Scoring
//
// The classifier accumulates two scores from fixed thresholds:
//
//	sst  > 300 K  A += 2     | sst  < 298 K  B += 2
//	t2m  > 299 K  A += 1.5   | t2m  < 297 K  B += 1.5
//	msl  < 101000 A += 1     | msl  > 101200 B += 1
//	|u10| < 5     A += 0.5   | |v10| > 7     B += 0.5
//
// Each score then gets uniform jitter in [-1, 1). A lead of more than one point
// selects that regime with confidence min(95, 60 + 10*lead); anything closer is
// Neutral/Normal with confidence min(90, 50 + 30*r).
//
// # Randomness
//
// All draws go through a [RandSource] so callers can pin the sequence. A
// source returning 0.5 yields zero jitter.
package domain
