package domain

// scriptedSource replays draws in order and then repeats the last one.
type scriptedSource struct {
	draws []float64
	calls int
}

func newScripted(draws ...float64) *scriptedSource {
	return &scriptedSource{draws: draws}
}

func (s *scriptedSource) Float64() float64 {
	s.calls++
	if len(s.draws) == 0 {
		return 0.5
	}
	if len(s.draws) == 1 {
		return s.draws[0]
	}
	d := s.draws[0]
	s.draws = s.draws[1:]
	return d
}

// zeroJitter yields 0.5 forever, which cancels jitter.
func zeroJitter() *scriptedSource {
	return newScripted(0.5)
}
