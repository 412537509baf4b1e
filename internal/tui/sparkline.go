package tui

// sparkLevels are the eight block heights of a sparkline cell.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Series keeps the most recent samples of one metric, oldest first.
type Series struct {
	samples []float64
	limit   int
}

// NewSeries creates a series that retains at most limit samples.
func NewSeries(limit int) *Series {
	return &Series{limit: max(limit, 1)}
}

// Push appends a sample and drops the oldest one beyond the limit.
func (s *Series) Push(v float64) {
	s.samples = append(s.samples, v)
	if over := len(s.samples) - s.limit; over > 0 {
		s.samples = append(s.samples[:0], s.samples[over:]...)
	}
}

// Len returns the number of retained samples.
func (s *Series) Len() int { return len(s.samples) }

// Cap returns the retention limit.
func (s *Series) Cap() int { return s.limit }

// Last returns the newest sample, or 0 when empty.
func (s *Series) Last() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.samples[len(s.samples)-1]
}

// Peak returns the largest retained sample, or 0 when empty.
func (s *Series) Peak() float64 {
	var p float64
	for _, v := range s.samples {
		p = max(p, v)
	}
	return p
}

// Values returns a copy of the samples, oldest first.
func (s *Series) Values() []float64 {
	return append([]float64(nil), s.samples...)
}

// SetLimit changes the retention limit, keeping the newest samples.
func (s *Series) SetLimit(limit int) {
	s.limit = max(limit, 1)
	if over := len(s.samples) - s.limit; over > 0 {
		s.samples = append(s.samples[:0], s.samples[over:]...)
	}
}

// Clear drops every sample.
func (s *Series) Clear() { s.samples = s.samples[:0] }

// RenderSparkline draws values as block heights relative to ceiling.
// Values are clamped to [0, ceiling]; a non-positive ceiling draws the
// lowest level everywhere.
func RenderSparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	top := len(sparkLevels) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if ceiling > 0 {
			level = int(min(max(v, 0), ceiling) / ceiling * float64(top))
		}
		out[i] = sparkLevels[level]
	}
	return string(out)
}
