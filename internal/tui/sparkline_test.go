package tui

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestSeries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		limit  int
		push   []float64
		want   []float64
		last   float64
		peak   float64
		wantCp int
	}{
		{"empty", 3, nil, nil, 0, 0, 3},
		{"below limit", 3, []float64{1, 2}, []float64{1, 2}, 2, 2, 3},
		{"drops oldest", 3, []float64{5, 1, 2, 3}, []float64{1, 2, 3}, 3, 3, 3},
		{"peak is not last", 4, []float64{7, 9, 2}, []float64{7, 9, 2}, 2, 9, 4},
		{"zero limit keeps one", 0, []float64{4, 8}, []float64{8}, 8, 8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewSeries(tt.limit)
			for _, v := range tt.push {
				s.Push(v)
			}
			if got := s.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
			if s.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(tt.want))
			}
			if s.Last() != tt.last || s.Peak() != tt.peak {
				t.Errorf("Last/Peak = %v/%v, want %v/%v", s.Last(), s.Peak(), tt.last, tt.peak)
			}
			if s.Cap() != tt.wantCp {
				t.Errorf("Cap() = %d, want %d", s.Cap(), tt.wantCp)
			}
		})
	}
}

func TestSeries_ValuesIsACopy(t *testing.T) {
	t.Parallel()
	s := NewSeries(2)
	s.Push(1)
	v := s.Values()
	v[0] = 99
	if s.Last() != 1 {
		t.Error("mutating Values() changed the series")
	}
}

func TestSeries_SetLimit(t *testing.T) {
	t.Parallel()
	s := NewSeries(5)
	for i := range 5 {
		s.Push(float64(i))
	}

	s.SetLimit(2)
	if got := s.Values(); !reflect.DeepEqual(got, []float64{3, 4}) {
		t.Errorf("after shrinking: %v", got)
	}

	s.SetLimit(4)
	s.Push(5)
	s.Push(6)
	if got := s.Values(); !reflect.DeepEqual(got, []float64{3, 4, 5, 6}) {
		t.Errorf("after growing: %v", got)
	}

	s.Clear()
	if s.Len() != 0 || s.Last() != 0 {
		t.Error("Clear left samples behind")
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  []float64
		ceiling float64
		want    string
	}{
		{"empty", nil, 100, ""},
		{"percent range", []float64{0, 50, 100}, 100, "▁▄█"},
		{"clamped", []float64{-10, 250}, 100, "▁█"},
		{"relative to peak", []float64{10, 20, 40}, 40, "▂▄█"},
		{"zero ceiling", []float64{0, 0}, 0, "▁▁"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderSparkline(tt.values, tt.ceiling); got != tt.want {
				t.Errorf("RenderSparkline(%v, %v) = %q, want %q", tt.values, tt.ceiling, got, tt.want)
			}
		})
	}
}

func TestMetricsModel_RecordEvaluation(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.SetSize(56, 12)
	m.RecordEvaluation(1500 * time.Microsecond)
	m.RecordEvaluation(500 * time.Microsecond)

	if got := m.latency.Values(); !reflect.DeepEqual(got, []float64{1500, 500}) {
		t.Errorf("latency samples = %v", got)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "EVAL 500µs") {
		t.Errorf("view does not show the last latency:\n%s", view)
	}
}
