package orchestration

import (
	"testing"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		numTasks  int
		wantNil   bool
		wantMulti bool
	}{
		{"one width", 1, false, false},
		{"three widths", 3, false, true},
		{"workers", 8, false, true},
		{"no tasks", 0, true, false},
		{"negative", -1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			agg := NewProgressAggregator(tt.numTasks)
			if (agg == nil) != tt.wantNil {
				t.Fatalf("NewProgressAggregator(%d) = %v", tt.numTasks, agg)
			}
			if agg == nil {
				return
			}
			if agg.NumTasks() != tt.numTasks || agg.IsMultiTask() != tt.wantMulti {
				t.Errorf("NumTasks=%d IsMultiTask=%v", agg.NumTasks(), agg.IsMultiTask())
			}
			if agg.Done() || agg.CalculateAverage() != 0 || agg.GetETA() != 0 {
				t.Error("a fresh aggregator should be idle")
			}
		})
	}
}

// A cross-width evaluation is complete only when every width reports.
func TestProgressAggregator_CrossWidth(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)

	ap := agg.Update(ProgressUpdate{TaskIndex: 0, Value: 1})
	if ap.TaskIndex != 0 || ap.Value != 1 || ap.AverageProgress != 0.5 {
		t.Errorf("after u128: %+v", ap)
	}
	if agg.Done() {
		t.Error("one width finishing must not complete the run")
	}

	ap = agg.Update(ProgressUpdate{TaskIndex: 1, Value: 1})
	if ap.AverageProgress != 1 || agg.CalculateAverage() != 1 {
		t.Errorf("after u256: %+v", ap)
	}
}

// A prime search is complete as soon as one worker finds a prime.
func TestProgressAggregator_PrimeFound(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(4)

	agg.Update(ProgressUpdate{TaskIndex: 0, Value: 0.2})
	agg.Update(ProgressUpdate{TaskIndex: 1, Value: 0.4})
	if avg := agg.CalculateAverage(); avg < 0.149 || avg > 0.151 {
		t.Errorf("average before the find = %f, want 0.15", avg)
	}

	ap := agg.Update(ProgressUpdate{TaskIndex: 2, Value: 1, Final: true})
	if ap.AverageProgress != 1 || ap.ETA != 0 || !agg.Done() {
		t.Errorf("final update: %+v done=%v", ap, agg.Done())
	}

	// A worker still unwinding reports afterwards.
	ap = agg.Update(ProgressUpdate{TaskIndex: 3, Value: 0.1})
	if ap.AverageProgress != 1 || ap.Value != 0.1 {
		t.Errorf("late update: %+v", ap)
	}
	if agg.CalculateAverage() != 1 || agg.GetETA() != 0 {
		t.Error("the run should stay complete")
	}
}

func TestProgressAggregator_IgnoresUnknownTask(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)
	ap := agg.Update(ProgressUpdate{TaskIndex: 5, Value: 1})
	if ap.AverageProgress != 0 || agg.Done() {
		t.Errorf("unknown task moved the figures: %+v", ap)
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		updates []ProgressUpdate
	}{
		{"empty", nil},
		{"search", []ProgressUpdate{{TaskIndex: 0, Value: 0.1}, {TaskIndex: 1, Value: 0.2}, {TaskIndex: 0, Value: 1, Final: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ch := make(chan ProgressUpdate, len(tt.updates))
			for _, u := range tt.updates {
				ch <- u
			}
			close(ch)
			DrainChannel(ch)
			if len(ch) != 0 {
				t.Errorf("%d updates left in the channel", len(ch))
			}
		})
	}
}
