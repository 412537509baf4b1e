package orchestration

import (
	"context"
	"errors"
	"io"
	"math"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/calc"
	apperrors "github.com/agbru/uintcalc/internal/errors"
)

// recordingReporter keeps every update it receives.
type recordingReporter struct {
	mu      sync.Mutex
	updates []ProgressUpdate
	tasks   int
}

func (r *recordingReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, _ io.Writer) {
	defer wg.Done()
	r.mu.Lock()
	r.tasks = numTasks
	r.mu.Unlock()
	for u := range progressChan {
		r.mu.Lock()
		r.updates = append(r.updates, u)
		r.mu.Unlock()
	}
}

// primeAfter returns a searcher whose n-th probe is prime.
func primeAfter(n uint64) *MockCalculator {
	var calls atomic.Uint64
	return &MockCalculator{NameValue: "u256", BitsValue: 256, ProbeFunc: func(biguint.RandomSource, int) (calc.Candidate, error) {
		if calls.Add(1) == n {
			return calc.Candidate{Value: "7", Prime: true}, nil
		}
		return calc.Candidate{}, nil
	}}
}

func TestSearchPrimeFindsPrime(t *testing.T) {
	t.Parallel()
	searcher, err := calc.GlobalFactory().Get("u128")
	if err != nil {
		t.Fatal(err)
	}
	res, err := SearchPrime(context.Background(), searcher, SearchOptions{Workers: 2, Repetitions: 10}, NullProgressReporter{}, io.Discard)
	if err != nil {
		t.Fatalf("SearchPrime: %v", err)
	}
	p, ok := new(big.Int).SetString(res.Value, 10)
	if !ok {
		t.Fatalf("Value %q is not decimal", res.Value)
	}
	if p.BitLen() != 128 || !p.ProbablyPrime(20) {
		t.Errorf("%s is not a 128-bit prime", res.Value)
	}
	if res.Width != "u128" || res.Bits != 128 || res.Workers != 2 || res.Candidates == 0 {
		t.Errorf("unexpected statistics: %+v", res)
	}
}

func TestSearchPrimeCountsCandidatesAndReportsProgress(t *testing.T) {
	t.Parallel()
	reporter := &recordingReporter{}
	res, err := SearchPrime(context.Background(), primeAfter(40), SearchOptions{Workers: 1}, reporter, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != "7" || res.Candidates != 40 {
		t.Errorf("got %+v, want value 7 after 40 candidates", res)
	}
	if reporter.tasks != 1 {
		t.Errorf("reporter tracked %d tasks, want 1", reporter.tasks)
	}
	if len(reporter.updates) == 0 {
		t.Fatal("no progress updates")
	}
	prev := 0.0
	for _, u := range reporter.updates {
		if u.TaskIndex != 0 || u.Value < prev || u.Value > 1 {
			t.Errorf("bad update sequence: %+v after %f", u, prev)
		}
		prev = u.Value
	}
	if last := reporter.updates[len(reporter.updates)-1]; last.Value != 1 || !last.Final {
		t.Errorf("last update = %+v, want a final completion", last)
	}
	for _, u := range reporter.updates[:len(reporter.updates)-1] {
		if u.Final {
			t.Errorf("intermediate update %+v is marked final", u)
		}
	}
}

func TestSearchPrimeTimeout(t *testing.T) {
	t.Parallel()
	never := &MockCalculator{ProbeFunc: func(biguint.RandomSource, int) (calc.Candidate, error) {
		time.Sleep(time.Millisecond)
		return calc.Candidate{}, nil
	}}
	_, err := SearchPrime(context.Background(), never, SearchOptions{Workers: 2, Timeout: 30 * time.Millisecond}, NullProgressReporter{}, io.Discard)
	var timeoutErr apperrors.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("err = %v, want TimeoutError", err)
	}
	if timeoutErr.Limit != 30*time.Millisecond {
		t.Errorf("Limit = %v", timeoutErr.Limit)
	}
}

func TestSearchPrimeSourceFailure(t *testing.T) {
	t.Parallel()
	broken := &MockCalculator{ProbeFunc: func(biguint.RandomSource, int) (calc.Candidate, error) {
		return calc.Candidate{}, io.ErrUnexpectedEOF
	}}
	_, err := SearchPrime(context.Background(), broken, SearchOptions{Workers: 3}, NullProgressReporter{}, io.Discard)
	var calcErr apperrors.CalculationError
	if !errors.As(err, &calcErr) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want CalculationError wrapping io.ErrUnexpectedEOF", err)
	}
}

func TestSearchOptionsDefaults(t *testing.T) {
	t.Parallel()
	o := SearchOptions{}.withDefaults()
	if o.Workers < 1 || o.Repetitions != calc.DefaultRepetitions || o.Source == nil || o.Logger == nil {
		t.Errorf("defaults not applied: %+v", o)
	}
	kept := SearchOptions{Workers: 3, Repetitions: 7, Source: biguint.FastSource}.withDefaults()
	if kept.Workers != 3 || kept.Repetitions != 7 || kept.Source != biguint.FastSource {
		t.Errorf("explicit options overwritten: %+v", kept)
	}
}

func TestExpectedCandidates(t *testing.T) {
	t.Parallel()
	if got, want := ExpectedCandidates(256), 256*math.Ln2/2; math.Abs(got-want) > 1e-9 {
		t.Errorf("ExpectedCandidates(256) = %f, want %f", got, want)
	}
	if got := ExpectedCandidates(0); got != 1 {
		t.Errorf("ExpectedCandidates(0) = %f, want 1", got)
	}
}
