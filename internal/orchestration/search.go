package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/calc"
	apperrors "github.com/agbru/uintcalc/internal/errors"
	"github.com/agbru/uintcalc/internal/logging"
)

var tracer = otel.Tracer("github.com/agbru/uintcalc/internal/orchestration")

// errPrimeFound stops the other workers once one of them succeeds.
var errPrimeFound = errors.New("prime found")

// progressStride is the number of candidates a worker tests between two
// progress updates.
const progressStride = 8

// PrimeSearcher draws and tests prime candidates at one width.
// calc.Calculator satisfies it.
type PrimeSearcher interface {
	Name() string
	Bits() int
	Probe(src biguint.RandomSource, repetitions int) (calc.Candidate, error)
}

// SearchOptions configures SearchPrime.
type SearchOptions struct {
	// Workers is the number of goroutines; zero means one per CPU.
	Workers int
	// Repetitions is the number of random Miller-Rabin witnesses; zero means
	// calc.DefaultRepetitions.
	Repetitions int
	// Timeout bounds the search; zero means no limit beyond ctx.
	Timeout time.Duration
	// Source supplies candidates and witnesses. It must be safe for
	// concurrent use; nil means biguint.SecureSource.
	Source biguint.RandomSource
	// Logger receives a summary of the search; nil disables logging.
	Logger logging.Logger
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Repetitions <= 0 {
		o.Repetitions = calc.DefaultRepetitions
	}
	if o.Source == nil {
		o.Source = biguint.SecureSource
	}
	if o.Logger == nil {
		o.Logger = logging.NopLogger{}
	}
	return o
}

// ExpectedCandidates returns the mean number of odd candidates with the top
// bit set that must be tested before a prime of the given size turns up. By
// the prime number theorem one odd number in bits·ln2/2 is prime.
func ExpectedCandidates(bits int) float64 {
	return math.Max(1, float64(bits)*math.Ln2/2)
}

// SearchPrime searches for a random prime at the width of searcher.
//
// Workers draw odd candidates with the top bit set and test them
// concurrently; the first prime cancels the others. Each worker reports the
// probability that it would have found a prime by now, which rises towards 1
// as it tests more candidates.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - searcher: The width to search.
//   - opts: The search options.
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - SearchResult: The prime and search statistics.
//   - error: A TimeoutError if opts.Timeout elapsed, the context error if ctx
//     ended, or a CalculationError if the random source failed.
func SearchPrime(ctx context.Context, searcher PrimeSearcher, opts SearchOptions, reporter ProgressReporter, out io.Writer) (SearchResult, error) {
	opts = opts.withDefaults()
	ctx, span := tracer.Start(ctx, "orchestration.SearchPrime", trace.WithAttributes(
		attribute.String("prime.width", searcher.Name()),
		attribute.Int("prime.bits", searcher.Bits()),
		attribute.Int("prime.workers", opts.Workers),
		attribute.Int("prime.repetitions", opts.Repetitions),
	))
	defer span.End()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	result := SearchResult{Width: searcher.Name(), Bits: searcher.Bits(), Workers: opts.Workers}
	perWorker := ExpectedCandidates(searcher.Bits()) / float64(opts.Workers)

	progressChan := make(chan ProgressUpdate, opts.Workers*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, opts.Workers, out)

	var (
		candidates atomic.Uint64
		once       sync.Once
		prime      string
	)
	g, gctx := errgroup.WithContext(ctx)
	for w := range opts.Workers {
		g.Go(func() error {
			var tested uint64
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				cand, err := searcher.Probe(opts.Source, opts.Repetitions)
				if err != nil {
					return fmt.Errorf("worker %d: %w", w, err)
				}
				tested++
				candidates.Add(1)
				if cand.Prime {
					once.Do(func() { prime = cand.Value })
					progressChan <- ProgressUpdate{TaskIndex: w, Value: 1, Final: true}
					return errPrimeFound
				}
				if tested%progressStride == 0 {
					sendProgress(progressChan, ProgressUpdate{TaskIndex: w, Value: 1 - math.Exp(-float64(tested)/perWorker)})
				}
			}
		})
	}

	err := g.Wait()
	close(progressChan)
	displayWg.Wait()

	result.Candidates = candidates.Load()
	result.Duration = time.Since(start)
	span.SetAttributes(attribute.Int64("prime.candidates", int64(result.Candidates)))

	if errors.Is(err, errPrimeFound) {
		result.Value = prime
		opts.Logger.Debug("prime found",
			logging.String("width", result.Width),
			logging.Uint64("candidates", result.Candidates),
			logging.Duration("duration", result.Duration))
		return result, nil
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded) && opts.Timeout > 0:
		err = apperrors.TimeoutError{Operation: "prime search", Limit: opts.Timeout}
	case ctx.Err() != nil:
		err = ctx.Err()
	default:
		err = apperrors.CalculationError{Cause: err}
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	opts.Logger.Error("prime search failed", err,
		logging.String("width", result.Width),
		logging.Uint64("candidates", result.Candidates))
	return result, err
}

// sendProgress publishes an update without blocking the worker.
func sendProgress(ch chan<- ProgressUpdate, update ProgressUpdate) {
	select {
	case ch <- update:
	default:
	}
}
