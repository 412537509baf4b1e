package config

import "runtime"

// Resolution chain for the tunables below (highest priority first):
//   1. CLI flags (--workers, --reps)
//   2. Environment variables (UINTCALC_WORKERS, UINTCALC_REPS)
//   3. Hardware and width based estimation (this file)

// ApplyAdaptiveDefaults fills the tunables left at their zero default with
// estimates based on the CPU count and the width of the prime search. Values
// set explicitly are preserved.
//
// Parameters:
//   - cfg: The parsed configuration.
//   - bits: The width in bits the repetitions are estimated for.
//
// Returns:
//   - AppConfig: The configuration with Workers and Repetitions filled in.
func ApplyAdaptiveDefaults(cfg AppConfig, bits int) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	if cfg.Repetitions == 0 {
		cfg.Repetitions = EstimateRepetitions(bits)
	}
	return cfg
}

// EstimateOptimalWorkers returns the number of prime-search goroutines. Each
// worker is CPU bound, so one per core is enough; a single core still gets
// one worker.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 1:
		return 1
	case numCPU <= 16:
		return numCPU
	default:
		return 16 // Candidate generation contends on the random source beyond this
	}
}

// EstimateRepetitions returns the number of random Miller-Rabin witnesses for
// a candidate of the given size. A random odd candidate that survives a round
// is composite with a probability that shrinks as the size grows, so wide
// values need fewer rounds for the same confidence.
func EstimateRepetitions(bits int) int {
	switch {
	case bits < 256:
		return 40
	case bits < 512:
		return 20
	case bits < 1024:
		return 10
	case bits < 2048:
		return 7
	default:
		return 4
	}
}
