// Package orchestration runs work that spans several goroutines: one
// expression evaluated on every width for cross-checking, and the parallel
// search for random primes. It decouples that work from presentation via the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
