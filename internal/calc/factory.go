package calc

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/uintcalc/internal/biguint"
)

// ErrUnknownWidth is returned by Get for a name that is not registered.
var ErrUnknownWidth = errors.New("unknown width")

// CalculatorFactory maps width names to calculators.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every calculator keyed by name.
	GetAll() map[string]Calculator
	// Register adds or replaces a calculator.
	Register(c Calculator)
}

// DefaultFactory is a concurrency-safe CalculatorFactory.
type DefaultFactory struct {
	mu    sync.RWMutex
	calcs map[string]Calculator
}

// NewDefaultFactory returns a factory holding every predefined width.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{calcs: make(map[string]Calculator)}
	for _, c := range []Calculator{
		New[uint64, biguint.W2]("u128"),
		New[uint64, biguint.W4]("u256"),
		New[uint64, biguint.W8]("u512"),
		New[uint64, biguint.W16]("u1024"),
		New[uint64, biguint.W32]("u2048"),
		New[uint64, biguint.W64]("u4096"),
		New[uint32, biguint.W8]("u256x32"),
		New[uint32, biguint.W16]("u512x32"),
		New[uint32, biguint.W32]("u1024x32"),
		New[uint8, biguint.W8]("u64x8"),
		New[uint16, biguint.W8]("u128x16"),
	} {
		f.Register(c)
	}
	return f
}

func (f *DefaultFactory) Register(c Calculator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calcs[c.Name()] = c
}

func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.calcs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownWidth, name)
	}
	return c, nil
}

// MustGet is Get that panics on an unknown name.
func (f *DefaultFactory) MustGet(name string) Calculator {
	c, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.calcs))
	for name := range f.calcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]Calculator, len(f.calcs))
	for name, c := range f.calcs {
		all[name] = c
	}
	return all
}

var (
	globalOnce    sync.Once
	globalFactory *DefaultFactory
)

// GlobalFactory returns a shared DefaultFactory, built on first use.
func GlobalFactory() *DefaultFactory {
	globalOnce.Do(func() { globalFactory = NewDefaultFactory() })
	return globalFactory
}
