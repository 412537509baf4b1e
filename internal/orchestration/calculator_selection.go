package orchestration

import (
	"github.com/agbru/uintcalc/internal/calc"
	"github.com/agbru/uintcalc/internal/config"
)

// GetCalculatorsToRun resolves a width selection to calculators. config.AllWidths
// returns every registered width in the factory's sorted order, so runs are
// reproducible; an unknown name returns nil.
//
// Parameters:
//   - name: A width name such as "u256", or config.AllWidths.
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []calc.Calculator: The calculators to execute.
func GetCalculatorsToRun(name string, factory calc.CalculatorFactory) []calc.Calculator {
	if name == config.AllWidths {
		keys := factory.List()
		calculators := make([]calc.Calculator, 0, len(keys))
		for _, k := range keys {
			if c, err := factory.Get(k); err == nil {
				calculators = append(calculators, c)
			}
		}
		return calculators
	}
	if c, err := factory.Get(name); err == nil {
		return []calc.Calculator{c}
	}
	return nil
}
