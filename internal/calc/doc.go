// Package calc binds the generic fixed-width integers of package biguint to
// runtime width names. A Calculator evaluates textual prefix expressions such
// as "modpow 4 13 497" at one width and reports the result together with the
// status flags it raised; a CalculatorFactory maps names such as "u256" or
// "u512x32" to calculators.
package calc
