package ecs

// Precondition violations panic rather than return an error: they are
// programming errors, not runtime conditions. These helpers centralise
// the wording used across the package.

func panicRequiresAbsent(op string) {
	panic("ecs: " + op + " requires !Has(e)")
}

func panicRequiresPresent(op string) {
	panic("ecs: " + op + " requires Has(e)")
}
