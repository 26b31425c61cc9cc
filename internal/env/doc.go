// Package env decides whether a persisted environment record can be reused
// or must be regenerated, one resolver per session kind.
//
// A Resolver is a pure old-record to new-record function. Regenerated
// records come from the templates in this package and are stamped with the
// generator's clock, so they always satisfy their own freshness test.
package env
