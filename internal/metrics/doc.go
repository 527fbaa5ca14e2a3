// Package metrics defines the Prometheus collectors for the book-cover
// service.
//
// All collectors are registered with the default registry via promauto at
// package initialization and exported as package-level variables. Strategy
// code records outcomes; the /metrics endpoint exposes them via promhttp.
package metrics
