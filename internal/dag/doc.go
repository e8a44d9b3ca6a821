// Package dag provides the small directed acyclic graph used to order asset
// generators: topological sorting, cycle detection and dependency closures.
package dag
