// Package registry provides the central "glue" for the generator system.
//
// The Registry maps every asset type to the descriptor of the generator that
// produces it: the asset type it depends on, whether it needs the build's
// codepoint table, and the Go function doing the work. Generator packages
// under modules/ contribute descriptors through the Module interface.
//
// During application startup the registry is validated so that every asset
// type has exactly one generator and the dependency relation is acyclic.
package registry
