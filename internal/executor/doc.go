// Package executor is the generator orchestrator. Given the requested asset
// types of a build it pulls in their dependencies, resolves the codepoint
// table at most once, runs every generator at most once in dependency order
// and collects the results of the requested types.
//
// Independent generators run concurrently. A failing generator cancels the
// build; no partial result is returned.
package executor
