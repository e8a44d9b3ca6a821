// Package config turns a raw, loosely typed option map (from a config file,
// CLI flags or both) into validated RunnerOptions.
//
// Every recognized option key owns an ordered chain of validators. Parsing
// merges DefaultValues under the raw input, folds each key's value through
// its chain and fails fast on the first unrecognized key or invalid value.
package config
