package config

import "fmt"

// UnrecognizedOptionError reports a configuration key outside the closed set
// of recognized keys.
type UnrecognizedOptionError struct {
	Key string
}

func (e *UnrecognizedOptionError) Error() string {
	return fmt.Sprintf("The option '%s' is not recognised", e.Key)
}

// InvalidOptionValueError reports a recognized key whose value failed one of
// its validators.
type InvalidOptionValueError struct {
	Key string
	Err error
}

func (e *InvalidOptionValueError) Error() string {
	return fmt.Sprintf("Invalid option %s: %v", e.Key, e.Err)
}

func (e *InvalidOptionValueError) Unwrap() error {
	return e.Err
}
