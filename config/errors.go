// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import "fmt"

// MissingError occurs when no value, or an explicit null, is found at Path.
type MissingError struct {
	Path string

	// Null is true if the value was explicitly set to null.
	Null bool

	// Origin is only known when Null is true.
	Origin Origin
}

// Error implements the error interface.
func (e MissingError) Error() string {
	if e.Null {
		return withOrigin(e.Origin, fmt.Sprintf("configuration key '%s' is set to null", e.Path))
	}
	return fmt.Sprintf("no configuration setting found for key '%s'", e.Path)
}

// WrongTypeError occurs when the value at Path can not be
// coerced into the Expected type.
type WrongTypeError struct {
	Path     string
	Origin   Origin
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e WrongTypeError) Error() string {
	return withOrigin(e.Origin, fmt.Sprintf("%s has type %s rather than %s", e.Path, e.Actual, e.Expected))
}

// BadValueError occurs when the value at Path has the right
// type but fails to be translated into a meaningful value.
type BadValueError struct {
	Path    string
	Origin  Origin
	Message string
	Cause   error
}

// Error implements the error interface.
func (e BadValueError) Error() string {
	return withOrigin(e.Origin, fmt.Sprintf("invalid value at '%s': %s", e.Path, e.Message))
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e BadValueError) Unwrap() error {
	return e.Cause
}

// BadValue returns a BadValueError for the value found at path. The
// error message of cause is used as the message.
func BadValue(origin Origin, path string, cause error) BadValueError {
	return BadValueError{
		Path:    path,
		Origin:  origin,
		Message: cause.Error(),
		Cause:   cause,
	}
}

func withOrigin(o Origin, msg string) string {
	s := o.String()
	if len(s) == 0 {
		return msg
	}
	return s + ": " + msg
}
