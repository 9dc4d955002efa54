// SPDX-License-Identifier: MPL-2.0

package pom

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidCoordinate is the sentinel error wrapped by InvalidCoordinateError.
var ErrInvalidCoordinate = errors.New("invalid project coordinate")

type (
	// Coordinates are the groupId, artifactId and version of the generated
	// descriptor.
	Coordinates struct {
		GroupID    string
		ArtifactID string
		Version    string
	}

	// InvalidCoordinateError is returned when a coordinate is blank or holds
	// characters that cannot appear in an XML document.
	InvalidCoordinateError struct {
		Field  string
		Value  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidCoordinate so callers can use errors.Is for programmatic detection.
func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// Validate checks every field and returns all failures joined together.
func (c Coordinates) Validate() error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"groupId", c.GroupID},
		{"artifactId", c.ArtifactID},
		{"version", c.Version},
	} {
		if err := validateText(f.name, f.value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// String returns the coordinates in groupId:artifactId:version form.
func (c Coordinates) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

func validateText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &InvalidCoordinateError{Field: field, Value: value, Reason: "must not be blank"}
	}
	if !utf8.ValidString(value) {
		return &InvalidCoordinateError{Field: field, Value: value, Reason: "must be valid UTF-8"}
	}
	for _, r := range value {
		if !isXMLChar(r) {
			return &InvalidCoordinateError{
				Field:  field,
				Value:  value,
				Reason: fmt.Sprintf("character %U is not allowed in XML", r),
			}
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
