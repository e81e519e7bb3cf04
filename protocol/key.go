package protocol

import "strings"

// ValidateKey checks that key can be sent as a single token.
// Keys must be non-empty and contain no whitespace.
func ValidateKey(key string) error {
	if key == "" {
		return &InvalidArgumentError{Field: "key", Message: "must not be empty"}
	}

	if strings.ContainsAny(key, " \t\r\n") {
		return &InvalidArgumentError{Field: "key", Message: "must not contain whitespace"}
	}

	return nil
}

// ValidateValue checks that value fits the remainder of a SET line.
// Spaces are allowed, line breaks are not.
func ValidateValue(value string) error {
	if value == "" {
		return &InvalidArgumentError{Field: "value", Message: "must not be empty"}
	}

	if strings.ContainsAny(value, "\r\n") {
		return &InvalidArgumentError{Field: "value", Message: "must not contain line breaks"}
	}

	return nil
}
