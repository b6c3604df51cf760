package transcript

import "regexp"

// ValidationResult classifies a candidate video identifier.
type ValidationResult int

const (
	// ValidationOK means the identifier is well-formed.
	ValidationOK ValidationResult = iota
	// ValidationMissing means no identifier was supplied at all.
	ValidationMissing
	// ValidationInvalid means an identifier was supplied but is malformed.
	ValidationInvalid
)

// YouTube video IDs are exactly 11 URL-safe base64 characters.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidateVideoID checks a candidate video identifier. It is called before
// any rate-limit accounting or external fetch, so malformed input never
// consumes quota.
func ValidateVideoID(id string) ValidationResult {
	if id == "" {
		return ValidationMissing
	}
	if !videoIDPattern.MatchString(id) {
		return ValidationInvalid
	}
	return ValidationOK
}
