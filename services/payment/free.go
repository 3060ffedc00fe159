package payment

import (
	"errors"
	"strings"

	"voltcare/services/platform"
)

// freeRejectionPatterns identify the class of payment-intent rejections that
// mean the appointment costs nothing, not that something went wrong. The
// gateway may refuse to create an intent for a zero-cost appointment; that
// refusal is success, not error.
var freeRejectionPatterns = []string{
	"no payment required",
	"appointment is free",
	"subscription services",
}

// IsFreeAppointmentRejection reports whether the payment-intent failure should
// be reclassified as a Free outcome. Matching is a case-insensitive substring
// check over every message the collaborator exposed.
func IsFreeAppointmentRejection(err error) bool {
	if err == nil {
		return false
	}
	candidates := []string{err.Error()}
	var collabErr *platform.CollaboratorError
	if errors.As(err, &collabErr) {
		candidates = append(candidates, collabErr.Messages...)
	}
	for _, msg := range candidates {
		lower := strings.ToLower(msg)
		for _, pattern := range freeRejectionPatterns {
			if strings.Contains(lower, pattern) {
				return true
			}
		}
	}
	return false
}

// failureMessages extracts the human-readable messages to surface for a
// non-reclassified failure, falling back to a generic retry prompt.
func failureMessages(err error) []string {
	var collabErr *platform.CollaboratorError
	if errors.As(err, &collabErr) && len(collabErr.Messages) > 0 {
		return collabErr.Messages
	}
	if err != nil && err.Error() != "" {
		return []string{err.Error()}
	}
	return []string{"Payment could not be prepared. Please try again."}
}
