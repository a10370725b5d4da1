package newsletter

import (
	"strings"

	"github.com/rivo/uniseg"
)

const maxNameGraphemes = 255

const forbiddenNameChars = `/()"<>'\{}[]*%!`

// SubscriberName is a validated display name. The zero value is not a valid name,
// use ParseSubscriberName to obtain one.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates raw and wraps it unchanged.
//
// A name is rejected when it is empty or only whitespace, longer than 255
// user-perceived characters (grapheme clusters), or contains any of
// / ( ) " < > ' \ { } [ ] * % !
func ParseSubscriberName(raw string) (SubscriberName, error) {
	isBlank := strings.TrimSpace(raw) == ""
	isTooLong := uniseg.GraphemeClusterCount(raw) > maxNameGraphemes
	hasForbidden := strings.ContainsAny(raw, forbiddenNameChars)

	if isBlank || isTooLong || hasForbidden {
		return SubscriberName{}, &Error{
			Code:    ErrInvalid,
			Message: "invalid subscriber name",
			Op:      "ParseSubscriberName",
		}
	}

	return SubscriberName{value: raw}, nil
}

// String returns the name exactly as it was submitted.
func (n SubscriberName) String() string {
	return n.value
}
