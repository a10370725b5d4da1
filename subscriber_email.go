package newsletter

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SubscriberEmail is a validated email address.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail checks raw against the email grammar and wraps it unchanged.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if err := validate.Var(raw, "required,email"); err != nil || !hasDottedDomain(raw) {
		return SubscriberEmail{}, &Error{
			Code:    ErrInvalid,
			Message: "invalid subscriber email",
			Op:      "ParseSubscriberEmail",
			Err:     err,
		}
	}

	return SubscriberEmail{value: raw}, nil
}

// hasDottedDomain reports whether s is local@domain with no whitespace, a
// non-empty local part and a domain of at least two non-empty labels.
func hasDottedDomain(s string) bool {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}

	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}

	labels := strings.Split(s[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}

	return true
}

// String returns the address exactly as it was submitted.
func (e SubscriberEmail) String() string {
	return e.value
}
