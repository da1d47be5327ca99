package domain

import "strings"

const (
	// PhonePrefix is the only accepted country prefix.
	PhonePrefix = "+375"
	// PhoneLength is the full length including the prefix.
	PhoneLength = 13
)

// PhoneHint is the format shown to users in prompts.
const PhoneHint = "+375XXXXXXXXX"

// NormalizePhone strips spaces and dashes and validates the result
// against the +375XXXXXXXXX format.
func NormalizePhone(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	p = strings.ReplaceAll(p, " ", "")
	p = strings.ReplaceAll(p, "-", "")

	if !strings.HasPrefix(p, PhonePrefix) || len(p) != PhoneLength {
		return "", ErrInvalidPhone
	}
	for _, r := range p[1:] {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	return p, nil
}

// ValidPhone reports whether raw is an acceptable phone number.
func ValidPhone(raw string) bool {
	_, err := NormalizePhone(raw)
	return err == nil
}
