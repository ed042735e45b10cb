package helpers

import "strings"

// NormalizeRFC upper-cases and trims a tax identifier
func NormalizeRFC(rfc string) string {
	return strings.ToUpper(strings.TrimSpace(rfc))
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeAddressType upper-cases and trims an address type tag
func NormalizeAddressType(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}
