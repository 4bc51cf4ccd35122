package validators

import (
	"net"
	"strings"
)

// HasEmailShape is a cheap syntactic check used before the DNS lookup.
func HasEmailShape(email string) bool {
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

// IsEmailDomainValid verifies the domain actually resolves, so booking
// confirmations have somewhere to go.
func IsEmailDomainValid(email string) bool {
	if !HasEmailShape(email) {
		return false
	}

	domain := email[strings.LastIndex(email, "@")+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
