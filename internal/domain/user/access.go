package user

import "strings"

// AccessPolicy decides admin privileges from a configured allow-list.
// It is built once at startup from config and passed in explicitly;
// membership is exact, case-insensitive email equality.
type AccessPolicy struct {
	adminEmails map[string]struct{}
}

func NewAccessPolicy(adminEmails []string) *AccessPolicy {
	set := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		set[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &AccessPolicy{adminEmails: set}
}

// IsAdmin reports whether the user's email is on the allow-list.
func (p *AccessPolicy) IsAdmin(u *User) bool {
	if u == nil || u.Email == "" {
		return false
	}
	_, ok := p.adminEmails[strings.ToLower(u.Email)]
	return ok
}

// IsAdminEmail is the email-only variant used when no full user is loaded,
// e.g. while minting token claims.
func (p *AccessPolicy) IsAdminEmail(email string) bool {
	if email == "" {
		return false
	}
	_, ok := p.adminEmails[strings.ToLower(email)]
	return ok
}
