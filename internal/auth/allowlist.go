package auth

import "strings"

// AllowList is the fixed set of emails permitted past the gate. It is
// built once at startup and read-only afterwards; membership is the
// sole authorization policy of the whole service.
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList normalizes the given emails (trim, lower-case) into a set.
func NewAllowList(emails []string) *AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return &AllowList{emails: set}
}

// Allowed reports whether the email belongs to the allow-list.
// The empty email is never allowed.
func (a *AllowList) Allowed(email string) bool {
	if email == "" {
		return false
	}
	_, ok := a.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Len returns the number of allow-listed emails.
func (a *AllowList) Len() int {
	return len(a.emails)
}
