package token

import "time"

// Claim is a typed attribute asserted by a token, analogous to a scoped
// permission or role grant.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Token is the authentication credential: an expiry marker and the ordered
// collection of claims the bearer holds.
type Token struct {
	ExpiresAt time.Time `json:"expires_at"`
	Claims    []Claim   `json:"claims"`
}

// HasClaim reports whether the token carries a claim matching typ and value.
// Matching is case-sensitive exact string equality on both fields.
func (t Token) HasClaim(typ, value string) bool {
	for _, c := range t.Claims {
		if c.Type == typ && c.Value == value {
			return true
		}
	}
	return false
}

// Clone returns a copy whose claim slice does not alias the receiver's.
func (t Token) Clone() Token {
	out := Token{ExpiresAt: t.ExpiresAt}
	if t.Claims != nil {
		out.Claims = make([]Claim, len(t.Claims))
		copy(out.Claims, t.Claims)
	}
	return out
}
