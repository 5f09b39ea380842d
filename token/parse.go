package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// payload is the JSON shape of a refresh-endpoint response.
type payload struct {
	ExpiresAt int64   `json:"expires_at"`
	Claims    []Claim `json:"claims"`
}

// shellClaims is the JWT claim set the shell reads: the registered expiry
// plus an ordered "claims" array.
type shellClaims struct {
	Claims []Claim `json:"claims"`
	jwt.RegisteredClaims
}

// ParseResponse decodes a refresh-endpoint response body into a candidate
// token. An empty body means no token (anonymous), returned as nil. The body
// is either a JSON payload ({"expires_at": unix, "claims": [...]}) or a
// compact JWT whose claim set carries the same information.
func ParseResponse(contentType string, body []byte) (*Token, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if strings.Contains(contentType, "jwt") || looksLikeJWT(trimmed) {
		return ParseJWT(string(trimmed))
	}

	var p payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("decode refresh payload: %w", err)
	}
	if p.ExpiresAt == 0 && len(p.Claims) == 0 {
		return nil, nil
	}

	tok := &Token{Claims: p.Claims}
	if p.ExpiresAt != 0 {
		tok.ExpiresAt = time.Unix(p.ExpiresAt, 0).UTC()
	}
	return tok, nil
}

// ParseJWT decodes expiry and claims from a compact JWT without verifying
// the signature. The shell never holds verification keys; the refresh
// endpoint is trusted for the tokens it hands out, and any server-side
// consumer of the token performs its own verification.
func ParseJWT(raw string) (*Token, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := &shellClaims{}
	if _, _, err := parser.ParseUnverified(strings.TrimSpace(raw), claims); err != nil {
		return nil, fmt.Errorf("decode refresh token: %w", err)
	}

	tok := &Token{Claims: claims.Claims}
	if claims.ExpiresAt != nil {
		tok.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return tok, nil
}

func looksLikeJWT(b []byte) bool {
	if len(b) == 0 || b[0] == '{' || b[0] == '[' {
		return false
	}
	return bytes.Count(b, []byte(".")) == 2
}
