package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestParseResponseJSONPayload(t *testing.T) {
	body := []byte(`{"expires_at": 1700000000, "claims": [{"type": "role", "value": "admin"}]}`)

	tok, err := ParseResponse("application/json", body)
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if tok == nil {
		t.Fatal("expected a token")
	}
	if !tok.ExpiresAt.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("unexpected expiry %v", tok.ExpiresAt)
	}
	if !tok.HasClaim("role", "admin") {
		t.Fatal("expected role/admin claim")
	}
}

func TestParseResponseEmptyBodyMeansAnonymous(t *testing.T) {
	for _, body := range [][]byte{nil, {}, []byte("  \n")} {
		tok, err := ParseResponse("application/json", body)
		if err != nil {
			t.Fatalf("ParseResponse failed: %v", err)
		}
		if tok != nil {
			t.Fatalf("expected nil token for empty body, got %+v", tok)
		}
	}
}

func TestParseResponseEmptyObjectMeansAnonymous(t *testing.T) {
	tok, err := ParseResponse("application/json", []byte("{}"))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if tok != nil {
		t.Fatalf("expected nil token for empty object, got %+v", tok)
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	if _, err := ParseResponse("application/json", []byte(`{"expires_at":`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func signTestJWT(t *testing.T, expiresAt time.Time, claims []Claim) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, shellClaims{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}).SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return raw
}

func TestParseResponseJWTByContentType(t *testing.T) {
	raw := signTestJWT(t, time.Unix(1700000000, 0), []Claim{{Type: "role", Value: "admin"}})

	tok, err := ParseResponse("application/jwt", []byte(raw))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if tok == nil {
		t.Fatal("expected a token")
	}
	if !tok.ExpiresAt.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("unexpected expiry %v", tok.ExpiresAt)
	}
	if !tok.HasClaim("role", "admin") {
		t.Fatal("expected role/admin claim")
	}
}

func TestParseResponseJWTByShape(t *testing.T) {
	raw := signTestJWT(t, time.Unix(1700000000, 0), []Claim{{Type: "feature", Value: "reports"}})

	// generic content type, compact-serialization shape decides
	tok, err := ParseResponse("text/plain", []byte(raw))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if tok == nil || !tok.HasClaim("feature", "reports") {
		t.Fatalf("expected JWT detected by shape, got %+v", tok)
	}
}

func TestParseJWTExpiredTokenStillDecodes(t *testing.T) {
	raw := signTestJWT(t, time.Unix(1000, 0), []Claim{{Type: "role", Value: "admin"}})

	tok, err := ParseJWT(raw)
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if !tok.ExpiresAt.Equal(time.Unix(1000, 0)) {
		t.Fatalf("unexpected expiry %v", tok.ExpiresAt)
	}
}

func TestParseJWTMalformed(t *testing.T) {
	if _, err := ParseJWT("not.a-real.token"); err == nil {
		t.Fatal("expected error for malformed JWT")
	}
}
