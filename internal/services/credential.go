package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// IdentityClaims is what the service consumes from a provider credential.
// Any provider issuing a three-segment signed token with these claims is
// interchangeable.
type IdentityClaims struct {
	Sub           string      `json:"sub"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	EmailVerified interface{} `json:"email_verified"`
	Picture       string      `json:"picture"`
	Aud           string      `json:"aud"`
	Exp           int64       `json:"exp"`
}

// Verified normalizes email_verified, which providers send as bool or string.
func (c *IdentityClaims) Verified() bool {
	switch v := c.EmailVerified.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// DecodeCredential parses an opaque signed identity token into claims. The
// token must have three dot-separated base64url segments with sub, email and
// name present in the payload. When audience is non-empty the aud claim must
// match it.
func DecodeCredential(credential, audience string) (*IdentityClaims, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected three token segments", ErrInvalidCredential)
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	var claims IdentityClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	if claims.Sub == "" || claims.Email == "" || claims.Name == "" {
		return nil, fmt.Errorf("%w: missing required user information", ErrInvalidCredential)
	}
	if audience != "" && claims.Aud != audience {
		return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidCredential)
	}
	if claims.Exp > 0 && time.Now().Unix() > claims.Exp {
		return nil, fmt.Errorf("%w: credential expired", ErrInvalidCredential)
	}

	return &claims, nil
}
