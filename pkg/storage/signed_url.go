package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DownloadToken is the verified content of a signed download URL: which
// course's export it grants, the stored filename, and when the grant ends.
type DownloadToken struct {
	CourseID  string `json:"c"`
	Filename  string `json:"f"`
	ExpiresAt int64  `json:"e"`
}

// Expiry returns the token deadline as a time.
func (t DownloadToken) Expiry() time.Time {
	return time.Unix(t.ExpiresAt, 0)
}

// SignedURLSigner mints and verifies download tokens for generated export
// files. Tokens are claims + HMAC-SHA256, so the download route needs no
// session and no database lookup.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewSignedURLSigner constructs a signer. A non-positive TTL falls back to
// 24h, the default export retention window.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl}
}

// Generate signs a download grant for the course's export file.
func (s *SignedURLSigner) Generate(courseID, filename string) (string, time.Time, error) {
	if courseID == "" || filename == "" {
		return "", time.Time{}, fmt.Errorf("course id and filename required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}

	expiresAt := time.Now().Add(s.ttl)
	claims, err := json.Marshal(DownloadToken{
		CourseID:  courseID,
		Filename:  filename,
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("encode download claims: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(claims)
	return encoded + "." + s.sign(encoded), expiresAt, nil
}

// Parse verifies the signature and expiry and returns the claims. With
// allowExpired the deadline check is skipped; cleanup uses that to resolve
// stale grants.
func (s *SignedURLSigner) Parse(token string, allowExpired bool) (DownloadToken, error) {
	encoded, signature, ok := strings.Cut(token, ".")
	if !ok || encoded == "" || signature == "" {
		return DownloadToken{}, fmt.Errorf("malformed download token")
	}
	if !hmac.Equal([]byte(s.sign(encoded)), []byte(signature)) {
		return DownloadToken{}, fmt.Errorf("invalid token signature")
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return DownloadToken{}, fmt.Errorf("decode download claims: %w", err)
	}
	var claims DownloadToken
	if err := json.Unmarshal(raw, &claims); err != nil {
		return DownloadToken{}, fmt.Errorf("parse download claims: %w", err)
	}
	if !allowExpired && time.Now().After(claims.Expiry()) {
		return DownloadToken{}, fmt.Errorf("download token expired")
	}
	return claims, nil
}

func (s *SignedURLSigner) sign(encoded string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
