package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var (
	ErrHandleExpired = errors.New("retrieval handle expired")
	ErrBadSignature  = errors.New("invalid retrieval signature")
)

// Signer issues and verifies time-bounded retrieval handles for stored
// documents. A handle pre-authorizes a direct fetch without any other
// credential, so large documents are not proxied through the orchestrator.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign produces the signature of a (rfc, folio, expiry) triple.
func (s *Signer) Sign(rfc, folio string, expires time.Time) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%s|%d", rfc, folio, expires.Unix())
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a signature and its expiry against the current time.
func (s *Signer) Verify(rfc, folio string, expiresUnix int64, signature string, now time.Time) error {
	if now.Unix() > expiresUnix {
		return ErrHandleExpired
	}
	expected := s.Sign(rfc, folio, time.Unix(expiresUnix, 0))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}
