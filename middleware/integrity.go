package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"hash"
	"io"
	"net/http"
	"sync"

	"github.com/MKhiriev/go-service-kit/httperr"
)

// IntegrityHeader carries the hex-encoded HMAC-SHA256 signature of the raw
// request body.
const IntegrityHeader = "HashSHA256"

// Integrity middleware errors.
var (
	// ErrMissingSignature indicates a request without an integrity header
	// on a route that requires one.
	ErrMissingSignature = errors.New("missing body signature")
	// ErrInvalidSignature indicates an integrity header that is not valid
	// hex.
	ErrInvalidSignature = errors.New("invalid body signature encoding")
	// ErrSignatureMismatch indicates a body that does not match its
	// signature.
	ErrSignatureMismatch = errors.New("body does not match signature")
)

// Integrity returns a middleware that verifies the [IntegrityHeader] of
// each request: the header must contain the hex HMAC-SHA256 of the raw body
// computed with the shared key. The body is restored for downstream
// handlers after verification.
//
// Requests without the header pass through untouched unless required is
// true. Verification failures are rejected with 400 before the handler ever
// sees the payload. HMAC instances are pooled across requests.
func Integrity(key string, required bool) func(next http.Handler) http.Handler {
	pool := sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(key))
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(IntegrityHeader)
			if header == "" {
				if required {
					httperr.Respond(w, r, httperr.Wrap(ErrMissingSignature,
						http.StatusBadRequest, "signature_required", "body signature is required"))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			expected, err := hex.DecodeString(header)
			if err != nil {
				httperr.Respond(w, r, httperr.Wrap(ErrInvalidSignature,
					http.StatusBadRequest, "signature_invalid", "body signature must be hex encoded"))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				httperr.Respond(w, r, httperr.Wrap(err,
					http.StatusInternalServerError, "body_unreadable", "failed to read request body"))
				return
			}
			// restore request body
			r.Body = io.NopCloser(bytes.NewReader(body))

			mac := pool.Get().(hash.Hash)
			mac.Reset()
			mac.Write(body)
			sum := mac.Sum(nil)
			mac.Reset()
			pool.Put(mac)

			if !hmac.Equal(sum, expected) {
				httperr.Respond(w, r, httperr.Wrap(ErrSignatureMismatch,
					http.StatusBadRequest, "signature_mismatch", "integrity check failed"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Sign computes the hex-encoded HMAC-SHA256 signature of body with the
// shared key. Clients set the result as the [IntegrityHeader] value;
// [Integrity] on the receiving side recomputes and compares it.
func Sign(body []byte, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
