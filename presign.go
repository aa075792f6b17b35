package presign

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

var ErrInvalidRequest = errors.New("invalid presign request")

// Defaults mirror the Cloudflare R2 conventions of the original signer. They
// are plain constants so that callers enumerate every field explicitly;
// nothing security-sensitive falls back to a zero value.
const (
	DefaultMethod    = http.MethodGet
	DefaultRegion    = "auto"
	DefaultExpiresIn = 84600
)

// MaxExpiresIn is the longest validity window S3-compatible providers accept
// for a presigned URL (7 days).
const MaxExpiresIn = 604800

const signingKeyLength = 32

// SigningKey optionally carries a precomputed signing key. The zero value
// means "derive the key from the request's secret, date and region". A
// present key MUST have been derived from a (secret, date, region) triple
// consistent with the rest of the request; this is not checked, and a
// mismatched key produces a syntactically valid URL the provider will reject.
type SigningKey struct {
	key []byte
}

// PrecomputedSigningKey wraps a key previously obtained from
// DeriveSigningKey. The key is copied; the caller may reuse its slice.
func PrecomputedSigningKey(key []byte) (SigningKey, error) {
	if len(key) != signingKeyLength {
		return SigningKey{}, nestError(
			ErrInvalidRequest,
			"signing key must be %d bytes, got %d", signingKeyLength, len(key),
		)
	}

	k := make([]byte, signingKeyLength)
	copy(k, key)

	return SigningKey{key: k}, nil
}

func (k SigningKey) Present() bool {
	return k.key != nil
}

// Request describes a single presigned URL. It is a value object: SignURL
// never mutates it and keeps no reference to it, so one Request may be signed
// from any number of goroutines.
//
// Key is emitted verbatim into both the canonical request and the final URL.
// Callers must pass a key that is already in the form the HTTP request line
// will use; Validate only rejects keys no provider could round-trip.
type Request struct {
	Key             string
	Method          string
	Region          string
	ExpiresIn       int
	Date            time.Time
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	SigningKey      SigningKey
}

// NewRequest returns a Request for bucket/key at endpoint with the package
// defaults filled in and Date set to the current time. Credentials and any
// overrides are assigned by the caller before signing.
func NewRequest(bucket, endpoint, key string) Request {
	return Request{
		Key:       key,
		Method:    DefaultMethod,
		Region:    DefaultRegion,
		ExpiresIn: DefaultExpiresIn,
		Date:      time.Now().UTC(),
		Bucket:    bucket,
		Endpoint:  endpoint,
	}
}

func hasSpaceOrControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] == 0x7f {
			return true
		}
	}
	return false
}

// Validate reports whether the request can be canonicalized. It runs before
// any cryptographic work; a request that fails here never produces a partial
// URL.
func (r Request) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"key", r.Key},
		{"method", r.Method},
		{"region", r.Region},
		{"bucket", r.Bucket},
		{"endpoint", r.Endpoint},
		{"access key id", r.AccessKeyID},
	}
	for _, f := range fields {
		if f.value == "" {
			return nestError(ErrInvalidRequest, "%s must not be empty", f.name)
		}
		if hasSpaceOrControl(f.value) {
			return nestError(ErrInvalidRequest, "%s contains whitespace or control characters", f.name)
		}
	}

	if strings.Contains(r.Region, "/") {
		return nestError(ErrInvalidRequest, "region must not contain '/'")
	}

	if r.ExpiresIn < 1 || r.ExpiresIn > MaxExpiresIn {
		return nestError(
			ErrInvalidRequest,
			"expiry must be between 1 and %d seconds, got %d", MaxExpiresIn, r.ExpiresIn,
		)
	}

	if r.Date.IsZero() {
		return nestError(ErrInvalidRequest, "date must be set")
	}

	if r.SecretAccessKey == "" && !r.SigningKey.Present() {
		return nestError(ErrInvalidRequest, "either a secret access key or a precomputed signing key is required")
	}

	return nil
}

// DeriveSigningKey computes the date/region-scoped signing key through the
// four-stage HMAC-SHA256 ladder. date is in YYYYMMDD form. The result is
// always 32 bytes and stays valid for every request sharing the same date and
// region (AWS allows 7 days), so callers may cache it and attach it to
// requests via PrecomputedSigningKey.
func DeriveSigningKey(secretAccessKey, date, region string) []byte {
	dateKey := hmacSHA256([]byte("AWS4"+secretAccessKey), date)
	dateRegionKey := hmacSHA256(dateKey, region)
	dateRegionServiceKey := hmacSHA256(dateRegionKey, scopeService)
	return hmacSHA256(dateRegionServiceKey, scopeTerminator)
}

// SignURL validates r and produces the presigned URL. Identical input
// (timestamp included) always yields the identical URL.
func SignURL(r Request) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	key := r.SigningKey.key
	if !r.SigningKey.Present() {
		key = DeriveSigningKey(r.SecretAccessKey, r.Date.UTC().Format(awsDateFormat), r.Region)
	}

	query := canonicalQueryString(r)
	canonical := canonicalRequest(r, query)
	signature := hmacSHA256Hex(key, stringToSign(r, canonical))

	return assembleURL(r, query, signature), nil
}
