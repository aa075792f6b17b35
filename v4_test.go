package presign

import (
	"strings"
	"testing"
	"time"

	"github.com/zeebo/assert"
)

func r2Request() Request {
	return Request{
		Key:             "file.mp4",
		Method:          "GET",
		Region:          "auto",
		ExpiresIn:       84600,
		Date:            time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		Bucket:          "bucket",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Endpoint:        "123.r2.cloudflarestorage.com",
	}
}

func TestURIEncode(t *testing.T) {
	for _, tt := range []struct {
		in, out string
	}{
		{"", ""},
		{"file.mp4", "file.mp4"},
		{"abcXYZ019-._~", "abcXYZ019-._~"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"key/20230101/auto/s3/aws4_request", "key%2F20230101%2Fauto%2Fs3%2Faws4_request"},
		{"100%", "100%25"},
		{"é", "%C3%A9"},
	} {
		assert.Equal(t, tt.out, uriEncode(tt.in))
	}
}

func TestCanonicalQueryString(t *testing.T) {
	const expected = "X-Amz-Algorithm=AWS4-HMAC-SHA256" +
		"&X-Amz-Credential=key%2F20230101%2Fauto%2Fs3%2Faws4_request" +
		"&X-Amz-Date=20230101T000000Z" +
		"&X-Amz-Expires=84600" +
		"&X-Amz-SignedHeaders=host"

	query := canonicalQueryString(r2Request())
	assert.Equal(t, expected, query)

	t.Run("names ascend", func(t *testing.T) {
		var names []string
		for _, pair := range strings.Split(query, "&") {
			name, _, ok := strings.Cut(pair, "=")
			assert.True(t, ok)
			names = append(names, name)
		}
		for i := 1; i < len(names); i++ {
			assert.That(t, names[i-1] < names[i])
		}
	})

	t.Run("non-UTC date normalized", func(t *testing.T) {
		r := r2Request()
		r.Date = r.Date.In(time.FixedZone("UTC+5", 5*3600))
		assert.Equal(t, expected, canonicalQueryString(r))
	})
}

func TestCanonicalRequest(t *testing.T) {
	r := r2Request()

	expected := strings.Join([]string{
		"GET",
		"/file.mp4",
		canonicalQueryString(r),
		"host:bucket.123.r2.cloudflarestorage.com",
		"",
		"host",
		"UNSIGNED-PAYLOAD",
	}, "\n")

	assert.Equal(t, expected, canonicalRequest(r, canonicalQueryString(r)))
}

func TestStringToSign(t *testing.T) {
	r := r2Request()
	canonical := canonicalRequest(r, canonicalQueryString(r))

	expected := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		"20230101T000000Z",
		"20230101/auto/s3/aws4_request",
		"baa93882ddf97638f08c1465cea79e68465c89b78873e18d7fff4b3b9600af2e",
	}, "\n")

	assert.Equal(t, expected, stringToSign(r, canonical))
}

func TestAssembleURL(t *testing.T) {
	r := r2Request()

	url := assembleURL(r, "a=1&b=2", "deadbeef")
	assert.Equal(t, "https://bucket.123.r2.cloudflarestorage.com/file.mp4?a=1&b=2&X-Amz-Signature=deadbeef", url)
}
