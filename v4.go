package presign

import (
	"sort"
	"strconv"
	"strings"
)

const (
	queryXAmzAlgorithm     = "X-Amz-Algorithm"
	queryXAmzCredential    = "X-Amz-Credential"
	queryXAmzDate          = "X-Amz-Date"
	queryXAmzExpires       = "X-Amz-Expires"
	queryXAmzSignedHeaders = "X-Amz-SignedHeaders"
	queryXAmzSignature     = "X-Amz-Signature"

	signingAlgorithm = "AWS4-HMAC-SHA256"
	unsignedPayload  = "UNSIGNED-PAYLOAD"

	scopeService    = "s3"
	scopeTerminator = "aws4_request"

	signedHeaders = "host"

	awsISO8601Format = "20060102T150405Z"
	awsDateFormat    = "20060102"
)

const upperhex = "0123456789ABCDEF"

func unreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// uriEncode percent-encodes s the way AWS canonicalization requires: RFC 3986
// unreserved characters pass through, every other byte (slashes included)
// becomes an uppercase %XX octet.
func uriEncode(s string) string {
	hexCount := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}

	b := make([]byte, 0, len(s)+2*hexCount)
	for i := 0; i < len(s); i++ {
		if c := s[i]; unreserved(c) {
			b = append(b, c)
		} else {
			b = append(b, '%', upperhex[c>>4], upperhex[c&0xf])
		}
	}
	return string(b)
}

func scopeString(date, region string) string {
	return date + "/" + region + "/" + scopeService + "/" + scopeTerminator
}

// canonicalQueryString assembles the fixed X-Amz-* parameter set, sorted by
// name and joined with '&'. The provider recomputes the same string; ordering
// and encoding must match byte for byte.
func canonicalQueryString(r Request) string {
	date := r.Date.UTC()

	params := [][2]string{
		{queryXAmzAlgorithm, signingAlgorithm},
		{queryXAmzCredential, r.AccessKeyID + "/" + scopeString(date.Format(awsDateFormat), r.Region)},
		{queryXAmzDate, date.Format(awsISO8601Format)},
		{queryXAmzExpires, strconv.Itoa(r.ExpiresIn)},
		{queryXAmzSignedHeaders, signedHeaders},
	}

	sort.Slice(params, func(i, j int) bool {
		return params[i][0] < params[j][0]
	})

	b := new(strings.Builder)
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(uriEncode(p[1]))
	}
	return b.String()
}

// canonicalRequest joins method, canonical URI, query, the single host header,
// the signed header list and the payload marker into the 7-line string that is
// hashed into the string to sign. The object key goes in verbatim: callers own
// any escaping beyond what Request.Validate rejects.
func canonicalRequest(r Request, query string) string {
	b := new(strings.Builder)

	b.WriteString(r.Method)
	b.WriteByte('\n')
	b.WriteByte('/')
	b.WriteString(r.Key)
	b.WriteByte('\n')
	b.WriteString(query)
	b.WriteByte('\n')
	b.WriteString("host:")
	b.WriteString(r.Bucket)
	b.WriteByte('.')
	b.WriteString(r.Endpoint)
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString(signedHeaders)
	b.WriteByte('\n')
	b.WriteString(unsignedPayload)

	return b.String()
}

func stringToSign(r Request, canonical string) string {
	date := r.Date.UTC()

	b := new(strings.Builder)

	b.WriteString(signingAlgorithm)
	b.WriteByte('\n')
	b.WriteString(date.Format(awsISO8601Format))
	b.WriteByte('\n')
	b.WriteString(scopeString(date.Format(awsDateFormat), r.Region))
	b.WriteByte('\n')
	b.WriteString(sha256Hex([]byte(canonical)))

	return b.String()
}

// assembleURL concatenates the final URL. The query string is already encoded
// and must not be re-encoded or reordered here.
func assembleURL(r Request, query, signature string) string {
	b := new(strings.Builder)

	b.WriteString("https://")
	b.WriteString(r.Bucket)
	b.WriteByte('.')
	b.WriteString(r.Endpoint)
	b.WriteByte('/')
	b.WriteString(r.Key)
	b.WriteByte('?')
	b.WriteString(query)
	b.WriteByte('&')
	b.WriteString(queryXAmzSignature)
	b.WriteByte('=')
	b.WriteString(signature)

	return b.String()
}
