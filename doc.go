/*
Package presign produces presigned HTTP URLs for S3-compatible object storage
(AWS S3, Cloudflare R2 and friends) using the AWS Signature Version 4 query
parameter scheme. See https://docs.aws.amazon.com/AmazonS3/latest/API/sigv4-query-string-auth.html
for the authoritative description.

The pipeline is briefly described here.

Step 1: build the canonical query string from a fixed parameter set:

	X-Amz-Algorithm=AWS4-HMAC-SHA256
	X-Amz-Credential=<ACCESS_ID>/<YYYYMMDD>/<region>/s3/aws4_request
	X-Amz-Date=<YYYYMMDDTHHMMSSZ>
	X-Amz-Expires=<seconds>
	X-Amz-SignedHeaders=host

Values are percent-encoded per RFC 3986 (only unreserved characters pass
through, so the slashes in the credential become %2F), then the parameters are
sorted by name and joined with `&`. The storage provider recomputes this string
byte for byte; an out-of-order or differently encoded result invalidates the
signature.

Step 2: build the canonical request
`<METHOD>\n/<KEY>\n<QUERY>\nhost:<bucket>.<endpoint>\n\nhost\nUNSIGNED-PAYLOAD`.
Only the `host` header is signed and the body is never hashed.

Step 3: build the string to sign
`AWS4-HMAC-SHA256\n<TIMESTAMP>\n<YYYYMMDD>/<region>/s3/aws4_request\n<hex(sha256(CANONICAL_REQUEST))>`.

Step 4: derive the signing key through the HMAC-SHA256 ladder

	kDate    = hmac("AWS4"+Secret, Date)
	kRegion  = hmac(kDate, Region)
	kService = hmac(kRegion, "s3")
	kSigning = hmac(kService, "aws4_request")

and compute `sig = hex(hmac(kSigning, StringToSign))`. The signing key depends
only on the date, region and service, so callers issuing many URLs may derive
it once with DeriveSigningKey and attach it to requests as a precomputed
SigningKey.

Step 5: append `&X-Amz-Signature=<sig>` to
`https://<bucket>.<endpoint>/<key>?<query>`.

Everything in this package is a pure function over its inputs; a Request is
never mutated and no state is shared between calls, so SignURL is safe for
concurrent use without locking.
*/
package presign
