// Command libpresign builds as a C shared library exposing the presign
// pipeline over a C ABI:
//
//	go build -buildmode=c-shared -o libpresign.so ./cmd/libpresign
//
// Both exports write into caller-allocated buffers with explicit capacities
// and return the number of bytes written (or a negative code). No pointer
// into Go-owned memory ever crosses the boundary, and the secret key is read
// once from the caller's NUL-terminated string without being retained.
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"time"
	"unsafe"

	"github.com/objstore/presign"
)

const (
	statusInvalidArgument = -1
	statusBufferTooSmall  = -2
	statusRejected        = -3
)

// presign_signing_key derives the 32-byte signing key for (secret, date,
// region) and copies it into out. date is YYYYMMDD. Returns the key length,
// or a negative status if an argument is NULL or outCap is too small.
//
//export presign_signing_key
func presign_signing_key(secret, date, region *C.char, out *C.uchar, outCap C.size_t) C.int {
	if secret == nil || date == nil || region == nil || out == nil {
		return statusInvalidArgument
	}

	key := presign.DeriveSigningKey(C.GoString(secret), C.GoString(date), C.GoString(region))
	if C.size_t(len(key)) > outCap {
		return statusBufferTooSmall
	}

	copy(unsafe.Slice((*byte)(unsafe.Pointer(out)), len(key)), key)

	return C.int(len(key))
}

// presign_sign_url produces a presigned URL and copies it, NUL-terminated,
// into out. unixTime is the signing instant in Unix seconds. Returns the URL
// length excluding the terminator, or a negative status when an argument is
// NULL, the request is rejected, or outCap cannot hold the URL plus
// terminator.
//
//export presign_sign_url
func presign_sign_url(bucket, endpoint, region, key, method, accessKeyID, secretAccessKey *C.char,
	expiresIn C.int, unixTime C.longlong, out *C.char, outCap C.size_t) C.int {
	for _, p := range []*C.char{bucket, endpoint, region, key, method, accessKeyID, secretAccessKey} {
		if p == nil {
			return statusInvalidArgument
		}
	}
	if out == nil {
		return statusInvalidArgument
	}

	r := presign.Request{
		Key:             C.GoString(key),
		Method:          C.GoString(method),
		Region:          C.GoString(region),
		ExpiresIn:       int(expiresIn),
		Date:            time.Unix(int64(unixTime), 0).UTC(),
		Bucket:          C.GoString(bucket),
		AccessKeyID:     C.GoString(accessKeyID),
		SecretAccessKey: C.GoString(secretAccessKey),
		Endpoint:        C.GoString(endpoint),
	}

	url, err := presign.SignURL(r)
	if err != nil {
		return statusRejected
	}
	if C.size_t(len(url)+1) > outCap {
		return statusBufferTooSmall
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(out)), len(url)+1)
	copy(dst, url)
	dst[len(url)] = 0

	return C.int(len(url))
}

func main() {}
