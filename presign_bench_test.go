package presign

import "testing"

func BenchmarkDeriveSigningKey(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		DeriveSigningKey("secret", "20230101", "auto")
	}
}

func BenchmarkSignURL(b *testing.B) {
	b.ReportAllocs()

	r := r2Request()
	for i := 0; i < b.N; i++ {
		if _, err := SignURL(r); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkSignURL_PrecomputedKey(b *testing.B) {
	b.ReportAllocs()

	r := r2Request()
	key, err := PrecomputedSigningKey(DeriveSigningKey("secret", "20230101", "auto"))
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	r.SigningKey = key

	for i := 0; i < b.N; i++ {
		if _, err := SignURL(r); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
