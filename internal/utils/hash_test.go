package utils

import "testing"

func TestHashBytesIsDeterministic(t *testing.T) {
	a := HashBytes([]byte("mesmo documento"))
	b := HashBytes([]byte("mesmo documento"))
	if a != b {
		t.Errorf("same bytes hashed differently: %q vs %q", a, b)
	}
}

func TestHashBytesDistinguishesContent(t *testing.T) {
	if HashBytes([]byte("um")) == HashBytes([]byte("dois")) {
		t.Errorf("different bytes produced the same digest")
	}
}

func TestHashBytesIsHexSHA256(t *testing.T) {
	digest := HashBytes([]byte(""))
	if len(digest) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(digest))
	}
	// SHA-256 of the empty input is a fixed value
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if digest != want {
		t.Errorf("digest = %q, want %q", digest, want)
	}
}
