package db

import (
	"bytes"
	"testing"
)

func TestEncodeVector_Layout(t *testing.T) {
	got := EncodeVector([]float32{1, -2})
	want := []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0xc0}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeVector = %x, want %x", got, want)
	}
}

func TestDecodeVector(t *testing.T) {
	v, err := DecodeVector(EncodeVector([]float32{0.25, 3}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v) != 2 || v[0] != 0.25 || v[1] != 3 {
		t.Errorf("DecodeVector = %v", v)
	}

	if _, err := DecodeVector([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated blob")
	}
}
