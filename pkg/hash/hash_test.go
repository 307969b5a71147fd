package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	// SHA256 of empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestShortHash(t *testing.T) {
	fullHash := SHA256Hex("channel:mrbeast")

	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"12 char prefix", "channel:mrbeast", 12, fullHash[:12]},
		{"24 char prefix", "channel:mrbeast", 24, fullHash[:24]},
		{"full hash if n too long", "channel:mrbeast", 100, fullHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortHash(tt.input, tt.n)
			if got != tt.want {
				t.Errorf("ShortHash(%q, %d) = %s, want %s", tt.input, tt.n, got, tt.want)
			}
		})
	}
}

func TestShortHash_Deterministic(t *testing.T) {
	a := ShortHash("channel:pewdiepie", 16)
	b := ShortHash("channel:pewdiepie", 16)
	if a != b {
		t.Error("ShortHash should be deterministic")
	}

	other := ShortHash("channel:mkbhd", 16)
	if a == other {
		t.Error("different inputs should produce different hashes")
	}
}
