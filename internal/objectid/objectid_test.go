package objectid

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNewIsValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := New()
		if !IsValid(id) {
			t.Fatalf("generated id %q is not valid", id)
		}
	})
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id := New()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"5f1e9c2b8a3d4e5f6a7b8c9d", true},
		{"5F1E9C2B8A3D4E5F6A7B8C9D", true},
		{"", false},
		{"abc", false},
		{"5f1e9c2b8a3d4e5f6a7b8c9", false},
		{"5f1e9c2b8a3d4e5f6a7b8c9dd", false},
		{"zz1e9c2b8a3d4e5f6a7b8c9d", false},
		{"not-an-id-not-an-id-1234", false},
	}
	for _, tt := range tests {
		if got := IsValid(tt.in); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsValid_WrongLengthNeverValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[0-9a-f]{0,40}`).Filter(func(s string) bool { return len(s) != Len }).Draw(t, "s")
		if IsValid(s) {
			t.Fatalf("IsValid(%q) = true for length %d", s, len(s))
		}
	})
}

func TestIsValid_NonHexNeverValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.StringMatching(`[0-9a-f]{23}`).Draw(t, "prefix")
		bad := rapid.SampledFrom([]string{"g", "z", "-", " ", "x", "/"}).Draw(t, "bad")
		s := prefix + bad
		if IsValid(s) || IsValid(strings.Repeat(bad, Len)) {
			t.Fatalf("non-hex id accepted: %q", s)
		}
	})
}
