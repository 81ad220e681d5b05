package model

import (
	"strings"
	"testing"
	"time"
)

func TestNewKeyToken(t *testing.T) {
	a := NewKeyToken()
	b := NewKeyToken()

	if a == b {
		t.Error("tokens should be unique")
	}
	if !strings.HasPrefix(a, KeyTokenPrefix) {
		t.Errorf("token %q missing prefix %q", a, KeyTokenPrefix)
	}
	if len(a) != len(KeyTokenPrefix)+32 {
		t.Errorf("token length = %d, want %d", len(a), len(KeyTokenPrefix)+32)
	}
}

func TestRedactedToken(t *testing.T) {
	k := APIKey{Token: "nw_0123456789abcdef0123456789abcdef"}
	got := k.RedactedToken()

	if !strings.HasPrefix(got, KeyTokenPrefix) {
		t.Errorf("redacted token lost prefix: %q", got)
	}
	if !strings.HasSuffix(got, "cdef") {
		t.Errorf("redacted token should keep last four characters: %q", got)
	}
	if strings.Contains(got, "0123456789abcdef01234567") {
		t.Errorf("redacted token leaks body: %q", got)
	}
}

func TestAPIKeyActive(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		key  APIKey
		want bool
	}{
		{"enabled", APIKey{Enabled: true}, true},
		{"disabled", APIKey{Enabled: false}, false},
		{"revoked", APIKey{Enabled: true, RevokedAt: &now}, false},
	}
	for _, tt := range tests {
		if got := tt.key.Active(); got != tt.want {
			t.Errorf("%s: Active() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
