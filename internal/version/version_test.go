package version

import (
	"strings"
	"testing"
)

func TestGetVersion_Default(t *testing.T) {
	if GetVersion() != "dev" {
		t.Errorf("expected dev by default, got %s", GetVersion())
	}
}

func TestString_ContainsAllFields(t *testing.T) {
	s := String()
	for _, part := range []string{"version=", "commit=", "date="} {
		if !strings.Contains(s, part) {
			t.Errorf("expected %q in %q", part, s)
		}
	}
}
