package utils

import (
	"regexp"
	"testing"
)

func TestNewPickupCode(t *testing.T) {
	re := regexp.MustCompile(`^SELYO-[0-9A-F]{8}-\d{6}$`)

	code := NewPickupCode(42)
	if !re.MatchString(code) {
		t.Fatalf("code %q does not match expected format", code)
	}
	if code[len(code)-6:] != "000042" {
		t.Errorf("code %q must end with the zero-padded request id", code)
	}

	// random part makes codes unguessable even for the same request
	if NewPickupCode(42) == NewPickupCode(42) {
		t.Error("two codes for the same request must differ")
	}
}
