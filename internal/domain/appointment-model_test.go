package domain

import (
	"strings"
	"testing"
)

func TestTimeSlotCatalog(t *testing.T) {
	if len(TimeSlots) != 16 {
		t.Fatalf("catalog has %d slots, want 16", len(TimeSlots))
	}

	// no duplicates
	seen := map[string]bool{}
	for _, s := range TimeSlots {
		if seen[s] {
			t.Errorf("duplicate slot %q", s)
		}
		seen[s] = true
	}

	// lunch hour stays out of the catalog
	for _, s := range TimeSlots {
		if strings.HasPrefix(s, "12:") {
			t.Errorf("lunch slot %q must not be offered", s)
		}
	}

	if !IsValidTimeSlot("8:00 AM - 8:30 AM") {
		t.Error("first slot of the day must be valid")
	}
	if IsValidTimeSlot("12:00 PM - 12:30 PM") {
		t.Error("lunch slot must not be valid")
	}
	if IsValidTimeSlot("5:00 PM - 5:30 PM") {
		t.Error("after-hours slot must not be valid")
	}
}
