package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewPickupCode mints the code embedded in the student's pickup QR:
// SELYO-<8 random hex>-<request id suffix>, e.g. SELYO-3FA2B1C4-000042.
// Knowing the string identifies the request; release still goes through the
// staff-side status gate.
func NewPickupCode(requestID uint) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("SELYO-%s-%06d", random, requestID%1000000)
}
