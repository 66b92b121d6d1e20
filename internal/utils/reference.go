package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// referencePrefix namespaces booking references so they are
// recognizable in support conversations and log lines.
const referencePrefix = "EVT"

// NewBookingReference generates a human-readable booking reference of
// the form EVT-<base36 unix seconds>-<4 random chars>. The time
// component keeps references roughly sortable, the random suffix
// separates bookings created in the same second. Uniqueness is NOT
// guaranteed here — the bookings table carries a unique index on the
// reference and the insert path regenerates on a duplicate-key error.
func NewBookingReference() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UTC().Unix(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("%s-%s-%s", referencePrefix, ts, suffix)
}
