package common

import (
	"github.com/google/uuid"
)

// NewRefreshID generates a unique cache-refresh correlation id with the
// "ref_" prefix, used to tie together the log lines of one refresh pass.
// Format: ref_<uuid>
func NewRefreshID() string {
	return "ref_" + uuid.New().String()
}
