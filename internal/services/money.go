package services

import (
	"strconv"
	"strings"

	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
)

// ParseAmount converts a raw monetary string from a billing feed into a
// float64. Malformed values fall back to zero rather than failing the
// ingest; the fallback is deliberate and always logged so bad feed data is
// visible instead of silently zeroed.
func ParseAmount(log *logger.Logger, raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		log.WithFields(map[string]interface{}{
			"raw": raw,
		}).Warn("Malformed monetary value, falling back to zero")
		return 0
	}
	return v
}
