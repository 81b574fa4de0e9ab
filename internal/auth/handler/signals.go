package handler

import (
	"strconv"
	"strings"

	"github.com/AnthoniusHendriyanto/access-gate/internal/fingerprint"
	"github.com/gofiber/fiber/v2"
)

// Headers the browser sends with environment readings for the fingerprint.
const (
	HeaderColorDepth          = "X-Screen-Color-Depth"
	HeaderScreenResolution    = "X-Screen-Resolution"
	HeaderTimezoneOffset      = "X-Timezone-Offset"
	HeaderHardwareConcurrency = "X-Hardware-Concurrency"
	HeaderCanvasHash          = "X-Canvas-Hash"
)

// SignalsFromRequest collects fingerprint signals from request headers.
// Missing or malformed numbers read as 0.
func SignalsFromRequest(c *fiber.Ctx) fingerprint.Signals {
	return fingerprint.Signals{
		UserAgent:           c.Get(fiber.HeaderUserAgent),
		Language:            primaryLanguage(c.Get(fiber.HeaderAcceptLanguage)),
		ColorDepth:          headerInt(c, HeaderColorDepth),
		ScreenResolution:    c.Get(HeaderScreenResolution),
		TimezoneOffset:      headerInt(c, HeaderTimezoneOffset),
		HardwareConcurrency: headerInt(c, HeaderHardwareConcurrency),
		Canvas:              c.Get(HeaderCanvasHash),
	}
}

// primaryLanguage returns the first tag of an Accept-Language value.
func primaryLanguage(accept string) string {
	tag, _, _ := strings.Cut(accept, ",")
	tag, _, _ = strings.Cut(tag, ";")
	return strings.TrimSpace(tag)
}

func headerInt(c *fiber.Ctx, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Get(name)))
	if err != nil {
		return 0
	}
	return n
}
