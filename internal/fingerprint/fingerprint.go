// Package fingerprint derives the device fingerprint used to correlate
// browser instances that probably share a physical device.
//
// The value is a weak, spoofable heuristic: a handful of environment signals
// folded through a 32-bit rolling hash. Collisions between unrelated devices
// are expected, and a client can trivially change any signal. Treat a match
// as a hint, never as proof of identity.
package fingerprint

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Signals is the fixed tuple of environment properties reported by the browser.
type Signals struct {
	UserAgent           string
	Language            string
	ColorDepth          int
	ScreenResolution    string
	TimezoneOffset      int
	HardwareConcurrency int
	// Canvas is the data URL (or a digest of it) of a fixed 2D drawing.
	// Empty when the environment cannot render a canvas; the term is then
	// left out of the tuple.
	Canvas string
}

// Tuple joins the signals in their fixed order, separated by '|'.
func (s Signals) Tuple() string {
	parts := []string{
		s.UserAgent,
		s.Language,
		strconv.Itoa(s.ColorDepth),
		s.ScreenResolution,
		strconv.Itoa(s.TimezoneOffset),
		strconv.Itoa(s.HardwareConcurrency),
	}
	if s.Canvas != "" {
		parts = append(parts, s.Canvas)
	}
	return strings.Join(parts, "|")
}

// Compute returns the fingerprint of the signals as a base-10 string.
func Compute(s Signals) string {
	return strconv.FormatInt(int64(Hash(s.Tuple())), 10)
}

// Hash folds s with h = h*31 + c over its UTF-16 code units, wrapping at
// 32 bits.
func Hash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}
