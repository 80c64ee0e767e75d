// Package sysutil holds small process-level helpers shared by the binaries:
// log level handling, logger construction and environment value parsing.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name onto a zerolog level. Besides zerolog's own
// names it accepts "warning" and "off". Empty input means info; unknown
// input reports ok=false and info.
func ParseLevel(lvl string) (zerolog.Level, bool) {
	switch s := strings.ToLower(strings.TrimSpace(lvl)); s {
	case "":
		return zerolog.InfoLevel, true
	case "warning":
		return zerolog.WarnLevel, true
	case "off":
		return zerolog.Disabled, true
	default:
		l, err := zerolog.ParseLevel(s)
		if err != nil || l == zerolog.NoLevel {
			return zerolog.InfoLevel, false
		}
		return l, true
	}
}

// SetLogLevel applies lvl as the global zerolog level and returns it.
func SetLogLevel(lvl string) zerolog.Level {
	l, _ := ParseLevel(lvl)
	zerolog.SetGlobalLevel(l)
	return l
}

// IsTruthy reports whether v spells an enabled flag: 1, true, yes, y or on.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

// IsFalsy is the explicit counterpart of IsTruthy. Values that are neither
// let callers keep their default.
func IsFalsy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "no", "n", "off":
		return true
	}
	return false
}

// FirstNonEmpty returns the first value that is not blank, unmodified.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
