package util

import (
	"crypto/rand"
	"encoding/base32"
	"io"
	"strings"
	"time"
)

// RandBase32 generates a random base32 string of n raw bytes, without padding
func RandBase32(n int) (string, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	s := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b)
	return strings.TrimRight(s, "="), nil
}

// NewGameID returns an id of the form game_YYYYMMDD_HHMMSS_xxxxxxxx.
// The suffix keeps ids unique when two games are saved within the same second.
func NewGameID(now time.Time) (string, error) {
	suffix, err := RandBase32(5)
	if err != nil {
		return "", err
	}
	return "game_" + now.Format("20060102_150405") + "_" + strings.ToLower(suffix), nil
}
