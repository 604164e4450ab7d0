package store

import (
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

var ErrChecksum = errors.New("saved game checksum mismatch")

// Checksum is the hex BLAKE2b-256 digest of the game content of s. The id,
// display name and save time are metadata and not covered.
func Checksum(s *SavedGame) string {
	h, _ := blake2b.New256(nil) // only fails for an oversized key
	fmt.Fprintf(h, "%d|%d|%d|%s|%d|%d|", s.Width, s.Height, s.WinLength, s.Topology, s.NextPlayer, s.MoveCount)
	fmt.Fprintf(h, "%q|%q|%s|%s|", s.Player1Name, s.Player2Name, s.Player1Kind, s.Player2Kind)
	for _, c := range s.Cells {
		fmt.Fprintf(h, "%d,", c)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks the stored checksum against the content
func Verify(s *SavedGame) error {
	if s.Checksum != Checksum(s) {
		return fmt.Errorf("%w: %s", ErrChecksum, s.ID)
	}
	return nil
}
