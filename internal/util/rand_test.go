package util

import (
	"regexp"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestRandBase32(t *testing.T) {
	is := is.New(t)
	a, err := RandBase32(10)
	is.NoErr(err)
	b, err := RandBase32(10)
	is.NoErr(err)
	is.Equal(len(a), 16)
	is.True(a != b)
}

func TestNewGameID(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	id, err := NewGameID(now)
	is.NoErr(err)
	is.True(regexp.MustCompile(`^game_20240309_140507_[a-z2-7]{8}$`).MatchString(id))
}
