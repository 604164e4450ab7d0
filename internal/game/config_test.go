package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestNewConfig(t *testing.T) {
	cases := []struct {
		name      string
		w, h, n   int
		topo      Topology
		wantField string
	}{
		{"classic", 7, 6, 4, Rectangle, ""},
		{"smallest", 3, 3, 3, Cylinder, ""},
		{"largest", 20, 20, 20, Rectangle, ""},
		{"win longer than height", 10, 3, 10, Rectangle, ""},
		{"narrow", 2, 6, 3, Rectangle, "width"},
		{"too wide", 21, 6, 4, Rectangle, "width"},
		{"flat", 7, 2, 3, Rectangle, "height"},
		{"too tall", 7, 21, 4, Rectangle, "height"},
		{"short win", 7, 6, 2, Rectangle, "win length"},
		{"win does not fit", 7, 6, 8, Rectangle, "win length"},
		{"unknown topology", 7, 6, 4, Topology(9), "topology"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			cfg, err := NewConfig(tc.w, tc.h, tc.n, tc.topo)
			if tc.wantField == "" {
				is.NoErr(err)
				is.Equal(cfg, Config{Width: tc.w, Height: tc.h, WinLength: tc.n, Topology: tc.topo})
				return
			}
			is.True(errors.Is(err, ErrConfiguration))
			var ce *ConfigurationError
			is.True(errors.As(err, &ce))
			is.Equal(ce.Field, tc.wantField)
			is.Equal(cfg, Config{})
		})
	}
}

func TestParseTopology(t *testing.T) {
	is := is.New(t)
	for in, want := range map[string]Topology{
		"rectangle": Rectangle,
		"Cylinder":  Cylinder,
		" cyl ":     Cylinder,
		"":          Rectangle,
	} {
		got, err := ParseTopology(in)
		is.NoErr(err)
		is.Equal(got, want)
	}
	_, err := ParseTopology("torus")
	is.True(errors.Is(err, ErrConfiguration))
	is.Equal(Cylinder.String(), "cylinder")
}
