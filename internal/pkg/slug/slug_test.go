package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trottiparts/trottiparts-api/internal/pkg/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Xiaomi M365", "xiaomi-m365"},
		{"french accents", "Trottinette Électrique", "trottinette-electrique"},
		{"cedilla", "Caoutchouc Renforcé", "caoutchouc-renforce"},
		{"punctuation collapses", "Frein (avant) - V2", "frein-avant-v2"},
		{"leading and trailing junk", "  --Pneu 10\"--  ", "pneu-10"},
		{"already a slug", "chambre-a-air", "chambre-a-air"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.in))
		})
	}
}
