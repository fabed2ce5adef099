package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Suspensão Dianteira", "suspensao-dianteira"},
		{"Freios & Embreagens", "freios-embreagens"},
		{"  Óleo   de Motor  ", "oleo-de-motor"},
		{"Peça--com---hifens", "peca-com-hifens"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.in), "input %q", tc.in)
	}
}
