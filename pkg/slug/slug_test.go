package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Demo", "demo"},
		{"Diseño de APIs", "diseno-de-apis"},
		{"  Go & Angular!  ", "go-angular"},
		{"Árbol---Binario", "arbol-binario"},
		{"portfolio_v2.0", "portfolio-v2-0"},
		{"", ""},
		{"¿¡?!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, From(tc.in))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("mi-proyecto-1"))
	assert.False(t, Valid("Mi Proyecto"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("-lead"))
}
