package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	n := NewNegotiator([]string{"es", "en"}, "es")

	cases := []struct {
		name, query, header, want string
	}{
		{"query wins", "en", "es-ES", "en"},
		{"regional query", "en-GB", "", "en"},
		{"unsupported query falls to header", "fr", "en-US,en;q=0.9", "en"},
		{"header regional", "", "en-US", "en"},
		{"header quality order", "", "de;q=1.0, en;q=0.5", "en"},
		{"garbage query", "!!", "", "es"},
		{"nothing", "", "", "es"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.Negotiate(tc.query, tc.header))
		})
	}
}

func TestNewNegotiator_AddsFallback(t *testing.T) {
	n := NewNegotiator([]string{"en"}, "es")
	assert.Equal(t, []string{"es", "en"}, n.Supported())
	assert.Equal(t, "es", n.Fallback())

	n = NewNegotiator(nil, "")
	assert.Equal(t, "es", n.Fallback())
}
