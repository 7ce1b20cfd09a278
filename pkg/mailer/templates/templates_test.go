package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brand = Branding{SiteName: "Ana Dev", OwnerName: "Ana", SiteURL: "https://ana.dev", AdminURL: "https://ana.dev/admin/messages"}

func TestRenderContactMessage(t *testing.T) {
	data := NewContactMessageData(brand, "owner@ana.dev", "Luis", "luis@example.com", "Hola <b>Ana</b>",
		WithTime(time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)), WithIP("203.0.113.9"))

	subject, text, html, err := Render(ContactMessage, data)
	require.NoError(t, err)
	assert.Equal(t, "New message from Luis via Ana Dev", subject)
	assert.Contains(t, text, "Luis <luis@example.com> wrote on 05 March 2024, 10:30 UTC:")
	assert.Contains(t, text, "Hola <b>Ana</b>")
	assert.Contains(t, text, "IP: 203.0.113.9")
	assert.Contains(t, html, "Hola &lt;b&gt;Ana&lt;/b&gt;")
	assert.Contains(t, html, "https://ana.dev/admin/messages")
}

func TestRenderContactReceipt_Language(t *testing.T) {
	subject, text, _, err := Render(ContactReceipt, NewContactReceiptData(brand, "Luis", "luis@example.com", "hi", WithLang("en")))
	require.NoError(t, err)
	assert.Equal(t, "Thanks for your message - Ana Dev", subject)
	assert.Contains(t, text, "Hi Luis,")

	subject, text, _, err = Render(ContactReceipt, NewContactReceiptData(brand, "Luis", "luis@example.com", "hola"))
	require.NoError(t, err)
	assert.Equal(t, "Gracias por tu mensaje - Ana Dev", subject)
	assert.Contains(t, text, "Hola Luis,")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("welcome", map[string]any{})
	assert.Error(t, err)
	assert.False(t, Known("welcome"))
	assert.True(t, Known(ContactReceipt))
}
