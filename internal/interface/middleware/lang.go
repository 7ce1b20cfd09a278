package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-backend/pkg/i18n"
)

const langKey = "lang"

// Lang negotiates the response language from ?lang= and Accept-Language.
func Lang(n *i18n.Negotiator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := n.Negotiate(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(langKey, lang)
		c.Header("Content-Language", lang)
		c.Header("Vary", "Accept-Language")
		c.Next()
	}
}

// LangFrom returns the negotiated language, or fallback when Lang did not run.
func LangFrom(c *gin.Context, fallback string) string {
	if l := c.GetString(langKey); l != "" {
		return l
	}
	return fallback
}
