// Package i18n picks the content language for a request.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Negotiator matches requested languages against the supported content languages.
type Negotiator struct {
	supported []string
	matcher   language.Matcher
	fallback  string
}

// NewNegotiator builds a negotiator over supported base codes ("es", "en").
// The fallback is used when nothing matches and is added to the supported set
// if missing.
func NewNegotiator(supported []string, fallback string) *Negotiator {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	codes := make([]string, 0, len(supported)+1)
	seen := map[string]bool{}
	add := func(c string) {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		codes = append(codes, c)
	}
	// the matcher treats its first tag as the default
	add(fallback)
	for _, c := range supported {
		add(c)
	}
	if len(codes) == 0 {
		add("es")
	}
	tags := make([]language.Tag, len(codes))
	for i, c := range codes {
		tags[i] = language.Make(c)
	}
	return &Negotiator{supported: codes, matcher: language.NewMatcher(tags), fallback: codes[0]}
}

func (n *Negotiator) Fallback() string { return n.fallback }

func (n *Negotiator) Supported() []string {
	out := make([]string, len(n.supported))
	copy(out, n.supported)
	return out
}

// Negotiate prefers an explicit query value over the Accept-Language header.
// Regional tags collapse to their base ("en-US" -> "en").
func (n *Negotiator) Negotiate(query, acceptLanguage string) string {
	if query != "" {
		if code, ok := n.match(query); ok {
			return code
		}
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := n.matcher.Match(tags...)
			if conf != language.No {
				return n.supported[idx]
			}
		}
	}
	return n.fallback
}

func (n *Negotiator) match(raw string) (string, bool) {
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	code := base.String()
	for _, s := range n.supported {
		if s == code {
			return s, true
		}
	}
	return "", false
}
