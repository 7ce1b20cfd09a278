package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// LocalizedString maps a language code to the text of one logical field.
// Keys keep the order in which they were set or decoded.
type LocalizedString struct {
	langs  []string
	values map[string]string
}

// NewLocalizedString builds a value from lang/text pairs, e.g. NewLocalizedString("es", "Hola", "en", "Hello").
// A trailing lang without text is ignored.
func NewLocalizedString(pairs ...string) LocalizedString {
	var s LocalizedString
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return s
}

// Set stores text for lang, keeping the original position of an existing key.
func (s *LocalizedString) Set(lang, text string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[lang]; !ok {
		s.langs = append(s.langs, lang)
	}
	s.values[lang] = text
}

func (s LocalizedString) Get(lang string) (string, bool) {
	v, ok := s.values[lang]
	return v, ok
}

// Langs returns the language codes in insertion order.
func (s LocalizedString) Langs() []string {
	out := make([]string, len(s.langs))
	copy(out, s.langs)
	return out
}

func (s LocalizedString) Len() int { return len(s.langs) }

// IsEmpty reports whether no language carries a non-blank text.
func (s LocalizedString) IsEmpty() bool {
	for _, l := range s.langs {
		if strings.TrimSpace(s.values[l]) != "" {
			return false
		}
	}
	return true
}

// Resolve picks one display string: lang, then fallback, then the first
// remaining key in insertion order, then "". Only empty texts count as
// missing; whitespace is returned as stored.
// A nil receiver resolves to "".
func (s *LocalizedString) Resolve(lang, fallback string) string {
	if s == nil || len(s.langs) == 0 {
		return ""
	}
	if v := s.values[lang]; v != "" {
		return v
	}
	if v := s.values[fallback]; v != "" {
		return v
	}
	for _, l := range s.langs {
		if v := s.values[l]; v != "" {
			return v
		}
	}
	return ""
}

// Clone returns an independent copy.
func (s LocalizedString) Clone() LocalizedString {
	var out LocalizedString
	for _, l := range s.langs {
		out.Set(l, s.values[l])
	}
	return out
}

func (s LocalizedString) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range s.langs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(l)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.values[l])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object of strings or null. Non-string values are skipped.
func (s *LocalizedString) UnmarshalJSON(data []byte) error {
	*s = LocalizedString{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("localized string: expected object, got %v", tok)
	}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := kt.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			continue
		}
		s.Set(key, text)
	}
	_, err = dec.Token()
	return err
}
