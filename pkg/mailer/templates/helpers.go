package templates

import (
	"strings"
	"time"
)

// Branding is the site identity shared by every email.
type Branding struct {
	SiteName  string
	OwnerName string
	SiteURL   string
	AdminURL  string
	LogoURL   string
}

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

// WithLang sets the language of the sender-facing copy. Only "en" switches
// away from Spanish.
func WithLang(lang string) Option {
	return func(d *EmailData) {
		if l := strings.ToLower(strings.TrimSpace(lang)); l != "" {
			d.Lang = l
		}
	}
}

func NewBaseEmailData(b Branding, typ, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Type:           typ,
		Lang:           "es",
		RecipientEmail: recipient,
		SiteName:       b.SiteName,
		OwnerName:      b.OwnerName,
		SiteURL:        b.SiteURL,
		AdminURL:       b.AdminURL,
		LogoURL:        b.LogoURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewContactMessageData is addressed to the owner.
func NewContactMessageData(b Branding, owner, senderName, senderEmail, message string, opts ...Option) map[string]any {
	d := NewBaseEmailData(b, ContactMessage, owner, opts...)
	d.SenderName, d.SenderEmail, d.Message = senderName, senderEmail, message
	return ToMap(d)
}

// NewContactReceiptData is addressed to the sender.
func NewContactReceiptData(b Branding, senderName, senderEmail, message string, opts ...Option) map[string]any {
	d := NewBaseEmailData(b, ContactReceipt, senderEmail, opts...)
	d.SenderName, d.SenderEmail, d.Message = senderName, senderEmail, message
	return ToMap(d)
}
