package entity

import "time"

// ContactMessage is what a visitor submits; id and timestamp are assigned by storage.
type ContactMessage struct {
	FullName string
	Email    string
	Content  string
}

// Message is a stored contact message as seen from the admin console.
type Message struct {
	ID        string
	FullName  string
	Email     string
	Content   string
	Read      bool
	CreatedAt *time.Time
}
