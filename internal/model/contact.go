package model

// ContactMessage is a contact form submission relayed by mail.
// Name falls back to Subject when the form leaves it empty.
type ContactMessage struct {
	Name    string `json:"name" form:"name"`
	Mail    string `json:"mail" form:"mail" binding:"required,email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// SenderName is the display name used on the outgoing mail.
func (m *ContactMessage) SenderName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Subject
}
