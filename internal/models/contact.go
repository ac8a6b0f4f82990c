package models

// ContactMessage is a public inquiry submitted through the contact form.
type ContactMessage struct {
	BaseModel
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Phone   string `json:"phone"`
	Message string `gorm:"not null" json:"message"`
	Handled bool   `gorm:"default:false" json:"handled"`
}
