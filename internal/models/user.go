package models

// User represents a registered user
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Not serialized
	Email        string `json:"email,omitempty"`
	CreatedAt    string `json:"created_at"`
}
