package models

// Testimonial represents a visitor-submitted testimonial
type Testimonial struct {
	ID        int    `json:"id"`
	Author    string `json:"author"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
