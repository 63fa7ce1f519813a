package models

// Appointment represents a booked appointment slot.
// AppointmentTime is a string-encoded Unix timestamp in seconds.
type Appointment struct {
	ID              int    `json:"id"`
	Type            string `json:"type"`
	AppointmentTime string `json:"appointment_time"`
	Username        string `json:"username"`
}

// Reminder pairs an upcoming appointment with the owner's email address
type Reminder struct {
	Appointment
	Email string `json:"email"`
}
