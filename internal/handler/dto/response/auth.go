package response

import "time"

type LoginPage struct {
	SignInURL string
	Next      string
}

type ScanPage struct {
	StreamPath string
}

type SessionResponse struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}
