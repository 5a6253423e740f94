package models

// APIResponse is the envelope wrapping every API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	// Stack is only filled outside production
	Stack string `json:"stack,omitempty"`
}
