package models

// UserRequest is one entry of a user's activity log.
type UserRequest struct {
	Method string `json:"method"`
	Route  string `json:"route"`
}
