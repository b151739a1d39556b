package models

// AdminLoginRequest is the body of the admin login endpoint
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
