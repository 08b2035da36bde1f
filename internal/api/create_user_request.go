package api

import "strings"

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,max=50" example:"John Doe"`
	Email string `json:"email" validate:"required,useremail" example:"john@example.com"`
	Age   *int   `json:"age" validate:"omitnil,min=0,max=120" example:"25"`
}

// Normalize trims the name and lower-cases the email before validation.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(r.Email)
}
