package api

import (
	"strings"

	"user-crud/internal/model"
)

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=50" example:"John Updated"`
	Email *string `json:"email" validate:"omitnil,useremail" example:"john@example.com"`
	Age   *int    `json:"age" validate:"omitnil,min=0,max=120" example:"26"`
}

// Normalize applies the same write transforms as CreateUserRequest to the supplied fields.
func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := strings.ToLower(*r.Email)
		r.Email = &email
	}
}

func (r UpdateUserRequest) Patch() model.UserPatch {
	return model.UserPatch{Name: r.Name, Email: r.Email, Age: r.Age}
}
