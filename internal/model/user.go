// File: internal/model/user.go
package model

import "time"

// User 是服務中唯一的資源
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch 描述部分更新；nil 欄位保持原值
type UserPatch struct {
	Name  *string
	Email *string
	Age   *int
}

// Empty reports whether the patch carries no field changes.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil
}
