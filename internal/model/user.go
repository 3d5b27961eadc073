package model

import "time"

// User is a console operator: admin, dentist or receptionist. Role is the
// legacy role name kept for backward compatibility; RoleEntity, when
// present, carries the permission map that gates navigation.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	RoleID       *int64    `db:"role_id" json:"role_id,omitempty"`
	RoleEntity   *Role     `db:"-" json:"role_entity,omitempty"`
	Avatar       string    `db:"avatar" json:"avatar,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Role groups a named set of capabilities. Permissions is stored as JSON;
// historical rows may hold it double-encoded as a JSON string, which the
// permission parser tolerates.
type Role struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Permissions string    `db:"permissions" json:"permissions"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin dentist receptionist"`
	RoleID   *int64 `json:"role_id"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin dentist receptionist"`
	RoleID   *int64  `json:"role_id"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
}

type CreateRoleRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Permissions map[string]bool `json:"permissions" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
