package users

import "time"

type User struct {
	ID                  string     `bson:"_id,omitempty" json:"id"`
	Name                string     `bson:"name" json:"name" validate:"required,max=50"`
	Email               string     `bson:"email" json:"email" validate:"required,mailbox"`
	PasswordHash        string     `bson:"password" json:"-"`
	Role                string     `bson:"role" json:"role" validate:"required,oneof=admin editor"`
	Avatar              string     `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IsActive            bool       `bson:"isActive" json:"isActive"`
	LastLogin           *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	ResetPasswordToken  string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire *time.Time `bson:"resetPasswordExpire,omitempty" json:"-"`
	CreatedAt           time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,mailbox"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type CreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar"`
	IsActive *bool  `json:"isActive"`
}

type UpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Avatar   *string `json:"avatar"`
	IsActive *bool   `json:"isActive"`
}

type password struct {
	Password string `json:"password" validate:"required,min=6"`
}
