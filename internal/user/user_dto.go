package user

import "github.com/cuti-management/backend/internal/domain"

type CreateUserRequest struct {
	Username         string      `json:"username" binding:"required"`
	Password         string      `json:"password" binding:"required,min=6"`
	Name             string      `json:"name" binding:"required"`
	Email            string      `json:"email" binding:"required,email"`
	Role             domain.Role `json:"role" binding:"required,oneof=admin user"`
	Department       *string     `json:"department"`
	Position         *string     `json:"position"`
	AnnualLeaveQuota int         `json:"annual_leave_quota" binding:"omitempty,min=0"`
}

// UserPublic is the sanitized view of a user; it never carries the hash.
type UserPublic struct {
	ID               string      `json:"id"`
	Username         string      `json:"username"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Role             domain.Role `json:"role"`
	Department       *string     `json:"department"`
	Position         *string     `json:"position,omitempty"`
	AnnualLeaveQuota int         `json:"annual_leave_quota"`
}

func ToPublic(u User) UserPublic {
	return UserPublic{
		ID:               u.ID.String(),
		Username:         u.Username,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		Department:       u.Department,
		Position:         u.Position,
		AnnualLeaveQuota: u.EffectiveQuota(),
	}
}
