package user

type UserResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	LoginID    string `json:"loginId"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsActive   bool   `json:"isActive"`
	CreatedAt  string `json:"createdAt"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ResetPasswordResponse is the only place a temporary password is returned.
type ResetPasswordResponse struct {
	LoginID           string `json:"loginId"`
	TemporaryPassword string `json:"temporaryPassword"`
}
