package user

import (
	"context"
	"time"

	"dayflow-hrms/internal/shared/contextutil"
	usererrors "dayflow-hrms/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

type Service interface {
	GetMe(ctx context.Context, userID string) (UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	ResetPassword(ctx context.Context, employeeID string) (ResetPasswordResponse, error)
	SetStatus(ctx context.Context, actorUserID, employeeID string, isActive bool) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return UserResponse{}, usererrors.ErrUserNotFound
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if !CheckPassword(u.Password, req.CurrentPassword) {
		l.Warn("change password rejected", zap.String("user_id", userID))
		return usererrors.ErrWrongPassword
	}
	if req.CurrentPassword == req.NewPassword {
		return usererrors.ErrSamePassword
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		l.Error("failed to hash new password", zap.Error(err))
		return err
	}

	u.Password = hashed
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update password", zap.Error(err))
		return mapRepositoryError(err)
	}

	l.Info("password changed", zap.String("user_id", userID))
	return nil
}

// ResetPassword replaces the account password with a generated one and
// returns it to the caller once.
func (s *service) ResetPassword(ctx context.Context, employeeID string) (ResetPasswordResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return ResetPasswordResponse{}, mapRepositoryError(err)
	}

	temp, err := GenerateTemporaryPassword()
	if err != nil {
		return ResetPasswordResponse{}, err
	}
	hashed, err := HashPassword(temp)
	if err != nil {
		return ResetPasswordResponse{}, err
	}

	u.Password = hashed
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to reset password", zap.Error(err))
		return ResetPasswordResponse{}, mapRepositoryError(err)
	}

	l.Info("password reset", zap.String("employee_id", employeeID))
	return ResetPasswordResponse{LoginID: u.LoginID, TemporaryPassword: temp}, nil
}

func (s *service) SetStatus(ctx context.Context, actorUserID, employeeID string, isActive bool) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if !isActive && u.ID.String() == actorUserID {
		return UserResponse{}, usererrors.ErrCannotDeactivateSelf
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user status", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		EmployeeID: u.EmployeeID.String(),
		LoginID:    u.LoginID,
		Email:      u.Email,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
