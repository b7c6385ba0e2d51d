package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/officetrack/attendance-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
	access *user.AccessPolicy
}

func NewUserService(userRepo user.UserRepository, access *user.AccessPolicy) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
		access:         access,
	}
}

func (s *UserServiceImpl) toResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     int(u.Role),
		RoleName: u.Role.String(),
		IsActive: u.IsActive,
		IsAdmin:  s.access.IsAdmin(&u),
		TTFID:    u.TTFID,
		STTFID:   u.STTFID,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	_, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err == nil {
		return user.UserResponse{}, user.ErrEmailExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	created, err := s.UserRepository.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashStr,
		Role:         user.Role(req.Role),
		IsActive:     true,
		TTFID:        req.TTFID,
		STTFID:       req.STTFID,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return s.toResponse(created), nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return s.toResponse(u), nil
}

// ListForRequester implements user.UserService.
func (s *UserServiceImpl) ListForRequester(ctx context.Context, requesterID string) (user.ListUsersResponse, error) {
	requester, err := s.UserRepository.GetByID(ctx, requesterID)
	if err != nil {
		return user.ListUsersResponse{}, err
	}

	var users []user.User
	switch {
	case s.access.IsAdmin(&requester):
		users, err = s.UserRepository.ListActive(ctx)
	case requester.IsSuperTTF():
		users, err = s.UserRepository.ListTTFsOfSuperTTF(ctx, requester.ID)
	case requester.IsTTF():
		users, err = s.UserRepository.ListEmployeesOfTTF(ctx, requester.ID)
	default:
		return user.ListUsersResponse{}, user.ErrApproverRoleRequired
	}
	if err != nil {
		return user.ListUsersResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, s.toResponse(u))
	}

	return user.ListUsersResponse{
		TotalCount: len(responses),
		Users:      responses,
	}, nil
}

// Deactivate implements user.UserService.
func (s *UserServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.UserRepository.Deactivate(ctx, id)
}
