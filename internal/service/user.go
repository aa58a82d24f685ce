package service

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"moments/backend/internal/model"
	"moments/backend/internal/repository"
)

// UserService handles registration, login and profile management.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account with its profile row.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHashed: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[UserService] registered user %s (id %d)", user.Username, user.ID)
	return user, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords both
// surface as ErrInvalidCredentials so the response does not leak which
// usernames exist.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, model.ErrUserDisabled
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateMe applies a partial update to the current user's account and profile.
func (s *UserService) UpdateMe(ctx context.Context, userID int64, req model.UpdateMeRequest) (*model.User, error) {
	return s.userRepo.UpdateMe(ctx, userID, req)
}

// ChangePassword verifies the old password before setting the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.OldPassword)); err != nil {
		return model.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

// SetActive enables or disables an account. Staff only; enforced by the handler.
func (s *UserService) SetActive(ctx context.Context, userID int64, active bool) error {
	return s.userRepo.SetActive(ctx, userID, active)
}

func (s *UserService) AdminList(ctx context.Context, search string, page, pageSize int) ([]model.User, int, error) {
	return s.userRepo.AdminList(ctx, search, page, pageSize)
}
