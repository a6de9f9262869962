package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jammshop/domain"
	"jammshop/pkg/logger"
	"jammshop/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint64) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateTier(ctx context.Context, id uint64, tier string) error
	Delete(ctx context.Context, id uint64) error
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const tokenTTL = 24 * time.Hour

var validTiers = map[string]bool{
	domain.TierBronze:   true,
	domain.TierSilver:   true,
	domain.TierGold:     true,
	domain.TierPlatinum: true,
}

type userService struct {
	userRepo UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("invalid email format", "error", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	// Check if email already exists
	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existing.ID > 0 {
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName: user.FullName,
		Email:    user.Email,
		Password: string(passwordHash),
		Role:     RoleCustomer,
		Tier:     domain.TierBronze,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("failed to create new user", "error", err)
		return domain.User{}, err
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("invalid user credentials", "error", err)
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if ok := utils.CheckPassword(password, user.Password); !ok {
		return "", domain.User{}, errors.New("invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", "error", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint64) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user id")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// Tier reports the user's loyalty tier for the user-segment pricing
// evaluator.
func (s *userService) Tier(ctx context.Context, userID uint64) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.Tier == "" {
		return domain.TierBronze, nil
	}

	return user.Tier, nil
}

// UpdateTier is admin-only loyalty tier management.
func (s *userService) UpdateTier(ctx context.Context, userID uint64, tier string) error {
	if !validTiers[tier] {
		return fmt.Errorf("unknown tier: %s", tier)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return errors.New("user not found")
	}

	if err := s.userRepo.UpdateTier(ctx, userID, tier); err != nil {
		logger.Error("failed to update user tier", "user_id", userID, "error", err)
		return fmt.Errorf("failed to update tier: %w", err)
	}

	logger.Info("user tier updated", "user_id", userID, "tier", tier)

	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint64) error {
	if id == 0 {
		return errors.New("invalid user id")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return errors.New("user not found")
	}

	return s.userRepo.Delete(ctx, id)
}
