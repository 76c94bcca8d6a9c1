package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
	"complaint-service/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	userRepo *repository.UserRepository
	issuer   *auth.Issuer
	denylist *auth.Denylist
}

func NewAuthService(userRepo *repository.UserRepository, issuer *auth.Issuer, denylist *auth.Denylist) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		denylist: denylist,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

func validateRegister(input RegisterInput) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	if !emailPattern.MatchString(strings.TrimSpace(input.Email)) {
		errs = append(errs, FieldError{Field: "email", Message: "Valid email is required"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		errs = append(errs, FieldError{Field: "phone", Message: "Phone number is required"})
	}
	if len(input.Password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, *model.User, error) {
	if errs := validateRegister(input); len(errs) > 0 {
		return "", nil, errs
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Role:         model.UserRoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// EnsureAdmin backs the make-admin bootstrap command: it promotes an
// existing account to admin, or creates a fresh admin account when the email
// is not registered yet. Name, phone and password are only consulted on the
// creation path.
func (s *AuthService) EnsureAdmin(ctx context.Context, input RegisterInput) (created bool, err error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !emailPattern.MatchString(email) {
		return false, ValidationErrors{{Field: "email", Message: "Valid email is required"}}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role == model.UserRoleAdmin {
			return false, nil
		}
		return false, s.userRepo.UpdateRole(ctx, user.ID, model.UserRoleAdmin)
	case errors.Is(err, gorm.ErrRecordNotFound):
		input.Email = email
		if errs := validateRegister(input); len(errs) > 0 {
			return false, errs
		}
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return false, err
		}
		admin := &model.User{
			Name:         strings.TrimSpace(input.Name),
			Email:        email,
			Phone:        strings.TrimSpace(input.Phone),
			PasswordHash: hash,
			Role:         model.UserRoleAdmin,
		}
		return true, s.userRepo.Create(ctx, admin)
	default:
		return false, err
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailPattern.MatchString(email) || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.denylist.Revoke(ctx, claims)
}
