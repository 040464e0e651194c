package service

import (
	"crypto/subtle"
	"errors"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/logger"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/pkg/jwt"
)

var (
	ErrInvalidCredentials = apperr.Unauthorized("Invalid credentials")
	ErrInvalidPassword    = apperr.Unauthorized("Invalid password")
	ErrEmailExists        = apperr.Validation("Email already exists")
	ErrUserNotFound       = apperr.NotFound("User not found")
)

const legacyAdminEmail = "admin"

type AuthService interface {
	Register(req *RegisterRequest) (*AuthResponse, error)
	Login(req *LoginRequest) (*AuthResponse, error)
	// LegacyLogin checks the shared admin password and returns the fixed admin token.
	LegacyLogin(password string) (*AuthResponse, error)
	Profile(userID uint) (*model.UserResponse, error)
	// EnsureAdmin creates or promotes a database admin account.
	EnsureAdmin(email, password, name string) (*model.User, error)
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Success bool                `json:"success"`
	Token   string              `json:"token"`
	User    *model.UserResponse `json:"user,omitempty"`
}

// AuthOptions holds the shared-secret admin login settings.
type AuthOptions struct {
	AdminPassword    string
	LegacyAdminToken string
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	opts     AuthOptions
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, opts AuthOptions) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		opts:     opts,
	}
}

func (s *authService) Register(req *RegisterRequest) (*AuthResponse, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	// 1. Reject duplicates before hashing
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !isNotFound(err) {
		return nil, apperr.Internal("Failed to register", err)
	}

	// 2. Create the customer account
	user := &model.User{Email: req.Email, Name: req.Name, Role: model.RoleCustomer}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperr.Internal("Failed to register", err)
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Internal("Failed to register", err)
	}

	logger.Get().WithField("user_id", user.ID).Info("customer registered")
	return s.issue(user)
}

// Login accepts either a database account or the shared admin password under
// the pseudo email "admin".
func (s *authService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	email := model.NormalizeEmail(req.Email)
	if email == legacyAdminEmail {
		if _, err := s.LegacyLogin(req.Password); err != nil {
			return nil, ErrInvalidCredentials
		}
		return &AuthResponse{Success: true, Token: s.opts.LegacyAdminToken}, nil
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Internal("Failed to login", err)
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *authService) LegacyLogin(password string) (*AuthResponse, error) {
	if s.opts.AdminPassword == "" || password == "" ||
		subtle.ConstantTimeCompare([]byte(password), []byte(s.opts.AdminPassword)) != 1 {
		return nil, ErrInvalidPassword
	}
	return &AuthResponse{Success: true, Token: s.opts.LegacyAdminToken}, nil
}

func (s *authService) Profile(userID uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Internal("Failed to fetch user", err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) EnsureAdmin(email, password, name string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	if user == nil {
		user = &model.User{Email: email, Name: name, Role: model.RoleAdmin}
		if err := user.SetPassword(password); err != nil {
			return nil, err
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		return user, nil
	}

	if !user.IsAdmin() {
		if err := s.userRepo.UpdateRole(user.ID, model.RoleAdmin); err != nil {
			return nil, err
		}
		user.Role = model.RoleAdmin
	}
	return user, nil
}

func (s *authService) issue(user *model.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperr.Internal("Failed to generate token", err)
	}
	resp := user.ToResponse()
	return &AuthResponse{Success: true, Token: token, User: &resp}, nil
}

