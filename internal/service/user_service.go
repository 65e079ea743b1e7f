package service

import (
	"context"
	"errors"
	"os"
	"regexp"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"backend/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// DTOs for request validation
type SignUpRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	FullName     string `json:"full_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AadharNumber string `json:"aadhar_number" binding:"required"`
	Address      string `json:"address" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest carries the editable profile fields. Email and Aadhaar
// are fixed at registration.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse returns account/profile data without sensitive fields.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AadharNumber string    `json:"aadhar_number"`
	Address      string    `json:"address"`
	Role         string    `json:"role,omitempty"`
	CreatedAt    string    `json:"created_at"`
}

// UserService covers registration, login, token refresh and the profile
// directory consumed by the admin tax flows.
type UserService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetMe(ctx context.Context, id string) (*UserResponse, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*UserResponse, error)
	ResolveUser(ctx context.Context, id string) (*UserResponse, error)
	ListEligibleUsers(ctx context.Context) ([]UserResponse, error)
}

type userService struct {
	users  repository.UserRepository
	tokens repository.RefreshTokenRepository
	roles  repository.UserRoleRepository
	access AccessService
	txMgr  repository.TransactionManager
}

// NewUserService returns a new instance of UserService
func NewUserService(
	users repository.UserRepository,
	tokens repository.RefreshTokenRepository,
	roles repository.UserRoleRepository,
	access AccessService,
	txMgr repository.TransactionManager,
) UserService {
	return &userService{users: users, tokens: tokens, roles: roles, access: access, txMgr: txMgr}
}

// Basic email format fallback in addition to gin's binding validation
var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

func mapToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		Phone:        user.Phone,
		AadharNumber: user.AadharNumber,
		Address:      user.Address,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}

func (s *userService) SignUp(ctx context.Context, req SignUpRequest) (*UserResponse, error) {
	if !emailRegex.MatchString(req.Email) {
		return nil, apperr.Validation("invalid email format")
	}
	if !validation.PhoneOK(req.Phone) {
		return nil, apperr.Validation("phone number must be exactly 10 digits")
	}
	if !validation.AadharOK(req.AadharNumber) {
		return nil, apperr.Validation("aadhar number must be exactly 12 digits")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Validation("email already registered")
	}
	if _, err := s.users.GetByAadhar(ctx, req.AadharNumber); err == nil {
		return nil, apperr.Validation("aadhar number already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Retrieval("failed to hash password", err)
	}

	user := &model.User{
		Email:        req.Email,
		Password:     string(hashedPassword),
		FullName:     req.FullName,
		Phone:        req.Phone,
		AadharNumber: req.AadharNumber,
		Address:      req.Address,
	}

	// Account row and citizen role assignment land together or not at all;
	// the role table is what the access gate reads.
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}
		return s.roles.Assign(txCtx, user.ID, model.RoleCitizen)
	})
	if err != nil {
		return nil, apperr.Retrieval("failed to create account", err)
	}

	return mapToUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	role := s.access.RoleFor(ctx, user.ID)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	})

	// Same fallback strategy as the auth middleware
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, apperr.Retrieval("failed to generate token", err)
	}

	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     ksuid.New().String(),
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.tokens.Create(ctx, refresh); err != nil {
		return nil, apperr.Retrieval("failed to persist refresh token", err)
	}

	return &TokenResponse{Token: tokenString, RefreshToken: refresh.Token}, nil
}

// RefreshToken rotates the refresh token and issues a new access token.
func (s *userService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	stored, err := s.tokens.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokens.DeleteByToken(ctx, stored.Token)
		return nil, apperr.Unauthorized("refresh token expired")
	}

	user, err := s.users.GetByID(ctx, stored.UserID.String())
	if err != nil {
		return nil, apperr.Unauthorized("account no longer exists")
	}

	if err := s.tokens.DeleteByToken(ctx, stored.Token); err != nil {
		return nil, apperr.Retrieval("failed to rotate refresh token", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.DeleteByToken(ctx, refreshToken)
}

func (s *userService) GetMe(ctx context.Context, id string) (*UserResponse, error) {
	res, err := s.ResolveUser(ctx, id)
	if err != nil {
		return nil, err
	}
	res.Role = s.access.RoleFor(ctx, res.ID)
	return res, nil
}

// UpdateProfile edits the caller's own profile attributes. Completing a
// profile here is what makes the account eligible for tax records.
func (s *userService) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}

	user, err := s.users.GetByID(ctx, uid.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Retrieval("failed to fetch user", err)
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		if !validation.PhoneOK(req.Phone) {
			return nil, apperr.Validation("phone number must be exactly 10 digits")
		}
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperr.Retrieval("failed to update profile", err)
	}

	res := mapToUserResponse(user)
	res.Role = s.access.RoleFor(ctx, user.ID)
	return res, nil
}

// ResolveUser maps an account id to profile attributes. Callers branch on
// the not-found result rather than failing outright.
func (s *userService) ResolveUser(ctx context.Context, id string) (*UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid user id")
	}

	user, err := s.users.GetByID(ctx, uid.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Retrieval("failed to fetch user", err)
	}
	return mapToUserResponse(user), nil
}

// ListEligibleUsers scans the profile directory and returns only accounts
// passing the completeness predicate. The users table is the single source
// of truth; sign-up keeps it populated.
func (s *userService) ListEligibleUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperr.Retrieval("failed to fetch users", err)
	}

	eligible := make([]UserResponse, 0, len(users))
	for i := range users {
		if validation.EligibleProfile(&users[i]) {
			eligible = append(eligible, *mapToUserResponse(&users[i]))
		}
	}
	return eligible, nil
}
