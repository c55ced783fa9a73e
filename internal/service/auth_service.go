package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parking_billing/internal/domain"
	"parking_billing/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUserAlreadyExists = errors.New("username already exists")
var ErrTokenInvalid = errors.New("token is invalid or expired")

// AuthService is the identity collaborator: it registers users and issues
// the JWT whose subject becomes the caller principal everywhere else.
type AuthService struct {
	userRepo           repository.UserRepository
	jwtSecret          string
	jwtExpirationHours time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpHours time.Duration) *AuthService {
	return &AuthService{
		userRepo:           userRepo,
		jwtSecret:          jwtSecret,
		jwtExpirationHours: jwtExpHours,
	}
}

func (s *AuthService) Register(ctx context.Context, dto domain.RegisterUserDTO) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByUsername(ctx, dto.Username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:          uuid.NewString(),
		Username:    dto.Username,
		Password:    string(hashedPassword),
		Role:        "client",
		CreatedDate: time.Now().UTC(),
	}

	createdUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	createdUser.Password = ""
	return createdUser, nil
}

func (s *AuthService) Login(ctx context.Context, dto domain.LoginUserDTO) (*domain.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(s.jwtExpirationHours)
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"exp":      expirationTime.Unix(),
		"iat":      time.Now().Unix(),
		"role":     user.Role,
		"username": user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &domain.AuthResponseDTO{
		Token:    tokenString,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// ValidateToken is used by the auth middleware.
func (s *AuthService) ValidateToken(tokenString string) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, nil, fmt.Errorf("%w: malformed token", ErrTokenInvalid)
		} else if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, fmt.Errorf("%w: token expired", ErrTokenInvalid)
		} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, nil, fmt.Errorf("%w: token not valid yet", ErrTokenInvalid)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, nil, ErrTokenInvalid
	}
	return token, claims, nil
}
