package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/raai2005/form-builder-app/internal/server/models"
	"github.com/raai2005/form-builder-app/internal/server/repository"
	"github.com/raai2005/form-builder-app/internal/shared/passhash"
)

const tokenTTL = 24 * time.Hour

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthService implements registration, password verification and stateless
// JWT issuance. There is no session store; the token is the whole credential.
type AuthService struct {
	repo      Repository
	jwtSecret []byte
}

func (a *AuthService) Register(ctx context.Context, fullName, email, password string) (models.AuthResponse, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	var ve ValidationError
	if fullName == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "fullName", Message: "Full name is required"})
	}
	if !emailPattern.MatchString(email) {
		ve.Errors = append(ve.Errors, FieldError{Field: "email", Message: "Please provide a valid email"})
	}
	if len(password) < 6 {
		ve.Errors = append(ve.Errors, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if len(ve.Errors) > 0 {
		return models.AuthResponse{}, &ve
	}

	phc, err := passhash.HashPassword(password)
	if err != nil {
		return models.AuthResponse{}, err
	}
	user, err := a.repo.CreateUser(ctx, fullName, email, phc)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.AuthResponse{}, newValidationError("email", "Email is already registered")
		}
		return models.AuthResponse{}, err
	}
	token, err := a.issueToken(user.ID)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: token, User: user}, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, hash, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	ok, err := passhash.VerifyPassword(hash, password)
	if err != nil || !ok {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	token, err := a.issueToken(user.ID)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{Token: token, User: user}, nil
}

// ParseToken verifies signature and expiry and returns the embedded user id.
func (a *AuthService) ParseToken(_ context.Context, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("invalid token subject")
	}
	return sub, nil
}

// Me returns the public profile for the authenticated user.
func (a *AuthService) Me(ctx context.Context, userID string) (models.User, error) {
	return a.repo.GetUserByID(ctx, userID)
}

func (a *AuthService) issueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.jwtSecret)
}
