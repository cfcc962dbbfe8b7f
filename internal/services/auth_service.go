package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthService owns accounts and the tokens that identify them. It is the only
// place that touches passwords.
type AuthService struct {
	users    repositories.UserRepository
	secret   []byte
	tokenTTL time.Duration
	firebase TokenVerifier
}

// NewAuthService creates an AuthService. verifier may be nil, which disables
// Firebase login.
func NewAuthService(users repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, verifier TokenVerifier) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
		firebase: verifier,
	}
}

func (s *AuthService) FirebaseEnabled() bool {
	return s.firebase != nil
}

// Register creates a local account and returns it with a fresh token
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	if err := s.ensureUnused(ctx, req.Username, req.Email); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", newError(ErrConflict, "Username or email already registered")
		}
		return nil, "", storageError("create user failed", err)
	}
	return s.withToken(user)
}

// Login checks email and password and returns the account with a fresh token
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, "", newError(ErrUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return nil, "", storageError("user lookup failed", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", newError(ErrUnauthorized, "Invalid email or password")
	}
	return s.withToken(user)
}

// FirebaseLogin exchanges a Firebase ID token for a local token. The account
// is found by Firebase UID, then by email (and linked), or created.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*models.User, string, error) {
	if s.firebase == nil {
		return nil, "", newError(ErrNotFound, "Firebase login is not enabled")
	}

	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", newError(ErrUnauthorized, "Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", newError(ErrValidation, "Firebase account has no email address")
	}

	user, err := s.users.GetUserByFirebaseUID(ctx, token.UID)
	if err == nil {
		return s.withToken(user)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", storageError("user lookup failed", err)
	}

	user, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.LinkFirebaseUID(ctx, user.ID, token.UID); err != nil {
			return nil, "", storageError("link firebase account failed", err)
		}
		uid := token.UID
		user.FirebaseUID = &uid
		return s.withToken(user)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, "", storageError("user lookup failed", err)
	}

	name, _ := token.Claims["name"].(string)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	username, err := s.availableUsername(ctx, name)
	if err != nil {
		return nil, "", err
	}
	uid := token.UID
	user = &models.User{Username: username, Email: email, FirebaseUID: &uid}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", newError(ErrConflict, "Account already exists")
		}
		return nil, "", storageError("create user failed", err)
	}
	return s.withToken(user)
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, storageError("user lookup failed", err)
	}
	return user, nil
}

// IssueToken signs an HS256 token for user
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a token issued by IssueToken and returns its claims
func (s *AuthService) ParseToken(tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, newError(ErrUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) withToken(user *models.User) (*models.User, string, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) ensureUnused(ctx context.Context, username, email string) error {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return newError(ErrConflict, "User with this email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return storageError("user lookup failed", err)
	}
	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return newError(ErrConflict, "Username already taken")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return storageError("user lookup failed", err)
	}
	return nil
}

var usernameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// availableUsername derives a valid, currently unused username from a display name
func (s *AuthService) availableUsername(ctx context.Context, name string) (string, error) {
	base := usernameUnsafe.ReplaceAllString(name, "")
	if len(base) > 40 {
		base = base[:40]
	}
	if len(base) < 3 {
		base = "user" + base
	}

	_, err := s.users.GetUserByUsername(ctx, base)
	if errors.Is(err, repositories.ErrNotFound) {
		return base, nil
	}
	if err != nil {
		return "", storageError("user lookup failed", err)
	}
	return base + "-" + uuid.NewString()[:8], nil
}
