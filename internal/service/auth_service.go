package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"finedu/backend/internal/logger"
	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
)

const (
	keyAuthJWTSecret = "auth.jwt_secret"

	sessionTTL = 7 * 24 * time.Hour
)

// Demo account credentials seeded in debug mode.
const (
	DemoUsername = "demo_student"
	DemoPassword = "demo123"
)

// Auth errors
var (
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserInactive     = errors.New("user is inactive")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email is invalid")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooWeak  = errors.New("password must be at least 6 characters with a letter and a digit")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Identity is the authenticated caller derived from a token.
type Identity struct {
	UserID int64
	Role   string
}

// Profile holds the editable user profile fields.
type Profile struct {
	FullName *string
	School   *string
	Grade    *string
	Major    *string
}

// AuthResponse is returned after successful login/register.
type AuthResponse struct {
	Token string
	User  model.User
}

// AuthService provides registration, login and token validation.
type AuthService interface {
	Register(ctx context.Context, username, email, password, role string, profile Profile) (*AuthResponse, error)
	// Login accepts a username or an email.
	Login(ctx context.Context, login, password string) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	// ValidateToken verifies the JWT signature, the backing session and the
	// user's active flag.
	ValidateToken(ctx context.Context, token string) (Identity, error)
	GetUser(ctx context.Context, userID int64) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, userID int64, profile Profile, email string) (model.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	// EnsureDemoUser creates the demo student account if it does not exist.
	EnsureDemoUser(ctx context.Context) error
	CleanupExpiredSessions(ctx context.Context) error
}

type authService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	settings  repository.SettingsRepository
	jwtSecret []byte
}

// NewAuthService creates the auth service. When envSecret is empty, a secret
// is generated once and persisted in settings so tokens survive restarts.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, settings repository.SettingsRepository, envSecret string) (AuthService, error) {
	secret, err := resolveJWTSecret(context.Background(), settings, envSecret)
	if err != nil {
		return nil, err
	}
	return &authService{
		users:     users,
		sessions:  sessions,
		settings:  settings,
		jwtSecret: secret,
	}, nil
}

func resolveJWTSecret(ctx context.Context, settings repository.SettingsRepository, envSecret string) ([]byte, error) {
	if envSecret != "" {
		return []byte(envSecret), nil
	}

	stored, err := settings.Get(ctx, keyAuthJWTSecret)
	if err != nil {
		return nil, fmt.Errorf("load jwt secret: %w", err)
	}
	if stored != nil && stored.Value != "" {
		return hex.DecodeString(stored.Value)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate jwt secret: %w", err)
	}
	if err := settings.Set(ctx, keyAuthJWTSecret, hex.EncodeToString(secret)); err != nil {
		return nil, fmt.Errorf("save jwt secret: %w", err)
	}
	return secret, nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 6 {
		return ErrPasswordTooWeak
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrPasswordTooWeak
	}
	return nil
}

func (s *authService) Register(ctx context.Context, username, email, password, role string, profile Profile) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role == "" {
		role = model.RoleStudent
	}
	if !model.ValidRole(role) {
		return nil, ErrInvalid
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     profile.FullName,
		School:       profile.School,
		Grade:        profile.Grade,
		Major:        profile.Major,
		Role:         role,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user registered",
		"module", "auth", "action", "register", "resource", "user", "result", "ok",
		"user_id", user.ID, "role", user.Role)

	return s.openSession(ctx, user)
}

func (s *authService) Login(ctx context.Context, login, password string) (*AuthResponse, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now

	return s.openSession(ctx, user)
}

func (s *authService) openSession(ctx context.Context, user model.User) (*AuthResponse, error) {
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.generateToken(user, session)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) generateToken(user model.User, session model.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", user.ID),
		"jti":  session.ID,
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  session.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return ErrInvalidToken
	}
	return s.sessions.Delete(ctx, jti)
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (Identity, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return Identity{}, ErrInvalidToken
	}

	session, err := s.sessions.GetByID(ctx, jti)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrInvalidToken
		}
		return Identity{}, fmt.Errorf("load session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, jti)
		return Identity{}, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrInvalidToken
		}
		return Identity{}, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return Identity{}, ErrUserInactive
	}

	return Identity{UserID: user.ID, Role: user.Role}, nil
}

func (s *authService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) GetUser(ctx context.Context, userID int64) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, profile Profile, email string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email != "" && !emailPattern.MatchString(email) {
		return model.User{}, ErrEmailInvalid
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if email == "" {
		email = user.Email
	}

	if err := s.users.UpdateProfile(ctx, userID, profile.FullName, profile.School, profile.Grade, profile.Major, email); err != nil {
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}
	return s.GetUser(ctx, userID)
}

func (s *authService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("save password: %w", err)
	}

	// Force re-login everywhere after a password change.
	return s.sessions.DeleteByUser(ctx, userID)
}

func (s *authService) EnsureDemoUser(ctx context.Context) error {
	_, err := s.users.GetByUsername(ctx, DemoUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	fullName := "演示学生"
	_, err = s.users.Create(ctx, model.User{
		Username:     DemoUsername,
		Email:        "demo@example.com",
		PasswordHash: string(hash),
		FullName:     &fullName,
		Role:         model.RoleStudent,
	})
	if err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}

	logger.Info("demo user seeded", "module", "auth", "action", "seed", "resource", "user", "result", "ok")
	return nil
}

func (s *authService) CleanupExpiredSessions(ctx context.Context) error {
	n, err := s.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Debug("expired sessions removed", "module", "auth", "action", "cleanup", "resource", "session", "result", "ok", "count", n)
	}
	return nil
}
