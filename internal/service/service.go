package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/matrix-service/internal/config"
	"github.com/Dan9191/matrix-service/internal/models"
	"github.com/Dan9191/matrix-service/internal/repository"
	"github.com/Dan9191/matrix-service/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
)

const (
	tokenTTL       = 24 * time.Hour
	initDataMaxAge = 24 * time.Hour
)

// Store is the persistence the service depends on
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveDate(ctx context.Context, rec *models.DateRecord) error
	ListDates(ctx context.Context, userID int64) ([]models.DateRecord, error)
	DeleteDate(ctx context.Context, userID, id int64) error
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
}

// Cache stores computed results. Implementations swallow their own failures.
type Cache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any)
}

// Service handles business logic
type Service struct {
	repo   Store
	cache  Cache
	log    *logrus.Logger
	config *config.Config
	now    func() time.Time
}

// NewService initializes a new service. cache may be nil.
func NewService(repo Store, cache Cache, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, cache: cache, log: log, config: cfg, now: time.Now}
}

// Now returns the service clock
func (s *Service) Now() time.Time {
	return s.now()
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Username == "" || !strings.Contains(req.Email, "@") || len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: username, email and a password of at least 8 characters are required", ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	s.log.Infof("User logged in: %s", user.Email)
	return s.issueToken(user.ID)
}

// TelegramLogin verifies mini-app init data, registers the Telegram user on
// first sight and returns a JWT token
func (s *Service) TelegramLogin(ctx context.Context, initData string) (string, error) {
	if s.config.BotToken == "" {
		return "", fmt.Errorf("telegram login is not configured")
	}
	tgUser, err := utils.VerifyInitData(initData, s.config.BotToken, initDataMaxAge, s.now())
	if err != nil {
		s.log.WithError(err).Warn("Rejected telegram init data")
		return "", ErrInvalidCredentials
	}

	email := fmt.Sprintf("telegram_%d@users.matrix", tgUser.ID)
	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		// Telegram users never log in with a password; store an unguessable one.
		hash, herr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if herr != nil {
			return "", fmt.Errorf("failed to hash password: %w", herr)
		}
		name := tgUser.Username
		if name == "" {
			name = tgUser.FirstName
		}
		user = &models.User{Username: name, Email: email, PasswordHash: string(hash)}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return "", err
		}
		s.log.Infof("Telegram user registered: %d", tgUser.ID)
	} else if err != nil {
		return "", err
	}

	return s.issueToken(user.ID)
}

func (s *Service) issueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(tokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
