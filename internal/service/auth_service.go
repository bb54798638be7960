package service

import (
	"context"
	"errors"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/model"
	"github.com/espinosa98/rifa-backend/internal/repository"
	"github.com/espinosa98/rifa-backend/pkg/jwt"
	"github.com/espinosa98/rifa-backend/pkg/redis"
)

// ── auth module errors ──

var (
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrRegisterKeyInvalid = errors.New("wrong register key")
	ErrAccountExists      = errors.New("username or email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrPasswordPolicy     = errors.New("password must contain a lowercase letter, an uppercase letter, a digit and a special character")
)

// AuthService is the authentication business interface.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetCurrent(ctx context.Context, accountID uint) (*dto.AccountResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.RegisterKey != s.cfg.Auth.RegisterKey {
		return nil, ErrRegisterKeyInvalid
	}
	if !passwordMeetsPolicy(req.Password) {
		return nil, ErrPasswordPolicy
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hashing password failed", zap.Error(err))
		return nil, err
	}

	account := &model.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Account.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAccountExists
		}
		s.logger.Error("creating account failed", zap.Error(err))
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	account, err := s.repo.Account.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("looking up account failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateToken(account.ID, account.Username)
	if err != nil {
		s.logger.Error("generating token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.TokenTTL().Seconds()),
		Account: dto.AccountResponse{
			ID:       account.ID,
			Username: account.Username,
			Email:    account.Email,
		},
	}, nil
}

// Logout revokes the session token via the Redis blacklist. Without Redis the
// cookie clear on the handler side is all we can do.
func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.rdb == nil || tokenID == "" {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, tokenID, time.Until(expiresAt)); err != nil {
		s.logger.Error("blacklisting token failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrent(ctx context.Context, accountID uint) (*dto.AccountResponse, error) {
	account, err := s.repo.Account.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		s.logger.Error("looking up account failed", zap.Error(err))
		return nil, err
	}

	return &dto.AccountResponse{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
	}, nil
}

// passwordMeetsPolicy checks for at least one lowercase, uppercase, digit and
// special character. Length is enforced by the request binding.
func passwordMeetsPolicy(password string) bool {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return lower && upper && digit && special
}
