package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/espinosa98/rifa-backend/config"
	"github.com/espinosa98/rifa-backend/internal/dto"
	"github.com/espinosa98/rifa-backend/internal/model"
	"github.com/espinosa98/rifa-backend/internal/repository"
	"github.com/espinosa98/rifa-backend/pkg/jwt"
)

// ── test helpers ──

const testRegisterKey = "super-secret-key"

func setupTestAuthService() (AuthService, *mockAccountRepo) {
	accounts := newMockAccountRepo()
	repo := &repository.Repository{
		Account:      accounts,
		Participant:  newMockParticipantRepo(),
		Raffle:       newMockRaffleRepo(),
		RaffleNumber: newMockRaffleNumberRepo(),
	}
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
	cfg.Auth.RegisterKey = testRegisterKey
	cfg.Auth.TokenTTL = time.Hour
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, accounts
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:        "admin",
		Email:           "admin@example.com",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
		RegisterKey:     testRegisterKey,
	}
}

// ── Register tests ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, accounts := setupTestAuthService()

	result, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register should succeed: %v", err)
	}
	if result.Username != "admin" {
		t.Errorf("expected username admin, got %q", result.Username)
	}

	stored, err := accounts.GetByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("account lookup failed: %v", err)
	}
	if stored.PasswordHash == "Str0ng!pass" {
		t.Error("password must not be stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Str0ng!pass")); err != nil {
		t.Error("stored hash does not verify against the password")
	}
}

func TestAuthService_Register_WrongKey(t *testing.T) {
	svc, _ := setupTestAuthService()

	req := validRegisterRequest()
	req.RegisterKey = "guessed"

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrRegisterKeyInvalid) {
		t.Errorf("expected ErrRegisterKeyInvalid, got: %v", err)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc, _ := setupTestAuthService()

	cases := []string{
		"alllowercase1!", // no uppercase
		"ALLUPPERCASE1!", // no lowercase
		"NoDigitsHere!",  // no digit
		"NoSpecials123",  // no special character
	}
	for _, password := range cases {
		req := validRegisterRequest()
		req.Password = password
		req.ConfirmPassword = password

		_, err := svc.Register(context.Background(), req)
		if !errors.Is(err, ErrPasswordPolicy) {
			t.Errorf("password %q: expected ErrPasswordPolicy, got: %v", password, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("first Register should succeed: %v", err)
	}

	_, err := svc.Register(context.Background(), validRegisterRequest())
	if !errors.Is(err, ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got: %v", err)
	}
}

// ── Login tests ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("Register should succeed: %v", err)
	}

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "Str0ng!pass",
	})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("expected a token")
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("expected expires_in=3600, got %d", result.ExpiresIn)
	}
	if result.Account.Email != "admin@example.com" {
		t.Errorf("unexpected account email %q", result.Account.Email)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("Register should succeed: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@example.com",
		Password: "Wrong!pass1",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Str0ng!pass",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

// ── GetCurrent tests ──

func TestAuthService_GetCurrent(t *testing.T) {
	svc, accounts := setupTestAuthService()

	account := &model.Account{Username: "admin", Email: "admin@example.com", PasswordHash: "x"}
	if err := accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("seeding account: %v", err)
	}

	result, err := svc.GetCurrent(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("GetCurrent should succeed: %v", err)
	}
	if result.Username != "admin" {
		t.Errorf("expected username admin, got %q", result.Username)
	}
}

func TestAuthService_GetCurrent_NotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.GetCurrent(context.Background(), 42)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got: %v", err)
	}
}

// ── Logout tests ──

func TestAuthService_Logout_NoRedis(t *testing.T) {
	svc, _ := setupTestAuthService()

	// Without Redis revocation is a no-op, never an error.
	if err := svc.Logout(context.Background(), "token-id", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Logout should be a no-op without Redis: %v", err)
	}
}
