package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/hoangtv-dev/bemart-backend/pkg/auth"
	"github.com/hoangtv-dev/bemart-backend/pkg/config"
	"github.com/hoangtv-dev/bemart-backend/pkg/db/models"
	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/security"
)

type stubUserRepo struct {
	created   *models.User
	createErr error

	byEmail     *models.User
	byEmailErr  error
	lastEmail   string
	touchedID   uuid.UUID
	touchErr    error
	touchCalled bool
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user.ID = uuid.New()
	s.created = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.lastEmail = email
	if s.byEmailErr != nil {
		return nil, s.byEmailErr
	}
	return s.byEmail, nil
}

func (s *stubUserRepo) TouchLastLogin(_ context.Context, id uuid.UUID, _ time.Time) error {
	s.touchCalled = true
	s.touchedID = id
	return s.touchErr
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "bemart-test",
		ExpirationMinutes: 15,
	}
	pwCfg := config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return jwtCfg, pwCfg
}

func TestRegisterIssuesToken(t *testing.T) {
	t.Parallel()

	jwtCfg, pwCfg := testConfigs()
	repo := &stubUserRepo{}
	svc, err := NewService(repo, jwtCfg, pwCfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Minh Tran",
		Email:    "  Minh@Example.COM ",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected user to be persisted")
	}
	if repo.created.Email != "minh@example.com" {
		t.Fatalf("email not normalized, got %q", repo.created.Email)
	}
	if repo.created.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %q", repo.created.Role)
	}
	if ok, _ := security.VerifyPassword("correct horse", repo.created.PasswordHash); !ok {
		t.Fatal("stored hash does not verify the password")
	}

	claims, err := pkgauth.ParseAccessToken(jwtCfg, result.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatalf("token user id %s != result user id %s", claims.UserID, result.User.ID)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	t.Parallel()

	jwtCfg, pwCfg := testConfigs()
	svc, _ := NewService(&stubUserRepo{}, jwtCfg, pwCfg)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Minh",
		Email:    "minh@example.com",
		Password: "short",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginHappyPath(t *testing.T) {
	t.Parallel()

	jwtCfg, pwCfg := testConfigs()
	hash, err := security.HashPassword("correct horse", pwCfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        "minh@example.com",
		PasswordHash: hash,
		Name:         "Minh Tran",
		Role:         enums.UserRoleCustomer,
		IsActive:     true,
	}
	repo := &stubUserRepo{byEmail: user}
	svc, _ := NewService(repo, jwtCfg, pwCfg)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "MINH@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if repo.lastEmail != "minh@example.com" {
		t.Fatalf("lookup used %q, want normalized email", repo.lastEmail)
	}
	if !repo.touchCalled || repo.touchedID != user.ID {
		t.Fatal("expected last login to be stamped")
	}
	if result.User.ID != user.ID {
		t.Fatalf("unexpected user in result: %s", result.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	jwtCfg, pwCfg := testConfigs()
	hash, _ := security.HashPassword("correct horse", pwCfg)
	repo := &stubUserRepo{byEmail: &models.User{
		ID:           uuid.New(),
		Email:        "minh@example.com",
		PasswordHash: hash,
		IsActive:     true,
		Role:         enums.UserRoleCustomer,
	}}
	svc, _ := NewService(repo, jwtCfg, pwCfg)

	_, err := svc.Login(context.Background(), LoginInput{Email: "minh@example.com", Password: "wrong"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if repo.touchCalled {
		t.Fatal("must not stamp login on failed verify")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	jwtCfg, pwCfg := testConfigs()
	repo := &stubUserRepo{byEmailErr: gorm.ErrRecordNotFound}
	svc, _ := NewService(repo, jwtCfg, pwCfg)

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	t.Parallel()

	jwtCfg, pwCfg := testConfigs()
	hash, _ := security.HashPassword("correct horse", pwCfg)
	repo := &stubUserRepo{byEmail: &models.User{
		ID:           uuid.New(),
		Email:        "minh@example.com",
		PasswordHash: hash,
		IsActive:     false,
		Role:         enums.UserRoleCustomer,
	}}
	svc, _ := NewService(repo, jwtCfg, pwCfg)

	_, err := svc.Login(context.Background(), LoginInput{Email: "minh@example.com", Password: "correct horse"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
