package staff

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/visionhut/visionhut-backend/pkg/auth"
	"github.com/visionhut/visionhut-backend/pkg/config"
	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/security"
)

type stubUserRepo struct {
	user *models.StaffUser
}

func (s stubUserRepo) FindByEmail(_ context.Context, email string) (*models.StaffUser, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s stubUserRepo) Touch(context.Context, uuid.UUID, time.Time) error {
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "visionhut",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func testUser(t *testing.T, password string) *models.StaffUser {
	t.Helper()
	return &models.StaffUser{
		ID:           uuid.New(),
		Email:        "manager@example.com",
		FullName:     "Manager One",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.StaffRoleManager,
		IsActive:     true,
	}
}

func TestServiceLoginMintsToken(t *testing.T) {
	password := "manager-secret"
	user := testUser(t, password)
	cfg := testJWTConfig()

	svc, err := NewService(stubUserRepo{user: user}, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s in claims, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.StaffRoleManager {
		t.Fatalf("expected manager role claim, got %s", claims.Role)
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("expected user in response, got %+v", resp.User)
	}
}

func TestServiceLoginNormalizesEmail(t *testing.T) {
	password := "manager-secret"
	user := testUser(t, password)

	svc, err := NewService(stubUserRepo{user: user}, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Manager@Example.com ",
		Password: password,
	}); err != nil {
		t.Fatalf("login with unnormalized email: %v", err)
	}
}

func TestServiceLoginRejectsWrongPassword(t *testing.T) {
	user := testUser(t, "right-password")

	svc, err := NewService(stubUserRepo{user: user}, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginRejectsInactiveUser(t *testing.T) {
	password := "manager-secret"
	user := testUser(t, password)
	user.IsActive = false

	svc, err := NewService(stubUserRepo{user: user}, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginUnknownUserIsUnauthorized(t *testing.T) {
	svc, err := NewService(stubUserRepo{}, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
