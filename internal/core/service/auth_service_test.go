package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

type stubOperatorRepo struct {
	byUsername map[string]*domain.Operator
	seq        int
}

func newStubOperatorRepo() *stubOperatorRepo {
	return &stubOperatorRepo{byUsername: make(map[string]*domain.Operator)}
}

func (r *stubOperatorRepo) FindByUsername(_ context.Context, username string) (*domain.Operator, error) {
	op, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrOperatorNotFound
	}
	clone := *op
	return &clone, nil
}

func (r *stubOperatorRepo) Create(_ context.Context, op *domain.Operator) (*domain.Operator, error) {
	if _, ok := r.byUsername[op.Username]; ok {
		return nil, domain.ErrOperatorExists
	}
	r.seq++
	op.ID = fmt.Sprintf("operator_%d", r.seq)
	clone := *op
	r.byUsername[op.Username] = &clone
	return &clone, nil
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	op, err := svc.Register(context.Background(), "alice", "s3cret", "alice@corp.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.ID == "" {
		t.Error("expected an id on the created operator")
	}
	if op.PasswordHash == "s3cret" {
		t.Error("password must not be stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte("s3cret")) != nil {
		t.Error("stored hash must verify against the original password")
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubOperatorRepo(), "test-secret", time.Hour)

	_, err := svc.Register(context.Background(), "alice", "s3cret", "alice@corp.com", "superuser")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "alice", "s3cret", "", domain.RoleViewer); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "alice", "other", "", domain.RoleViewer)
	if !errors.Is(err, domain.ErrOperatorExists) {
		t.Fatalf("expected ErrOperatorExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "alice", "s3cret", "", domain.RoleAdmin); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, op, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Username != "alice" {
		t.Errorf("unexpected operator: %+v", op)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must verify with the signing secret: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["username"] != "alice" || claims["role"] != domain.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "alice", "s3cret", "", domain.RoleAdmin); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubOperatorRepo(), "test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody", "pass")
	if !errors.Is(err, domain.ErrOperatorNotFound) {
		t.Fatalf("expected ErrOperatorNotFound, got %v", err)
	}
}
