package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/repositories/memory"
	"github.com/okamel/cvbank/internal/utils"
)

func TestAdminLoginAgainstSeededUser(t *testing.T) {
	users := memory.NewUserStore()
	hash, err := utils.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	err = users.Create(context.Background(), &models.User{
		ID:        uuid.NewString(),
		Username:  "admin",
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewAdminService(users, "admin", "")

	if err := svc.Login(context.Background(), "s3cret"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	for _, bad := range []string{"", "S3CRET", "s3cret ", "anything"} {
		if err := svc.Login(context.Background(), bad); !utils.IsCode(err, utils.CodeUnauthorized) {
			t.Fatalf("password %q: want UNAUTHORIZED, got %v", bad, err)
		}
	}
}

func TestAdminLoginFallbackHash(t *testing.T) {
	hash, err := utils.HashPassword("33356")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc := NewAdminService(memory.NewUserStore(), "admin", hash)

	if err := svc.Login(context.Background(), "33356"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := svc.Login(context.Background(), "wrong"); !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Fatalf("want UNAUTHORIZED, got %v", err)
	}
}

func TestAdminLoginUnconfigured(t *testing.T) {
	svc := NewAdminService(memory.NewUserStore(), "admin", "")
	if err := svc.Login(context.Background(), "anything"); !utils.IsCode(err, utils.CodeInternal) {
		t.Fatalf("want INTERNAL, got %v", err)
	}
}
