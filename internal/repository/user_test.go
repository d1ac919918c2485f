package repository

import (
	"context"
	"testing"

	"github.com/RomanSiu/contacts-api/internal/model"
	"gorm.io/gorm"
)

func TestUserCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hashed",
		Avatar:   "https://www.gravatar.com/avatar/x",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Expected no create error, got %v", err)
	}
	if user.ID == 0 {
		t.Fatal("Expected assigned ID after create")
	}

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Expected no get error, got %v", err)
	}
	if byEmail.ID != user.ID || byEmail.Confirmed {
		t.Errorf("Expected unconfirmed user %d, got %+v", user.ID, byEmail)
	}

	byID, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("Expected no get error, got %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %s", byID.Email)
	}

	if _, err := repo.GetByEmail(ctx, "ghost@example.com"); err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestUserUpdateRefreshToken(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")

	if err := repo.UpdateRefreshToken(ctx, user.ID, "token-one"); err != nil {
		t.Fatalf("Expected no update error, got %v", err)
	}
	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("Expected no get error, got %v", err)
	}
	if got.RefreshToken != "token-one" {
		t.Errorf("Expected stored token token-one, got %s", got.RefreshToken)
	}

	// An empty token clears the stored value.
	if err := repo.UpdateRefreshToken(ctx, user.ID, ""); err != nil {
		t.Fatalf("Expected no clear error, got %v", err)
	}
	got, err = repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("Expected no get error, got %v", err)
	}
	if got.RefreshToken != "" {
		t.Errorf("Expected cleared token, got %s", got.RefreshToken)
	}

	if err := repo.UpdateRefreshToken(ctx, 9999, "token"); err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound for unknown user, got %v", err)
	}
}

func TestUserConfirmEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "Alice", Email: "alice@example.com", Password: "hashed"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Expected no create error, got %v", err)
	}

	if err := repo.ConfirmEmail(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Expected no confirm error, got %v", err)
	}
	got, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Expected no get error, got %v", err)
	}
	if !got.Confirmed {
		t.Error("Expected user confirmed")
	}

	if err := repo.ConfirmEmail(ctx, "ghost@example.com"); err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound for unknown email, got %v", err)
	}
}

func TestUserUpdateAvatar(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice@example.com")

	updated, err := repo.UpdateAvatar(ctx, "alice@example.com", "https://storage.example.com/avatars/alice.png")
	if err != nil {
		t.Fatalf("Expected no update error, got %v", err)
	}
	if updated.Avatar != "https://storage.example.com/avatars/alice.png" {
		t.Errorf("Expected new avatar URL, got %s", updated.Avatar)
	}

	if _, err := repo.UpdateAvatar(ctx, "ghost@example.com", "url"); err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound for unknown email, got %v", err)
	}
}

func TestUserDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Expected no delete error, got %v", err)
	}
	if _, err := repo.GetByID(ctx, user.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound after delete, got %v", err)
	}
}
