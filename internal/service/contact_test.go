package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/RomanSiu/contacts-api/internal/dto"
	apperrors "github.com/RomanSiu/contacts-api/internal/errors"
	"github.com/RomanSiu/contacts-api/internal/model"
	"github.com/RomanSiu/contacts-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newContactTestService(t *testing.T) (*ContactService, uint) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Expected no open error, got %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Contact{}); err != nil {
		t.Fatalf("Expected no migrate error, got %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	owner := &model.User{Name: "Owner", Email: "owner@example.com", Password: "hashed", Confirmed: true}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("Expected no seed error, got %v", err)
	}

	return NewContactService(repository.NewContactRepository(db)), owner.ID
}

func TestContactServiceCreateNormalizesInput(t *testing.T) {
	svc, ownerID := newContactTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerID, &dto.ContactRequest{
		Name:     "  Ivan ",
		Surname:  " Petrenko ",
		Email:    " Ivan@Example.COM ",
		Phone:    " +380501234567 ",
		BornDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Expected no create error, got %v", err)
	}

	if created.Name != "Ivan" || created.Surname != "Petrenko" {
		t.Errorf("Expected trimmed names, got %q %q", created.Name, created.Surname)
	}
	if created.Email != "ivan@example.com" {
		t.Errorf("Expected normalized email, got %s", created.Email)
	}
	if created.Phone != "+380501234567" {
		t.Errorf("Expected trimmed phone, got %q", created.Phone)
	}
	if created.ID == 0 {
		t.Error("Expected assigned ID in response")
	}
}

func TestContactServiceNotFoundMapping(t *testing.T) {
	svc, ownerID := newContactTestService(t)
	ctx := context.Background()

	req := &dto.ContactRequest{
		Name:     "Ivan",
		Surname:  "Petrenko",
		Email:    "ivan@example.com",
		Phone:    "+380501234567",
		BornDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	if _, err := svc.GetByID(ctx, ownerID, 9999); !errors.Is(err, apperrors.ErrContactNotFound) {
		t.Errorf("Expected ErrContactNotFound on get, got %v", err)
	}
	if _, err := svc.Update(ctx, ownerID, 9999, req); !errors.Is(err, apperrors.ErrContactNotFound) {
		t.Errorf("Expected ErrContactNotFound on update, got %v", err)
	}
	if err := svc.Delete(ctx, ownerID, 9999); !errors.Is(err, apperrors.ErrContactNotFound) {
		t.Errorf("Expected ErrContactNotFound on delete, got %v", err)
	}
}

func TestContactServiceListAndBirthdays(t *testing.T) {
	svc, ownerID := newContactTestService(t)
	ctx := context.Background()

	soon := time.Now().AddDate(-30, 0, 2) // birthday in two days
	farOff := time.Now().AddDate(-30, 0, 40)

	for i, born := range []time.Time{soon, farOff} {
		if _, err := svc.Create(ctx, ownerID, &dto.ContactRequest{
			Name:     fmt.Sprintf("Contact%d", i),
			Surname:  "Tester",
			Email:    fmt.Sprintf("contact%d@example.com", i),
			Phone:    "+380501234567",
			BornDate: born,
		}); err != nil {
			t.Fatalf("Expected no create error, got %v", err)
		}
	}

	all, total, err := svc.GetAll(ctx, ownerID, 0, 50, dto.ContactFilter{})
	if err != nil {
		t.Fatalf("Expected no list error, got %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("Expected 2 contacts, got %d/%d", len(all), total)
	}

	upcoming, err := svc.UpcomingBirthdays(ctx, ownerID)
	if err != nil {
		t.Fatalf("Expected no birthday error, got %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("Expected 1 upcoming birthday, got %d", len(upcoming))
	}
	if upcoming[0].Name != "Contact0" {
		t.Errorf("Expected Contact0, got %s", upcoming[0].Name)
	}
}
