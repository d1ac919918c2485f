package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/RomanSiu/contacts-api/internal/dto"
	"github.com/RomanSiu/contacts-api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One named in-memory database per test; cache=shared lets the pooled
	// connections see the same data without leaking across tests.
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

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Name:      "Owner",
		Email:     email,
		Password:  "hashed",
		Confirmed: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Expected no seed error, got %v", err)
	}
	return user
}

func seedContact(t *testing.T, repo *ContactRepository, userID uint, name, email string, born time.Time) *model.Contact {
	t.Helper()

	contact := &model.Contact{
		Name:     name,
		Surname:  "Tester",
		Email:    email,
		Phone:    "+380501234567",
		BornDate: born,
		UserID:   userID,
	}
	if err := repo.Create(context.Background(), contact); err != nil {
		t.Fatalf("Expected no create error, got %v", err)
	}
	return contact
}

func TestContactCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	born := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	created := seedContact(t, repo, owner.ID, "Ivan", "ivan@example.com", born)

	got, err := repo.GetByID(ctx, owner.ID, created.ID)
	if err != nil {
		t.Fatalf("Expected no get error, got %v", err)
	}
	if got.Name != "Ivan" || got.Email != "ivan@example.com" {
		t.Errorf("Expected created contact back, got %+v", got)
	}

	updated, err := repo.Update(ctx, owner.ID, created.ID, &model.Contact{
		Name:     "Ivan",
		Surname:  "Petrenko",
		Email:    "ivan@example.com",
		Phone:    "+380507654321",
		BornDate: born,
	})
	if err != nil {
		t.Fatalf("Expected no update error, got %v", err)
	}
	if updated.Surname != "Petrenko" || updated.Phone != "+380507654321" {
		t.Errorf("Expected updated fields, got %+v", updated)
	}

	if err := repo.Delete(ctx, owner.ID, created.ID); err != nil {
		t.Fatalf("Expected no delete error, got %v", err)
	}
	if _, err := repo.GetByID(ctx, owner.ID, created.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound after delete, got %v", err)
	}
}

func TestContactUserScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	born := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	contact := seedContact(t, repo, owner.ID, "Ivan", "ivan@example.com", born)

	// Another user must not see, update or delete a foreign contact.
	if _, err := repo.GetByID(ctx, other.ID, contact.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound for foreign get, got %v", err)
	}
	if _, err := repo.Update(ctx, other.ID, contact.ID, &model.Contact{Name: "Hijacked"}); err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound for foreign update, got %v", err)
	}
	if err := repo.Delete(ctx, other.ID, contact.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("Expected gorm.ErrRecordNotFound for foreign delete, got %v", err)
	}

	// Owner still sees the untouched row.
	got, err := repo.GetByID(ctx, owner.ID, contact.ID)
	if err != nil {
		t.Fatalf("Expected no get error, got %v", err)
	}
	if got.Name != "Ivan" {
		t.Errorf("Expected name Ivan, got %s", got.Name)
	}

	contacts, total, err := repo.GetAll(ctx, other.ID, 0, 50, dto.ContactFilter{})
	if err != nil {
		t.Fatalf("Expected no list error, got %v", err)
	}
	if total != 0 || len(contacts) != 0 {
		t.Errorf("Expected empty list for the other user, got %d/%d", len(contacts), total)
	}
}

func TestContactGetAllFiltersAndPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	born := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	seedContact(t, repo, owner.ID, "Ivan", "ivan@example.com", born)
	seedContact(t, repo, owner.ID, "Olena", "olena@example.com", born)
	seedContact(t, repo, owner.ID, "Ivan", "ivan.work@example.com", born)

	tests := []struct {
		name      string
		skip      int
		limit     int
		filter    dto.ContactFilter
		wantLen   int
		wantTotal int64
	}{
		{
			name:      "All contacts",
			limit:     50,
			wantLen:   3,
			wantTotal: 3,
		},
		{
			name:      "Filter by name",
			limit:     50,
			filter:    dto.ContactFilter{Name: "Ivan"},
			wantLen:   2,
			wantTotal: 2,
		},
		{
			name:      "Filter by name and email",
			limit:     50,
			filter:    dto.ContactFilter{Name: "Ivan", Email: "ivan.work@example.com"},
			wantLen:   1,
			wantTotal: 1,
		},
		{
			name:      "Filter with no match",
			limit:     50,
			filter:    dto.ContactFilter{Surname: "Nobody"},
			wantLen:   0,
			wantTotal: 0,
		},
		{
			name:      "Pagination keeps total",
			skip:      1,
			limit:     1,
			wantLen:   1,
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts, total, err := repo.GetAll(ctx, owner.ID, tt.skip, tt.limit, tt.filter)
			if err != nil {
				t.Fatalf("Expected no list error, got %v", err)
			}
			if len(contacts) != tt.wantLen {
				t.Errorf("Expected %d contacts, got %d", tt.wantLen, len(contacts))
			}
			if total != tt.wantTotal {
				t.Errorf("Expected total %d, got %d", tt.wantTotal, total)
			}
		})
	}
}

func TestContactGetAllOrderedByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	born := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	first := seedContact(t, repo, owner.ID, "Zoia", "zoia@example.com", born)
	second := seedContact(t, repo, owner.ID, "Andrii", "andrii@example.com", born)

	contacts, _, err := repo.GetAll(ctx, owner.ID, 0, 50, dto.ContactFilter{})
	if err != nil {
		t.Fatalf("Expected no list error, got %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("Expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].ID != first.ID || contacts[1].ID != second.ID {
		t.Errorf("Expected insertion order by id, got %d then %d", contacts[0].ID, contacts[1].ID)
	}
}

func TestUpcomingBirthdays(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	now := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	birthday := func(month time.Month, day int) time.Time {
		return time.Date(1990, month, day, 0, 0, 0, 0, time.UTC)
	}

	today := seedContact(t, repo, owner.ID, "Today", "today@example.com", birthday(time.June, 10))
	edge := seedContact(t, repo, owner.ID, "Edge", "edge@example.com", birthday(time.June, 17))
	seedContact(t, repo, owner.ID, "Past", "past@example.com", birthday(time.June, 9))
	seedContact(t, repo, owner.ID, "Future", "future@example.com", birthday(time.June, 18))
	seedContact(t, repo, other.ID, "Foreign", "foreign@example.com", birthday(time.June, 12))

	got, err := repo.UpcomingBirthdays(ctx, owner.ID, now)
	if err != nil {
		t.Fatalf("Expected no birthday error, got %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 upcoming birthdays, got %d", len(got))
	}
	if got[0].ID != today.ID || got[1].ID != edge.ID {
		t.Errorf("Expected contacts %d and %d, got %d and %d", today.ID, edge.ID, got[0].ID, got[1].ID)
	}
}

func TestUpcomingBirthdaysYearWrap(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com")
	now := time.Date(2025, 12, 29, 9, 0, 0, 0, time.UTC)

	newYear := seedContact(t, repo, owner.ID, "NewYear", "ny@example.com",
		time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC))
	seedContact(t, repo, owner.ID, "TooLate", "late@example.com",
		time.Date(1985, 1, 10, 0, 0, 0, 0, time.UTC))
	endOfYear := seedContact(t, repo, owner.ID, "EndOfYear", "eoy@example.com",
		time.Date(1985, 12, 31, 0, 0, 0, 0, time.UTC))

	got, err := repo.UpcomingBirthdays(ctx, owner.ID, now)
	if err != nil {
		t.Fatalf("Expected no birthday error, got %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 upcoming birthdays across the year boundary, got %d", len(got))
	}
	if got[0].ID != newYear.ID || got[1].ID != endOfYear.ID {
		t.Errorf("Expected contacts %d and %d, got %d and %d", newYear.ID, endOfYear.ID, got[0].ID, got[1].ID)
	}
}

func TestBirthdayInWindow(t *testing.T) {
	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	tests := []struct {
		name string
		born time.Time
		want bool
	}{
		{
			name: "Birthday today",
			born: time.Date(1990, 6, 10, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "Birthday on last window day",
			born: time.Date(1990, 6, 17, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "Birthday yesterday",
			born: time.Date(1990, 6, 9, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "Birthday just past window",
			born: time.Date(1990, 6, 18, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "Birth year is irrelevant",
			born: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := birthdayInWindow(tt.born, from, to); got != tt.want {
				t.Errorf("Expected %v for %s, got %v", tt.want, tt.born.Format("2006-01-02"), got)
			}
		})
	}
}
