package repository

import (
	"context"
	"time"

	"github.com/RomanSiu/contacts-api/internal/dto"
	"github.com/RomanSiu/contacts-api/internal/model"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// GetAll returns a page of the user's contacts. Filters are exact-match and
// mutually combinable; every query is scoped by the owning user ID.
func (r *ContactRepository) GetAll(ctx context.Context, userID uint, skip, limit int, filter dto.ContactFilter) ([]model.Contact, int64, error) {
	start := time.Now()
	var contacts []model.Contact
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Contact{}).Where("user_id = ?", userID)

	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.Surname != "" {
		query = query.Where("surname = ?", filter.Surname)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	if err := query.Count(&total).Error; err != nil {
		logger.GetLogger().Error("Failed to count contacts",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	if err := query.Order("id").Offset(skip).Limit(limit).Find(&contacts).Error; err != nil {
		logger.GetLogger().Error("Failed to fetch contacts",
			zap.Uint("user_id", userID),
			zap.Int("skip", skip),
			zap.Int("limit", limit),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, 0, err
	}

	return contacts, total, nil
}

// GetByID returns the contact only when it belongs to the given user;
// a foreign-owned contact is indistinguishable from a missing one.
func (r *ContactRepository) GetByID(ctx context.Context, userID, contactID uint) (*model.Contact, error) {
	var contact model.Contact

	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", contactID, userID).First(&contact)
	if result.Error != nil {
		logger.GetLogger().Debug("Failed to get contact",
			zap.Uint("user_id", userID),
			zap.Uint("contact_id", contactID),
			zap.Error(result.Error),
		)
		return nil, result.Error
	}

	return &contact, nil
}

func (r *ContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	result := r.db.WithContext(ctx).Create(contact)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to create contact",
			zap.Uint("user_id", contact.UserID),
			zap.Error(result.Error),
		)
		return result.Error
	}

	logger.GetLogger().Info("Contact created",
		zap.Uint("user_id", contact.UserID),
		zap.Uint("contact_id", contact.ID),
	)

	return nil
}

func (r *ContactRepository) Update(ctx context.Context, userID, contactID uint, contact *model.Contact) (*model.Contact, error) {
	result := r.db.WithContext(ctx).Model(&model.Contact{}).
		Where("id = ? AND user_id = ?", contactID, userID).
		Updates(map[string]interface{}{
			"name":      contact.Name,
			"surname":   contact.Surname,
			"email":     contact.Email,
			"phone":     contact.Phone,
			"born_date": contact.BornDate,
		})
	if result.Error != nil {
		logger.GetLogger().Error("Failed to update contact",
			zap.Uint("user_id", userID),
			zap.Uint("contact_id", contactID),
			zap.Error(result.Error),
		)
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, userID, contactID)
}

func (r *ContactRepository) Delete(ctx context.Context, userID, contactID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", contactID, userID).Delete(&model.Contact{})
	if result.Error != nil {
		logger.GetLogger().Error("Failed to delete contact",
			zap.Uint("user_id", userID),
			zap.Uint("contact_id", contactID),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.GetLogger().Info("Contact deleted",
		zap.Uint("user_id", userID),
		zap.Uint("contact_id", contactID),
	)

	return nil
}

// UpcomingBirthdays returns the user's contacts whose birthday falls within
// the next seven days, year wrap included. The candidate set is fetched
// scoped by user and filtered in Go so the window logic stays portable
// across database engines.
func (r *ContactRepository) UpcomingBirthdays(ctx context.Context, userID uint, now time.Time) ([]model.Contact, error) {
	var contacts []model.Contact

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&contacts).Error; err != nil {
		logger.GetLogger().Error("Failed to fetch contacts for birthday query",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	from := now
	to := now.AddDate(0, 0, 7)

	var upcoming []model.Contact
	for _, contact := range contacts {
		if contact.BornDate.IsZero() {
			continue
		}
		if birthdayInWindow(contact.BornDate, from, to) {
			upcoming = append(upcoming, contact)
		}
	}

	return upcoming, nil
}

// birthdayInWindow reports whether the next anniversary of born falls in
// [from, to]. Both bounds are compared at day granularity.
func birthdayInWindow(born, from, to time.Time) bool {
	from = truncateToDay(from)
	to = truncateToDay(to)

	for _, year := range []int{from.Year(), from.Year() + 1} {
		anniversary := time.Date(year, born.Month(), born.Day(), 0, 0, 0, 0, from.Location())
		if !anniversary.Before(from) && !anniversary.After(to) {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
