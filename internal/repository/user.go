package repository

import (
	"context"
	"time"

	"github.com/RomanSiu/contacts-api/internal/model"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		logger.GetLogger().Debug("Failed to get user by ID",
			zap.Uint("user_id", id),
			zap.Duration("duration", time.Since(start)),
			zap.Error(result.Error),
		)
		return nil, result.Error
	}

	return &user, nil
}

// GetByEmail finds a user by email, the identity key for authentication.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		logger.GetLogger().Debug("Failed to get user by email",
			zap.String("email", email),
			zap.Duration("duration", time.Since(start)),
			zap.Error(result.Error),
		)
		return nil, result.Error
	}

	return &user, nil
}

// Create creates a new user. A duplicate email violates the unique index
// and surfaces as a database error for the service layer to classify.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to create user",
			zap.String("email", user.Email),
			zap.Duration("duration", time.Since(start)),
			zap.Error(result.Error),
		)
		return result.Error
	}

	logger.GetLogger().Info("User created",
		zap.String("email", user.Email),
		zap.Uint("user_id", user.ID),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

// UpdateRefreshToken stores the most recently issued refresh token. Pass an
// empty string to clear it.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id uint, token string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("refresh_token", token)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to update refresh token",
			zap.Uint("user_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ConfirmEmail marks the user's email as verified.
func (r *UserRepository) ConfirmEmail(ctx context.Context, email string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Update("confirmed", true)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to confirm email",
			zap.String("email", email),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.GetLogger().Info("Email confirmed",
		zap.String("email", email),
	)

	return nil
}

// UpdateAvatar persists a new avatar URL and returns the updated user.
func (r *UserRepository) UpdateAvatar(ctx context.Context, email, url string) (*model.User, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Update("avatar", url)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to update avatar",
			zap.String("email", email),
			zap.Error(result.Error),
		)
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByEmail(ctx, email)
}

// Delete permanently removes a user; contacts cascade via the FK constraint.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&model.User{}, id)
	if result.Error != nil {
		logger.GetLogger().Error("Failed to delete user",
			zap.Uint("user_id", id),
			zap.Error(result.Error),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.GetLogger().Info("User deleted",
		zap.Uint("user_id", id),
	)

	return nil
}
