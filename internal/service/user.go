package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/RomanSiu/contacts-api/internal/dto"
	apperrors "github.com/RomanSiu/contacts-api/internal/errors"
	"github.com/RomanSiu/contacts-api/internal/model"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AvatarStore persists avatar files and returns a public URL for each.
// The concrete implementation is the minio-backed store in pkg/storage.
type AvatarStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// AvatarDirectory is the user-repository subset the profile flow needs.
type AvatarDirectory interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, email, url string) (*model.User, error)
}

type UserService struct {
	users    AvatarDirectory
	avatars  AvatarStore
	sessions *SessionCache
}

func NewUserService(users AvatarDirectory, avatars AvatarStore, sessions *SessionCache) *UserService {
	return &UserService{
		users:    users,
		avatars:  avatars,
		sessions: sessions,
	}
}

// GetByEmail returns the user's profile representation.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return userResponse(user), nil
}

// UpdateAvatar uploads the file to the object store, persists the new URL
// and invalidates the session cache entry so the next resolved snapshot
// carries the new avatar.
func (s *UserService) UpdateAvatar(ctx context.Context, email, filename, contentType string, reader io.Reader, size int64) (*dto.UserResponse, error) {
	objectName := avatarObjectName(email, filename)

	url, err := s.avatars.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		logger.GetLogger().Error("Failed to upload avatar",
			zap.String("email", email),
			zap.String("object", objectName),
			zap.Error(err),
		)
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user, err := s.users.UpdateAvatar(ctx, email, url)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	// The cached snapshot still carries the old URL until it is dropped.
	s.sessions.Invalidate(ctx, email)

	logger.GetLogger().Info("Avatar updated",
		zap.String("email", email),
		zap.String("avatar", url),
	)

	return userResponse(user), nil
}

// avatarObjectName keys avatars by email so a re-upload overwrites the
// previous object instead of accumulating stale files.
func avatarObjectName(email, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	sanitized := strings.NewReplacer("@", "_at_", "/", "_").Replace(email)
	return fmt.Sprintf("avatars/%s%s", sanitized, ext)
}
