package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/RomanSiu/contacts-api/internal/constants"
	"github.com/RomanSiu/contacts-api/internal/dto"
	apperrors "github.com/RomanSiu/contacts-api/internal/errors"
	"github.com/RomanSiu/contacts-api/internal/model"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserDirectory is the persistent source of truth for user records. The
// concrete implementation is repository.UserRepository; tests substitute a
// fake.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateRefreshToken(ctx context.Context, id uint, token string) error
	ConfirmEmail(ctx context.Context, email string) error
}

// Mailer delivers confirmation email. Delivery failures are logged, never
// fatal to the request that triggered them.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, token string) error
}

// AuthService orchestrates token issuance/verification, the session cache
// and the user directory.
type AuthService struct {
	tokens   *TokenService
	users    UserDirectory
	sessions *SessionCache
	mailer   Mailer
}

func NewAuthService(tokens *TokenService, users UserDirectory, sessions *SessionCache, mailer Mailer) *AuthService {
	return &AuthService{
		tokens:   tokens,
		users:    users,
		sessions: sessions,
		mailer:   mailer,
	}
}

// ResolveCurrentUser turns a bearer access token into the authenticated
// user. Token decode failures of any kind surface as ErrUnauthorized. The
// lookup is cache-then-directory: a hit is returned without revalidation
// (staleness bounded by the cache TTL), a miss queries the directory and
// populates the cache.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, accessToken string) (*dto.AuthUser, error) {
	email, err := s.tokens.Decode(accessToken, constants.ScopeAccessToken)
	if err != nil {
		logger.GetLogger().Debug("Access token rejected",
			zap.Error(err),
		)
		return nil, apperrors.WrapError(apperrors.ErrUnauthorized, err)
	}

	if email == "" {
		return nil, apperrors.ErrUnauthorized
	}

	if cached, ok := s.sessions.Get(ctx, email); ok {
		return cached, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	snapshot := authSnapshot(user)
	s.sessions.Put(ctx, email, snapshot)

	return snapshot, nil
}

// Register creates a new user with a hashed password and a gravatar-derived
// default avatar, then sends the confirmation email.
func (s *AuthService) Register(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		logger.GetLogger().Warn("Signup rejected, email already registered",
			zap.String("email", email),
		)
		return nil, apperrors.ErrEmailExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hashedPassword,
		Avatar:   gravatarURL(email),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.sendConfirmation(ctx, email)

	logger.LogAuth(email, "signup", true)

	return userResponse(user), nil
}

// Login verifies credentials and issues a fresh access/refresh pair. The
// refresh token is recorded on the user row so Refresh can validate against
// it later.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.TokenPairResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.LogAuth(email, "login", false, zap.String("reason", "unknown email"))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !VerifyPassword(password, user.Password) {
		logger.LogAuth(email, "login", false, zap.String("reason", "wrong password"))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.Confirmed {
		logger.LogAuth(email, "login", false, zap.String("reason", "email not confirmed"))
		return nil, apperrors.ErrEmailNotConfirmed
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(email, "login", true, zap.Uint("user_id", user.ID))

	return pair, nil
}

// Refresh rotates the token pair. The presented refresh token must carry the
// refresh scope AND match the token stored on the user row; a mismatch
// clears the stored token so a stolen older token cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	email, err := s.tokens.Decode(refreshToken, constants.ScopeRefreshToken)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrUnauthorized, err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if user.RefreshToken != refreshToken {
		logger.LogAuth(email, "refresh", false, zap.String("reason", "token does not match stored token"))
		if err := s.users.UpdateRefreshToken(ctx, user.ID, ""); err != nil {
			logger.GetLogger().Error("Failed to clear stored refresh token",
				zap.Uint("user_id", user.ID),
				zap.Error(err),
			)
		}
		return nil, apperrors.ErrInvalidRefreshToken
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.LogAuth(email, "refresh", true, zap.Uint("user_id", user.ID))

	return pair, nil
}

// ConfirmEmail decodes an email-confirmation token (unscoped) and marks the
// named email as confirmed. Re-confirming an already-confirmed email is a
// no-op success, not an error.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	email, err := s.tokens.Decode(token, "")
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if user.Confirmed {
		return nil
	}

	if err := s.users.ConfirmEmail(ctx, email); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	// The cached snapshot, if any, still carries confirmed=false.
	s.sessions.Invalidate(ctx, email)

	return nil
}

// RequestConfirmEmail re-sends the confirmation mail. It deliberately does
// not reveal whether the email is registered.
func (s *AuthService) RequestConfirmEmail(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if user.Confirmed {
		return nil
	}

	s.sendConfirmation(ctx, email)
	return nil
}

// InvalidateSession drops the cached snapshot for the email. Exposed for
// flows outside this service that mutate cached-sensitive user fields.
func (s *AuthService) InvalidateSession(ctx context.Context, email string) {
	s.sessions.Invalidate(ctx, email)
}

func (s *AuthService) issuePair(ctx context.Context, user *model.User) (*dto.TokenPairResponse, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.Email)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.Email)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, email string) {
	if s.mailer == nil {
		return
	}

	token, err := s.tokens.IssueEmailToken(email)
	if err != nil {
		logger.GetLogger().Error("Failed to issue email confirmation token",
			zap.String("email", email),
			zap.Error(err),
		)
		return
	}

	if err := s.mailer.SendConfirmation(ctx, email, token); err != nil {
		logger.GetLogger().Warn("Failed to send confirmation email",
			zap.String("email", email),
			zap.Error(err),
		)
	}
}

func authSnapshot(user *model.User) *dto.AuthUser {
	return &dto.AuthUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Confirmed: user.Confirmed,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

func userResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Confirmed: user.Confirmed,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// gravatarURL derives the default avatar for a new account from the email,
// matching gravatar's md5 addressing scheme.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", sum)
}
