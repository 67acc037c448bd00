package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"echoes/internal/models"
	"echoes/internal/observability"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

const maxPasswordBytes = 72

type RegisterInput struct {
	Username string `validate:"required,max=64,handle"`
	Password string `validate:"required,min=4,max=72"`
	Confirm  string `validate:"eqfield=Password"`
}

var registerMessages = map[string]string{
	"Username.required": "Username is required.",
	"Username.max":      "Username is too long.",
	"Username.handle":   "Username may only contain letters, digits, '.', '_' and '-'.",
	"Password.required": "Password is required.",
	"Password.min":      "Password must be at least 4 characters.",
	"Password.max":      "Password is too long.",
	"Confirm":           "Passwords do not match.",
}

// Register creates a user with the default bio and avatar.
func (s *AccountService) Register(ctx context.Context, username, password, confirm string) (*models.User, error) {
	in := RegisterInput{Username: strings.TrimSpace(username), Password: password, Confirm: confirm}
	if err := validateInput(in, registerMessages); err != nil {
		return nil, err
	}
	// bcrypt's limit is in bytes, max=72 above counts runes
	if len(in.Password) > maxPasswordBytes {
		return nil, models.NewValidationError(registerMessages["Password.max"])
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", in.Username).Count(&existing).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing > 0 {
		return nil, models.NewConflictError("Username already taken.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := models.User{
		Username: in.Username,
		Password: string(hash),
		Bio:      models.DefaultBio,
		Avatar:   models.DefaultAvatar,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// the unique index catches a concurrent registration of the same handle
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Username already taken.")
		}
		return nil, models.NewInternalError(err)
	}

	observability.Registrations.Inc()
	observability.Logger.InfoContext(ctx, "user registered", slog.String("new_user", user.Username))
	return &user, nil
}

// dummyHash is compared against when the user does not exist so both failure
// paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("echoes-dummy-password"), bcrypt.DefaultCost)

func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, models.NewAuthFailureError()
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewAuthFailureError()
	}
	return &user, nil
}

func (s *AccountService) GetUser(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", handle).First(&user).Error; err != nil {
		return nil, storeError(err, "user", handle)
	}
	return &user, nil
}

type ProfileInput struct {
	Bio    string `validate:"max=200"`
	Avatar string `validate:"omitempty,avatar"`
}

var profileMessages = map[string]string{
	"Bio.max":       "Bio must be 200 characters or fewer.",
	"Avatar.avatar": "Unknown avatar.",
}

// UpdateProfile sets bio and avatar; an empty avatar resets to the default.
func (s *AccountService) UpdateProfile(ctx context.Context, handle, bio, avatar string) (*models.User, error) {
	if handle == "" {
		return nil, models.NewUnauthorizedError("Please log in first.")
	}
	in := ProfileInput{Bio: strings.TrimSpace(bio), Avatar: strings.TrimSpace(avatar)}
	if err := validateInput(in, profileMessages); err != nil {
		return nil, err
	}
	if in.Avatar == "" {
		in.Avatar = models.DefaultAvatar
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", handle).
		Updates(map[string]interface{}{"bio": in.Bio, "avatar": in.Avatar})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("user", handle)
	}
	return s.GetUser(ctx, handle)
}
