// Package services holds the application's read and write operations.
// Every operation takes the acting user's handle explicitly; nothing here
// reads session state.
package services

import (
	"errors"
	"fmt"
	"regexp"

	"echoes/internal/models"
	"echoes/internal/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Services bundles the services that share one store handle.
type Services struct {
	Accounts   *AccountService
	Feed       *FeedService
	Engagement *EngagementService
	Graph      *GraphService
}

func New(db *gorm.DB) *Services {
	return &Services{
		Accounts:   NewAccountService(db),
		Feed:       NewFeedService(db),
		Engagement: NewEngagementService(db),
		Graph:      NewGraphService(db),
	}
}

// handles start with a letter or digit so "." and ".." never become profile paths
var handlePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("avatar", func(fl validator.FieldLevel) bool {
		return utils.IsAvatarChoice(fl.Field().String())
	})
	return v
}

// validateInput runs struct validation and turns the first failure into a
// ValidationError. messages is keyed by "Field.tag" or "Field".
func validateInput(in interface{}, messages map[string]string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return models.NewInternalError(err)
	}
	fe := verrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return models.NewValidationError(msg)
	}
	if msg, ok := messages[fe.Field()]; ok {
		return models.NewValidationError(msg)
	}
	return models.NewValidationError(fmt.Sprintf("%s is invalid.", fe.Field()))
}

// storeError maps store-level failures onto the AppError taxonomy.
func storeError(err error, resource string, id interface{}) error {
	var appErr *models.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return models.NewNotFoundError(resource, id)
	default:
		return models.NewInternalError(err)
	}
}
