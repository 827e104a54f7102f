package app

import (
	"context"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/user"
	"jobboard/internal/validation"
)

type UserService struct {
	users     user.Repository
	analytics analytics.Repository
}

func NewUserService(users user.Repository, analytics analytics.Repository) *UserService {
	return &UserService{users: users, analytics: analytics}
}

// UpdateUserInput is a partial update; nil fields keep their stored value.
type UpdateUserInput struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username"`
	FirstName *string `json:"first_name" validate:"omitempty,notblank,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
}

func (s *UserService) Get(ctx context.Context, userID common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) Update(ctx context.Context, userID common.UUID, input UpdateUserInput) (*user.User, error) {
	trimPtr(input.Username)
	trimPtr(input.FirstName)
	trimPtr(input.LastName)
	if input.Email != nil {
		normalized := normalizeEmail(*input.Email)
		input.Email = &normalized
	}
	if input.Username != nil && *input.Username == "" {
		input.Username = nil
	}
	if input.Email != nil && *input.Email == "" {
		input.Email = nil
	}
	fields, err := validation.Fields(input)
	if err != nil {
		return nil, err
	}
	if input.FirstName != nil && *input.FirstName == "" {
		fields["first_name"] = "This field may not be blank."
	}
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var username, email string
	if input.Username != nil && *input.Username != current.Username {
		username = *input.Username
	}
	if input.Email != nil && *input.Email != current.Email {
		email = *input.Email
	}
	if err := ensureIdentityAvailable(ctx, s.users, fields, username, email, userID); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError(validation.Message, fields)
	}
	if input.Username != nil {
		current.Username = *input.Username
	}
	if input.FirstName != nil {
		current.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		current.LastName = *input.LastName
	}
	if input.Email != nil {
		current.Email = *input.Email
	}
	updated, err := s.users.Update(ctx, *current)
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, common.NewValidationError(validation.Message, map[string]string{"user": "A user with that username or email already exists."})
		}
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.updated", UserID: &userID, Payload: analyticsPayload(ctx, nil)})
	return updated, nil
}

// Delete removes the account together with its profile, sessions, job offers
// and postulations.
func (s *UserService) Delete(ctx context.Context, userID common.UUID) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.deleted", Payload: analyticsPayload(ctx, map[string]string{"user_id": userID.String()})})
	return nil
}

func ensureIdentityAvailable(ctx context.Context, users user.Repository, fields map[string]string, username, email string, exclude common.UUID) error {
	if username != "" && fields["username"] == "" {
		taken, err := users.ExistsByUsername(ctx, username, exclude)
		if err != nil {
			return err
		}
		if taken {
			fields["username"] = "A user with that username already exists."
		}
	}
	if email != "" && fields["email"] == "" {
		taken, err := users.ExistsByEmail(ctx, email, exclude)
		if err != nil {
			return err
		}
		if taken {
			fields["email"] = "A user with that email already exists."
		}
	}
	return nil
}

func trimPtr(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}
