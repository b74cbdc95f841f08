package service

import (
	"context"
	"time"

	"momentcanvas/internal/messages"
	"momentcanvas/internal/models"
	"momentcanvas/internal/repository"
	"momentcanvas/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// SignupInput carries the fields for a new local account.
type SignupInput struct {
	LoginID  string
	Password string
	Nickname string
	Birthday *time.Time
	Gender   models.Gender
	Persona  string
}

// UpdateProfileInput carries the profile fields a user may change.
type UpdateProfileInput struct {
	UserID   uint
	Nickname string
	Birthday *time.Time
	Gender   models.Gender
	Persona  string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup registers a local account with a hashed password.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateLoginID(in.LoginID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNickname(in.Nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByLoginID(ctx, in.LoginID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewDuplicateError(messages.Get("error.user.duplicate.login_id"))
	}
	if existing, err := s.userRepo.GetByNickname(ctx, in.Nickname); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewDuplicateError(messages.Get("error.user.duplicate.nickname"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		LoginID:  in.LoginID,
		Password: string(hash),
		Nickname: in.Nickname,
		Birthday: in.Birthday,
		Gender:   in.Gender,
		Persona:  in.Persona,
		Status:   models.UserStatusActive,
		Role:     models.UserRoleUser,
		Provider: models.ProviderNone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// NicknameAvailable reports whether the nickname is valid and unclaimed.
func (s *UserService) NicknameAvailable(ctx context.Context, nickname string) (bool, error) {
	if err := validation.ValidateNickname(nickname); err != nil {
		return false, models.NewValidationError(err.Error())
	}
	existing, err := s.userRepo.GetByNickname(ctx, nickname)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

// UpdateProfile applies the provided profile changes.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxPersonaLen = 250

	if in.Nickname != "" && in.Nickname != user.Nickname {
		if err := validation.ValidateNickname(in.Nickname); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByNickname(ctx, in.Nickname); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewDuplicateError(messages.Get("error.user.duplicate.nickname"))
		}
		user.Nickname = in.Nickname
	}
	if in.Birthday != nil {
		user.Birthday = in.Birthday
	}
	if in.Gender != "" {
		user.Gender = in.Gender
	}
	if in.Persona != "" {
		if len(in.Persona) > maxPersonaLen {
			return nil, models.NewValidationError("Persona too long (max 250 characters)")
		}
		user.Persona = in.Persona
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Withdraw closes the caller's account.
func (s *UserService) Withdraw(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Status == models.UserStatusWithdrawn {
		return models.NewAlreadyInStateError("Account is already withdrawn")
	}
	return s.userRepo.UpdateStatus(ctx, userID, models.UserStatusWithdrawn)
}

// ChangeStatus sets any user's status. Admin only; unlike diary visibility
// this is a plain Forbidden, the endpoint's existence is not a secret.
func (s *UserService) ChangeStatus(ctx context.Context, callerRole models.UserRole, targetID uint, status models.UserStatus) (*models.User, error) {
	if callerRole != models.UserRoleAdmin {
		return nil, models.NewForbiddenError(messages.Get("error.admin.forbidden"))
	}
	switch status {
	case models.UserStatusActive, models.UserStatusInactive, models.UserStatusWithdrawn:
	default:
		return nil, models.NewValidationError("Unknown user status")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return nil, models.NewAlreadyInStateError("User is already in this status")
	}

	if err := s.userRepo.UpdateStatus(ctx, targetID, status); err != nil {
		return nil, err
	}
	user.Status = status
	return user, nil
}
