package service

import (
	"context"
	"testing"

	"momentcanvas/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func validSignup() SignupInput {
	return SignupInput{
		LoginID:  "moon_writer",
		Password: "SecurePass12!@",
		Nickname: "luna",
	}
}

func TestUserServiceSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates an active local account with a hashed password", func(t *testing.T) {
		users := noopUserRepo()
		var created *models.User
		users.createFn = func(_ context.Context, u *models.User) error {
			created = u
			return nil
		}
		svc := NewUserService(users)

		_, err := svc.Signup(ctx, validSignup())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Status != models.UserStatusActive {
			t.Errorf("expected ACTIVE, got %s", created.Status)
		}
		if created.Provider != models.ProviderNone {
			t.Errorf("expected provider NONE, got %s", created.Provider)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("SecurePass12!@")); err != nil {
			t.Error("stored password is not a bcrypt hash of the input")
		}
	})

	t.Run("Duplicate login ID", func(t *testing.T) {
		users := noopUserRepo()
		users.getByLoginIDFn = func(context.Context, string) (*models.User, error) {
			return &models.User{ID: 9}, nil
		}
		svc := NewUserService(users)

		_, err := svc.Signup(ctx, validSignup())
		assertCode(t, err, models.CodeDuplicateEntry)
	})

	t.Run("Duplicate nickname", func(t *testing.T) {
		users := noopUserRepo()
		users.getByNicknameFn = func(context.Context, string) (*models.User, error) {
			return &models.User{ID: 9}, nil
		}
		svc := NewUserService(users)

		_, err := svc.Signup(ctx, validSignup())
		assertCode(t, err, models.CodeDuplicateEntry)
	})

	t.Run("Weak password rejected", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		in := validSignup()
		in.Password = "short"
		_, err := svc.Signup(ctx, in)
		assertCode(t, err, models.CodeValidation)
	})
}

func TestUserServiceNicknameAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("Available", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		ok, err := svc.NicknameAvailable(ctx, "fresh_name")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected nickname to be available")
		}
	})

	t.Run("Taken", func(t *testing.T) {
		users := noopUserRepo()
		users.getByNicknameFn = func(context.Context, string) (*models.User, error) {
			return &models.User{ID: 9}, nil
		}
		svc := NewUserService(users)
		ok, err := svc.NicknameAvailable(ctx, "taken_name")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected nickname to be taken")
		}
	})

	t.Run("Invalid format", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		_, err := svc.NicknameAvailable(ctx, "x")
		assertCode(t, err, models.CodeValidation)
	})
}

func TestUserServiceWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("Marks the account withdrawn", func(t *testing.T) {
		users := noopUserRepo()
		var gotStatus models.UserStatus
		users.updateStatusFn = func(_ context.Context, _ uint, status models.UserStatus) error {
			gotStatus = status
			return nil
		}
		svc := NewUserService(users)

		if err := svc.Withdraw(ctx, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotStatus != models.UserStatusWithdrawn {
			t.Errorf("expected WITHDRAWN, got %s", gotStatus)
		}
	})

	t.Run("Already withdrawn", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(context.Context, uint) (*models.User, error) {
			return &models.User{ID: 1, Status: models.UserStatusWithdrawn}, nil
		}
		svc := NewUserService(users)
		err := svc.Withdraw(ctx, 1)
		assertCode(t, err, models.CodeAlreadyInState)
	})
}

func TestUserServiceChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin changes a status", func(t *testing.T) {
		users := noopUserRepo()
		svc := NewUserService(users)

		got, err := svc.ChangeStatus(ctx, models.UserRoleAdmin, 2, models.UserStatusInactive)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != models.UserStatusInactive {
			t.Errorf("expected INACTIVE, got %s", got.Status)
		}
	})

	t.Run("Non-admin is plainly forbidden", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		_, err := svc.ChangeStatus(ctx, models.UserRoleUser, 2, models.UserStatusInactive)
		assertCode(t, err, models.CodeForbidden)
	})

	t.Run("No-op transition", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(context.Context, uint) (*models.User, error) {
			return &models.User{ID: 2, Status: models.UserStatusInactive}, nil
		}
		svc := NewUserService(users)
		_, err := svc.ChangeStatus(ctx, models.UserRoleAdmin, 2, models.UserStatusInactive)
		assertCode(t, err, models.CodeAlreadyInState)
	})

	t.Run("Unknown status", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		_, err := svc.ChangeStatus(ctx, models.UserRoleAdmin, 2, "FROZEN")
		assertCode(t, err, models.CodeValidation)
	})
}
