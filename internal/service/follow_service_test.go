package service

import (
	"context"
	"testing"

	"momentcanvas/internal/models"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByLoginIDFn  func(context.Context, string) (*models.User, error)
	getByNicknameFn func(context.Context, string) (*models.User, error)
	getByProviderFn func(context.Context, models.AuthProvider, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	updateStatusFn  func(context.Context, uint, models.UserStatus) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	return s.getByLoginIDFn(ctx, loginID)
}
func (s *userRepoStub) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return s.getByNicknameFn(ctx, nickname)
}
func (s *userRepoStub) GetByProvider(ctx context.Context, provider models.AuthProvider, providerID string) (*models.User, error) {
	return s.getByProviderFn(ctx, provider, providerID)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateStatus(ctx context.Context, id uint, status models.UserStatus) error {
	return s.updateStatusFn(ctx, id, status)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(context.Context, uint) (*models.User, error) {
			return &models.User{ID: 1, Status: models.UserStatusActive}, nil
		},
		getByLoginIDFn:  func(context.Context, string) (*models.User, error) { return nil, nil },
		getByNicknameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByProviderFn: func(context.Context, models.AuthProvider, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		updateStatusFn:  func(context.Context, uint, models.UserStatus) error { return nil },
	}
}

func TestFollowServiceFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("Self follow rejected", func(t *testing.T) {
		svc := NewFollowService(noopFollowRepo(), noopUserRepo())
		err := svc.Follow(ctx, 1, 1)
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("Missing target", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewFollowService(noopFollowRepo(), users)
		err := svc.Follow(ctx, 1, 2)
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("Duplicate edge", func(t *testing.T) {
		follows := noopFollowRepo()
		follows.existsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
		svc := NewFollowService(follows, noopUserRepo())
		err := svc.Follow(ctx, 1, 2)
		assertCode(t, err, models.CodeAlreadyInState)
	})

	t.Run("Creates the directed edge", func(t *testing.T) {
		follows := noopFollowRepo()
		var created *models.Follow
		follows.createFn = func(_ context.Context, f *models.Follow) error {
			created = f
			return nil
		}
		svc := NewFollowService(follows, noopUserRepo())
		if err := svc.Follow(ctx, 1, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.FollowerID != 1 || created.FollowingID != 2 {
			t.Errorf("wrong edge: %+v", created)
		}
	})
}

func TestFollowServiceUnfollow(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes the edge", func(t *testing.T) {
		svc := NewFollowService(noopFollowRepo(), noopUserRepo())
		if err := svc.Unfollow(ctx, 1, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Missing edge", func(t *testing.T) {
		follows := noopFollowRepo()
		follows.deleteFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
		svc := NewFollowService(follows, noopUserRepo())
		err := svc.Unfollow(ctx, 1, 2)
		assertCode(t, err, models.CodeAlreadyInState)
	})
}
