package service

import (
	"context"
	"testing"

	"momentcanvas/internal/models"
)

type likeRepoStub struct {
	existsFn func(context.Context, uint, uint) (bool, error)
	createFn func(context.Context, uint, uint) error
	deleteFn func(context.Context, uint, uint) error
}

func (s *likeRepoStub) Exists(ctx context.Context, diaryID, userID uint) (bool, error) {
	return s.existsFn(ctx, diaryID, userID)
}
func (s *likeRepoStub) Create(ctx context.Context, diaryID, userID uint) error {
	return s.createFn(ctx, diaryID, userID)
}
func (s *likeRepoStub) Delete(ctx context.Context, diaryID, userID uint) error {
	return s.deleteFn(ctx, diaryID, userID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		existsFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		createFn: func(context.Context, uint, uint) error { return nil },
		deleteFn: func(context.Context, uint, uint) error { return nil },
	}
}

func publicDiaryRepo() *diaryRepoStub {
	repo := noopDiaryRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Diary, error) {
		return &models.Diary{ID: 10, AuthorID: 1, Visibility: models.VisibilityPublic, IsDeleted: models.No}, nil
	}
	return repo
}

func TestLikeService(t *testing.T) {
	ctx := context.Background()
	vis := NewVisibilityService(noopFollowRepo())

	t.Run("Like a viewable diary", func(t *testing.T) {
		likes := noopLikeRepo()
		liked := false
		likes.createFn = func(context.Context, uint, uint) error {
			liked = true
			return nil
		}
		svc := NewLikeService(likes, publicDiaryRepo(), vis)

		if err := svc.Like(ctx, 2, 10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !liked {
			t.Error("expected like to be recorded")
		}
	})

	t.Run("Hidden diary cannot be liked and looks missing", func(t *testing.T) {
		diaries := noopDiaryRepo()
		diaries.getByIDFn = func(context.Context, uint) (*models.Diary, error) {
			return &models.Diary{ID: 10, AuthorID: 1, Visibility: models.VisibilityPrivate, IsDeleted: models.No}, nil
		}
		likes := noopLikeRepo()
		likes.createFn = func(context.Context, uint, uint) error {
			t.Fatal("like must not be recorded")
			return nil
		}
		svc := NewLikeService(likes, diaries, vis)

		err := svc.Like(ctx, 2, 10)
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("Duplicate like propagates AlreadyInState", func(t *testing.T) {
		likes := noopLikeRepo()
		likes.createFn = func(context.Context, uint, uint) error {
			return models.NewAlreadyInStateError("Already liked this diary")
		}
		svc := NewLikeService(likes, publicDiaryRepo(), vis)

		err := svc.Like(ctx, 2, 10)
		assertCode(t, err, models.CodeAlreadyInState)
	})

	t.Run("Unlike without a like propagates AlreadyInState", func(t *testing.T) {
		likes := noopLikeRepo()
		likes.deleteFn = func(context.Context, uint, uint) error {
			return models.NewAlreadyInStateError("Not liked this diary")
		}
		svc := NewLikeService(likes, publicDiaryRepo(), vis)

		err := svc.Unlike(ctx, 2, 10)
		assertCode(t, err, models.CodeAlreadyInState)
	})

	t.Run("Liked reports the flag", func(t *testing.T) {
		likes := noopLikeRepo()
		likes.existsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
		svc := NewLikeService(likes, publicDiaryRepo(), vis)

		got, err := svc.Liked(ctx, 2, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got {
			t.Error("expected liked = true")
		}
	})
}
