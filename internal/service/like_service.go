package service

import (
	"context"

	"momentcanvas/internal/models"
	"momentcanvas/internal/repository"
)

// LikeService provides diary like/unlike business logic. Liking requires
// viewing permission on the diary: a diary you cannot see is a diary you
// cannot like, and the denial looks like a missing diary.
type LikeService struct {
	likeRepo   repository.LikeRepository
	diaryRepo  repository.DiaryRepository
	visibility *VisibilityService
}

// NewLikeService returns a new LikeService.
func NewLikeService(likeRepo repository.LikeRepository, diaryRepo repository.DiaryRepository, visibility *VisibilityService) *LikeService {
	return &LikeService{
		likeRepo:   likeRepo,
		diaryRepo:  diaryRepo,
		visibility: visibility,
	}
}

func (s *LikeService) viewableDiary(ctx context.Context, userID, diaryID uint) (*models.Diary, error) {
	diary, err := s.diaryRepo.GetByID(ctx, diaryID)
	if err != nil {
		return nil, err
	}
	if err := s.visibility.CheckView(ctx, userID, diary); err != nil {
		return nil, err
	}
	return diary, nil
}

// Like records a like; the denormalized like count moves with it.
func (s *LikeService) Like(ctx context.Context, userID, diaryID uint) error {
	if _, err := s.viewableDiary(ctx, userID, diaryID); err != nil {
		return err
	}
	return s.likeRepo.Create(ctx, diaryID, userID)
}

// Unlike removes a like.
func (s *LikeService) Unlike(ctx context.Context, userID, diaryID uint) error {
	if _, err := s.viewableDiary(ctx, userID, diaryID); err != nil {
		return err
	}
	return s.likeRepo.Delete(ctx, diaryID, userID)
}

// Liked reports whether the user has liked the diary.
func (s *LikeService) Liked(ctx context.Context, userID, diaryID uint) (bool, error) {
	if _, err := s.viewableDiary(ctx, userID, diaryID); err != nil {
		return false, err
	}
	return s.likeRepo.Exists(ctx, diaryID, userID)
}
