package service

import (
	"context"

	"momentcanvas/internal/messages"
	"momentcanvas/internal/models"
	"momentcanvas/internal/repository"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the directed edge userID -> targetID.
func (s *FollowService) Follow(ctx context.Context, userID, targetID uint) error {
	if userID == targetID {
		return models.NewValidationError(messages.Get("error.follow.self"))
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	exists, err := s.followRepo.Exists(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewAlreadyInStateError(messages.Get("error.follow.already.following"))
	}

	return s.followRepo.Create(ctx, &models.Follow{FollowerID: userID, FollowingID: targetID})
}

// Unfollow removes the directed edge userID -> targetID.
func (s *FollowService) Unfollow(ctx context.Context, userID, targetID uint) error {
	removed, err := s.followRepo.Delete(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewAlreadyInStateError(messages.Get("error.follow.not.following"))
	}
	return nil
}

// Followers lists the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.FollowUserSummary, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}

// Following lists the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.FollowUserSummary, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}
