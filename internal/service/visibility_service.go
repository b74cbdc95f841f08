// Package service contains business logic for the application.
package service

import (
	"context"

	"momentcanvas/internal/models"
	"momentcanvas/internal/observability"
	"momentcanvas/internal/repository"
)

// VisibilityService decides who may see which diaries. It owns the mutual
// follow check and the two access decisions built on it: the single-diary
// evaluator and the list filter.
type VisibilityService struct {
	followRepo repository.FollowRepository
}

// NewVisibilityService returns a new VisibilityService.
func NewVisibilityService(followRepo repository.FollowRepository) *VisibilityService {
	return &VisibilityService{followRepo: followRepo}
}

// MutualFollow reports whether both directed edges exist between the two
// users. The edge table carries no symmetry guarantee, so both directions are
// looked up independently.
func (s *VisibilityService) MutualFollow(ctx context.Context, userA, userB uint) (bool, error) {
	aFollowsB, err := s.followRepo.Exists(ctx, userA, userB)
	if err != nil {
		return false, err
	}
	if !aFollowsB {
		return false, nil
	}
	bFollowsA, err := s.followRepo.Exists(ctx, userB, userA)
	if err != nil {
		return false, err
	}
	return bFollowsA, nil
}

// CanView is the single-diary access decision over (visibility, deletion
// flag, viewer relationship). The author always sees their own entry, deleted
// or not. mutual is the precomputed MutualFollow result; it is only consulted
// for FOLLOW_ONLY entries.
func CanView(viewerID uint, diary *models.Diary, mutual bool) bool {
	if viewerID == diary.AuthorID {
		return true
	}
	if diary.IsDeleted == models.Yes {
		return false
	}
	switch diary.Visibility {
	case models.VisibilityPublic:
		return true
	case models.VisibilityFollowOnly:
		return mutual
	default:
		return false
	}
}

// CheckView runs CanView with the mutual-follow lookup and converts a deny
// into NotFound. Denied viewers must not be able to tell a hidden diary from
// a missing one.
func (s *VisibilityService) CheckView(ctx context.Context, viewerID uint, diary *models.Diary) error {
	mutual := false
	if viewerID != diary.AuthorID && diary.Visibility == models.VisibilityFollowOnly {
		var err error
		mutual, err = s.MutualFollow(ctx, viewerID, diary.AuthorID)
		if err != nil {
			return err
		}
	}

	if !CanView(viewerID, diary, mutual) {
		observability.VisibilityDecisions.WithLabelValues("deny").Inc()
		return models.NewNotFoundError("Diary", diary.ID)
	}
	observability.VisibilityDecisions.WithLabelValues("allow").Inc()
	return nil
}

// PermittedVisibilities computes the visibility tags a viewer may list for an
// author's diaries under the requested deletion flag. A viewer with no
// permitted tags gets NotFound rather than a silently empty list.
func (s *VisibilityService) PermittedVisibilities(ctx context.Context, viewerID, authorID uint, deleted models.YesOrNo) ([]models.Visibility, error) {
	if viewerID == authorID {
		return []models.Visibility{
			models.VisibilityPublic,
			models.VisibilityFollowOnly,
			models.VisibilityPrivate,
		}, nil
	}

	if deleted == models.No {
		mutual, err := s.MutualFollow(ctx, viewerID, authorID)
		if err != nil {
			return nil, err
		}
		if mutual {
			return []models.Visibility{models.VisibilityPublic, models.VisibilityFollowOnly}, nil
		}
		return []models.Visibility{models.VisibilityPublic}, nil
	}

	// Non-owners may never list deleted diaries.
	observability.VisibilityDecisions.WithLabelValues("deny").Inc()
	return nil, models.NewNotFoundError("Diary", authorID)
}
