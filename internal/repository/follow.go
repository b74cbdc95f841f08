package repository

import (
	"context"

	"momentcanvas/internal/models"
	"momentcanvas/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	// Exists reports whether followerID currently follows followingID. The
	// reverse edge is a separate row; mutuality needs two calls.
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followingID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.FollowUserSummary, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.FollowUserSummary, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	defer observability.TrackQuery("select", "follows")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	defer observability.TrackQuery("insert", "follows")()

	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyInStateError("Already following this user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the edge and reports whether one existed.
func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) (bool, error) {
	defer observability.TrackQuery("delete", "follows")()

	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]models.FollowUserSummary, error) {
	defer observability.TrackQuery("select", "follows")()

	var users []models.FollowUserSummary
	err := r.db.WithContext(ctx).
		Table("follows").
		Select("users.id AS user_id, users.nickname, users.saved_profile_image_name").
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if users == nil {
		users = []models.FollowUserSummary{}
	}
	return users, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]models.FollowUserSummary, error) {
	defer observability.TrackQuery("select", "follows")()

	var users []models.FollowUserSummary
	err := r.db.WithContext(ctx).
		Table("follows").
		Select("users.id AS user_id, users.nickname, users.saved_profile_image_name").
		Joins("JOIN users ON users.id = follows.following_id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if users == nil {
		users = []models.FollowUserSummary{}
	}
	return users, nil
}
