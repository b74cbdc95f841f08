package repository

import (
	"context"

	"momentcanvas/internal/messages"
	"momentcanvas/internal/models"
	"momentcanvas/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for diary likes. The
// denormalized like_count on diaries is kept in step with the rows here, so
// both writes happen in one transaction.
type LikeRepository interface {
	Exists(ctx context.Context, diaryID, userID uint) (bool, error)
	Create(ctx context.Context, diaryID, userID uint) error
	Delete(ctx context.Context, diaryID, userID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, diaryID, userID uint) (bool, error) {
	defer observability.TrackQuery("select", "diary_likes")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DiaryLike{}).
		Where("diary_id = ? AND user_id = ?", diaryID, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) Create(ctx context.Context, diaryID, userID uint) error {
	defer observability.TrackQuery("insert", "diary_likes")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.DiaryLike{DiaryID: diaryID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Diary{}).
			Where("id = ?", diaryID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyInStateError(messages.Get("error.like.already.liked"))
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, diaryID, userID uint) error {
	defer observability.TrackQuery("delete", "diary_likes")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("diary_id = ? AND user_id = ?", diaryID, userID).
			Delete(&models.DiaryLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewAlreadyInStateError(messages.Get("error.like.not.liked"))
		}
		return tx.Model(&models.Diary{}).
			Where("id = ? AND like_count > 0", diaryID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}
