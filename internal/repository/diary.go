package repository

import (
	"context"
	"errors"
	"time"

	"momentcanvas/internal/models"
	"momentcanvas/internal/observability"

	"gorm.io/gorm"
)

// DiaryRepository defines persistence operations for diaries.
type DiaryRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Diary, error)
	Create(ctx context.Context, diary *models.Diary) error
	Update(ctx context.Context, diary *models.Diary) error
	// ListMonthSummaries returns the author's entries whose target date falls in
	// the given month, restricted to the given visibilities and deletion flag,
	// newest target date first.
	ListMonthSummaries(ctx context.Context, authorID uint, year int, month time.Month, visibilities []models.Visibility, isDeleted models.YesOrNo) ([]models.DiarySummary, error)
	// ListTargetDates returns every date the author has a non-deleted entry for.
	ListTargetDates(ctx context.Context, authorID uint) ([]time.Time, error)
	ExistsActiveForDate(ctx context.Context, authorID uint, targetDate time.Time) (bool, error)
	SetDeleted(ctx context.Context, id uint, deleted models.YesOrNo) error
	HardDelete(ctx context.Context, id uint) error
}

type diaryRepository struct {
	db *gorm.DB
}

// NewDiaryRepository returns a new DiaryRepository implementation.
func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

// GetByID loads the diary regardless of its deletion flag; deciding whether a
// soft-deleted entry may be shown is the service layer's call.
func (r *diaryRepository) GetByID(ctx context.Context, id uint) (*models.Diary, error) {
	defer observability.TrackQuery("select", "diaries")()

	var diary models.Diary
	if err := r.db.WithContext(ctx).Preload("Author").First(&diary, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Diary", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &diary, nil
}

func (r *diaryRepository) Create(ctx context.Context, diary *models.Diary) error {
	defer observability.TrackQuery("insert", "diaries")()

	if err := r.db.WithContext(ctx).Create(diary).Error; err != nil {
		if isUniqueConstraintError(err) {
			// The partial unique index on (author_id, target_date) fired:
			// another non-deleted entry already covers this date.
			return models.NewDuplicateError("A diary already exists for this date")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *diaryRepository) Update(ctx context.Context, diary *models.Diary) error {
	defer observability.TrackQuery("update", "diaries")()

	if err := r.db.WithContext(ctx).Save(diary).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Moving the entry onto a date that already holds a live one.
			return models.NewDuplicateError("A diary already exists for this date")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *diaryRepository) ListMonthSummaries(ctx context.Context, authorID uint, year int, month time.Month, visibilities []models.Visibility, isDeleted models.YesOrNo) ([]models.DiarySummary, error) {
	defer observability.TrackQuery("select", "diaries")()

	if len(visibilities) == 0 {
		return []models.DiarySummary{}, nil
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var summaries []models.DiarySummary
	err := r.db.WithContext(ctx).
		Table("diaries").
		Select(`diaries.id, diaries.title, diaries.mood, diaries.saved_diary_image_name,
			diaries.target_date, diaries.is_deleted, diaries.visibility, diaries.like_count,
			diaries.author_id, users.nickname AS author_nickname,
			users.saved_profile_image_name AS author_profile_image`).
		Joins("JOIN users ON users.id = diaries.author_id").
		Where("diaries.author_id = ?", authorID).
		Where("diaries.target_date >= ? AND diaries.target_date < ?", monthStart, monthEnd).
		Where("diaries.visibility IN ?", visibilities).
		Where("diaries.is_deleted = ?", isDeleted).
		Order("diaries.target_date DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if summaries == nil {
		summaries = []models.DiarySummary{}
	}
	return summaries, nil
}

func (r *diaryRepository) ListTargetDates(ctx context.Context, authorID uint) ([]time.Time, error) {
	defer observability.TrackQuery("select", "diaries")()

	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&models.Diary{}).
		Where("author_id = ? AND is_deleted = ?", authorID, models.No).
		Order("target_date ASC").
		Pluck("target_date", &dates).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return dates, nil
}

func (r *diaryRepository) ExistsActiveForDate(ctx context.Context, authorID uint, targetDate time.Time) (bool, error) {
	defer observability.TrackQuery("select", "diaries")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Diary{}).
		Where("author_id = ? AND target_date = ? AND is_deleted = ?", authorID, targetDate, models.No).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *diaryRepository) SetDeleted(ctx context.Context, id uint, deleted models.YesOrNo) error {
	defer observability.TrackQuery("update", "diaries")()

	result := r.db.WithContext(ctx).
		Model(&models.Diary{}).
		Where("id = ?", id).
		Update("is_deleted", deleted)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			// Recovering into a date that has since gained a live entry.
			return models.NewDuplicateError("A diary already exists for this date")
		}
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Diary", id)
	}
	return nil
}

func (r *diaryRepository) HardDelete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "diaries")()

	if err := r.db.WithContext(ctx).Delete(&models.Diary{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
