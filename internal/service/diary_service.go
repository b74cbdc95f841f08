package service

import (
	"context"
	"time"

	"momentcanvas/internal/messages"
	"momentcanvas/internal/models"
	"momentcanvas/internal/repository"
)

// CreateDiaryInput carries the writable fields for a new diary entry.
type CreateDiaryInput struct {
	Title      string
	Content    string
	Mood       int
	Visibility models.Visibility
	TargetDate time.Time
}

// UpdateDiaryInput carries the fields an owner may change on an entry.
type UpdateDiaryInput struct {
	Title      string
	Content    string
	Mood       int
	Visibility models.Visibility
	TargetDate time.Time
}

// DiaryService provides diary lifecycle and read-access business logic.
type DiaryService struct {
	diaryRepo  repository.DiaryRepository
	visibility *VisibilityService
}

// NewDiaryService returns a new DiaryService.
func NewDiaryService(diaryRepo repository.DiaryRepository, visibility *VisibilityService) *DiaryService {
	return &DiaryService{
		diaryRepo:  diaryRepo,
		visibility: visibility,
	}
}

// normalizeDate strips the time-of-day so that entries for the same calendar
// day always collide in the (author, target_date) index.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func validateDiaryFields(title, content string, mood int, visibility models.Visibility) error {
	if title == "" || len(title) > 50 {
		return models.NewValidationError(messages.Get("error.diary.title"))
	}
	if content == "" {
		return models.NewValidationError(messages.Get("error.diary.content"))
	}
	if mood < 1 || mood > 5 {
		return models.NewValidationError(messages.Get("error.diary.mood"))
	}
	if !visibility.Valid() {
		return models.NewValidationError(messages.Get("error.diary.visibility"))
	}
	return nil
}

// Create inserts a new entry, enforcing one non-deleted entry per author and
// date. The pre-check gives the common case a clean error; the partial unique
// index catches the two-writers race and the repository translates that
// violation to the same duplicate error.
func (s *DiaryService) Create(ctx context.Context, authorID uint, input CreateDiaryInput) (*models.Diary, error) {
	if err := validateDiaryFields(input.Title, input.Content, input.Mood, input.Visibility); err != nil {
		return nil, err
	}
	targetDate := normalizeDate(input.TargetDate)

	exists, err := s.diaryRepo.ExistsActiveForDate(ctx, authorID, targetDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewDuplicateError(messages.Get("error.diary.duplicate.date"))
	}

	diary := &models.Diary{
		AuthorID:   authorID,
		Title:      input.Title,
		Content:    input.Content,
		Mood:       input.Mood,
		Visibility: input.Visibility,
		TargetDate: targetDate,
		IsDeleted:  models.No,
	}
	if err := s.diaryRepo.Create(ctx, diary); err != nil {
		return nil, err
	}
	return diary, nil
}

// GetByID fetches one entry through the visibility evaluator. A denied viewer
// gets the same NotFound a missing id would produce.
func (s *DiaryService) GetByID(ctx context.Context, viewerID, diaryID uint) (*models.Diary, error) {
	diary, err := s.diaryRepo.GetByID(ctx, diaryID)
	if err != nil {
		return nil, err
	}
	if err := s.visibility.CheckView(ctx, viewerID, diary); err != nil {
		return nil, err
	}
	return diary, nil
}

// ListMonth returns the author's entries for one calendar month, filtered to
// what the viewer is permitted to see.
func (s *DiaryService) ListMonth(ctx context.Context, viewerID, authorID uint, year int, month time.Month, deleted models.YesOrNo) ([]models.DiarySummary, error) {
	if !deleted.Valid() {
		return nil, models.NewValidationError(messages.Get("error.diary.deleted.flag"))
	}

	visibilities, err := s.visibility.PermittedVisibilities(ctx, viewerID, authorID, deleted)
	if err != nil {
		return nil, err
	}
	return s.diaryRepo.ListMonthSummaries(ctx, authorID, year, month, visibilities, deleted)
}

// WrittenDates returns the dates the user has non-deleted entries for,
// feeding the calendar view.
func (s *DiaryService) WrittenDates(ctx context.Context, userID uint) ([]time.Time, error) {
	return s.diaryRepo.ListTargetDates(ctx, userID)
}

// getOwned loads an entry and requires the caller to be its author. A caller
// who could not even view the entry gets NotFound; a viewer who is not the
// owner gets Forbidden.
func (s *DiaryService) getOwned(ctx context.Context, userID, diaryID uint) (*models.Diary, error) {
	diary, err := s.diaryRepo.GetByID(ctx, diaryID)
	if err != nil {
		return nil, err
	}
	if err := s.visibility.CheckView(ctx, userID, diary); err != nil {
		return nil, err
	}
	if diary.AuthorID != userID {
		return nil, models.NewForbiddenError(messages.Get("error.diary.not.owner"))
	}
	return diary, nil
}

// Update rewrites an entry's content fields. Moving the entry to another date
// re-enters the one-per-date invariant.
func (s *DiaryService) Update(ctx context.Context, userID, diaryID uint, input UpdateDiaryInput) (*models.Diary, error) {
	if err := validateDiaryFields(input.Title, input.Content, input.Mood, input.Visibility); err != nil {
		return nil, err
	}

	diary, err := s.getOwned(ctx, userID, diaryID)
	if err != nil {
		return nil, err
	}

	targetDate := normalizeDate(input.TargetDate)
	if diary.IsDeleted == models.No && !targetDate.Equal(normalizeDate(diary.TargetDate)) {
		exists, err := s.diaryRepo.ExistsActiveForDate(ctx, userID, targetDate)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, models.NewDuplicateError(messages.Get("error.diary.duplicate.date"))
		}
	}

	diary.Title = input.Title
	diary.Content = input.Content
	diary.Mood = input.Mood
	diary.Visibility = input.Visibility
	diary.TargetDate = targetDate
	if err := s.diaryRepo.Update(ctx, diary); err != nil {
		return nil, err
	}
	return diary, nil
}

// AttachImage records an uploaded image's names on an owned entry. It returns
// the updated entry plus the previously saved image name so the caller can
// clean up the replaced file.
func (s *DiaryService) AttachImage(ctx context.Context, userID, diaryID uint, originalName, savedName string) (*models.Diary, string, error) {
	diary, err := s.getOwned(ctx, userID, diaryID)
	if err != nil {
		return nil, "", err
	}

	previous := diary.SavedDiaryImageName
	diary.OrgDiaryImageName = originalName
	diary.SavedDiaryImageName = savedName
	if err := s.diaryRepo.Update(ctx, diary); err != nil {
		return nil, "", err
	}
	return diary, previous, nil
}

// Delete soft-deletes a live entry; deleting an already soft-deleted entry
// removes it permanently.
func (s *DiaryService) Delete(ctx context.Context, userID, diaryID uint) error {
	diary, err := s.getOwned(ctx, userID, diaryID)
	if err != nil {
		return err
	}

	if diary.IsDeleted == models.Yes {
		return s.diaryRepo.HardDelete(ctx, diaryID)
	}
	return s.diaryRepo.SetDeleted(ctx, diaryID, models.Yes)
}

// Recover turns a soft-deleted entry live again. The one-per-date invariant
// is re-checked: the date may have gained a new entry since the delete.
func (s *DiaryService) Recover(ctx context.Context, userID, diaryID uint) (*models.Diary, error) {
	diary, err := s.getOwned(ctx, userID, diaryID)
	if err != nil {
		return nil, err
	}
	if diary.IsDeleted == models.No {
		return nil, models.NewAlreadyInStateError(messages.Get("error.diary.not.deleted"))
	}

	exists, err := s.diaryRepo.ExistsActiveForDate(ctx, userID, normalizeDate(diary.TargetDate))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewDuplicateError(messages.Get("error.diary.duplicate.date"))
	}

	if err := s.diaryRepo.SetDeleted(ctx, diaryID, models.No); err != nil {
		return nil, err
	}
	diary.IsDeleted = models.No
	return diary, nil
}
