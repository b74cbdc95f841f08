package server

import (
	"time"

	"momentcanvas/internal/models"
	"momentcanvas/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DiaryRequest is the payload for creating or updating a diary entry.
type DiaryRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Mood       int    `json:"mood"`
	Visibility string `json:"visibility"`
	TargetDate string `json:"target_date"`
}

// DiaryResponse wraps a diary entry with viewer-specific state.
type DiaryResponse struct {
	*models.Diary
	Liked bool `json:"liked"`
}

// parseDiaryRequest validates shared body fields for create/update.
func parseDiaryRequest(c *fiber.Ctx) (*DiaryRequest, time.Time, error) {
	var req DiaryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, time.Time{}, models.NewValidationError("Invalid request body")
	}
	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		return nil, time.Time{}, models.NewValidationError("Target date must be formatted as YYYY-MM-DD")
	}
	return &req, targetDate, nil
}

// CreateDiary handles POST /api/diaries
// @Summary Create a diary entry
// @Tags diaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DiaryRequest true "Diary entry"
// @Success 201 {object} models.Diary
// @Failure 400 {object} object{error=string,code=string}
// @Failure 409 {object} object{error=string,code=string}
// @Router /diaries [post]
func (s *Server) CreateDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	req, targetDate, err := parseDiaryRequest(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	diary, err := s.diaryService.Create(c.Context(), userID, service.CreateDiaryInput{
		Title:      req.Title,
		Content:    req.Content,
		Mood:       req.Mood,
		Visibility: models.Visibility(req.Visibility),
		TargetDate: targetDate,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(diary)
}

// GetDiary handles GET /api/diaries/:id
// @Summary Get a diary entry
// @Tags diaries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Diary ID"
// @Success 200 {object} DiaryResponse
// @Failure 404 {object} object{error=string,code=string}
// @Router /diaries/{id} [get]
func (s *Server) GetDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	diary, err := s.diaryService.GetByID(c.Context(), userID, diaryID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	liked, err := s.likeService.Liked(c.Context(), userID, diaryID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(DiaryResponse{Diary: diary, Liked: liked})
}

// ListDiaries handles GET /api/diaries?authorId=&yearMonth=YYYY-MM&deleted=N
// @Summary List diary summaries for a month
// @Tags diaries
// @Produce json
// @Security BearerAuth
// @Param authorId query int false "Author user ID (defaults to the caller)"
// @Param yearMonth query string true "Month to list, YYYY-MM"
// @Param deleted query string false "Y to list own deleted entries (default N)"
// @Success 200 {array} models.DiarySummary
// @Failure 404 {object} object{error=string,code=string}
// @Router /diaries [get]
func (s *Server) ListDiaries(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	authorID := userID
	if c.Query("authorId") != "" {
		id := c.QueryInt("authorId")
		if id <= 0 {
			return models.RespondWithError(c, models.NewValidationError("Invalid author ID"))
		}
		authorID = uint(id)
	}

	year, month, err := s.parseYearMonth(c)
	if err != nil {
		return nil
	}
	deleted, err := s.parseDeletedFlag(c)
	if err != nil {
		return nil
	}

	summaries, err := s.diaryService.ListMonth(c.Context(), userID, authorID, year, month, deleted)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(summaries)
}

// GetWrittenDates handles GET /api/diaries/dates
// @Summary List dates the caller has written on
// @Tags diaries
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /diaries/dates [get]
func (s *Server) GetWrittenDates(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	dates, err := s.diaryService.WrittenDates(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format("2006-01-02"))
	}
	return c.JSON(formatted)
}

// UpdateDiary handles PUT /api/diaries/:id
// @Summary Update a diary entry
// @Tags diaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Diary ID"
// @Param request body DiaryRequest true "Diary entry"
// @Success 200 {object} models.Diary
// @Failure 403 {object} object{error=string,code=string}
// @Failure 409 {object} object{error=string,code=string}
// @Router /diaries/{id} [put]
func (s *Server) UpdateDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req, targetDate, err := parseDiaryRequest(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	diary, err := s.diaryService.Update(c.Context(), userID, diaryID, service.UpdateDiaryInput{
		Title:      req.Title,
		Content:    req.Content,
		Mood:       req.Mood,
		Visibility: models.Visibility(req.Visibility),
		TargetDate: targetDate,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(diary)
}

// DeleteDiary handles DELETE /api/diaries/:id
// @Summary Delete a diary entry
// @Description Soft-deletes an active entry; deleting again removes it permanently
// @Tags diaries
// @Security BearerAuth
// @Param id path int true "Diary ID"
// @Success 204
// @Router /diaries/{id} [delete]
func (s *Server) DeleteDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.diaryService.Delete(c.Context(), userID, diaryID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecoverDiary handles POST /api/diaries/:id/recover
// @Summary Recover a soft-deleted diary entry
// @Tags diaries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Diary ID"
// @Success 200 {object} models.Diary
// @Failure 409 {object} object{error=string,code=string}
// @Router /diaries/{id}/recover [post]
func (s *Server) RecoverDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	diary, err := s.diaryService.Recover(c.Context(), userID, diaryID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(diary)
}

// UploadDiaryImage handles POST /api/diaries/:id/image
func (s *Server) UploadDiaryImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	content, originalName, err := readUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	saved, err := s.imageService.Save(originalName, content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	diary, previous, err := s.diaryService.AttachImage(c.Context(), userID, diaryID, saved.OriginalName, saved.SavedName)
	if err != nil {
		_ = s.imageService.Remove(saved.SavedName)
		return models.RespondWithError(c, err)
	}
	if previous != "" {
		_ = s.imageService.Remove(previous)
	}
	return c.JSON(diary)
}
