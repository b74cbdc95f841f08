package server

import (
	"momentcanvas/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikeDiary handles POST /api/diaries/:id/like
// @Summary Like a diary entry
// @Tags likes
// @Security BearerAuth
// @Param id path int true "Diary ID"
// @Success 201
// @Failure 404 {object} object{error=string,code=string}
// @Failure 409 {object} object{error=string,code=string}
// @Router /diaries/{id}/like [post]
func (s *Server) LikeDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Like(c.Context(), userID, diaryID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UnlikeDiary handles DELETE /api/diaries/:id/like
// @Summary Remove a like from a diary entry
// @Tags likes
// @Security BearerAuth
// @Param id path int true "Diary ID"
// @Success 204
// @Failure 409 {object} object{error=string,code=string}
// @Router /diaries/{id}/like [delete]
func (s *Server) UnlikeDiary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	diaryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Unlike(c.Context(), userID, diaryID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
