package server

import (
	"momentcanvas/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Follow handles POST /api/follows/:userId
func (s *Server) Follow(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(c.Context(), userID, targetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Unfollow handles DELETE /api/follows/:userId
func (s *Server) Unfollow(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.Context(), userID, targetID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowers handles GET /api/follows/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	followers, err := s.followService.Followers(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/follows/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	following, err := s.followService.Following(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(following)
}
