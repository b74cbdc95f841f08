package server

import (
	"momentcanvas/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ServeImage handles GET /api/images/:name
// @Summary Serve a stored image by saved name
// @Tags images
// @Produce jpeg
// @Param name path string true "Saved image name (uuid.jpg)"
// @Success 200 {file} binary
// @Failure 404 {object} object{error=string,code=string}
// @Router /images/{name} [get]
func (s *Server) ServeImage(c *fiber.Ctx) error {
	path, err := s.imageService.Resolve(c.Params("name"))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=86400, immutable")
	return c.SendFile(path)
}
