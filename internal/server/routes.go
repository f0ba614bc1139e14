package server

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"noteful/internal/database/dto"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Get("/health", s.healthHandler)
	s.App.Get("/metrics", s.metrics.handler())

	api := s.App.Group("/api")

	api.Get("/notes", s.getAllNotes)
	api.Get("/notes/:id<int>", s.getSingleNote)
	api.Post("/notes", s.createNote)
	api.Put("/notes/:id<int>", s.updateNote)
	api.Delete("/notes/:id<int>", s.deleteNote)

	api.Get("/folders", s.getAllFolders)
	api.Get("/folders/:id<int>", s.getSingleFolder)
	api.Post("/folders", s.createFolder)
	api.Put("/folders/:id<int>", s.updateFolder)
	api.Delete("/folders/:id<int>", s.deleteFolder)

	api.Get("/tags", s.getAllTags)
	api.Get("/tags/:id<int>", s.getSingleTag)
	api.Post("/tags", s.createTag)
	api.Put("/tags/:id<int>", s.updateTag)
	api.Delete("/tags/:id<int>", s.deleteTag)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	stats := s.db.Health(c.UserContext())
	if stats["status"] != "up" {
		c.Status(fiber.StatusServiceUnavailable)
	}
	return c.JSON(stats)
}

// idParam reads the :id path segment. The route constraint already
// guarantees an integer; anything out of range is treated as unknown.
func idParam(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}
	return int64(id), nil
}

// parseBody decodes the request body as JSON whatever its Content-Type and
// checks its required members. An empty body counts as {}.
func parseBody(c *fiber.Ctx, in any) error {
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, in); err != nil {
			return errInvalidBody
		}
	}
	return dto.Validate(in)
}
