package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"noteful/internal/database/dto"
)

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	filter := dto.NoteFilter{SearchTerm: c.Query("searchTerm")}
	var err error
	if filter.FolderID, err = int64Query(c, "folderId"); err != nil {
		return err
	}
	if filter.TagID, err = int64Query(c, "tagId"); err != nil {
		return err
	}

	notes, err := s.notes.Find(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(notes)
}

func (s *FiberServer) getSingleNote(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	note, err := s.notes.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	var in dto.NoteCreate
	if err := parseBody(c, &in); err != nil {
		return err
	}
	note, err := s.notes.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	s.metrics.noteOperations.WithLabelValues("create").Inc()
	c.Location(c.BaseURL() + "/api/notes/" + strconv.FormatInt(note.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var patch dto.NotePatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	note, err := s.notes.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	s.metrics.noteOperations.WithLabelValues("update").Inc()
	return c.JSON(note)
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.notes.Delete(c.UserContext(), id); err != nil {
		return err
	}
	s.metrics.noteOperations.WithLabelValues("delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

// int64Query returns nil when the parameter is absent or empty.
func int64Query(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, invalidQueryParam(name)
	}
	return &v, nil
}
