package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"noteful/internal/database/dto"
)

func (s *FiberServer) getAllTags(c *fiber.Ctx) error {
	tags, err := s.tags.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(tags)
}

func (s *FiberServer) getSingleTag(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	tag, err := s.tags.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

func (s *FiberServer) createTag(c *fiber.Ctx) error {
	var in dto.TagInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tag, err := s.tags.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	c.Location(c.BaseURL() + "/api/tags/" + strconv.FormatInt(tag.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (s *FiberServer) updateTag(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.TagInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	tag, err := s.tags.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

func (s *FiberServer) deleteTag(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.tags.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
