package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"noteful/internal/database/dto"
)

func (s *FiberServer) getAllFolders(c *fiber.Ctx) error {
	folders, err := s.folders.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(folders)
}

func (s *FiberServer) getSingleFolder(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	folder, err := s.folders.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(folder)
}

func (s *FiberServer) createFolder(c *fiber.Ctx) error {
	var in dto.FolderInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	folder, err := s.folders.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	c.Location(c.BaseURL() + "/api/folders/" + strconv.FormatInt(folder.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(folder)
}

func (s *FiberServer) updateFolder(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in dto.FolderInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	folder, err := s.folders.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(folder)
}

func (s *FiberServer) deleteFolder(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.folders.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
