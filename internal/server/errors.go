package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"noteful/internal/database/dto"
	"noteful/internal/database/repositories"
)

var errInvalidBody = fiber.NewError(fiber.StatusBadRequest, "Invalid request body")

func invalidQueryParam(name string) error {
	return fiber.NewError(fiber.StatusBadRequest, "Invalid `"+name+"` query parameter")
}

// errorHandler renders every error returned by a handler. Only validation
// and lookup failures are described to the client; anything else is logged
// and answered with a bare 500.
func (s *FiberServer) errorHandler(c *fiber.Ctx, err error) error {
	var (
		validationErr *dto.ValidationError
		fiberErr      *fiber.Error
	)
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": validationErr.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).Send(nil)
	case errors.As(err, &fiberErr):
		// A known path with an unsupported method is just another unmatched route.
		if fiberErr.Code == fiber.StatusNotFound || fiberErr.Code == fiber.StatusMethodNotAllowed {
			return c.Status(fiber.StatusNotFound).Send(nil)
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}
	}

	s.logError(c, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
}

func (s *FiberServer) logError(c *fiber.Ctx, err error) {
	event := s.log.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			event = s.log.Warn()
		}
		event = event.Str("pg_code", pgErr.Code).Str("pg_constraint", pgErr.ConstraintName)
	}
	event.
		Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")
}
