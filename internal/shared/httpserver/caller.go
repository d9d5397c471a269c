package httpserver

import (
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderUserID identifies the caller. Authentication happens upstream.
const HeaderUserID = "X-User-ID"

func CallerID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Get(HeaderUserID)
	if raw == "" {
		return uuid.Nil, apperr.Validation("missing " + HeaderUserID + " header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid " + HeaderUserID + " header")
	}
	return id, nil
}

// PathUUID parses a uuid route parameter.
func PathUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid " + name)
	}
	return id, nil
}

// BindJSON decodes the body and turns decoding failures into validation errors.
func BindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("malformed request body")
	}
	return nil
}
