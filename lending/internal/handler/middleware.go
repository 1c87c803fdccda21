package handler

import (
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Identity resolves the caller once per request. Requests without
// credentials pass as anonymous and are judged by each operation.
func (h *Handler) Identity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := h.identity.Resolve(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return h.fail(c, err)
		}
		c.Set(actorKey, actor)
		return next(c)
	}
}

func actorOf(c echo.Context) model.Actor {
	if actor, ok := c.Get(actorKey).(model.Actor); ok {
		return actor
	}
	return model.Anonymous
}
