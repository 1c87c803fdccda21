package handler

import (
	"net/http"

	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) Me(c echo.Context) error {
	p, err := h.svc.Me(c.Request().Context(), actorOf(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateMe(c echo.Context) error {
	var req model.UpdateProfileRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.UpdateMe(c.Request().Context(), actorOf(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListUsers(c echo.Context) error {
	var (
		f   model.UserFilter
		err error
	)
	f.Search = c.QueryParam("q")
	if f.Page, err = pageParams(c); err != nil {
		return err
	}
	if v := c.QueryParam("role"); v != "" {
		role, err := model.ParseRole(v)
		if err != nil {
			return badRequest("role is invalid")
		}
		f.Role = &role
	}
	users, err := h.svc.ListUsers(c.Request().Context(), actorOf(c), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetUser(c.Request().Context(), actorOf(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateUserRole
// @Summary  set the role of a user, admin only
// @Tags     users
// @Param    id path string true "user id"
// @Param    role body model.UpdateRoleRequest true "borrower, branch_owner or admin"
// @Success  200 {object} model.Profile
// @Failure  400,401,403,404 {object} errs.ErrorResponse
// @Security Bearer
// @Router   /api/v1/users/{id}/role [put]
func (h *Handler) UpdateUserRole(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateRoleRequest
	if err = h.bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.UpdateUserRole(c.Request().Context(), actorOf(c), id, req.Role)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
