package handler

import (
	"net/http"

	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListBranches(c echo.Context) error {
	branches, err := h.svc.ListBranches(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, branches)
}

// GetBranch
// @Summary  branch with copy statistics
// @Tags     branches
// @Param    id path string true "branch id"
// @Success  200 {object} model.Branch
// @Failure  404 {object} errs.ErrorResponse
// @Router   /api/v1/branches/{id} [get]
func (h *Handler) GetBranch(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	branch, err := h.svc.GetBranch(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, branch)
}

func (h *Handler) CreateBranch(c echo.Context) error {
	var req model.CreateBranchRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	branch, err := h.svc.CreateBranch(c.Request().Context(), actorOf(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, branch)
}

func (h *Handler) UpdateBranch(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateBranchRequest
	if err = h.bind(c, &req); err != nil {
		return err
	}
	branch, err := h.svc.UpdateBranch(c.Request().Context(), actorOf(c), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, branch)
}
