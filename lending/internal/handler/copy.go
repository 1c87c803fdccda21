package handler

import (
	"net/http"

	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/labstack/echo/v4"
)

// ListCopies
// @Summary  list copies with availability
// @Tags     copies
// @Param    q query string false "search book title or author"
// @Param    book_id query string false "book id"
// @Param    branch_id query string false "branch id"
// @Param    available query bool false "availability"
// @Param    offset query int false "offset"
// @Param    limit query int false "limit, at most 100"
// @Success  200 {object} model.ListCopies
// @Router   /api/v1/copies [get]
func (h *Handler) ListCopies(c echo.Context) error {
	var (
		f   model.CopyFilter
		err error
	)
	f.Search = c.QueryParam("q")
	if f.Page, err = pageParams(c); err != nil {
		return err
	}
	if f.BookID, err = optionalUUID(c, "book_id"); err != nil {
		return err
	}
	if f.BranchID, err = optionalUUID(c, "branch_id"); err != nil {
		return err
	}
	if f.Available, err = optionalBool(c, "available"); err != nil {
		return err
	}
	copies, err := h.svc.ListCopies(c.Request().Context(), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, copies)
}

func (h *Handler) GetCopy(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	cp, err := h.svc.GetCopy(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, cp)
}

// CreateCopy
// @Summary  add a copy to a branch, finding or creating the book by isbn
// @Tags     copies
// @Param    copy body model.CreateCopyRequest true "copy"
// @Success  201 {object} model.Copy
// @Failure  400,401,403,404 {object} errs.ErrorResponse
// @Router   /api/v1/copies [post]
func (h *Handler) CreateCopy(c echo.Context) error {
	var req model.CreateCopyRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	cp, err := h.svc.CreateCopy(c.Request().Context(), actorOf(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, cp)
}

func (h *Handler) UpdateCopy(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.UpdateCopyRequest
	if err = h.bind(c, &req); err != nil {
		return err
	}
	cp, err := h.svc.UpdateCopy(c.Request().Context(), actorOf(c), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, cp)
}

func (h *Handler) DeleteCopy(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err = h.svc.DeleteCopy(c.Request().Context(), actorOf(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
