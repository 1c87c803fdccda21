package handler

import (
	"net/http"

	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/labstack/echo/v4"
)

// ListBooks
// @Summary  list books with their copies
// @Tags     books
// @Param    q query string false "search title or author"
// @Param    branch query string false "branch id"
// @Param    available query bool false "availability"
// @Success  200 {object} model.ListBooks
// @Router   /api/v1/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	var (
		f   model.BookFilter
		err error
	)
	f.Search = c.QueryParam("q")
	if f.Page, err = pageParams(c); err != nil {
		return err
	}
	if f.BranchID, err = optionalUUID(c, "branch"); err != nil {
		return err
	}
	if f.Available, err = optionalBool(c, "available"); err != nil {
		return err
	}
	books, err := h.svc.ListBooks(c.Request().Context(), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

// LookupISBN
// @Summary  preview catalog metadata for an isbn
// @Tags     books
// @Param    isbn query string true "isbn"
// @Success  200 {object} isbn.Metadata
// @Failure  404 {object} errs.ErrorResponse
// @Router   /api/v1/books/lookup [get]
func (h *Handler) LookupISBN(c echo.Context) error {
	code := c.QueryParam("isbn")
	if code == "" {
		return badRequest("isbn is required")
	}
	meta, err := h.svc.LookupISBN(c.Request().Context(), code)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, meta)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	book, err := h.svc.GetBook(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	book, err := h.svc.CreateBook(c.Request().Context(), actorOf(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err = h.svc.DeleteBook(c.Request().Context(), actorOf(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "book deleted"})
}
