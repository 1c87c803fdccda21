package handler

import (
	"net/http"

	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/labstack/echo/v4"
)

// ListLoans
// @Summary  loans visible to the caller, newest first
// @Tags     loans
// @Param    borrower_id query string false "borrower id"
// @Param    branch_id query string false "branch id"
// @Param    status query string false "active, overdue or returned"
// @Param    offset query int false "offset"
// @Param    limit query int false "limit, at most 100"
// @Success  200 {object} model.ListLoans
// @Failure  400,401 {object} errs.ErrorResponse
// @Security Bearer
// @Router   /api/v1/loans [get]
func (h *Handler) ListLoans(c echo.Context) error {
	var (
		f   model.LoanFilter
		err error
	)
	if f.Page, err = pageParams(c); err != nil {
		return err
	}
	if f.BorrowerID, err = optionalUUID(c, "borrower_id"); err != nil {
		return err
	}
	if f.BranchID, err = optionalUUID(c, "branch_id"); err != nil {
		return err
	}
	if v := c.QueryParam("status"); v != "" {
		f.Status = model.LoanStatus(v)
		if !f.Status.Valid() {
			return badRequest("status is invalid")
		}
	}
	loans, err := h.svc.ListLoans(c.Request().Context(), actorOf(c), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) GetLoan(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	l, err := h.svc.GetLoan(c.Request().Context(), actorOf(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// CreateLoan
// @Summary  check a copy out to a borrower
// @Tags     loans
// @Param    loan body model.CreateLoanRequest true "loan"
// @Success  201 {object} model.Loan
// @Failure  400,401,403,404,409 {object} errs.ErrorResponse
// @Security Bearer
// @Router   /api/v1/loans [post]
func (h *Handler) CreateLoan(c echo.Context) error {
	var req model.CreateLoanRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	l, err := h.svc.CreateLoan(c.Request().Context(), actorOf(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

// ReturnLoan
// @Summary  mark a loan returned
// @Tags     loans
// @Param    id path string true "loan id"
// @Param    body body model.ReturnLoanRequest false "notes"
// @Success  200 {object} model.Loan
// @Failure  400,401,403,404 {object} errs.ErrorResponse
// @Security Bearer
// @Router   /api/v1/loans/{id}/return [put]
func (h *Handler) ReturnLoan(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req model.ReturnLoanRequest
	if err = h.bindOptional(c, &req); err != nil {
		return err
	}
	l, err := h.svc.ReturnLoan(c.Request().Context(), actorOf(c), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
