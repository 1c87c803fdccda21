package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/Astemirdum/home-library/lending/internal/errs"
	"github.com/Astemirdum/home-library/lending/internal/model"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrAlreadyReturned):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	h.log.Error("internal",
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.String("path", c.Path()),
		zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

func (h *Handler) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

// bindOptional binds like bind but leaves req zero when the body is empty,
// whatever the declared content length.
func (h *Handler) bindOptional(c echo.Context, req any) error {
	r := c.Request()
	if r.Body == nil || r.Body == http.NoBody {
		return c.Validate(req)
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return badRequest("invalid request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return c.Validate(req)
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	r.ContentLength = int64(len(raw))
	return h.bind(c, req)
}

func idParam(c echo.Context) (string, error) {
	return uuidValue(c.Param("id"), "id")
}

func uuidValue(v, name string) (string, error) {
	if _, err := uuid.Parse(v); err != nil {
		return "", badRequest(name + " is invalid")
	}
	return v, nil
}

func optionalUUID(c echo.Context, name string) (string, error) {
	v := c.QueryParam(name)
	if v == "" {
		return "", nil
	}
	return uuidValue(v, name)
}

func optionalBool(c echo.Context, name string) (*bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, badRequest(name + " is invalid")
	}
	return &b, nil
}

func pageParams(c echo.Context) (model.Page, error) {
	var (
		p   model.Page
		err error
	)
	if v := c.QueryParam("offset"); v != "" {
		if p.Offset, err = strconv.Atoi(v); err != nil || p.Offset < 0 {
			return model.Page{}, badRequest("offset is invalid")
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if p.Limit, err = strconv.Atoi(v); err != nil || p.Limit < 1 {
			return model.Page{}, badRequest("limit is invalid")
		}
	}
	return p, nil
}
