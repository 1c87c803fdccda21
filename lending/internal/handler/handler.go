package handler

import (
	"net/http"

	_ "github.com/Astemirdum/home-library/docs"
	md "github.com/Astemirdum/home-library/pkg/middleware"
	"github.com/Astemirdum/home-library/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	svc      LendingService
	identity IdentityResolver
	log      *zap.Logger
}

func New(svc LendingService, identity IdentityResolver, log *zap.Logger) *Handler {
	return &Handler{
		svc:      svc,
		identity: identity,
		log:      log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Validator = validate.NewCustomValidator()

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/", h.Info)
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1",
		middleware.RequestID(),
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.NewRateLimiter(apiRPS),
		h.Identity,
	)

	api.GET("/books", h.ListBooks)
	api.GET("/books/lookup", h.LookupISBN)
	api.GET("/books/:id", h.GetBook)
	api.POST("/books", h.CreateBook)
	api.DELETE("/books/:id", h.DeleteBook)

	api.GET("/copies", h.ListCopies)
	api.GET("/copies/:id", h.GetCopy)
	api.POST("/copies", h.CreateCopy)
	api.PUT("/copies/:id", h.UpdateCopy)
	api.DELETE("/copies/:id", h.DeleteCopy)

	api.GET("/branches", h.ListBranches)
	api.GET("/branches/:id", h.GetBranch)
	api.POST("/branches", h.CreateBranch)
	api.PUT("/branches/:id", h.UpdateBranch)

	api.GET("/loans", h.ListLoans)
	api.GET("/loans/:id", h.GetLoan)
	api.POST("/loans", h.CreateLoan)
	api.PUT("/loans/:id/return", h.ReturnLoan)

	api.GET("/users/me", h.Me)
	api.PUT("/users/me", h.UpdateMe)
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id", h.GetUser)
	api.PUT("/users/:id/role", h.UpdateUserRole)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":    "Home Library API",
		"version": "1.0.0",
		"docs":    "/swagger/index.html",
	})
}
