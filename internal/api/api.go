package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"member-pricing-service/internal/auth"
	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/pricing"
	"member-pricing-service/internal/service"
)

type PricingReader interface {
	GetProductPricing(ctx context.Context, id int, viewer pricing.Viewer, execCtx pricing.ExecutionContext) (*entity.ProductPricing, error)
}

type CatalogWriter interface {
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	UpdatePrices(ctx context.Context, id int, update entity.PriceUpdate) (*entity.Product, error)
}

type UserManager interface {
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User, actor pricing.Role) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateSession(ctx context.Context, email, token string) error
}

// errorResponse maps service errors onto HTTP statuses.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}

func paramID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// RegisterRoutes wires every handler onto e.
func RegisterRoutes(e *echo.Echo, pricingHandler *PricingHandler, userHandler *UserHandler, jwtSecret []byte) {
	optional := auth.Optional(jwtSecret)
	required := auth.Required(jwtSecret)
	managers := auth.RequireRole(pricing.Role.CanManagePrices)

	e.GET("/products/:id/pricing", pricingHandler.GetPricing, optional)

	admin := e.Group("/admin", required, managers)
	admin.GET("/products/:id/pricing", pricingHandler.GetAdminPricing)
	admin.POST("/products", pricingHandler.CreateProduct)
	admin.PUT("/products/:id/prices", pricingHandler.UpdatePrices)

	e.POST("/users", userHandler.CreateUser, optional)
	e.POST("/login", userHandler.Login)
	e.GET("/users/validate", userHandler.ValidateSession, required)
	e.GET("/users/:id", userHandler.GetUserByID, required)

	e.GET("/pricing/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "member-pricing-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})
}
