package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"member-pricing-service/internal/auth"
	"member-pricing-service/internal/entity"
	"member-pricing-service/internal/pricing"
)

type UserHandler struct {
	users UserManager
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(users UserManager) *UserHandler {
	return &UserHandler{users: users}
}

// GetUserByID retrieves a user by ID --> /users/:id
func (h *UserHandler) GetUserByID(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	claims, _ := auth.ClaimsFromContext(c)
	if claims == nil || (claims.UserID != id && !claims.Role.CanManagePrices()) {
		return c.JSON(403, map[string]string{"error": "forbidden"})
	}

	user, err := h.users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(200, user)
}

// CreateUser creates a new user --> /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	user := entity.User{}
	if err := c.Bind(&user); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	actor := pricing.RoleAnonymous
	if claims, ok := auth.ClaimsFromContext(c); ok {
		actor = claims.Role
	}

	createdUser, err := h.users.CreateUser(c.Request().Context(), &user, actor)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(201, createdUser)
}

// Login logs in a user --> /login
func (h *UserHandler) Login(c echo.Context) error {
	login := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}

	if err := c.Bind(&login); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.users.Login(c.Request().Context(), login.Email, login.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(200, map[string]string{"token": token})
}

// ValidateSession checks the bearer token is the user's current session --> /users/validate
func (h *UserHandler) ValidateSession(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	claims, hasClaims := auth.ClaimsFromContext(c)
	if !ok || !hasClaims {
		return c.JSON(401, map[string]string{"error": "Unauthorized"})
	}

	if err := h.users.ValidateSession(c.Request().Context(), claims.Email, token.Raw); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(200, map[string]string{"message": "Session is valid"})
}
