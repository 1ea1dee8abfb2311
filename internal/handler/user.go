package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/navidsh/marketplace-api/internal/service"
)

// UserHandler serves profile updates, the admin report, the per-user
// bought/created product listings and admin account deletion.
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

type updateProfileReq struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type userIDReq struct {
	UserID uint64 `json:"user_id"`
}

// UpdateProfile changes name and/or phone on the caller's own account.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	caller, err := getCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, caller, id, req.Name, req.Phone)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "profile updated successfully",
		"user":    u,
	})
}

// UsersWithProducts is the admin report of all sellers and buyers with
// their products.
func (h *UserHandler) UsersWithProducts(c echo.Context) error {
	caller, err := getCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	report, err := h.Users.AdminReport(ctx, caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": report})
}

// ProductsBought lists the products a user has purchased.
func (h *UserHandler) ProductsBought(c echo.Context) error {
	var req userIDReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	products, err := h.Users.ProductsBought(ctx, req.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": products})
}

// ProductsCreated lists a seller's own listings with buyer details.
func (h *UserHandler) ProductsCreated(c echo.Context) error {
	var req userIDReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	products, err := h.Users.ProductsCreated(ctx, req.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": products})
}

// GetByID returns a user's public record.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": u})
}

// Delete removes a user account.  Admin only.
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := getCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.DeleteUser(ctx, caller, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "user deleted successfully",
	})
}
