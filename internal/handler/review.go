package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/navidsh/marketplace-api/internal/service"
)

// ReviewHandler serves review creation and listing under a product.
type ReviewHandler struct {
	Reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type createReviewReq struct {
	Rating  *int    `json:"rating"`
	Comment string  `json:"comment"`
	User    *uint64 `json:"user"` // optional explicit reviewer, defaults to the caller
}

// Create submits a review for the product in the path.
func (h *ReviewHandler) Create(c echo.Context) error {
	caller, err := getCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID, err := pathID(c, "product")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	userID := caller.ID
	if req.User != nil && *req.User != 0 {
		userID = *req.User
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Reviews.Create(ctx, userID, productID, req.Rating, req.Comment); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "review submitted successfully"})
}

// List returns the product's reviews, newest first.
func (h *ReviewHandler) List(c echo.Context) error {
	productID, err := pathID(c, "product")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	reviews, err := h.Reviews.List(ctx, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}
