package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/navidsh/marketplace-api/internal/service"
	"github.com/navidsh/marketplace-api/internal/storage"
)

// ProductHandler serves the product CRUD endpoints, the purchase
// transition and the signed upload URL.  Signer may be nil when no
// object store is configured; the presign endpoint then reports the
// service as unavailable.
type ProductHandler struct {
	Products *service.ProductService
	Signer   storage.UploadURLSigner
}

func NewProductHandler(products *service.ProductService, signer storage.UploadURLSigner) *ProductHandler {
	return &ProductHandler{Products: products, Signer: signer}
}

// ----- DTOs -----

type createProductReq struct {
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Price       *float64 `json:"price"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
}

// updateProductReq uses pointers throughout: absent fields stay nil and
// are left untouched, so a price can be legitimately updated to zero.
type updateProductReq struct {
	Name        *string  `json:"name"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price"`
	Location    *string  `json:"location"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
}

type buyProductReq struct {
	ProductID uint64 `json:"product_id"`
}

// Create makes a new listing owned by the calling seller.
func (h *ProductHandler) Create(c echo.Context) error {
	caller, err := getCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Products.Create(ctx, caller, service.CreateProductInput{
		Name:        req.Name,
		Image:       req.Image,
		Price:       req.Price,
		Location:    req.Location,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// List returns all products with seller details.
func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	products, err := h.Products.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Search returns products whose name contains the ?name= substring.
func (h *ProductHandler) Search(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	products, err := h.Products.Search(ctx, c.QueryParam("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// PresignedURL returns a time-limited upload URL for a product image.
func (h *ProductHandler) PresignedURL(c echo.Context) error {
	fileName := c.QueryParam("fileName")
	fileType := c.QueryParam("fileType")
	if fileName == "" || fileType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fileName and fileType are required"})
	}
	if h.Signer == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "object storage is not configured"})
	}
	url, err := h.Signer.SignUploadURL(c.Request().Context(), fileName, fileType)
	if err != nil {
		c.Logger().Errorf("presign upload url: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "error generating pre-signed url"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

// Buy performs the purchase transition for the calling user.
func (h *ProductHandler) Buy(c echo.Context) error {
	caller, err := getCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req buyProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Products.Buy(ctx, caller, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "product purchased successfully",
		"product": p,
	})
}

// Update edits the supplied fields of the caller's own listing.
func (h *ProductHandler) Update(c echo.Context) error {
	caller, err := getCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var req updateProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Products.Update(ctx, caller, id, service.UpdateProductInput{
		Name:        req.Name,
		Image:       req.Image,
		Price:       req.Price,
		Location:    req.Location,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "product updated successfully",
		"product": p,
	})
}

// GetByID returns a product with its seller populated.
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Products.Get(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": p})
}

// Delete removes the caller's own listing.
func (h *ProductHandler) Delete(c echo.Context) error {
	caller, err := getCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Products.Delete(ctx, caller, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
