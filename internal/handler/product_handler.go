package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest creates or fully replaces a product.
type ProductRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Description   string `json:"description"`
	Price         string `json:"price" validate:"required"`
	StockQuantity int    `json:"stockQuantity" validate:"gte=0"`
	Category      string `json:"category" validate:"max=100"`
	ImageURL      string `json:"imageUrl" validate:"omitempty,url"`
}

// ProductResponse is the public shape of a product.
type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"imageUrl"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func toProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

var errInvalidPrice = errors.New("price must be a positive decimal")

func (r *ProductRequest) toModel() (*model.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return nil, errInvalidPrice
	}
	return &model.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         price,
		StockQuantity: r.StockQuantity,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
	}, nil
}

// List godoc
// @Summary List products
// @Description Paginated catalog listing with optional category, search and in-stock filters
// @Tags products
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Name search"
// @Param inStockOnly query bool false "Only products with stock"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} PageResponse
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := repository.ProductFilter{
		Category:    c.QueryParam("category"),
		NameSearch:  c.QueryParam("search"),
		InStockOnly: c.QueryParam("inStockOnly") == "true",
	}
	page := pageRequest(c)

	products, total, err := h.productService.List(c.Request().Context(), filter, page)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	return c.JSON(http.StatusOK, newPageResponse(responses, page, total))
}

// Get godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} errors.Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, apperrors.ErrProductNotFound)
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Categories godoc
// @Summary List categories
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Router /products/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.productService.Categories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CheckName godoc
// @Summary Check product name availability
// @Tags products
// @Produce json
// @Param name query string true "Product name"
// @Success 200 {boolean} bool
// @Router /products/check-name [get]
func (h *ProductHandler) CheckName(c echo.Context) error {
	available, err := h.productService.IsNameAvailable(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, available)
}

// Create godoc
// @Summary Create product
// @Description Create a new catalog entry (admin only)
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Product data"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: err.Error()})
	}

	product, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: err.Error()})
	}

	created, err := h.productService.Create(c.Request().Context(), product)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toProductResponse(created))
}

// Update godoc
// @Summary Update product
// @Description Replace a product's fields (admin only)
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} errors.Response
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, apperrors.ErrProductNotFound)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: err.Error()})
	}

	product, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{Success: false, Message: err.Error()})
	}

	updated, err := h.productService.Update(c.Request().Context(), id, product)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(updated))
}

// Delete godoc
// @Summary Delete product
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 403 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, apperrors.ErrProductNotFound)
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
