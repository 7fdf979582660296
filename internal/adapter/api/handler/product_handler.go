package handler

import (
	"worldmart/internal/usecase"
	"worldmart/pkg/errors"
	"worldmart/pkg/response"
	"worldmart/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type productRequest struct {
	CategoryID   string   `json:"category_id"`
	Title        string   `json:"title" validate:"required,max=120"`
	Description  string   `json:"description" validate:"max=4000"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Currency     string   `json:"currency" validate:"required,oneof=WLD USD"`
	Images       []string `json:"images" validate:"dive,url"`
	Condition    string   `json:"condition" validate:"required,oneof=new second-hand"`
	Location     string   `json:"location"`
	Status       string   `json:"status" validate:"required,oneof=active inactive sold"`
	ExternalLink string   `json:"external_link" validate:"omitempty,url"`
}

func (r *productRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		CategoryID:   r.CategoryID,
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		Currency:     r.Currency,
		Images:       r.Images,
		Condition:    r.Condition,
		Location:     r.Location,
		Status:       r.Status,
		ExternalLink: r.ExternalLink,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		CategoryID: c.QueryParam("category_id"),
		Condition:  c.QueryParam("condition"),
		Location:   c.QueryParam("location"),
		Query:      c.QueryParam("q"),
		SellerID:   c.QueryParam("seller_id"),
		Limit:      pagination.PageSize,
		Offset:     (pagination.Page - 1) * pagination.PageSize,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	product, err := h.productUseCase.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) ListCategories(c echo.Context) error {
	categories, err := h.productUseCase.ListCategories(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, categories)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := usecase.Session{UserID: c.Get("uid").(string)}

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), session, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := usecase.Session{UserID: c.Get("uid").(string)}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), session, id, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	session := usecase.Session{UserID: c.Get("uid").(string)}

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), session, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product deleted successfully",
	})
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	session := usecase.Session{UserID: c.Get("uid").(string)}

	products, err := h.productUseCase.ListMyProducts(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}
