package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/product-inventory/internal/middleware"
	"github.com/iliyamo/product-inventory/internal/model"
	"github.com/iliyamo/product-inventory/internal/queue"
	"github.com/iliyamo/product-inventory/internal/service"
	"github.com/iliyamo/product-inventory/internal/validate"
)

// ProductHandler bundles dependencies for product endpoints.
type ProductHandler struct {
	Products *service.ProductService
}

func NewProductHandler(p *service.ProductService) *ProductHandler {
	return &ProductHandler{Products: p}
}

// List returns one page of products. Pagination, filters and search are
// validated/defaulted by the query schema; optional auth has already run
// so the route works for guests and authenticated users alike.
func (h *ProductHandler) List(c echo.Context) error {
	q := validate.Query(c)

	req := service.ListRequest{
		Page:       validate.Int(q, "pageNumber"),
		PageSize:   validate.Int(q, "pageSize"),
		Category:   validate.Str(q, "category"),
		SearchTerm: validate.Str(q, "searchTerm"),
		SortBy:     validate.Str(q, "sortBy"),
		SortOrder:  validate.Str(q, "sortOrder"),
		MinPrice:   validate.FloatPtr(q, "minPrice"),
		MaxPrice:   validate.FloatPtr(q, "maxPrice"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Products.List(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}

// GetByID returns a single product or a 404.
func (h *ProductHandler) GetByID(c echo.Context) error {
	id := validate.Uint64(validate.Params(c), "id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": p})
}

// Create inserts a product and publishes an audit event.
func (h *ProductHandler) Create(c echo.Context) error {
	body := validate.Body(c)

	in := service.CreateInput{
		Name:        validate.Str(body, "name"),
		Description: validate.Str(body, "description"),
		Category:    validate.Str(body, "category"),
	}
	if p := validate.FloatPtr(body, "price"); p != nil {
		in.Price = *p
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.Create(ctx, in)
	if err != nil {
		return err
	}

	h.publishEvent(c, queue.ActionCreated, p)
	return c.JSON(http.StatusCreated, echo.Map{"data": p})
}

// Update applies a partial update: fields absent from the body keep
// their current value, including an explicitly empty description which
// is distinguished from "not provided".
func (h *ProductHandler) Update(c echo.Context) error {
	id := validate.Uint64(validate.Params(c), "id")
	body := validate.Body(c)

	in := service.UpdateInput{
		Name:        validate.StrPtr(body, "name"),
		Description: validate.StrPtr(body, "description"),
		Price:       validate.FloatPtr(body, "price"),
		Category:    validate.StrPtr(body, "category"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.Update(ctx, id, in)
	if err != nil {
		return err
	}

	h.publishEvent(c, queue.ActionUpdated, p)
	return c.JSON(http.StatusOK, echo.Map{"data": p})
}

// Delete removes a product after the existence check.
func (h *ProductHandler) Delete(c echo.Context) error {
	id := validate.Uint64(validate.Params(c), "id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	deletedAt, err := h.Products.Delete(ctx, id)
	if err != nil {
		return err
	}

	h.publishEvent(c, queue.ActionDeleted, model.Product{ID: id})
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{
		"id":        id,
		"deletedAt": deletedAt,
	}})
}

// Categories returns the distinct category names.
func (h *ProductHandler) Categories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Products.Categories(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": cats})
}

// Search returns ranked name matches for the q term.
func (h *ProductHandler) Search(c echo.Context) error {
	q := validate.Query(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Products.Search(ctx, validate.Str(q, "q"), validate.Int(q, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// Statistics returns the aggregated statistics object.
func (h *ProductHandler) Statistics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Products.Statistics(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": stats})
}

// publishEvent emits a product audit event in the background. Failures
// are logged inside the publisher and never affect the response.
func (h *ProductHandler) publishEvent(c echo.Context, action string, p model.Product) {
	actor, _ := middleware.UserFrom(c)
	ev := queue.ProductEvent{
		Action:     action,
		ProductID:  p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price,
		ActorID:    actor.ID,
		ActorName:  actor.Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishProductEvent(ctx, ev)
	}()
}
