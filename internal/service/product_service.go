package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/product-inventory/internal/apperr"
	"github.com/iliyamo/product-inventory/internal/model"
	"github.com/iliyamo/product-inventory/internal/repository"
)

// ProductStore is the slice of the product repository the service needs.
type ProductStore interface {
	List(ctx context.Context, q repository.ProductQuery) ([]model.Product, int, error)
	GetByID(ctx context.Context, id uint64) (model.Product, error)
	Create(ctx context.Context, name, description string, price float64, category string) (model.Product, error)
	Update(ctx context.Context, id uint64, name, description string, price float64, category string) (model.Product, error)
	Delete(ctx context.Context, id uint64) error
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, term string, limit int) ([]model.Product, error)
	OverallStats(ctx context.Context) (int, float64, error)
	CategoryStats(ctx context.Context) ([]model.CategoryStat, error)
	PriceHistogram(ctx context.Context) ([5]int, error)
}

// ListRequest is the request-scoped query descriptor for List. SortBy
// and SortOrder are accepted and validated upstream but not forwarded to
// the store; the observed calling contract never passes them down.
type ListRequest struct {
	Page       int
	PageSize   int
	Category   string
	SearchTerm string
	SortBy     string
	SortOrder  string
	MinPrice   *float64
	MaxPrice   *float64
}

// Filters echoes back the filter criteria a listing was built with. It
// is attached to the response only when at least one criterion was
// actually supplied.
type Filters struct {
	Category   string   `json:"category,omitempty"`
	SearchTerm string   `json:"searchTerm,omitempty"`
	MinPrice   *float64 `json:"minPrice,omitempty"`
	MaxPrice   *float64 `json:"maxPrice,omitempty"`
}

// ListResult is the shaped output of List.
type ListResult struct {
	Products   []model.Product  `json:"products"`
	Pagination model.Pagination `json:"pagination"`
	Filters    *Filters         `json:"filters,omitempty"`
}

// ProductService composes pagination, filtering and search parameters
// into store calls and shapes the results. Everything the store cannot
// express lives here: the price-range post-filter, search ranking
// tie-breaks and statistics formatting.
type ProductService struct {
	Store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{Store: store}
}

// List fetches one page of products. Page/size/category/search are
// delegated to the store; min/max price bounds are applied client-side
// on top of the returned page. The post-filter intentionally does not
// recompute totalCount or totalPages, so pagination metadata reflects
// the unfiltered result set when price bounds are supplied.
func (s *ProductService) List(ctx context.Context, req ListRequest) (ListResult, error) {
	items, total, err := s.Store.List(ctx, repository.ProductQuery{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Category:   req.Category,
		SearchTerm: req.SearchTerm,
	})
	if err != nil {
		return ListResult{}, apperr.Internal("PRODUCTS_FETCH_ERROR", "failed to fetch products", err)
	}

	res := ListResult{Products: items}
	if total > 0 {
		totalPages := (total + req.PageSize - 1) / req.PageSize
		res.Pagination = model.Pagination{
			CurrentPage:     req.Page,
			PageSize:        req.PageSize,
			TotalCount:      total,
			TotalPages:      totalPages,
			HasNextPage:     req.Page < totalPages,
			HasPreviousPage: req.Page > 1,
		}
	}

	if req.MinPrice != nil || req.MaxPrice != nil {
		kept := make([]model.Product, 0, len(res.Products))
		for _, p := range res.Products {
			if req.MinPrice != nil && p.Price < *req.MinPrice {
				continue
			}
			if req.MaxPrice != nil && p.Price > *req.MaxPrice {
				continue
			}
			kept = append(kept, p)
		}
		res.Products = kept
	}

	if req.Category != "" || req.SearchTerm != "" || req.MinPrice != nil || req.MaxPrice != nil {
		res.Filters = &Filters{
			Category:   req.Category,
			SearchTerm: req.SearchTerm,
			MinPrice:   req.MinPrice,
			MaxPrice:   req.MaxPrice,
		}
	}
	return res, nil
}

// GetByID returns the product or a typed not-found.
func (s *ProductService) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	p, err := s.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Product{}, apperr.NotFound(apperr.CodeProductNotFound, "product not found")
		}
		return model.Product{}, apperr.Internal("PRODUCT_FETCH_ERROR", "failed to fetch product", err)
	}
	return p, nil
}

// CreateInput carries the validated fields for Create.
type CreateInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
}

// Create inserts a product; the store echoing zero rows back is treated
// as a creation failure.
func (s *ProductService) Create(ctx context.Context, in CreateInput) (model.Product, error) {
	p, err := s.Store.Create(ctx, in.Name, in.Description, in.Price, in.Category)
	if err != nil {
		return model.Product{}, apperr.Internal("PRODUCT_CREATE_ERROR", "failed to create product", err)
	}
	return p, nil
}

// UpdateInput is the partial-update payload. A nil field means "keep the
// current value"; a non-nil pointer overrides it, including an explicit
// empty description.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
}

// Update re-reads the record, merges the partial input over it and only
// then issues the update. The existence check and the mutation are not
// atomic against concurrent writers; a concurrent delete between the two
// surfaces as not-found from the update call.
func (s *ProductService) Update(ctx context.Context, id uint64, in UpdateInput) (model.Product, error) {
	existing, err := s.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Product{}, apperr.NotFound(apperr.CodeProductNotFound, "product not found")
		}
		return model.Product{}, apperr.Internal("PRODUCT_FETCH_ERROR", "failed to fetch product", err)
	}

	name := existing.Name
	description := existing.Description
	price := existing.Price
	category := existing.Category
	if in.Name != nil {
		name = *in.Name
	}
	if in.Description != nil {
		description = *in.Description
	}
	if in.Price != nil {
		price = *in.Price
	}
	if in.Category != nil {
		category = *in.Category
	}

	p, err := s.Store.Update(ctx, id, name, description, price, category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Product{}, apperr.NotFound(apperr.CodeProductNotFound, "product not found")
		}
		return model.Product{}, apperr.Internal("PRODUCT_UPDATE_ERROR", "failed to update product", err)
	}
	return p, nil
}

// Delete verifies the record exists, deletes it and reports when.
func (s *ProductService) Delete(ctx context.Context, id uint64) (time.Time, error) {
	if _, err := s.Store.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return time.Time{}, apperr.NotFound(apperr.CodeProductNotFound, "product not found")
		}
		return time.Time{}, apperr.Internal("PRODUCT_FETCH_ERROR", "failed to fetch product", err)
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return time.Time{}, apperr.Internal("PRODUCT_DELETE_ERROR", "failed to delete product", err)
	}
	return time.Now().UTC(), nil
}

// Categories returns the distinct category list.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.Store.Categories(ctx)
	if err != nil {
		return nil, apperr.Internal("CATEGORIES_FETCH_ERROR", "failed to fetch categories", err)
	}
	return cats, nil
}

// Search returns name matches ranked exact first, prefix second, other
// substring matches last, alphabetical inside each tier. The store
// applies the same ranking before its limit so exact matches survive
// truncation; the re-sort here keeps the response order independent of
// store collation.
func (s *ProductService) Search(ctx context.Context, term string, limit int) ([]model.Product, error) {
	items, err := s.Store.Search(ctx, term, limit)
	if err != nil {
		return nil, apperr.Internal("PRODUCT_SEARCH_ERROR", "failed to search products", err)
	}

	lt := strings.ToLower(term)
	rank := func(name string) int {
		ln := strings.ToLower(name)
		switch {
		case ln == lt:
			return 0
		case strings.HasPrefix(ln, lt):
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := rank(items[i].Name), rank(items[j].Name)
		if ri != rj {
			return ri < rj
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// Statistics aggregates three independent store queries into the
// statistics response. Percentages are zero when the table is empty.
func (s *ProductService) Statistics(ctx context.Context) (model.Statistics, error) {
	count, avg, err := s.Store.OverallStats(ctx)
	if err != nil {
		return model.Statistics{}, apperr.Internal("STATISTICS_FETCH_ERROR", "failed to fetch statistics", err)
	}
	cats, err := s.Store.CategoryStats(ctx)
	if err != nil {
		return model.Statistics{}, apperr.Internal("STATISTICS_FETCH_ERROR", "failed to fetch statistics", err)
	}
	hist, err := s.Store.PriceHistogram(ctx)
	if err != nil {
		return model.Statistics{}, apperr.Internal("STATISTICS_FETCH_ERROR", "failed to fetch statistics", err)
	}

	for i := range cats {
		cats[i].AveragePrice = round2(cats[i].AveragePrice)
	}

	labels := [5]string{"0-49.99", "50-99.99", "100-499.99", "500-999.99", "1000+"}
	ranges := make([]model.PriceRange, 0, len(labels))
	for i, label := range labels {
		pct := 0.0
		if count > 0 {
			pct = round2(float64(hist[i]) * 100 / float64(count))
		}
		ranges = append(ranges, model.PriceRange{Range: label, Count: hist[i], Percentage: pct})
	}

	return model.Statistics{
		TotalProducts: count,
		AveragePrice:  round2(avg),
		Categories:    cats,
		PriceRanges:   ranges,
	}, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
