// internal/domain/catalog/service.go
package catalog

import (
	"fmt"

	"gorm.io/gorm"
)

// Service handles read-only catalog queries
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListRequest represents catalog list query parameters
type ListRequest struct {
	Brand    string `form:"brand"`
	Category string `form:"category"`
	Search   string `form:"q"`
	Line     string `form:"line"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
}

// ListResponse represents a product listing with pagination
type ListResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// List retrieves active products matching the filter
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	query := s.db.Model(&Product{}).Where("is_active = ?", true)

	if req.Brand != "" {
		query = query.Where("brand = ?", req.Brand)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Line == LineDigital {
		query = query.Where("is_digital = ?", true)
	} else if req.Line == LinePhysical {
		query = query.Where("is_digital = ?", false)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR brand ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	var products []Product
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return &ListResponse{
		Products: products,
		Total:    total,
		Page:     req.Page,
		Limit:    req.Limit,
	}, nil
}

// Get retrieves a single active product by id
func (s *Service) Get(id uint) (*Product, error) {
	var prod Product
	result := s.db.Where("id = ? AND is_active = ?", id, true).First(&prod)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found or inactive")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &prod, nil
}
