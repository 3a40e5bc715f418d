package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"glik/cache"
	"glik/exceptions"
	"glik/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProductDTO представляет данные нового товара.
// InternalID можно не передавать, тогда он генерируется.
type CreateProductDTO struct {
	InternalID  string `json:"internal_id" validate:"max=64"`
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"required"`
	CategoryID  uint   `json:"category" validate:"required"`
	Stock       int64  `json:"stock" validate:"gte=0"`
	LeasePrice  int64  `json:"lease_price" validate:"required,gt=0"`
	InitialFee  int64  `json:"initial_fee" validate:"gte=0"`
	CashPrice   int64  `json:"cash_price" validate:"required,gt=0"`
	Brand       string `json:"brand" validate:"required,max=50"`
	Extra       string `json:"extra"`
	IsFeatured  bool   `json:"is_featured"`
}

// ProductView представляет товар вместе с условиями лизинга
type ProductView struct {
	models.Product
	LeaseOptions map[int]models.LeaseOption `json:"lease_options"`
}

// ProductService предоставляет методы для работы с каталогом
type ProductService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewProductService создает новый экземпляр ProductService
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db, validator: validator.New()}
}

// Create добавляет товар в каталог и сбрасывает кеш каталога
func (s *ProductService) Create(ctx context.Context, dto CreateProductDTO) (*models.Product, error) {
	if err := validateDTO(s.validator, dto); err != nil {
		return nil, err
	}

	extra := dto.Extra
	if extra == "" {
		extra = "{}"
	}

	internalID := dto.InternalID
	if internalID == "" {
		internalID = uuid.NewString()
	}

	product := &models.Product{
		InternalID:  internalID,
		Name:        dto.Name,
		Description: dto.Description,
		CategoryID:  dto.CategoryID,
		Stock:       dto.Stock,
		LeasePrice:  dto.LeasePrice,
		InitialFee:  dto.InitialFee,
		CashPrice:   dto.CashPrice,
		Brand:       dto.Brand,
		Extra:       extra,
		IsFeatured:  dto.IsFeatured,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, err
	}

	cache.InvalidateProductCaches(ctx)
	return product, nil
}

// GetProductByID возвращает товар с условиями лизинга, с кешированием
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*ProductView, error) {
	key := fmt.Sprintf(cache.ProductKeyFmt, id)
	if data, ok := cache.GetCached(ctx, key); ok {
		var view ProductView
		if err := json.Unmarshal(data, &view); err == nil {
			return &view, nil
		}
	}

	var product models.Product
	if err := s.db.Preload("Images").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.NewNotFound("Product")
		}
		return nil, err
	}

	view := &ProductView{Product: product, LeaseOptions: product.LeaseOptions()}
	if data, err := json.Marshal(view); err == nil {
		cache.SetCached(ctx, key, data, cache.ProductTTL)
	}
	return view, nil
}

// GetProducts возвращает каталог, с кешированием полного списка.
// featuredOnly ограничивает выдачу рекомендуемыми товарами.
func (s *ProductService) GetProducts(ctx context.Context, featuredOnly bool) ([]ProductView, error) {
	if !featuredOnly {
		if data, ok := cache.GetCached(ctx, cache.ProductListKey); ok {
			var views []ProductView
			if err := json.Unmarshal(data, &views); err == nil {
				return views, nil
			}
		}
	}

	query := s.db.Preload("Images").Order("id ASC")
	if featuredOnly {
		query = query.Where("is_featured = ?", true)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = ProductView{Product: products[i], LeaseOptions: products[i].LeaseOptions()}
	}

	if !featuredOnly {
		if data, err := json.Marshal(views); err == nil {
			cache.SetCached(ctx, cache.ProductListKey, data, cache.ProductTTL)
		}
	}
	return views, nil
}

// UpdateStock изменяет остаток товара и сбрасывает кеш
func (s *ProductService) UpdateStock(ctx context.Context, id uint, delta int64) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exceptions.NewNotFound("Product")
		}
		return err
	}
	if product.Stock+delta < 0 {
		return exceptions.NewBadRequest("stock cannot go negative")
	}
	if err := s.db.Model(&product).Update("stock", product.Stock+delta).Error; err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}
