package models

import (
	"time"
)

// Category представляет категорию каталога
type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:50;unique;not null" json:"name"`
	ParentID *uint  `json:"parent,omitempty"`
}

// TableName возвращает имя таблицы для модели Category
func (Category) TableName() string {
	return "categories"
}

// Product представляет товар каталога.
// Цены хранятся в минимальных единицах валюты.
type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	InternalID  string         `gorm:"size:64;unique;not null" json:"internal_id"`
	Name        string         `gorm:"size:50;unique;not null" json:"name"`
	Description string         `gorm:"not null" json:"description"`
	CategoryID  uint           `gorm:"not null" json:"category"`
	Category    Category       `gorm:"foreignKey:CategoryID" json:"-"`
	Stock       int64          `gorm:"not null" json:"stock"`
	LeasePrice  int64          `gorm:"not null" json:"lease_price"`
	InitialFee  int64          `gorm:"not null" json:"initial_fee"`
	CashPrice   int64          `gorm:"not null" json:"cash_price"`
	Brand       string         `gorm:"size:50;not null" json:"brand"`
	Extra       string         `gorm:"type:jsonb" json:"extra"`
	CreatedAt   time.Time      `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	IsFeatured  bool           `gorm:"not null;default:false" json:"is_featured"`
	Images      []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

// LeaseOption представляет условия лизинга на один период
type LeaseOption struct {
	InitialFee int64 `json:"initial_fee"`
	WeeklyFee  int64 `json:"weekly_fee"`
	Total      int64 `json:"total"`
}

// LeaseOptions возвращает условия лизинга по допустимым срокам в неделях
func (p *Product) LeaseOptions() map[int]LeaseOption {
	options := make(map[int]LeaseOption, len(LeaseWeeksPeriods))
	for _, weeks := range LeaseWeeksPeriods {
		weekly := p.LeasePrice / int64(weeks)
		options[weeks] = LeaseOption{
			InitialFee: p.InitialFee,
			WeeklyFee:  weekly,
			Total:      p.InitialFee + weekly*int64(weeks),
		}
	}
	return options
}

// TableName возвращает имя таблицы для модели Product
func (Product) TableName() string {
	return "products"
}

// ProductImage представляет изображение товара
type ProductImage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  uint      `gorm:"not null;index" json:"product"`
	StorageKey string    `gorm:"size:200" json:"storage_key"`
	CreatedAt  time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName возвращает имя таблицы для модели ProductImage
func (ProductImage) TableName() string {
	return "product_images"
}
