package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceCategory groups catalog entries the way the floor is organized.
type ServiceCategory string

const (
	CategoryHair    ServiceCategory = "Hair Salon"
	CategoryBarber  ServiceCategory = "Barbers"
	CategoryNails   ServiceCategory = "Nails & Foot Services"
	CategorySpa     ServiceCategory = "Spa"
	CategoryLaundry ServiceCategory = "Laundry"
	CategoryRetail  ServiceCategory = "Retail Product"
)

// Categories lists every known category.
func Categories() []ServiceCategory {
	return []ServiceCategory{
		CategoryHair, CategoryBarber, CategoryNails,
		CategorySpa, CategoryLaundry, CategoryRetail,
	}
}

// ValidCategory reports whether the category is one of the known values.
func ValidCategory(c ServiceCategory) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry, either a rendered service or a retail item.
// StockLevel and MinReorderPoint are set iff IsRetail is true.
type Product struct {
	ID              string
	Name            string
	Price           decimal.Decimal
	Category        ServiceCategory
	SubCategory     string
	IsRetail        bool
	StockLevel      *int
	MinReorderPoint *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LowOnStock reports whether a retail item has fallen to its reorder point.
func (p *Product) LowOnStock() bool {
	if !p.IsRetail || p.StockLevel == nil || p.MinReorderPoint == nil {
		return false
	}
	return *p.StockLevel <= *p.MinReorderPoint
}
