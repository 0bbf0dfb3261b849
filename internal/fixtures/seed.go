package fixtures

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/auth"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
)

type seedStaff struct {
	Name     string
	Role     domain.StaffRole
	PIN      string
	JobTitle string
}

type seedProduct struct {
	Name            string
	Price           int64
	Category        domain.ServiceCategory
	SubCategory     string
	IsRetail        bool
	StockLevel      int
	MinReorderPoint int
}

var defaultStaff = []seedStaff{
	{Name: "Sarah Manager", Role: domain.StaffRoleManager, PIN: "1111", JobTitle: "General Manager"},
	{Name: "Mike Supervisor", Role: domain.StaffRoleSupervisor, PIN: "2222", JobTitle: "Floor Lead"},
	{Name: "Jessica Stylist", Role: domain.StaffRoleStaff, PIN: "3333", JobTitle: "Hair Stylist"},
	{Name: "David Barber", Role: domain.StaffRoleStaff, PIN: "4444", JobTitle: "Master Barber"},
	{Name: "Lisa Tech", Role: domain.StaffRoleStaff, PIN: "5555", JobTitle: "Nail Technician"},
}

var defaultCatalog = []seedProduct{
	{Name: "Ladies Cut & Style", Price: 5000, Category: domain.CategoryHair, SubCategory: "Cutting"},
	{Name: "Full Weave Install", Price: 15000, Category: domain.CategoryHair, SubCategory: "Weaveon Section"},
	{Name: "Classic Cut", Price: 3000, Category: domain.CategoryBarber, SubCategory: "Men's Wear"},
	{Name: "Beard Trim & Shape", Price: 2000, Category: domain.CategoryBarber, SubCategory: "Men's Wear"},
	{Name: "Gel Manicure", Price: 4500, Category: domain.CategoryNails, SubCategory: "Manicure"},
	{Name: "Pedicure Spa", Price: 6000, Category: domain.CategoryNails, SubCategory: "Pedicure"},
	{Name: "Argan Oil Shampoo", Price: 4500, Category: domain.CategoryRetail, SubCategory: "Hair Care", IsRetail: true, StockLevel: 12, MinReorderPoint: 5},
	{Name: "Matte Clay Pomade", Price: 3500, Category: domain.CategoryRetail, SubCategory: "Men's Grooming", IsRetail: true, StockLevel: 3, MinReorderPoint: 5},
	{Name: "Cuticle Oil", Price: 1500, Category: domain.CategoryRetail, SubCategory: "Nail Care", IsRetail: true, StockLevel: 20, MinReorderPoint: 5},
}

// SeedDefaults populates default staff and catalog when both tables are
// empty, so a fresh install is usable out of the box. Seed PINs are for
// development only.
func SeedDefaults(ctx context.Context, staffRepo repository.StaffRepository, productRepo repository.ProductRepository, bcryptCost int, logger *zap.Logger) error {
	staffCount, err := staffRepo.Count(ctx)
	if err != nil {
		return err
	}
	if staffCount == 0 {
		for _, seed := range defaultStaff {
			hash, err := auth.HashPIN(seed.PIN, bcryptCost)
			if err != nil {
				return err
			}
			member := &domain.StaffMember{
				Name:     seed.Name,
				Role:     seed.Role,
				PINHash:  hash,
				JobTitle: seed.JobTitle,
				Active:   true,
			}
			if err := staffRepo.Create(ctx, member); err != nil {
				return err
			}
		}
		logger.Info("seeded default staff", zap.Int("count", len(defaultStaff)))
	}

	productCount, err := productRepo.Count(ctx)
	if err != nil {
		return err
	}
	if productCount == 0 {
		for _, seed := range defaultCatalog {
			product := &domain.Product{
				Name:        seed.Name,
				Price:       decimal.NewFromInt(seed.Price),
				Category:    seed.Category,
				SubCategory: seed.SubCategory,
				IsRetail:    seed.IsRetail,
			}
			if seed.IsRetail {
				stock := seed.StockLevel
				reorder := seed.MinReorderPoint
				product.StockLevel = &stock
				product.MinReorderPoint = &reorder
			}
			if err := productRepo.Create(ctx, product); err != nil {
				return err
			}
		}
		logger.Info("seeded default catalog", zap.Int("count", len(defaultCatalog)))
	}

	return nil
}
