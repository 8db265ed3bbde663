// Seeds the catalog and demo buyer accounts. Safe to run repeatedly:
// products upsert by name, accounts are skipped when the email exists.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/worlddist/ordering-backend/internal/config"
	"github.com/worlddist/ordering-backend/internal/domain"
	"github.com/worlddist/ordering-backend/internal/log"
	"github.com/worlddist/ordering-backend/internal/repository"
	"github.com/worlddist/ordering-backend/internal/repository/postgres"
	"github.com/worlddist/ordering-backend/internal/service"
	"gorm.io/datatypes"
)

type seedProduct struct {
	Name        string
	Category    string
	BasePrice   string
	Unit        string
	Stock       int
	Description string
	ImageURL    string
}

var products = []seedProduct{
	{
		Name:        "Premium Olive Oil",
		Category:    "Food Commodities",
		BasePrice:   "45.00",
		Unit:        "kg",
		Stock:       5000,
		Description: "Extra virgin olive oil from Mediterranean groves. Ideal for restaurants and food service.",
		ImageURL:    "https://images.unsplash.com/photo-1474979266404-7eaacbcd87c5?w=800&q=80",
	},
	{
		Name:        "Basmati Rice",
		Category:    "Food Commodities",
		BasePrice:   "0.30",
		Unit:        "kg",
		Stock:       15000,
		Description: "Premium long-grain basmati rice. Perfect for hotels and restaurant chains.",
		ImageURL:    "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=800&q=80",
	},
	{
		Name:        "Industrial Coffee Beans",
		Category:    "Food Commodities",
		BasePrice:   "28.00",
		Unit:        "kg",
		Stock:       8000,
		Description: "Premium Arabica coffee beans sourced from sustainable farms worldwide.",
		ImageURL:    "https://images.unsplash.com/photo-1447933601403-0c6688de566e?w=800&q=80",
	},
	{
		Name:        "Disposable Gloves",
		Category:    "Durable Consumables",
		BasePrice:   "18.00",
		Unit:        "box",
		Stock:       20000,
		Description: "Nitrile gloves for food service and hospitality industry. FDA approved.",
		ImageURL:    "https://images.unsplash.com/photo-1584930330451-7ff79da88cfd?w=800&q=80",
	},
	{
		Name:        "Cleaning Supplies Kit",
		Category:    "Durable Consumables",
		BasePrice:   "35.00",
		Unit:        "kit",
		Stock:       3000,
		Description: "Commercial-grade cleaning supplies for hospitality and food service operations.",
		ImageURL:    "https://images.unsplash.com/photo-1585421514738-01798e348b17?w=800&q=80",
	},
	{
		Name:        "Organic Pasta",
		Category:    "Food Commodities",
		BasePrice:   "8.00",
		Unit:        "kg",
		Stock:       12000,
		Description: "Italian organic durum wheat pasta. Bulk quantities for restaurant supply.",
		ImageURL:    "https://images.unsplash.com/photo-1621996346565-e3dbc646d9a9?w=800&q=80",
	},
	{
		Name:        "Paper Towels",
		Category:    "Durable Consumables",
		BasePrice:   "22.00",
		Unit:        "case",
		Stock:       8500,
		Description: "Industrial paper towels for commercial kitchens and hospitality.",
		ImageURL:    "https://images.unsplash.com/photo-1610557892470-55d9e80c0bce?w=800&q=80",
	},
	{
		Name:        "Sea Salt",
		Category:    "Food Commodities",
		BasePrice:   "15.00",
		Unit:        "kg",
		Stock:       6000,
		Description: "Natural sea salt from Atlantic coast. Food-grade for culinary use.",
		ImageURL:    "https://images.unsplash.com/photo-1583954369783-07df0e2c6fa7?w=800&q=80",
	},
}

type seedUser struct {
	Email       string
	Password    string
	CompanyName string
	Country     string
	Region      string
}

var users = []seedUser{
	{
		Email:       "demo@restaurant.com",
		Password:    "demo123",
		CompanyName: "Demo Restaurant Chain",
		Country:     "Germany",
		Region:      "EU",
	},
	{
		Email:       "test@hotel.com",
		Password:    "test123",
		CompanyName: "Test Hotel Group",
		Country:     "France",
		Region:      "EU",
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	repos := postgres.NewRepositories(db)
	ctx := context.Background()

	count, err := seedCatalog(ctx, repos)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed products")
	}
	logger.Info().Int("count", count).Msg("seeded products")

	seeded, err := seedUsers(ctx, repos)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed demo users")
	}
	logger.Info().Int("count", seeded).Msg("seeded demo users")

	for _, u := range users {
		logger.Info().Str("email", u.Email).Str("password", u.Password).Msg("demo credentials")
	}
}

// seedCatalog upserts the full demo catalog keyed by product name.
func seedCatalog(ctx context.Context, repos *repository.Repositories) (int, error) {
	catalog := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		base := decimal.RequireFromString(p.BasePrice)
		catalog = append(catalog, &domain.Product{
			Name:        p.Name,
			Category:    p.Category,
			BasePrice:   base,
			Unit:        p.Unit,
			Stock:       p.Stock,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			PriceTiers:  tiersFor(base),
		})
	}

	if err := repos.Product.UpsertMany(ctx, catalog); err != nil {
		return 0, err
	}
	return len(catalog), nil
}

// seedUsers creates the demo accounts, skipping emails that already
// exist so reruns never clobber a changed password.
func seedUsers(ctx context.Context, repos *repository.Repositories) (int, error) {
	seeded := 0
	for _, u := range users {
		if existing, err := repos.User.GetByEmail(ctx, u.Email); err == nil && existing != nil {
			continue
		}

		digest, err := service.HashPassword(u.Password)
		if err != nil {
			return seeded, err
		}

		user := &domain.User{
			Email:        u.Email,
			PasswordHash: digest,
			CompanyName:  u.CompanyName,
			Country:      u.Country,
			Region:       u.Region,
		}
		if err := repos.User.Create(ctx, user); err != nil {
			return seeded, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		seeded++
	}
	return seeded, nil
}

// tiersFor derives the standard volume price breaks shown on the quote
// page: list price, 5% off from 100 units, 10% off from 500.
func tiersFor(base decimal.Decimal) datatypes.JSON {
	tiers := []domain.PriceTier{
		{Label: "standard", MinQuantity: 1, UnitPrice: base},
		{Label: "volume-100", MinQuantity: 100, UnitPrice: base.Mul(decimal.NewFromFloat(0.95)).Round(2)},
		{Label: "volume-500", MinQuantity: 500, UnitPrice: base.Mul(decimal.NewFromFloat(0.90)).Round(2)},
	}

	raw, err := json.Marshal(tiers)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(raw)
}
