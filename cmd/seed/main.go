// Command seed loads the demo catalog into an empty sweets table.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sweetshop/sweet-shop-api/internal/domain/entity"
	"github.com/sweetshop/sweet-shop-api/internal/domain/repository"
	"github.com/sweetshop/sweet-shop-api/internal/infrastructure/postgres"
	"github.com/sweetshop/sweet-shop-api/pkg/config"
	"github.com/sweetshop/sweet-shop-api/pkg/logger"
)

type seedSweet struct {
	name        string
	category    string
	price       string
	quantity    int64
	description string
}

var catalog = []seedSweet{
	{"Chocolate Truffle", "Chocolate", "5.99", 50, "Rich and creamy chocolate truffle made with the finest cocoa."},
	{"Strawberry Lollipop", "Candy", "2.49", 100, "Sweet and tangy strawberry flavored lollipop."},
	{"Blueberry Pastry", "Pastry", "4.99", 30, "Flaky pastry filled with fresh blueberries."},
	{"Vanilla Ice Cream", "Ice Cream", "3.99", 75, "Creamy vanilla ice cream made with real vanilla beans."},
	{"Red Velvet Cake", "Cake", "15.99", 20, "Moist red velvet cake with cream cheese frosting."},
	{"Oatmeal Cookie", "Cookie", "1.99", 80, "Chewy oatmeal cookie with raisins and nuts."},
	{"Mint Chocolate Chip", "Ice Cream", "4.49", 60, "Refreshing mint ice cream with chocolate chips."},
	{"Caramel Popcorn", "Candy", "3.99", 40, "Buttery caramel coated popcorn."},
	{"Croissant", "Pastry", "2.99", 45, "Buttery and flaky French croissant."},
	{"Dark Chocolate Bar", "Chocolate", "6.99", 35, "Smooth dark chocolate bar with 70% cocoa."},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	repo := postgres.NewSweetRepository(pool)
	existing, err := repo.List(ctx, repository.SweetFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("list sweets")
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("catalog already seeded, nothing to do")
		return
	}

	now := time.Now()
	for _, s := range catalog {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			log.Fatal().Err(err).Str("sweet", s.name).Msg("parse price")
		}
		sweet := &entity.Sweet{
			ID:          uuid.New().String(),
			Name:        s.name,
			Category:    s.category,
			Price:       price,
			Quantity:    s.quantity,
			Description: s.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Create(ctx, sweet); err != nil {
			log.Fatal().Err(err).Str("sweet", s.name).Msg("insert sweet")
		}
		log.Info().Str("sweet", s.name).Str("id", sweet.ID).Msg("seeded")
	}
	log.Info().Int("count", len(catalog)).Msg("catalog seeded")
}
