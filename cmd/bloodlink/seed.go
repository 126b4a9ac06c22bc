package main

import (
	"bloodlink/internal/db"
	"bloodlink/internal/seed"
	"bloodlink/internal/store"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		hospitalRepo := store.NewHospitalRepository(pool)

		logrus.Info("Seeding hospitals...")
		if err := seed.SeedHospitals(ctx, hospitalRepo); err != nil {
			return fmt.Errorf("failed to seed hospitals: %w", err)
		}

		logrus.Info("Hospitals seeded successfully")

		return nil
	},
}
