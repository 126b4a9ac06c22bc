package seed

import (
	"bloodlink/internal/store"
	"bloodlink/internal/utils"
	"bloodlink/pkg/types"
	"context"
	"fmt"
)

// SeedHospitals syncs the database with the hospital directory below.
// This file is the source of truth for the directory:
// - Inserts new hospitals that don't exist
// - Updates existing hospitals that have changed
// - Deletes hospitals from DB that aren't in this list
//
// To generate new IDs: `go run ./cmd/bloodlink nanoid`
func SeedHospitals(ctx context.Context, repo *store.HospitalRepository) error {
	hospitals := []types.Hospital{
		{
			ID:           "vXq2mJ8wRkN4tYpL6hZcAe9sB3dUgF0x",
			Name:         "Dhaka Medical College Hospital",
			Address:      "Dhaka",
			Contact:      utils.StringPtr("02-55165001-6"),
			DisplayOrder: 1,
		},
		{
			ID:           "Kp7nWq3eRtY5uIoP1aSdFgH8jKlZxCvB",
			Name:         "Bangabandhu Sheikh Mujib Medical University (BSMMU)",
			Address:      "Shahbag, Dhaka",
			Contact:      utils.StringPtr("+880-2-9661051-56"),
			DisplayOrder: 2,
		},
		{
			ID:           "Qw4eRt6yUi8oPa0sDf2gHj4kLz6xCv8b",
			Name:         "Square Hospitals Ltd.",
			Address:      "Panthapath, Dhaka",
			Contact:      utils.StringPtr("10616"),
			DisplayOrder: 3,
		},
		{
			ID:           "Zx9cVb7nMq5wEr3tYu1iOp8aSd6fGh4j",
			Name:         "United Hospital Limited",
			Address:      "Gulshan, Dhaka",
			Contact:      utils.StringPtr("10666"),
			DisplayOrder: 4,
		},
		{
			ID:           "Lk2jHg4fDs6aPo8iUy0tRe1wQz3xCv5b",
			Name:         "Apollo Hospitals Dhaka (Evercare)",
			Address:      "Bashundhara R/A, Dhaka",
			Contact:      utils.StringPtr("10678"),
			DisplayOrder: 5,
		},
		{
			ID:           "Bn6vCx8zAq1sWd3eFr5tGy7hUj9iKo2p",
			Name:         "Chittagong Medical College Hospital",
			Address:      "Chittagong",
			Contact:      utils.StringPtr("031-630952"),
			DisplayOrder: 6,
		},
		{
			ID:           "Mh3gTf5dRs7aQw9eZx1cVb4nUk6jIl8o",
			Name:         "Rajshahi Medical College Hospital",
			Address:      "Rajshahi",
			Contact:      utils.StringPtr("0721-772150"),
			DisplayOrder: 7,
		},
		{
			ID:           "Ye5uIr7oTp9aWs1dQf3gXh6jZk8lCn0m",
			Name:         "Sylhet MAG Osmani Medical College Hospital",
			Address:      "Sylhet",
			Contact:      utils.StringPtr("0821-716855"),
			DisplayOrder: 8,
		},
	}

	fmt.Println("Starting hospital sync...")
	fmt.Printf("  Seed file contains %d hospitals\n", len(hospitals))

	keepIDs := make([]string, 0, len(hospitals))
	for _, h := range hospitals {
		keepIDs = append(keepIDs, h.ID)
	}

	if err := repo.DeleteHospitalsExcept(ctx, keepIDs); err != nil {
		return fmt.Errorf("failed to remove stale hospitals: %w", err)
	}

	upsertedCount := 0
	for _, h := range hospitals {
		fmt.Printf("  Upserting hospital: %s\n", h.Name)
		if err := repo.UpsertHospital(ctx, &h); err != nil {
			return fmt.Errorf("failed to upsert hospital %s: %w", h.ID, err)
		}
		upsertedCount++
	}

	fmt.Printf("Hospital sync complete: %d upserted\n", upsertedCount)

	return nil
}
