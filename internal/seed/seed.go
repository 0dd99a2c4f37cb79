// Package seed loads demo catalog data and caretakers into empty stores.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/plant-decor/internal/models"
	"github.com/BruksfildServices01/plant-decor/internal/store"
)

const (
	DemoCaretakerAn   = "caretaker-an"
	DemoCaretakerBinh = "caretaker-binh"
	DemoCaretakerChi  = "caretaker-chi"
)

// SeedAll seeds the catalog and the caretaker roster, skipping any store
// that already holds data.
func SeedAll(ctx context.Context, catalog *store.CatalogStore, care *store.CareServiceStore, log *zap.Logger) error {
	if err := SeedCatalog(ctx, catalog, log); err != nil {
		return err
	}
	return SeedCaretakers(ctx, care, log)
}

func SeedCatalog(ctx context.Context, catalog *store.CatalogStore, log *zap.Logger) error {
	if !catalog.Empty() {
		log.Info("seeding: catalog already present; skipping")
		return nil
	}

	catalog.SetCategories(ctx, Categories())
	catalog.SetCarePackages(ctx, CarePackages())
	catalog.SetPlants(ctx, Plants(time.Now()))

	log.Info("seeding: catalog created",
		zap.Int("categories", len(Categories())),
		zap.Int("care_packages", len(CarePackages())),
	)
	return nil
}

func SeedCaretakers(ctx context.Context, care *store.CareServiceStore, log *zap.Logger) error {
	if !care.Empty() {
		log.Info("seeding: care service data already present; skipping")
		return nil
	}

	for _, c := range Caretakers() {
		if _, err := care.UpsertCaretaker(ctx, c); err != nil {
			return fmt.Errorf("seed caretaker %s: %w", c.UserID, err)
		}
	}
	log.Info("seeding: caretakers created", zap.Int("count", len(Caretakers())))
	return nil
}

func Categories() []models.PlantCategory {
	return []models.PlantCategory{
		{ID: "indoor", Name: "Indoor plants", Description: "Low-light tolerant plants for homes and offices", Icon: "🪴"},
		{ID: "succulent", Name: "Succulents & cacti", Description: "Drought tolerant, easy care", Icon: "🌵"},
		{ID: "bonsai", Name: "Bonsai", Description: "Trained miniature trees", Icon: "🌳"},
		{ID: "flowering", Name: "Flowering plants", Description: "Plants grown for their blooms", Icon: "🌸"},
	}
}

func CarePackages() []models.CarePackage {
	return []models.CarePackage{
		{
			ID:            "pkg-plant-doctor",
			Name:          "Plant Doctor",
			Type:          models.PackagePlantDoctor,
			Description:   "Diagnose and treat sick plants on site",
			Price:         500000,
			DurationHours: 2,
			Services:      []string{"Disease diagnosis", "Pest treatment", "Soil check", "Recovery plan"},
		},
		{
			ID:            "pkg-plant-spa",
			Name:          "Plant Spa",
			Type:          models.PackagePlantSpa,
			Description:   "Routine cleaning, pruning and feeding",
			Price:         300000,
			DurationHours: 1,
			Services:      []string{"Leaf cleaning", "Pruning", "Fertilizing"},
		},
		{
			ID:            "pkg-consultation",
			Name:          "Consultation & Setup",
			Type:          models.PackageConsultation,
			Description:   "Choose and arrange plants for your space",
			Price:         800000,
			DurationHours: 3,
			Services:      []string{"Space survey", "Plant selection", "Arrangement"},
		},
	}
}

func Plants(now time.Time) []models.Plant {
	cats := map[string]models.PlantCategory{}
	for _, c := range Categories() {
		cats[c.ID] = c
	}

	plants := []models.Plant{
		{
			ID:             "plant-monstera",
			Name:           "Monstera Deliciosa",
			ScientificName: "Monstera deliciosa",
			Category:       cats["indoor"],
			Description:    "Split-leaf philodendron with large fenestrated leaves",
			Price:          450000,
			Stock:          12,
			Difficulty:     "easy",
			Rating:         4.8,
			ReviewCount:    36,
			CareInstructions: models.CareInstruction{
				Watering:    "When the top 3cm of soil is dry",
				Sunlight:    "Bright indirect light",
				Humidity:    "60% or higher",
				Temperature: "18-30°C",
				Fertilizing: "Monthly in the growing season",
				Pruning:     "Remove yellow leaves",
				CommonPests: []string{"Spider mites", "Mealybugs"},
				Propagation: "Stem cuttings with a node",
			},
			WateringFrequency:   "weekly",
			SunlightRequirement: "indirect",
			Humidity:            "high",
			Temperature:         "warm",
		},
		{
			ID:             "plant-snake",
			Name:           "Snake Plant",
			ScientificName: "Dracaena trifasciata",
			Category:       cats["indoor"],
			Description:    "Upright sword-shaped leaves, tolerates neglect",
			Price:          250000,
			Stock:          20,
			Difficulty:     "easy",
			Rating:         4.9,
			ReviewCount:    58,
			CareInstructions: models.CareInstruction{
				Watering:    "Every 2-3 weeks",
				Sunlight:    "Low to bright indirect light",
				Temperature: "15-30°C",
				CommonPests: []string{"Mealybugs"},
				Propagation: "Division or leaf cuttings",
			},
			WateringFrequency:   "biweekly",
			SunlightRequirement: "low",
			Humidity:            "low",
			Temperature:         "warm",
		},
		{
			ID:             "plant-echeveria",
			Name:           "Echeveria",
			ScientificName: "Echeveria elegans",
			Category:       cats["succulent"],
			Description:    "Rosette succulent with pale blue leaves",
			Price:          90000,
			Stock:          40,
			Difficulty:     "easy",
			CareInstructions: models.CareInstruction{
				Watering: "Soak and dry",
				Sunlight: "Full sun",
			},
			WateringFrequency:   "biweekly",
			SunlightRequirement: "full",
			Humidity:            "low",
			Temperature:         "warm",
		},
		{
			ID:             "plant-ficus-bonsai",
			Name:           "Ficus Bonsai",
			ScientificName: "Ficus microcarpa",
			Category:       cats["bonsai"],
			Description:    "Ginseng ficus trained as a bonsai; each tree is unique",
			Price:          1200000,
			Stock:          0,
			Difficulty:     "medium",
			Variants: []models.PlantVariant{
				{ID: "variant-ficus-1", PlantID: "plant-ficus-bonsai", Price: 1200000, Stock: 1},
				{ID: "variant-ficus-2", PlantID: "plant-ficus-bonsai", Price: 1800000, Stock: 1},
			},
			WateringFrequency:   "every 2-3 days",
			SunlightRequirement: "bright",
			Humidity:            "medium",
			Temperature:         "warm",
		},
		{
			ID:             "plant-orchid",
			Name:           "Moth Orchid",
			ScientificName: "Phalaenopsis amabilis",
			Category:       cats["flowering"],
			Description:    "Long-lasting sprays of white flowers",
			Price:          350000,
			Stock:          8,
			Difficulty:     "medium",

			WateringFrequency:   "weekly",
			SunlightRequirement: "indirect",
			Humidity:            "high",
			Temperature:         "mild",
		},
	}

	for i := range plants {
		plants[i].CreatedAt = now
		plants[i].UpdatedAt = now
	}
	return plants
}

func Caretakers() []models.CaretakerInfo {
	return []models.CaretakerInfo{
		{
			UserID: DemoCaretakerAn,
			Name:   "Nguyen Van An",
			Phone:  "0901000001",
			Skills: []models.PackageType{models.PackagePlantDoctor, models.PackagePlantSpa},
		},
		{
			UserID: DemoCaretakerBinh,
			Name:   "Tran Thi Binh",
			Phone:  "0901000002",
			Skills: []models.PackageType{models.PackagePlantSpa, models.PackageConsultation},
		},
		{
			UserID: DemoCaretakerChi,
			Name:   "Le Minh Chi",
			Phone:  "0901000003",
			Skills: []models.PackageType{models.PackagePlantDoctor, models.PackageConsultation},
		},
	}
}
