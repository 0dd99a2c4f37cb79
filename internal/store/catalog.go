package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
	"github.com/BruksfildServices01/plant-decor/internal/events"
	"github.com/BruksfildServices01/plant-decor/internal/httperr"
	"github.com/BruksfildServices01/plant-decor/internal/models"
)

var (
	ErrPlantNotFound    = httperr.ErrNotFound("plant_not_found")
	ErrVariantNotFound  = httperr.ErrNotFound("variant_not_found")
	ErrCategoryNotFound = httperr.ErrNotFound("category_not_found")
	ErrVariantSold      = httperr.ErrBusiness("variant_sold")
	ErrPackageNotFound  = httperr.ErrNotFound("care_package_not_found")
)

// CatalogFilter narrows the plant list. Empty fields match everything; when
// both are set a plant must satisfy both.
type CatalogFilter struct {
	CategoryID string
	Query      string
}

// Filter matches the category exactly and the query as a case-insensitive
// substring of name, scientific name or description.
func Filter(plants []models.Plant, f CatalogFilter) []models.Plant {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := []models.Plant{}
	for _, p := range plants {
		if f.CategoryID != "" && p.Category.ID != f.CategoryID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.ScientificName), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

type PlantInput struct {
	Name             string
	ScientificName   string
	CategoryID       string
	Description      string
	Price            int64
	Image            string
	Images           []string
	Stock            int
	Difficulty       string
	CareInstructions models.CareInstruction

	WateringFrequency   string
	SunlightRequirement string
	Humidity            string
	Temperature         string
}

type VariantInput struct {
	Image string
	Price int64
}

type catalogState struct {
	Categories []models.PlantCategory `json:"categories"`
	Plants     []models.Plant         `json:"plants"`
	Packages   []models.CarePackage   `json:"packages"`
}

type CatalogStore struct {
	mu   sync.Mutex
	data catalogState
	opts Options
	snap snapshot
}

func NewCatalogStore(ctx context.Context, opts Options) (*CatalogStore, error) {
	opts = opts.withDefaults()
	s := &CatalogStore{
		opts: opts,
		snap: snapshot{repo: opts.Repo, key: state.KeyCatalog, log: opts.Log},
	}
	if _, err := s.snap.restore(ctx, &s.data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CatalogStore) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.Plants) == 0 && len(s.data.Categories) == 0
}

// --------------------------------------------------
// Bulk replace
// --------------------------------------------------

func (s *CatalogStore) SetCategories(ctx context.Context, categories []models.PlantCategory) {
	s.mu.Lock()
	s.data.Categories = append([]models.PlantCategory{}, categories...)
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, "categories_set", "", map[string]any{"count": len(categories)})
}

func (s *CatalogStore) SetPlants(ctx context.Context, plants []models.Plant) {
	s.mu.Lock()
	s.data.Plants = make([]models.Plant, 0, len(plants))
	for _, p := range plants {
		s.data.Plants = append(s.data.Plants, p.Clone())
	}
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, "plants_set", "", map[string]any{"count": len(plants)})
}

func (s *CatalogStore) SetCarePackages(ctx context.Context, packages []models.CarePackage) {
	s.mu.Lock()
	s.data.Packages = make([]models.CarePackage, 0, len(packages))
	for _, p := range packages {
		p.Services = append([]string(nil), p.Services...)
		s.data.Packages = append(s.data.Packages, p)
	}
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, "packages_set", "", map[string]any{"count": len(packages)})
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (s *CatalogStore) ListCarePackages() []models.CarePackage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CarePackage{}, s.data.Packages...)
}

func (s *CatalogStore) GetCarePackage(id string) (models.CarePackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.data.Packages {
		if p.ID == id {
			p.Services = append([]string(nil), p.Services...)
			return p, nil
		}
	}
	return models.CarePackage{}, ErrPackageNotFound
}

func (s *CatalogStore) ListCategories() []models.PlantCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PlantCategory{}, s.data.Categories...)
}

func (s *CatalogStore) ListPlants() []models.Plant {
	return s.Filter(CatalogFilter{})
}

func (s *CatalogStore) Filter(f CatalogFilter) []models.Plant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Filter(s.data.Plants, f)
}

func (s *CatalogStore) GetPlantByID(id string) (models.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.plant(id)
	if p == nil {
		return models.Plant{}, ErrPlantNotFound
	}
	return p.Clone(), nil
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (s *CatalogStore) CreatePlant(ctx context.Context, in PlantInput) (models.Plant, error) {
	now := s.opts.Clock.Now()

	s.mu.Lock()
	category, ok := s.category(in.CategoryID)
	if !ok {
		s.mu.Unlock()
		return models.Plant{}, ErrCategoryNotFound
	}
	p := models.Plant{
		ID:        newID("plant"),
		Category:  category,
		CreatedAt: now,
	}
	applyPlantInput(&p, in, now)
	s.data.Plants = append(s.data.Plants, p)
	out := p.Clone()
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, "plant_created", p.ID, nil)
	return out, nil
}

// UpdatePlant replaces the editable fields; variants and ratings are kept.
func (s *CatalogStore) UpdatePlant(ctx context.Context, id string, in PlantInput) (models.Plant, error) {
	return s.mutatePlant(ctx, id, "plant_updated", nil, func(p *models.Plant, now time.Time) error {
		category, ok := s.category(in.CategoryID)
		if !ok {
			return ErrCategoryNotFound
		}
		p.Category = category
		applyPlantInput(p, in, now)
		return nil
	})
}

func (s *CatalogStore) DeletePlant(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.data.Plants {
		if s.data.Plants[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrPlantNotFound
	}
	s.data.Plants = append(s.data.Plants[:idx], s.data.Plants[idx+1:]...)
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, "plant_deleted", id, nil)
	return nil
}

// AddVariant registers one individual specimen of a plant.
func (s *CatalogStore) AddVariant(ctx context.Context, plantID string, in VariantInput) (models.Plant, error) {
	return s.mutatePlant(ctx, plantID, "variant_added", nil, func(p *models.Plant, now time.Time) error {
		p.Variants = append(p.Variants, models.PlantVariant{
			ID:      newID("variant"),
			PlantID: p.ID,
			Image:   in.Image,
			Price:   in.Price,
			Stock:   1,
		})
		p.UpdatedAt = now
		return nil
	})
}

func (s *CatalogStore) DeleteVariant(ctx context.Context, plantID, variantID string) (models.Plant, error) {
	return s.mutatePlant(ctx, plantID, "variant_deleted", map[string]any{"variant_id": variantID}, func(p *models.Plant, now time.Time) error {
		for i, v := range p.Variants {
			if v.ID == variantID {
				p.Variants = append(p.Variants[:i:i], p.Variants[i+1:]...)
				p.UpdatedAt = now
				return nil
			}
		}
		return ErrVariantNotFound
	})
}

func (s *CatalogStore) MarkVariantSold(ctx context.Context, plantID, variantID string) (models.Plant, error) {
	return s.mutatePlant(ctx, plantID, "variant_sold", map[string]any{"variant_id": variantID}, func(p *models.Plant, now time.Time) error {
		for i := range p.Variants {
			v := &p.Variants[i]
			if v.ID != variantID {
				continue
			}
			if v.IsSold {
				return ErrVariantSold
			}
			v.IsSold = true
			v.Stock = 0
			p.UpdatedAt = now
			return nil
		}
		return ErrVariantNotFound
	})
}

// VariantRef names one specimen of a plant.
type VariantRef struct {
	PlantID   string
	VariantID string
}

// SellVariants marks every referenced specimen sold, or none of them when
// one is missing or already sold.
func (s *CatalogStore) SellVariants(ctx context.Context, refs []VariantRef) error {
	if len(refs) == 0 {
		return nil
	}
	now := s.opts.Clock.Now()

	s.mu.Lock()
	for _, ref := range refs {
		p := s.plant(ref.PlantID)
		if p == nil {
			s.mu.Unlock()
			return ErrPlantNotFound
		}
		v, ok := p.Variant(ref.VariantID)
		if !ok {
			s.mu.Unlock()
			return ErrVariantNotFound
		}
		if v.IsSold {
			s.mu.Unlock()
			return ErrVariantSold
		}
	}
	for _, ref := range refs {
		p := s.plant(ref.PlantID)
		for i := range p.Variants {
			if p.Variants[i].ID == ref.VariantID {
				p.Variants[i].IsSold = true
				p.Variants[i].Stock = 0
			}
		}
		p.UpdatedAt = now
	}
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	for _, ref := range refs {
		s.publish(ctx, "variant_sold", ref.PlantID, map[string]any{"variant_id": ref.VariantID})
	}
	return nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (s *CatalogStore) mutatePlant(
	ctx context.Context,
	id string,
	action string,
	meta map[string]any,
	fn func(p *models.Plant, now time.Time) error,
) (models.Plant, error) {

	now := s.opts.Clock.Now()

	s.mu.Lock()
	current := s.plant(id)
	if current == nil {
		s.mu.Unlock()
		return models.Plant{}, ErrPlantNotFound
	}
	p := current.Clone()
	if err := fn(&p, now); err != nil {
		s.mu.Unlock()
		return models.Plant{}, err
	}
	*current = p
	out := p.Clone()
	s.snap.persist(ctx, s.data)
	s.mu.Unlock()

	s.publish(ctx, action, id, meta)
	return out, nil
}

func (s *CatalogStore) publish(ctx context.Context, action, entityID string, meta map[string]any) {
	s.opts.Bus.Publish(events.Event{
		Store:    events.StoreCatalog,
		Action:   action,
		EntityID: entityID,
		ActorID:  events.ActorFrom(ctx),
		Metadata: meta,
		At:       s.opts.Clock.Now(),
	})
}

func (s *CatalogStore) plant(id string) *models.Plant {
	for i := range s.data.Plants {
		if s.data.Plants[i].ID == id {
			return &s.data.Plants[i]
		}
	}
	return nil
}

func (s *CatalogStore) category(id string) (models.PlantCategory, bool) {
	for _, c := range s.data.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.PlantCategory{}, false
}

func applyPlantInput(p *models.Plant, in PlantInput, now time.Time) {
	p.Name = in.Name
	p.ScientificName = in.ScientificName
	p.Description = in.Description
	p.Price = in.Price
	p.Image = in.Image
	p.Images = append([]string(nil), in.Images...)
	p.Stock = in.Stock
	p.Difficulty = in.Difficulty
	p.CareInstructions = in.CareInstructions
	p.CareInstructions.CommonPests = append([]string(nil), in.CareInstructions.CommonPests...)
	p.WateringFrequency = in.WateringFrequency
	p.SunlightRequirement = in.SunlightRequirement
	p.Humidity = in.Humidity
	p.Temperature = in.Temperature
	p.UpdatedAt = now
}
