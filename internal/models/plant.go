package models

import "time"

type PlantCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type CareInstruction struct {
	Watering    string   `json:"watering"`
	Sunlight    string   `json:"sunlight"`
	Humidity    string   `json:"humidity"`
	Temperature string   `json:"temperature"`
	Fertilizing string   `json:"fertilizing"`
	Pruning     string   `json:"pruning"`
	CommonPests []string `json:"common_pests"`
	Propagation string   `json:"propagation"`
}

type Plant struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ScientificName   string          `json:"scientific_name"`
	Category         PlantCategory   `json:"category"`
	Description      string          `json:"description"`
	Price            int64           `json:"price"`
	Image            string          `json:"image"`
	Images           []string        `json:"images,omitempty"`
	Variants         []PlantVariant  `json:"variants,omitempty"`
	CareInstructions CareInstruction `json:"care_instructions"`
	Stock            int             `json:"stock"`
	Rating           float64         `json:"rating"`
	ReviewCount      int             `json:"review_count"`
	Difficulty       string          `json:"difficulty"`

	WateringFrequency   string `json:"watering_frequency"`
	SunlightRequirement string `json:"sunlight_requirement"`
	Humidity            string `json:"humidity"`
	Temperature         string `json:"temperature"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlantVariant is one individual specimen (e.g. a specific bonsai), so its stock is always 1.
type PlantVariant struct {
	ID      string `json:"id"`
	PlantID string `json:"plant_id"`
	Image   string `json:"image"`
	Price   int64  `json:"price"`
	Stock   int    `json:"stock"`
	IsSold  bool   `json:"is_sold"`
}

func (p Plant) Clone() Plant {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.Variants = append([]PlantVariant(nil), p.Variants...)
	out.CareInstructions.CommonPests = append([]string(nil), p.CareInstructions.CommonPests...)
	return out
}

func (p Plant) Variant(id string) (PlantVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return PlantVariant{}, false
}
