package models

// CartItem is unique on (PlantID, VariantID); an empty VariantID means the base plant.
type CartItem struct {
	PlantID   string        `json:"plant_id"`
	VariantID string        `json:"variant_id,omitempty"`
	Quantity  int           `json:"quantity"`
	Plant     Plant         `json:"plant"`
	Variant   *PlantVariant `json:"variant,omitempty"`
}

// UnitPrice prefers the variant price over the plant price.
func (i CartItem) UnitPrice() int64 {
	if i.Variant != nil {
		return i.Variant.Price
	}
	return i.Plant.Price
}

func (i CartItem) Subtotal() int64 {
	return i.UnitPrice() * int64(i.Quantity)
}
