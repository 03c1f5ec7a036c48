package commerce

// Line is one raw cart entry exactly as the authoritative engine reports
// it. Nothing here is display-ready; projection happens in the cart
// package.
type Line struct {
	Key         string
	ProductRef  string
	Quantity    int
	VariationID string
	Variation   []Dimension
	Meta        []MetaEntry
}

// Dimension is a single variation selection, e.g. {"attribute_pa_color",
// "deep-blue"}. Order matches the engine's stored order.
type Dimension struct {
	Name  string
	Value string
}

// MetaEntry is arbitrary item-level metadata attached by the engine.
// Entries with an empty ID, Key or Value are not displayable.
type MetaEntry struct {
	ID    string
	Key   string
	Value string
}

// Product is the catalog record a cart line points at.
type Product struct {
	Name         string
	UnitPrice    float64
	PriceDisplay string
	ImageURL     string
	URL          string
}
