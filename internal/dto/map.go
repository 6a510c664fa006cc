package dto

// SchoolMapEntry is one school pin on the locator map. Position is
// [lat, lng] resolved from the static city table.
type SchoolMapEntry struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	City     string     `json:"city"`
	Students int        `json:"students"`
	Position [2]float64 `json:"position"`
}
