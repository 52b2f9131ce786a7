package api

// SelectionPatch changes the current selection. Nil fields are left alone.
type SelectionPatch struct {
	BaseID    *string      `json:"baseId"`
	SyrupID   *string      `json:"syrupId"`
	CreamerID *string      `json:"creamerId"`
	Temp      *Temperature `json:"temp"`
	Name      *string      `json:"name"`
}

// Catalog is the reference data offered to every user.
type Catalog struct {
	Temps    []Temperature `json:"temps"`
	Bases    []*Ingredient `json:"bases"`
	Syrups   []*Ingredient `json:"syrups"`
	Creamers []*Ingredient `json:"creamers"`
}
