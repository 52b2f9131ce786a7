package api

import "fmt"

// IngredientKind names the collection an ingredient belongs to.
type IngredientKind string

const (
	// IngredientBase is the bases collection.
	IngredientBase IngredientKind = "bases"
	// IngredientSyrup is the syrups collection.
	IngredientSyrup IngredientKind = "syrups"
	// IngredientCreamer is the creamers collection.
	IngredientCreamer IngredientKind = "creamers"
)

// IngredientKindList is the order the catalog is loaded in.
var IngredientKindList = []IngredientKind{IngredientBase, IngredientCreamer, IngredientSyrup}

func (e IngredientKind) String() string {
	return string(e)
}

func (e IngredientKind) Valid() bool {
	switch e {
	case IngredientBase, IngredientSyrup, IngredientCreamer:
		return true
	}
	return false
}

// Ingredient is one catalog entry: a base beverage, a syrup or a creamer.
// The three kinds share the same shape.
type Ingredient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type IngredientUpsert struct {
	Kind IngredientKind `json:"kind"`

	// Empty ID lets the store assign one.
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (upsert IngredientUpsert) Validate() error {
	if !upsert.Kind.Valid() {
		return fmt.Errorf("invalid ingredient kind %q", upsert.Kind)
	}
	if upsert.Name == "" {
		return fmt.Errorf("ingredient name is required")
	}
	if len(upsert.Name) > 64 {
		return fmt.Errorf("ingredient name is too long, maximum length is 64")
	}
	if len(upsert.Color) > 32 {
		return fmt.Errorf("ingredient color is too long, maximum length is 32")
	}
	return nil
}

type IngredientDelete struct {
	Kind IngredientKind
	ID   string
}
