package api

import (
	"fmt"
	"time"
)

// Beverage is a saved combination owned by one user.
// Base, Syrup and Creamer are copies taken when the beverage was made.
type Beverage struct {
	ID string `json:"id"`

	// Domain specific fields
	UID     string      `json:"uid"`
	Name    string      `json:"name"`
	Temp    Temperature `json:"temp"`
	Base    Ingredient  `json:"base"`
	Syrup   Ingredient  `json:"syrup"`
	Creamer Ingredient  `json:"creamer"`
}

// BeverageFind filters the beverages collection. Results are ordered by name.
type BeverageFind struct {
	UID *string
}

// Match reports whether the beverage passes the filter.
func (find *BeverageFind) Match(uid string) bool {
	if find == nil || find.UID == nil {
		return true
	}
	return *find.UID == uid
}

type BeverageUpsert struct {
	ID string

	UID     string
	Name    string
	Temp    Temperature
	Base    Ingredient
	Syrup   Ingredient
	Creamer Ingredient
}

func (upsert BeverageUpsert) Validate() error {
	if upsert.ID == "" {
		return fmt.Errorf("beverage id is required")
	}
	if upsert.UID == "" {
		return fmt.Errorf("beverage owner is required")
	}
	if upsert.Name == "" {
		return fmt.Errorf("beverage name is required")
	}
	return nil
}

// BeverageID composes the document id of a beverage made by uid at ts.
func BeverageID(uid string, ts time.Time) string {
	return fmt.Sprintf("%s-%d", uid, ts.UnixMilli())
}

// BeverageUnsubscribe cancels a live beverage query. Calling it more than once is allowed.
type BeverageUnsubscribe func()
