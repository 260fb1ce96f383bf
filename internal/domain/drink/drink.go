package drink

import (
	"time"
)

// Drink is a menu item. Recipe is the ordered list of ingredients that
// make up the drink's graphic representation.
type Drink struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Recipe    []Ingredient `json:"recipe"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}

type Ingredient struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// ShortIngredient omits the ingredient name. Used by the public menu
// listing, which exposes only the visual recipe.
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// ShortDrink is the public representation of a drink.
type ShortDrink struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// Short returns the public representation with ingredient names stripped.
func (d *Drink) Short() ShortDrink {
	recipe := make([]ShortIngredient, 0, len(d.Recipe))
	for _, ingredient := range d.Recipe {
		recipe = append(recipe, ShortIngredient{
			Color: ingredient.Color,
			Parts: ingredient.Parts,
		})
	}

	return ShortDrink{
		ID:     d.ID,
		Title:  d.Title,
		Recipe: recipe,
	}
}

// Long returns the full representation including ingredient names.
func (d *Drink) Long() *Drink {
	return d
}

type CreateDrinkInput struct {
	Title  string
	Recipe []Ingredient
}

// UpdateDrinkInput carries a partial update; nil fields are left unchanged.
type UpdateDrinkInput struct {
	Title  *string
	Recipe []Ingredient
}
