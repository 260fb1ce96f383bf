package validator

import (
	"fmt"

	"drink-service/internal/domain/drink"
)

const (
	maxDrinkTitleLen      = 255
	maxIngredientNameLen  = 255
	maxIngredientColorLen = 64
	maxRecipeIngredients  = 32
	asciiControlStart     = 32
	asciiDelete           = 127

	errTitleEmptyFmt           = "drink title cannot be empty"
	errTitleMaxLengthFmt       = "drink title must not exceed %d characters"
	errTitleControlCharsFmt    = "drink title cannot contain control characters"
	errRecipeEmptyFmt          = "recipe must contain at least one ingredient"
	errRecipeTooLargeFmt       = "recipe must not exceed %d ingredients"
	errIngredientNameEmptyFmt  = "ingredient name cannot be empty"
	errIngredientNameMaxFmt    = "ingredient name must not exceed %d characters"
	errIngredientColorEmptyFmt = "ingredient color cannot be empty"
	errIngredientColorMaxFmt   = "ingredient color must not exceed %d characters"
	errIngredientPartsFmt      = "ingredient parts must be at least 1"
)

func DrinkTitle(title string) error {
	if title == "" {
		return fmt.Errorf(errTitleEmptyFmt)
	}

	if len(title) > maxDrinkTitleLen {
		return fmt.Errorf(errTitleMaxLengthFmt, maxDrinkTitleLen)
	}

	if containsControlChars(title) {
		return fmt.Errorf(errTitleControlCharsFmt)
	}

	return nil
}

func Recipe(recipe []drink.Ingredient) error {
	if len(recipe) == 0 {
		return fmt.Errorf(errRecipeEmptyFmt)
	}

	if len(recipe) > maxRecipeIngredients {
		return fmt.Errorf(errRecipeTooLargeFmt, maxRecipeIngredients)
	}

	for _, ingredient := range recipe {
		if ingredient.Name == "" {
			return fmt.Errorf(errIngredientNameEmptyFmt)
		}
		if len(ingredient.Name) > maxIngredientNameLen {
			return fmt.Errorf(errIngredientNameMaxFmt, maxIngredientNameLen)
		}
		if ingredient.Color == "" {
			return fmt.Errorf(errIngredientColorEmptyFmt)
		}
		if len(ingredient.Color) > maxIngredientColorLen {
			return fmt.Errorf(errIngredientColorMaxFmt, maxIngredientColorLen)
		}
		if ingredient.Parts < 1 {
			return fmt.Errorf(errIngredientPartsFmt)
		}
	}

	return nil
}

func containsControlChars(s string) bool {
	for _, r := range s {
		if r < asciiControlStart || r == asciiDelete {
			return true
		}
	}
	return false
}
