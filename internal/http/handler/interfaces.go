package handler

import (
	"context"

	"drink-service/internal/domain/drink"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

type DrinkRepository interface {
	Create(ctx context.Context, input drink.CreateDrinkInput) (*drink.Drink, error)
	List(ctx context.Context) ([]*drink.Drink, error)
	Update(ctx context.Context, id int64, input drink.UpdateDrinkInput) (*drink.Drink, error)
	Delete(ctx context.Context, id int64) error
}
