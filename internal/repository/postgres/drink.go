package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"drink-service/internal/domain/drink"
	apperrors "drink-service/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type DrinkRepository struct {
	db *DB
}

func NewDrinkRepository(db *DB) *DrinkRepository {
	return &DrinkRepository{db: db}
}

func (r *DrinkRepository) Create(ctx context.Context, input drink.CreateDrinkInput) (*drink.Drink, error) {
	recipeJSON, err := json.Marshal(input.Recipe)
	if err != nil {
		return nil, errFailedEncodeRecipe(err)
	}

	query := `
		INSERT INTO drinks (title, recipe)
		VALUES ($1, $2)
		RETURNING id, title, recipe, created_at, updated_at
	`

	d, err := scanDrink(r.db.Pool.QueryRow(ctx, query, input.Title, recipeJSON))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errDrinkExists)
		}
		return nil, errFailedCreateDrink(err)
	}

	return d, nil
}

func (r *DrinkRepository) List(ctx context.Context) ([]*drink.Drink, error) {
	query := `
		SELECT id, title, recipe, created_at, updated_at
		FROM drinks ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListDrinks(err)
	}
	defer rows.Close()

	var drinks []*drink.Drink
	for rows.Next() {
		d, err := scanDrink(rows)
		if err != nil {
			return nil, errFailedScanDrink(err)
		}
		drinks = append(drinks, d)
	}

	if err := rows.Err(); err != nil {
		return nil, errIterateDrinks(err)
	}

	return drinks, nil
}

func (r *DrinkRepository) Update(ctx context.Context, id int64, input drink.UpdateDrinkInput) (*drink.Drink, error) {
	query := "UPDATE drinks SET updated_at = NOW()"
	args := []interface{}{id}
	argCount := 1

	if input.Title != nil {
		argCount++
		query += fmt.Sprintf(", title = $%d", argCount)
		args = append(args, *input.Title)
	}

	if input.Recipe != nil {
		recipeJSON, err := json.Marshal(input.Recipe)
		if err != nil {
			return nil, errFailedEncodeRecipe(err)
		}
		argCount++
		query += fmt.Sprintf(", recipe = $%d", argCount)
		args = append(args, recipeJSON)
	}

	query += " WHERE id = $1 RETURNING id, title, recipe, created_at, updated_at"

	d, err := scanDrink(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errDrinkNotFound)
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errDrinkExists)
		}
		return nil, errFailedUpdateDrink(err)
	}

	return d, nil
}

func (r *DrinkRepository) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM drinks WHERE id = $1"

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteDrink(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errDrinkNotFound)
	}

	return nil
}

func scanDrink(row pgx.Row) (*drink.Drink, error) {
	d := &drink.Drink{}
	var recipeJSON []byte

	if err := row.Scan(&d.ID, &d.Title, &recipeJSON, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(recipeJSON, &d.Recipe); err != nil {
		return nil, errFailedDecodeRecipe(err)
	}

	return d, nil
}
