package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"drink-service/internal/audit"
	"drink-service/internal/domain/drink"
	"drink-service/internal/types"
	apperrors "drink-service/pkg/errors"
	"drink-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

type DrinkHandler struct {
	drinkRepo   DrinkRepository
	auditLogger types.AuditLogger
}

func NewDrinkHandler(drinkRepo DrinkRepository, auditLogger types.AuditLogger) *DrinkHandler {
	return &DrinkHandler{
		drinkRepo:   drinkRepo,
		auditLogger: auditLogger,
	}
}

type CreateDrinkRequest struct {
	Title  string             `json:"title"`
	Recipe []drink.Ingredient `json:"recipe"`
}

type UpdateDrinkRequest struct {
	Title  *string            `json:"title"`
	Recipe []drink.Ingredient `json:"recipe"`
}

// ListDrinks returns the public menu in the short representation.
// No authorization required.
func (h *DrinkHandler) ListDrinks(c echo.Context) error {
	drinks, err := h.drinkRepo.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list drinks: %v", err)
		return respondError(c, http.StatusInternalServerError, msgListDrinksFail)
	}

	short := make([]drink.ShortDrink, 0, len(drinks))
	for _, d := range drinks {
		short = append(short, d.Short())
	}

	return respondDrinks(c, http.StatusOK, short)
}

// ListDrinksDetail returns the full menu including ingredient names.
// Gated by get:drinks-detail.
func (h *DrinkHandler) ListDrinksDetail(c echo.Context) error {
	drinks, err := h.drinkRepo.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list drink details: %v", err)
		return respondError(c, http.StatusInternalServerError, msgListDrinksFail)
	}

	long := make([]*drink.Drink, 0, len(drinks))
	for _, d := range drinks {
		long = append(long, d.Long())
	}

	return respondDrinks(c, http.StatusOK, long)
}

// CreateDrink adds a drink to the menu. Gated by post:drinks.
func (h *DrinkHandler) CreateDrink(c echo.Context) error {
	var req CreateDrinkRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	req.Title = strings.TrimSpace(req.Title)

	if req.Title == "" || len(req.Recipe) == 0 {
		return respondError(c, http.StatusBadRequest, msgTitleRecipeMissing)
	}

	if err := validator.DrinkTitle(req.Title); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if err := validator.Recipe(req.Recipe); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.drinkRepo.Create(c.Request().Context(), drink.CreateDrinkInput{
		Title:  req.Title,
		Recipe: req.Recipe,
	})
	if err != nil {
		h.auditFailure(c, audit.ActionCreate, 0, err)
		if errors.Is(err, apperrors.ErrConflict) {
			return respondMappedError(c, err)
		}
		c.Logger().Errorf("Failed to create drink: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateDrinkFail)
	}

	if err := h.auditLogger.LogDrinkMutation(c, audit.ActionCreate, created.ID, audit.StatusSuccess, nil); err != nil {
		c.Logger().Warnf("Failed to record audit event for drink %d: %v", created.ID, err)
	}

	return respondDrinks(c, http.StatusOK, []*drink.Drink{created.Long()})
}

// UpdateDrink partially updates a drink. Gated by patch:drinks.
func (h *DrinkHandler) UpdateDrink(c echo.Context) error {
	id, err := parseDrinkID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDrinkID)
	}

	var req UpdateDrinkRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Title == nil && req.Recipe == nil {
		return respondError(c, http.StatusBadRequest, msgNothingToUpdate)
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if err := validator.DrinkTitle(trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Title = &trimmed
	}

	if req.Recipe != nil {
		if err := validator.Recipe(req.Recipe); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
	}

	updated, err := h.drinkRepo.Update(c.Request().Context(), id, drink.UpdateDrinkInput{
		Title:  req.Title,
		Recipe: req.Recipe,
	})
	if err != nil {
		h.auditFailure(c, audit.ActionUpdate, id, err)
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrConflict) {
			return respondMappedError(c, err)
		}
		c.Logger().Errorf("Failed to update drink %d: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateDrinkFail)
	}

	if err := h.auditLogger.LogDrinkMutation(c, audit.ActionUpdate, updated.ID, audit.StatusSuccess, nil); err != nil {
		c.Logger().Warnf("Failed to record audit event for drink %d: %v", updated.ID, err)
	}

	return respondDrinks(c, http.StatusOK, []*drink.Drink{updated.Long()})
}

// DeleteDrink removes a drink from the menu. Gated by delete:drinks.
func (h *DrinkHandler) DeleteDrink(c echo.Context) error {
	id, err := parseDrinkID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDrinkID)
	}

	if err := h.drinkRepo.Delete(c.Request().Context(), id); err != nil {
		h.auditFailure(c, audit.ActionDelete, id, err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondMappedError(c, err)
		}
		c.Logger().Errorf("Failed to delete drink %d: %v", id, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteDrinkFail)
	}

	if err := h.auditLogger.LogDrinkMutation(c, audit.ActionDelete, id, audit.StatusSuccess, nil); err != nil {
		c.Logger().Warnf("Failed to record audit event for drink %d: %v", id, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		jsonKeySuccess: true,
		jsonKeyDelete:  id,
	})
}

// auditFailure records a mutation that reached the repository but did not
// complete. A zero drink id means the drink was never created.
func (h *DrinkHandler) auditFailure(c echo.Context, action audit.Action, drinkID int64, cause error) {
	detail := map[string]any{jsonKeyError: cause.Error()}
	if err := h.auditLogger.LogDrinkMutation(c, action, drinkID, audit.StatusFailure, detail); err != nil {
		c.Logger().Warnf("Failed to record audit event: %v", err)
	}
}

func parseDrinkID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param(paramID), 10, 64)
}
