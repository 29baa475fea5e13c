package shoppingcart

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// CartReader is the read side used to build a shopping list.
	CartReader interface {
		CartRecipeIDs(ctx context.Context, userID string) ([]uuid.UUID, error)
		IngredientAmounts(ctx context.Context, recipeIDs []uuid.UUID) ([]domain.IngredientAmount, error)
	}

	CartRepository interface {
		CartReader
		GetRecipeByID(ctx context.Context, recipeID string) (*entities.Recipe, error)
		AddToCart(ctx context.Context, userID, recipeID string) error
		RemoveFromCart(ctx context.Context, userID, recipeID string) error
		InCart(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)
	}

	cartRepository struct {
		db *gorm.DB
	}
)

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) CartRecipeIDs(ctx context.Context, userID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *cartRepository) IngredientAmounts(ctx context.Context, recipeIDs []uuid.UUID) ([]domain.IngredientAmount, error) {
	var rows []domain.IngredientAmount
	if len(recipeIDs) == 0 {
		return rows, nil
	}

	if err := r.db.WithContext(ctx).
		Table("ingredient_recipes").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, ingredient_recipes.amount AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_recipes.ingredient_id").
		Where("ingredient_recipes.recipe_id IN ?", recipeIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *cartRepository) GetRecipeByID(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *cartRepository) AddToCart(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	var existing entities.ShoppingCart
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userUUID, recipeUUID).
		First(&existing).Error
	if err == nil {
		return domain.ErrAlreadyInCart
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := entities.ShoppingCart{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipeUUID,
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyInCart
		}
		return err
	}
	return nil
}

func (r *cartRepository) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.ShoppingCart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

// InCart reports which of recipeIDs are in the user's cart.
func (r *cartRepository) InCart(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	flags := make(map[string]bool, len(recipeIDs))
	if userID == "" || len(recipeIDs) == 0 {
		return flags, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		flags[id.String()] = true
	}
	return flags, nil
}
