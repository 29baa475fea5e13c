package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, viewerID string, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error)
		AddFavorite(ctx context.Context, userID, recipeID string) error
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		Favorited(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// loadTags returns the tags for ids, failing when any id is unknown.
func loadTags(tx *gorm.DB, ids []uuid.UUID) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, domain.ErrTagNotFound
	}
	return tags, nil
}

func checkIngredients(tx *gorm.DB, rows []*entities.IngredientRecipe) error {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.IngredientID)
	}
	var count int64
	if err := tx.Model(&entities.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return domain.ErrIngredientNotFound
	}
	return nil
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := loadTags(tx, tagIDs)
		if err != nil {
			return err
		}
		if err := checkIngredients(tx, recipe.IngredientRecipes); err != nil {
			return err
		}

		recipe.Tags = tags
		return tx.Omit("Author").Create(recipe).Error
	})
}

// UpdateRecipe overwrites the recipe fields and replaces its tags and
// ingredient rows.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := loadTags(tx, tagIDs)
		if err != nil {
			return err
		}
		if err := checkIngredients(tx, recipe.IngredientRecipes); err != nil {
			return err
		}

		if err := tx.Model(&entities.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"image_url":    recipe.ImageURL,
				"cooking_time": recipe.CookingTime,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&entities.Recipe{ID: recipe.ID}).Association("Tags").Replace(tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.IngredientRecipe{}).Error; err != nil {
			return err
		}
		for _, row := range recipe.IngredientRecipes {
			row.RecipeID = recipe.ID
		}
		return tx.Create(&recipe.IngredientRecipes).Error
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := &entities.Recipe{}
		if err := tx.Where("id = ?", id).First(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name asc") }).
		Preload("IngredientRecipes.Ingredient")
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Scopes(withDetails).
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// filterRecipes applies the list filters. Favorite and cart filters need an
// identified viewer and are ignored for anonymous requests.
func (r *recipeRepository) filterRecipes(viewerID string, filter domain.RecipeFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.AuthorID != "" {
			db = db.Where("recipes.author_id = ?", filter.AuthorID)
		}
		if len(filter.Tags) > 0 {
			tagged := r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.Tags)
			db = db.Where("recipes.id IN (?)", tagged)
		}
		if viewerID == "" {
			return db
		}
		if filter.IsFavorited != nil {
			favorites := r.db.Model(&entities.Favorite{}).Select("recipe_id").Where("user_id = ?", viewerID)
			if *filter.IsFavorited {
				db = db.Where("recipes.id IN (?)", favorites)
			} else {
				db = db.Where("recipes.id NOT IN (?)", favorites)
			}
		}
		if filter.IsInShoppingCart != nil {
			cart := r.db.Model(&entities.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", viewerID)
			if *filter.IsInShoppingCart {
				db = db.Where("recipes.id IN (?)", cart)
			} else {
				db = db.Where("recipes.id NOT IN (?)", cart)
			}
		}
		return db
	}
}

func (r *recipeRepository) GetRecipes(ctx context.Context, viewerID string, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(r.filterRecipes(viewerID, filter)).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(r.filterRecipes(viewerID, filter), withDetails).
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	var existing entities.Favorite
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userUUID, recipeUUID).
		First(&existing).Error
	if err == nil {
		return domain.ErrAlreadyFavorited
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	favorite := entities.Favorite{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipeUUID,
	}
	if err := r.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyFavorited
		}
		return err
	}
	return nil
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (r *recipeRepository) Favorited(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	flags := make(map[string]bool, len(recipeIDs))
	if userID == "" || len(recipeIDs) == 0 {
		return flags, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		flags[id.String()] = true
	}
	return flags, nil
}
