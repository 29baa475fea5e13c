package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/tag"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	minRecipeNameLength = 2
	DefaultPageSize     = 6
)

type (
	// FavoriteFlagger answers whether each recipe is in the user's favorites.
	FavoriteFlagger interface {
		Favorited(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)
	}

	// ShoppingCartFlagger answers whether each recipe is in the user's cart.
	ShoppingCartFlagger interface {
		InShoppingCart(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)
	}

	RecipeService interface {
		CreateRecipe(ctx context.Context, authorID string, req domain.RecipeRequest) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, authorID, id string, req domain.RecipeRequest) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, authorID, id string) error
		GetRecipe(ctx context.Context, viewerID, id string) (domain.Recipe, error)
		GetRecipes(ctx context.Context, viewerID string, filter domain.RecipeFilter, page, limit int) (domain.RecipeListResponse, error)
		AddFavorite(ctx context.Context, userID, recipeID string) (domain.RecipeMinified, error)
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		Favorited(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		flags            flagSet
		log              *zap.Logger
	}

	// flagSet fills the viewer-dependent fields of a recipe by delegating to
	// one flagger per field. A nil flagger leaves its field false.
	flagSet struct {
		favorites     FavoriteFlagger
		shoppingCart  ShoppingCartFlagger
		subscriptions user.SubscriptionFlagger
	}
)

// NewRecipeService wires the repository with the capability flaggers. The
// favorites flag is served by the recipe repository itself.
func NewRecipeService(
	recipeRepository RecipeRepository,
	shoppingCart ShoppingCartFlagger,
	subscriptions user.SubscriptionFlagger,
	log *zap.Logger,
) RecipeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &recipeService{
		recipeRepository: recipeRepository,
		flags: flagSet{
			favorites:     recipeRepository,
			shoppingCart:  shoppingCart,
			subscriptions: subscriptions,
		},
		log: log.Named("recipe"),
	}
}

func (f flagSet) apply(ctx context.Context, viewerID string, recipes []domain.Recipe) error {
	if viewerID == "" || len(recipes) == 0 {
		return nil
	}

	recipeIDs := make([]string, 0, len(recipes))
	authorIDs := make([]string, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.Author.ID)
	}

	var favorited, inCart, subscribed map[string]bool
	var err error
	if f.favorites != nil {
		if favorited, err = f.favorites.Favorited(ctx, viewerID, recipeIDs); err != nil {
			return err
		}
	}
	if f.shoppingCart != nil {
		if inCart, err = f.shoppingCart.InShoppingCart(ctx, viewerID, recipeIDs); err != nil {
			return err
		}
	}
	if f.subscriptions != nil {
		if subscribed, err = f.subscriptions.Subscribed(ctx, viewerID, authorIDs); err != nil {
			return err
		}
	}

	for i := range recipes {
		recipes[i].IsFavorited = favorited[recipes[i].ID]
		recipes[i].IsInShoppingCart = inCart[recipes[i].ID]
		recipes[i].Author.IsSubscribed = subscribed[recipes[i].Author.ID]
	}
	return nil
}

func toDomain(r *entities.Recipe) domain.Recipe {
	res := domain.Recipe{
		ID:          r.ID.String(),
		Tags:        make([]domain.TagResponse, 0, len(r.Tags)),
		Ingredients: make([]domain.RecipeIngredient, 0, len(r.IngredientRecipes)),
		Name:        r.Name,
		ImageURL:    r.ImageURL,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		CreatedAt:   r.CreatedAt,
	}
	if r.Author != nil {
		res.Author = user.ToResponse(r.Author, false)
	} else {
		res.Author = domain.UserResponse{ID: r.AuthorID.String()}
	}
	for _, t := range r.Tags {
		res.Tags = append(res.Tags, tag.ToResponse(t))
	}
	for _, row := range r.IngredientRecipes {
		ingredient := domain.RecipeIngredient{
			ID:     row.IngredientID.String(),
			Amount: row.Amount,
		}
		if row.Ingredient != nil {
			ingredient.Name = row.Ingredient.Name
			ingredient.MeasurementUnit = row.Ingredient.MeasurementUnit
		}
		res.Ingredients = append(res.Ingredients, ingredient)
	}
	return res
}

func toMinified(r *entities.Recipe) domain.RecipeMinified {
	return domain.RecipeMinified{
		ID:          r.ID.String(),
		Name:        r.Name,
		ImageURL:    r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

// buildRecipe checks the request rules that struct tags cannot express and
// turns it into entities.
func buildRecipe(req domain.RecipeRequest) (*entities.Recipe, []uuid.UUID, error) {
	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < minRecipeNameLength {
		return nil, nil, domain.ErrRecipeNameTooShort
	}
	if req.CookingTime < entities.MinCookingTime || req.CookingTime > entities.MaxCookingTime {
		return nil, nil, domain.ErrInvalidCookingTime
	}
	if len(req.Tags) == 0 {
		return nil, nil, domain.ErrTagNotFound
	}
	if len(req.Ingredients) == 0 {
		return nil, nil, domain.ErrIngredientNotFound
	}

	seenTags := make(map[uuid.UUID]struct{}, len(req.Tags))
	tagIDs := make([]uuid.UUID, 0, len(req.Tags))
	for _, raw := range req.Tags {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, domain.ErrTagNotFound
		}
		if _, dup := seenTags[id]; dup {
			return nil, nil, domain.ErrDuplicateTag
		}
		seenTags[id] = struct{}{}
		tagIDs = append(tagIDs, id)
	}

	seenIngredients := make(map[uuid.UUID]struct{}, len(req.Ingredients))
	rows := make([]*entities.IngredientRecipe, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, nil, domain.ErrIngredientNotFound
		}
		if _, dup := seenIngredients[id]; dup {
			return nil, nil, domain.ErrDuplicateIngredient
		}
		if item.Amount < entities.MinIngredientAmount || item.Amount > entities.MaxIngredientAmount {
			return nil, nil, domain.ErrInvalidAmount
		}
		seenIngredients[id] = struct{}{}
		rows = append(rows, &entities.IngredientRecipe{
			ID:           uuid.New(),
			IngredientID: id,
			Amount:       item.Amount,
		})
	}

	return &entities.Recipe{
		Name:              name,
		Text:              req.Text,
		ImageURL:          req.ImageURL,
		CookingTime:       req.CookingTime,
		IngredientRecipes: rows,
	}, tagIDs, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, authorID string, req domain.RecipeRequest) (domain.Recipe, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	recipe, tagIDs, err := buildRecipe(req)
	if err != nil {
		return domain.Recipe{}, err
	}
	recipe.ID = uuid.New()
	recipe.AuthorID = authorUUID
	for _, row := range recipe.IngredientRecipes {
		row.RecipeID = recipe.ID
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tagIDs); err != nil {
		return domain.Recipe{}, domain.StorageError("create recipe", err)
	}

	s.log.Info("recipe created", zap.String("recipe_id", recipe.ID.String()), zap.String("author_id", authorID))
	return s.GetRecipe(ctx, authorID, recipe.ID.String())
}

func (s *recipeService) UpdateRecipe(ctx context.Context, authorID, id string, req domain.RecipeRequest) (domain.Recipe, error) {
	existing, err := s.getOwnRecipe(ctx, authorID, id)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe, tagIDs, err := buildRecipe(req)
	if err != nil {
		return domain.Recipe{}, err
	}
	recipe.ID = existing.ID
	recipe.AuthorID = existing.AuthorID

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, tagIDs); err != nil {
		return domain.Recipe{}, domain.StorageError("update recipe", err)
	}
	return s.GetRecipe(ctx, authorID, id)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, authorID, id string) error {
	if _, err := s.getOwnRecipe(ctx, authorID, id); err != nil {
		return err
	}
	return domain.StorageError("delete recipe", s.recipeRepository.DeleteRecipe(ctx, id))
}

func (s *recipeService) getRecipe(ctx context.Context, id string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRecipeNotFound
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, domain.StorageError("load recipe", err)
	}
	return recipe, nil
}

func (s *recipeService) getOwnRecipe(ctx context.Context, authorID, id string) (*entities.Recipe, error) {
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID.String() != authorID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, viewerID, id string) (domain.Recipe, error) {
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}

	res := []domain.Recipe{toDomain(recipe)}
	if err := s.flags.apply(ctx, viewerID, res); err != nil {
		return domain.Recipe{}, domain.StorageError("load recipe flags", err)
	}
	return res[0], nil
}

func (s *recipeService) GetRecipes(ctx context.Context, viewerID string, filter domain.RecipeFilter, page, limit int) (domain.RecipeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	limit = min(limit, domain.MaxPageSize)

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, viewerID, filter, page, limit)
	if err != nil {
		return domain.RecipeListResponse{}, domain.StorageError("list recipes", err)
	}

	res := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, toDomain(r))
	}
	if err := s.flags.apply(ctx, viewerID, res); err != nil {
		return domain.RecipeListResponse{}, domain.StorageError("load recipe flags", err)
	}

	return domain.RecipeListResponse{
		Recipes:    res,
		Pagination: domain.NewPaginationResponse(count, page, limit),
	}, nil
}

func (s *recipeService) AddFavorite(ctx context.Context, userID, recipeID string) (domain.RecipeMinified, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeMinified{}, err
	}
	if err := s.recipeRepository.AddFavorite(ctx, userID, recipeID); err != nil {
		return domain.RecipeMinified{}, domain.StorageError("add favorite", err)
	}
	return toMinified(recipe), nil
}

func (s *recipeService) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}
	return domain.StorageError("remove favorite", s.recipeRepository.RemoveFavorite(ctx, userID, recipeID))
}

func (s *recipeService) Favorited(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	flags, err := s.recipeRepository.Favorited(ctx, userID, recipeIDs)
	return flags, domain.StorageError("load favorite flags", err)
}
