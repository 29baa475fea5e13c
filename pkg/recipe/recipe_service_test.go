package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecipeRepository struct {
	recipes     map[string]*entities.Recipe
	tags        map[uuid.UUID]*entities.Tag
	ingredients map[uuid.UUID]*entities.Ingredient
	favorites   map[string]bool
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes:     map[string]*entities.Recipe{},
		tags:        map[uuid.UUID]*entities.Tag{},
		ingredients: map[uuid.UUID]*entities.Ingredient{},
		favorites:   map[string]bool{},
	}
}

func (f *fakeRecipeRepository) attach(recipe *entities.Recipe, tagIDs []uuid.UUID) error {
	recipe.Tags = nil
	for _, id := range tagIDs {
		t, ok := f.tags[id]
		if !ok {
			return domain.ErrTagNotFound
		}
		recipe.Tags = append(recipe.Tags, t)
	}
	for _, row := range recipe.IngredientRecipes {
		i, ok := f.ingredients[row.IngredientID]
		if !ok {
			return domain.ErrIngredientNotFound
		}
		row.Ingredient = i
	}
	return nil
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID) error {
	if err := f.attach(recipe, tagIDs); err != nil {
		return err
	}
	recipe.CreatedAt = time.Now().Add(time.Duration(len(f.recipes)) * time.Second)
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID) error {
	if err := f.attach(recipe, tagIDs); err != nil {
		return err
	}
	recipe.CreatedAt = f.recipes[recipe.ID.String()].CreatedAt
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id string) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	if r, ok := f.recipes[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecipeRepository) GetRecipes(_ context.Context, viewerID string, filter domain.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error) {
	var out []*entities.Recipe
	for _, r := range f.recipes {
		if filter.AuthorID != "" && r.AuthorID.String() != filter.AuthorID {
			continue
		}
		if filter.IsFavorited != nil && viewerID != "" && f.favorites[viewerID+">"+r.ID.String()] != *filter.IsFavorited {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	count := int64(len(out))
	start := (page - 1) * limit
	if start > len(out) {
		start = len(out)
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], count, nil
}

func (f *fakeRecipeRepository) AddFavorite(_ context.Context, userID, recipeID string) error {
	key := userID + ">" + recipeID
	if f.favorites[key] {
		return domain.ErrAlreadyFavorited
	}
	f.favorites[key] = true
	return nil
}

func (f *fakeRecipeRepository) RemoveFavorite(_ context.Context, userID, recipeID string) error {
	key := userID + ">" + recipeID
	if !f.favorites[key] {
		return domain.ErrNotFavorited
	}
	delete(f.favorites, key)
	return nil
}

func (f *fakeRecipeRepository) Favorited(_ context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	flags := map[string]bool{}
	for _, id := range recipeIDs {
		if f.favorites[userID+">"+id] {
			flags[id] = true
		}
	}
	return flags, nil
}

type staticFlagger map[string]bool

func (s staticFlagger) InShoppingCart(_ context.Context, _ string, ids []string) (map[string]bool, error) {
	return s.pick(ids), nil
}

func (s staticFlagger) Subscribed(_ context.Context, _ string, ids []string) (map[string]bool, error) {
	return s.pick(ids), nil
}

func (s staticFlagger) pick(ids []string) map[string]bool {
	out := map[string]bool{}
	for _, id := range ids {
		if s[id] {
			out[id] = true
		}
	}
	return out
}

type recipeFixture struct {
	repo      *fakeRecipeRepository
	authorID  string
	tagID     uuid.UUID
	appleID   uuid.UUID
	milkID    uuid.UUID
	validBody domain.RecipeRequest
}

func newRecipeFixture() *recipeFixture {
	f := &recipeFixture{
		repo:     newFakeRecipeRepository(),
		authorID: uuid.NewString(),
		tagID:    uuid.New(),
		appleID:  uuid.New(),
		milkID:   uuid.New(),
	}
	f.repo.tags[f.tagID] = &entities.Tag{ID: f.tagID, Name: "Breakfast", Slug: "breakfast", Color: "#FFFFFF"}
	f.repo.ingredients[f.appleID] = &entities.Ingredient{ID: f.appleID, Name: "apple", MeasurementUnit: "kg"}
	f.repo.ingredients[f.milkID] = &entities.Ingredient{ID: f.milkID, Name: "milk", MeasurementUnit: "l"}
	f.validBody = domain.RecipeRequest{
		Name:        "Porridge",
		Text:        "Boil it.",
		CookingTime: 10,
		Tags:        []string{f.tagID.String()},
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: f.appleID.String(), Amount: 3},
			{ID: f.milkID.String(), Amount: 2},
		},
	}
	return f
}

func TestCreateRecipe(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture()
	svc := NewRecipeService(f.repo, nil, nil, nil)

	created, err := svc.CreateRecipe(ctx, f.authorID, f.validBody)
	require.NoError(t, err)
	assert.Equal(t, "Porridge", created.Name)
	assert.Equal(t, f.authorID, created.Author.ID)
	require.Len(t, created.Ingredients, 2)
	assert.Equal(t, "apple", created.Ingredients[0].Name)
	assert.Equal(t, 3, created.Ingredients[0].Amount)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, "breakfast", created.Tags[0].Slug)

	invalid := []struct {
		name   string
		mutate func(r *domain.RecipeRequest)
		want   error
	}{
		{"short name", func(r *domain.RecipeRequest) { r.Name = " a " }, domain.ErrRecipeNameTooShort},
		{"zero cooking time", func(r *domain.RecipeRequest) { r.CookingTime = 0 }, domain.ErrInvalidCookingTime},
		{"repeated tag", func(r *domain.RecipeRequest) { r.Tags = append(r.Tags, r.Tags[0]) }, domain.ErrDuplicateTag},
		{"repeated ingredient", func(r *domain.RecipeRequest) {
			r.Ingredients = append(r.Ingredients, domain.RecipeIngredientRequest{ID: f.appleID.String(), Amount: 1})
		}, domain.ErrDuplicateIngredient},
		{"amount too large", func(r *domain.RecipeRequest) {
			r.Ingredients = []domain.RecipeIngredientRequest{{ID: f.appleID.String(), Amount: 21}}
		}, domain.ErrInvalidAmount},
		{"no ingredients", func(r *domain.RecipeRequest) { r.Ingredients = nil }, domain.ErrIngredientNotFound},
		{"unknown tag", func(r *domain.RecipeRequest) { r.Tags = []string{uuid.NewString()} }, domain.ErrTagNotFound},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			body := f.validBody
			body.Tags = append([]string(nil), f.validBody.Tags...)
			body.Ingredients = append([]domain.RecipeIngredientRequest(nil), f.validBody.Ingredients...)
			tc.mutate(&body)
			_, err := svc.CreateRecipe(ctx, f.authorID, body)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateAndDeleteRecipeAuthorOnly(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture()
	svc := NewRecipeService(f.repo, nil, nil, nil)

	created, err := svc.CreateRecipe(ctx, f.authorID, f.validBody)
	require.NoError(t, err)

	body := f.validBody
	body.Name = "Better porridge"
	body.Ingredients = []domain.RecipeIngredientRequest{{ID: f.milkID.String(), Amount: 5}}

	_, err = svc.UpdateRecipe(ctx, uuid.NewString(), created.ID, body)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	updated, err := svc.UpdateRecipe(ctx, f.authorID, created.ID, body)
	require.NoError(t, err)
	assert.Equal(t, "Better porridge", updated.Name)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, 5, updated.Ingredients[0].Amount)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, uuid.NewString(), created.ID), domain.ErrUnauthorizedRecipeAccess)
	require.NoError(t, svc.DeleteRecipe(ctx, f.authorID, created.ID))

	_, err = svc.GetRecipe(ctx, "", created.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestRecipeFlags(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture()
	viewer := uuid.NewString()

	created, err := NewRecipeService(f.repo, nil, nil, nil).CreateRecipe(ctx, f.authorID, f.validBody)
	require.NoError(t, err)

	svc := NewRecipeService(f.repo,
		staticFlagger{created.ID: true},
		staticFlagger{f.authorID: true},
		nil,
	)

	got, err := svc.GetRecipe(ctx, viewer, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFavorited)
	assert.True(t, got.IsInShoppingCart)
	assert.True(t, got.Author.IsSubscribed)

	fav, err := svc.AddFavorite(ctx, viewer, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fav.ID)
	_, err = svc.AddFavorite(ctx, viewer, created.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)

	got, err = svc.GetRecipe(ctx, viewer, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorited)

	anonymous, err := svc.GetRecipe(ctx, "", created.ID)
	require.NoError(t, err)
	assert.False(t, anonymous.IsFavorited)
	assert.False(t, anonymous.IsInShoppingCart)
	assert.False(t, anonymous.Author.IsSubscribed)

	require.NoError(t, svc.RemoveFavorite(ctx, viewer, created.ID))
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, viewer, created.ID), domain.ErrNotFavorited)
	_, err = svc.AddFavorite(ctx, viewer, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestGetRecipesPagination(t *testing.T) {
	ctx := context.Background()
	f := newRecipeFixture()
	svc := NewRecipeService(f.repo, nil, nil, nil)

	for i := 0; i < 8; i++ {
		_, err := svc.CreateRecipe(ctx, f.authorID, f.validBody)
		require.NoError(t, err)
	}

	page, err := svc.GetRecipes(ctx, "", domain.RecipeFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page.Recipes, DefaultPageSize)
	assert.Equal(t, int64(8), page.Pagination.Count)
	assert.Equal(t, int64(2), page.Pagination.TotalPages)

	page, err = svc.GetRecipes(ctx, "", domain.RecipeFilter{}, 2, DefaultPageSize)
	require.NoError(t, err)
	assert.Len(t, page.Recipes, 2)

	page, err = svc.GetRecipes(ctx, "", domain.RecipeFilter{AuthorID: uuid.NewString()}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Recipes)

	page, err = svc.GetRecipes(ctx, "", domain.RecipeFilter{}, 1, 1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageSize, page.Pagination.Limit)
	assert.Len(t, page.Recipes, 8)
}

type unreachableRecipes struct {
	*fakeRecipeRepository
}

func (unreachableRecipes) GetRecipeByID(context.Context, string) (*entities.Recipe, error) {
	return nil, errors.New("driver: bad connection")
}

func TestRecipeStorageFailure(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(unreachableRecipes{newFakeRecipeRepository()}, nil, nil, nil)

	_, err := svc.GetRecipe(ctx, "", uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	err = svc.RemoveFavorite(ctx, uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
