package shoppingcart

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/mailing"
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeCart struct {
	mu          sync.Mutex
	carts       map[string][]uuid.UUID
	ingredients map[uuid.UUID][]domain.IngredientAmount
	recipes     map[string]*entities.Recipe
	cartErr     error
	rowsErr     error
}

func newFakeCart() *fakeCart {
	return &fakeCart{
		carts:       map[string][]uuid.UUID{},
		ingredients: map[uuid.UUID][]domain.IngredientAmount{},
		recipes:     map[string]*entities.Recipe{},
	}
}

// addRecipe registers a recipe with its ingredient rows and returns its id.
func (f *fakeCart) addRecipe(name string, rows ...domain.IngredientAmount) uuid.UUID {
	id := uuid.New()
	f.recipes[id.String()] = &entities.Recipe{ID: id, Name: name, CookingTime: 10}
	f.ingredients[id] = rows
	return id
}

func (f *fakeCart) CartRecipeIDs(_ context.Context, userID string) ([]uuid.UUID, error) {
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uuid.UUID(nil), f.carts[userID]...), nil
}

func (f *fakeCart) IngredientAmounts(_ context.Context, recipeIDs []uuid.UUID) ([]domain.IngredientAmount, error) {
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	var rows []domain.IngredientAmount
	for _, id := range recipeIDs {
		rows = append(rows, f.ingredients[id]...)
	}
	return rows, nil
}

func (f *fakeCart) GetRecipeByID(_ context.Context, recipeID string) (*entities.Recipe, error) {
	recipe, ok := f.recipes[recipeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeCart) AddToCart(_ context.Context, userID, recipeID string) error {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.carts[userID] {
		if existing == id {
			return domain.ErrAlreadyInCart
		}
	}
	f.carts[userID] = append(f.carts[userID], id)
	return nil
}

func (f *fakeCart) RemoveFromCart(_ context.Context, userID, recipeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.carts[userID]
	for i, existing := range ids {
		if existing.String() == recipeID {
			f.carts[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotInCart
}

func (f *fakeCart) InCart(_ context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	flags := map[string]bool{}
	for _, want := range recipeIDs {
		for _, id := range f.carts[userID] {
			if id.String() == want {
				flags[want] = true
			}
		}
	}
	return flags, nil
}

type fakeUsers map[string]*entities.User

func (f fakeUsers) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type sentMail struct {
	to          string
	subject     string
	attachments []mailing.Attachment
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendMail(to, subject, _ string, attachments ...mailing.Attachment) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, attachments: attachments})
	return nil
}

var errStoreDown = errors.New("connection refused")
