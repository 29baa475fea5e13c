package subscription

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSubscriptionRepository struct {
	users   map[string]*entities.User
	recipes map[string][]*entities.Recipe
	follows map[string][]string
}

func newFakeSubscriptionRepository() *fakeSubscriptionRepository {
	return &fakeSubscriptionRepository{
		users:   map[string]*entities.User{},
		recipes: map[string][]*entities.Recipe{},
		follows: map[string][]string{},
	}
}

func (f *fakeSubscriptionRepository) addUser(name string) *entities.User {
	u := &entities.User{ID: uuid.New(), Username: name, Email: name + "@example.com"}
	f.users[u.ID.String()] = u
	return u
}

func (f *fakeSubscriptionRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubscriptionRepository) Subscribe(_ context.Context, subscriberID, authorID string) error {
	for _, id := range f.follows[subscriberID] {
		if id == authorID {
			return domain.ErrAlreadySubscribed
		}
	}
	f.follows[subscriberID] = append(f.follows[subscriberID], authorID)
	return nil
}

func (f *fakeSubscriptionRepository) Unsubscribe(_ context.Context, subscriberID, authorID string) error {
	ids := f.follows[subscriberID]
	for i, id := range ids {
		if id == authorID {
			f.follows[subscriberID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotSubscribed
}

func (f *fakeSubscriptionRepository) Subscribed(_ context.Context, subscriberID string, authorIDs []string) (map[string]bool, error) {
	flags := map[string]bool{}
	for _, want := range authorIDs {
		for _, id := range f.follows[subscriberID] {
			if id == want {
				flags[want] = true
			}
		}
	}
	return flags, nil
}

func (f *fakeSubscriptionRepository) GetSubscriptions(_ context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error) {
	var out []*entities.User
	for _, id := range f.follows[subscriberID] {
		out = append(out, f.users[id])
	}
	return out, int64(len(out)), nil
}

func (f *fakeSubscriptionRepository) GetAuthorRecipes(_ context.Context, authorID string, limit int) ([]*entities.Recipe, int64, error) {
	all := f.recipes[authorID]
	if limit > 0 && limit < len(all) {
		return all[:limit], int64(len(all)), nil
	}
	return all, int64(len(all)), nil
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSubscriptionRepository()
	reader := repo.addUser("reader")
	chef := repo.addUser("chef")
	for _, name := range []string{"Soup", "Salad", "Pie"} {
		repo.recipes[chef.ID.String()] = append(repo.recipes[chef.ID.String()], &entities.Recipe{ID: uuid.New(), Name: name, CookingTime: 5})
	}
	svc := NewSubscriptionService(repo)

	res, err := svc.Subscribe(ctx, reader.ID.String(), chef.ID.String(), 2)
	require.NoError(t, err)
	assert.True(t, res.IsSubscribed)
	assert.Equal(t, "chef", res.Username)
	assert.Len(t, res.Recipes, 2)
	assert.Equal(t, int64(3), res.RecipesCount)

	_, err = svc.Subscribe(ctx, reader.ID.String(), chef.ID.String(), 0)
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	_, err = svc.Subscribe(ctx, reader.ID.String(), reader.ID.String(), 0)
	assert.ErrorIs(t, err, domain.ErrSelfSubscription)

	_, err = svc.Subscribe(ctx, reader.ID.String(), uuid.NewString(), 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	flags, err := svc.Subscribed(ctx, reader.ID.String(), []string{chef.ID.String()})
	require.NoError(t, err)
	assert.True(t, flags[chef.ID.String()])

	list, err := svc.GetSubscriptions(ctx, reader.ID.String(), 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Subscriptions, 1)
	assert.Len(t, list.Subscriptions[0].Recipes, 3)
	assert.Equal(t, int64(1), list.Pagination.Count)

	require.NoError(t, svc.Unsubscribe(ctx, reader.ID.String(), chef.ID.String()))
	assert.ErrorIs(t, svc.Unsubscribe(ctx, reader.ID.String(), chef.ID.String()), domain.ErrNotSubscribed)
}

func TestGetSubscriptionsPageSize(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSubscriptionRepository()
	reader := repo.addUser("reader")
	svc := NewSubscriptionService(repo)

	list, err := svc.GetSubscriptions(ctx, reader.ID.String(), 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultPageSize, list.Pagination.Limit)

	list, err = svc.GetSubscriptions(ctx, reader.ID.String(), 1, 1_000_000_000, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageSize, list.Pagination.Limit)
}

type unreachableAuthors struct {
	*fakeSubscriptionRepository
}

func (unreachableAuthors) GetUserByID(context.Context, string) (*entities.User, error) {
	return nil, errors.New("driver: bad connection")
}

func TestSubscribeStorageFailure(t *testing.T) {
	svc := NewSubscriptionService(unreachableAuthors{newFakeSubscriptionRepository()})

	_, err := svc.Subscribe(context.Background(), uuid.NewString(), uuid.NewString(), 0)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
