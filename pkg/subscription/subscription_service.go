package subscription

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/user"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultPageSize = 6

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, subscriberID, authorID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, subscriberID, authorID string) error
		GetSubscriptions(ctx context.Context, subscriberID string, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error)
		Subscribed(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepository: subscriptionRepository}
}

func (s *subscriptionService) getAuthor(ctx context.Context, authorID string) (*entities.User, error) {
	if _, err := uuid.Parse(authorID); err != nil {
		return nil, domain.ErrUserNotFound
	}
	author, err := s.subscriptionRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.StorageError("load author", err)
	}
	return author, nil
}

func (s *subscriptionService) Subscribe(ctx context.Context, subscriberID, authorID string, recipesLimit int) (domain.SubscriptionResponse, error) {
	author, err := s.getAuthor(ctx, authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if subscriberID == authorID {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}

	if err := s.subscriptionRepository.Subscribe(ctx, subscriberID, authorID); err != nil {
		return domain.SubscriptionResponse{}, domain.StorageError("subscribe", err)
	}
	return s.describe(ctx, author, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, subscriberID, authorID string) error {
	if _, err := s.getAuthor(ctx, authorID); err != nil {
		return err
	}
	return domain.StorageError("unsubscribe", s.subscriptionRepository.Unsubscribe(ctx, subscriberID, authorID))
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, subscriberID string, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	limit = min(limit, domain.MaxPageSize)

	authors, count, err := s.subscriptionRepository.GetSubscriptions(ctx, subscriberID, page, limit)
	if err != nil {
		return domain.SubscriptionListResponse{}, domain.StorageError("list subscriptions", err)
	}

	res := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		item, err := s.describe(ctx, author, recipesLimit)
		if err != nil {
			return domain.SubscriptionListResponse{}, err
		}
		res = append(res, item)
	}

	return domain.SubscriptionListResponse{
		Subscriptions: res,
		Pagination:    domain.NewPaginationResponse(count, page, limit),
	}, nil
}

func (s *subscriptionService) Subscribed(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error) {
	flags, err := s.subscriptionRepository.Subscribed(ctx, subscriberID, authorIDs)
	return flags, domain.StorageError("load subscription flags", err)
}

// describe builds the followed-author view. Every caller is a subscriber,
// so is_subscribed is always true.
func (s *subscriptionService) describe(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, count, err := s.subscriptionRepository.GetAuthorRecipes(ctx, author.ID.String(), recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.StorageError("load author recipes", err)
	}

	minified := make([]domain.RecipeMinified, 0, len(recipes))
	for _, r := range recipes {
		minified = append(minified, domain.RecipeMinified{
			ID:          r.ID.String(),
			Name:        r.Name,
			ImageURL:    r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		UserResponse: user.ToResponse(author, true),
		Recipes:      minified,
		RecipesCount: count,
	}, nil
}
