package shoppingcart

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/mailing"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sendShoppingCartSubject = "Your Foodgram shopping list"

type (
	// UserLookup resolves the cart owner for file naming and mailing.
	UserLookup interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
	}

	ShoppingCartService interface {
		AddToCart(ctx context.Context, userID, recipeID string) (domain.RecipeMinified, error)
		RemoveFromCart(ctx context.Context, userID, recipeID string) error
		InShoppingCart(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)
		ShoppingList(ctx context.Context, userID string) ([]domain.AggregatedLine, error)
		DownloadShoppingCart(ctx context.Context, userID string) (*domain.ShoppingCartFile, error)
		SendShoppingCart(ctx context.Context, userID string) error
	}

	shoppingCartService struct {
		cartRepository CartRepository
		users          UserLookup
		aggregator     Aggregator
		delivery       DeliveryAdapter
		mailer         mailing.Mailer
		log            *zap.Logger
	}
)

func NewShoppingCartService(
	cartRepository CartRepository,
	users UserLookup,
	delivery DeliveryAdapter,
	mailer mailing.Mailer,
	log *zap.Logger,
) ShoppingCartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &shoppingCartService{
		cartRepository: cartRepository,
		users:          users,
		aggregator:     NewAggregator(cartRepository),
		delivery:       delivery,
		mailer:         mailer,
		log:            log.Named("shoppingcart"),
	}
}

func (s *shoppingCartService) AddToCart(ctx context.Context, userID, recipeID string) (domain.RecipeMinified, error) {
	recipe, err := s.cartRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeMinified{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeMinified{}, domain.StorageError("load recipe", err)
	}

	if err := s.cartRepository.AddToCart(ctx, userID, recipeID); err != nil {
		return domain.RecipeMinified{}, domain.StorageError("add to cart", err)
	}

	return domain.RecipeMinified{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}, nil
}

func (s *shoppingCartService) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	if _, err := s.cartRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return domain.StorageError("load recipe", err)
	}
	return domain.StorageError("remove from cart", s.cartRepository.RemoveFromCart(ctx, userID, recipeID))
}

func (s *shoppingCartService) InShoppingCart(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	flags, err := s.cartRepository.InCart(ctx, userID, recipeIDs)
	return flags, domain.StorageError("load cart flags", err)
}

func (s *shoppingCartService) ShoppingList(ctx context.Context, userID string) ([]domain.AggregatedLine, error) {
	return s.aggregator.Aggregate(ctx, userID)
}

func (s *shoppingCartService) DownloadShoppingCart(ctx context.Context, userID string) (*domain.ShoppingCartFile, error) {
	user, document, err := s.render(ctx, userID)
	if err != nil {
		return nil, err
	}

	file, err := s.delivery.Deliver(ctx, user.Username, document)
	if err != nil {
		s.log.Error("failed to deliver shopping cart", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return file, nil
}

func (s *shoppingCartService) SendShoppingCart(ctx context.Context, userID string) error {
	user, document, err := s.render(ctx, userID)
	if err != nil {
		return err
	}

	attachment := mailing.Attachment{
		Filename:    s.delivery.Filename(user.Username),
		ContentType: s.delivery.ContentType(),
		Content:     []byte(document),
	}
	body := fmt.Sprintf("Hello, %s! Your shopping list is attached.", user.FirstName)
	if err := s.mailer.SendMail(user.Email, sendShoppingCartSubject, body, attachment); err != nil {
		s.log.Error("failed to send shopping cart", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrInternal, err)
	}
	return nil
}

func (s *shoppingCartService) render(ctx context.Context, userID string) (*entities.User, string, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("%w: load user: %w", domain.ErrStorageUnavailable, err)
	}

	lines, err := s.aggregator.Aggregate(ctx, userID)
	if err != nil {
		s.log.Error("failed to aggregate shopping cart", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}
	return user, Format(lines), nil
}
