package subscription

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionRepository interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		Subscribe(ctx context.Context, subscriberID, authorID string) error
		Unsubscribe(ctx context.Context, subscriberID, authorID string) error
		Subscribed(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error)
		GetSubscriptions(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error)
		GetAuthorRecipes(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, int64, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *subscriptionRepository) Subscribe(ctx context.Context, subscriberID, authorID string) error {
	subscriberUUID, err := uuid.Parse(subscriberID)
	if err != nil {
		return domain.ErrParseUUID
	}
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.ErrParseUUID
	}

	var existing entities.Subscription
	err = r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberUUID, authorUUID).
		First(&existing).Error
	if err == nil {
		return domain.ErrAlreadySubscribed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	subscription := entities.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberUUID,
		AuthorID:     authorUUID,
	}
	if err := r.db.WithContext(ctx).Create(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadySubscribed
		}
		return err
	}
	return nil
}

func (r *subscriptionRepository) Unsubscribe(ctx context.Context, subscriberID, authorID string) error {
	res := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&entities.Subscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotSubscribed
	}
	return nil
}

func (r *subscriptionRepository) Subscribed(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error) {
	flags := make(map[string]bool, len(authorIDs))
	if subscriberID == "" || len(authorIDs) == 0 {
		return flags, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("subscriber_id = ? AND author_id IN ?", subscriberID, authorIDs).
		Pluck("author_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		flags[id.String()] = true
	}
	return flags, nil
}

func (r *subscriptionRepository) GetSubscriptions(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	return authors, count, nil
}

// GetAuthorRecipes returns the newest recipes of an author, at most limit
// when limit is positive, and the author's total recipe count.
func (r *subscriptionRepository) GetAuthorRecipes(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}
