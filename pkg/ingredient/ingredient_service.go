package ingredient

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, nameStartsWith string) ([]domain.IngredientResponse, error)
		GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error)
		LoadFromFile(ctx context.Context, path string) (int, error)
		LoadFromReader(ctx context.Context, r io.Reader) (int, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		log                  *zap.Logger
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, log *zap.Logger) IngredientService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		log:                  log.Named("ingredient"),
	}
}

func toResponse(i *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:              i.ID.String(),
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}

func (s *ingredientService) GetIngredients(ctx context.Context, nameStartsWith string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, strings.TrimSpace(nameStartsWith))
	if err != nil {
		return nil, domain.StorageError("list ingredients", err)
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, toResponse(i))
	}
	return res, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.IngredientResponse{}, domain.ErrIngredientNotFound
	}
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, domain.StorageError("load ingredient", err)
	}
	return toResponse(ingredient), nil
}

func (s *ingredientService) LoadFromFile(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open ingredients file: %w", err)
	}
	defer file.Close()
	return s.LoadFromReader(ctx, file)
}

// LoadFromReader imports a JSON array of ingredients. Names and units are
// lower-cased, existing pairs are kept, and the number of new rows is
// returned.
func (s *ingredientService) LoadFromReader(ctx context.Context, r io.Reader) (int, error) {
	var seeds []domain.IngredientSeed
	if err := json.NewDecoder(r).Decode(&seeds); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidIngredients, err)
	}

	created := 0
	for i, seed := range seeds {
		name := strings.ToLower(strings.TrimSpace(seed.Name))
		unit := strings.ToLower(strings.TrimSpace(seed.MeasurementUnit))
		if name == "" || unit == "" {
			return created, fmt.Errorf("%w: entry %d has empty name or unit", domain.ErrInvalidIngredients, i)
		}

		isNew, err := s.ingredientRepository.GetOrCreate(ctx, name, unit)
		if err != nil {
			return created, err
		}
		if isNew {
			created++
		}
	}

	s.log.Info("ingredients loaded", zap.Int("total", len(seeds)), zap.Int("created", created))
	return created, nil
}
