package shoppingcart

import (
	"Foodgram-Backend/domain"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
)

type (
	Aggregator interface {
		Aggregate(ctx context.Context, userID string) ([]domain.AggregatedLine, error)
	}

	aggregator struct {
		reader CartReader
	}

	groupKey struct {
		name string
		unit string
	}
)

func NewAggregator(reader CartReader) Aggregator {
	return &aggregator{reader: reader}
}

// Aggregate sums ingredient amounts over every recipe in the user's cart.
// Rows are grouped by the exact (name, measurement unit) pair and sorted by
// lower-cased name, then total amount, then unit.
func (a *aggregator) Aggregate(ctx context.Context, userID string) ([]domain.AggregatedLine, error) {
	recipeIDs, err := a.reader.CartRecipeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load cart recipes: %w", domain.ErrStorageUnavailable, err)
	}
	if len(recipeIDs) == 0 {
		return []domain.AggregatedLine{}, nil
	}

	rows, err := a.reader.IngredientAmounts(ctx, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: load cart ingredients: %w", domain.ErrStorageUnavailable, err)
	}

	return aggregateRows(rows), nil
}

func aggregateRows(rows []domain.IngredientAmount) []domain.AggregatedLine {
	totals := make(map[groupKey]int, len(rows))
	for _, row := range rows {
		totals[groupKey{name: row.Name, unit: row.MeasurementUnit}] += row.Amount
	}

	lines := make([]domain.AggregatedLine, 0, len(totals))
	for key, total := range totals {
		lines = append(lines, domain.AggregatedLine{
			IngredientName:  key.name,
			MeasurementUnit: key.unit,
			TotalAmount:     total,
		})
	}

	slices.SortFunc(lines, func(a, b domain.AggregatedLine) int {
		if c := cmp.Compare(strings.ToLower(a.IngredientName), strings.ToLower(b.IngredientName)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.TotalAmount, b.TotalAmount); c != 0 {
			return c
		}
		if c := cmp.Compare(a.MeasurementUnit, b.MeasurementUnit); c != 0 {
			return c
		}
		return cmp.Compare(a.IngredientName, b.IngredientName)
	})
	return lines
}
