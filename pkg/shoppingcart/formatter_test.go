package shoppingcart

import (
	"Foodgram-Backend/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, "Shopping_cart:\n\n", Format(nil))
		assert.Equal(t, "Shopping_cart:\n\n", Format([]domain.AggregatedLine{}))
	})

	t.Run("numbered lines", func(t *testing.T) {
		lines := []domain.AggregatedLine{
			{IngredientName: "apple", MeasurementUnit: "kg", TotalAmount: 3},
			{IngredientName: "milk", MeasurementUnit: "l", TotalAmount: 3},
			{IngredientName: "salt", MeasurementUnit: "g", TotalAmount: 1},
		}
		want := "Shopping_cart:\n\n" +
			"1.Apple (kg) - 3 \n" +
			"2.Milk (l) - 3 \n" +
			"3.Salt (g) - 1 \n"
		assert.Equal(t, want, Format(lines))
		assert.Equal(t, Format(lines), Format(lines))
	})
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":          "",
		"APPLE":     "Apple",
		"apple":     "Apple",
		"olive OIL": "Olive oil",
		"яблоко":    "Яблоко",
		"ÉCLAIR":    "Éclair",
		"1st flour": "1st flour",
	}
	for in, want := range cases {
		assert.Equal(t, want, Capitalize(in), in)
	}
}
