package shoppingcart

import (
	"Foodgram-Backend/domain"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const shoppingListHeader = "Shopping_cart:\n\n"

// Format renders aggregated lines as the plain-text shopping list.
func Format(lines []domain.AggregatedLine) string {
	var sb strings.Builder
	sb.WriteString(shoppingListHeader)
	for i, line := range lines {
		fmt.Fprintf(&sb, "%d.%s (%s) - %d \n",
			i+1, Capitalize(line.IngredientName), line.MeasurementUnit, line.TotalAmount)
	}
	return sb.String()
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToTitle(first)) + strings.ToLower(s[size:])
}
