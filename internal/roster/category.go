package roster

import (
	"fmt"
	"strings"
)

type ShiftCategory string

const (
	CategoryNone    ShiftCategory = ""
	CategoryMorning ShiftCategory = "morning"
	CategoryEvening ShiftCategory = "evening"
	CategoryDouble  ShiftCategory = "double"
)

func (c ShiftCategory) Valid() bool {
	switch c {
	case CategoryNone, CategoryMorning, CategoryEvening, CategoryDouble:
		return true
	}
	return false
}

func ParseShiftCategory(s string) (ShiftCategory, error) {
	c := ShiftCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return CategoryNone, fmt.Errorf("unknown shift category %q", s)
	}
	return c, nil
}

var categoryTokens = []struct {
	category ShiftCategory
	tokens   []string
}{
	// Double first: a "ควบ" shift name usually also spells out both halves.
	{CategoryDouble, []string{"ควบ", "double"}},
	{CategoryMorning, []string{"เช้า", "morning"}},
	{CategoryEvening, []string{"ค่ำ", "evening"}},
}

// InferCategory maps a shift name to a category by Thai or English token.
// It is only consulted for shifts saved without a category.
func InferCategory(name string) ShiftCategory {
	lower := strings.ToLower(name)
	for _, ct := range categoryTokens {
		for _, tok := range ct.tokens {
			if strings.Contains(lower, tok) {
				return ct.category
			}
		}
	}
	return CategoryNone
}
