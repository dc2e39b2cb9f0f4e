package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Category is a fixed classification of ad listings
type Category string

const (
	CategoryAuto     Category = "auto"
	CategoryRealty   Category = "realty"
	CategoryBusiness Category = "business"
	CategoryOther    Category = "other"
)

// Categories lists all categories in display order
var Categories = []Category{CategoryAuto, CategoryRealty, CategoryBusiness, CategoryOther}

// categoryTitles maps categories to their user-facing names
var categoryTitles = map[Category]string{
	CategoryAuto:     "🚗 Авто",
	CategoryRealty:   "🏠 Недвижимость",
	CategoryBusiness: "💼 Бизнес",
	CategoryOther:    "📦 Прочее",
}

// ParseCategory validates a raw category code
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryTitles[c]; !ok {
		return "", Validationf("unknown category %q", s)
	}
	return c, nil
}

// Title returns the user-facing category name
func (c Category) Title() string {
	if title, ok := categoryTitles[c]; ok {
		return title
	}
	return string(c)
}

// Ad represents a marketplace listing
type Ad struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	Price       string
	Category    Category
	Photos      []string
	IsActive    bool
	CreatedAt   time.Time
}

// AdView is an ad joined with its owner's contact data for display
type AdView struct {
	Ad
	SellerNick     string
	SellerGameID   string
	SellerUsername string
	SellerBlocked  bool
}

// AdPatch carries an arbitrary subset of mutable ad fields.
// Nil fields are left untouched.
type AdPatch struct {
	Title       *string
	Description *string
	Price       *string
	Photos      []string
}

const (
	TitleMinLen = 3
	TitleMaxLen = 100

	DescriptionMinLen = 10
	DescriptionMaxLen = 1000

	PriceMaxLen = 50

	MaxPhotos = 10
)

// ValidateTitle checks ad title length bounds
func ValidateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < TitleMinLen || n > TitleMaxLen {
		return Validationf("title must be %d-%d characters, got %d", TitleMinLen, TitleMaxLen, n)
	}
	return nil
}

// ValidateDescription checks ad description length bounds
func ValidateDescription(description string) error {
	n := utf8.RuneCountInString(description)
	if n < DescriptionMinLen || n > DescriptionMaxLen {
		return Validationf("description must be %d-%d characters, got %d", DescriptionMinLen, DescriptionMaxLen, n)
	}
	return nil
}

// ValidatePrice checks the free-form price string. Prices are never parsed
// as numbers: "Договорная" is as valid as "100.000$".
func ValidatePrice(price string) error {
	if n := utf8.RuneCountInString(price); n > PriceMaxLen {
		return Validationf("price must be at most %d characters, got %d", PriceMaxLen, n)
	}
	return nil
}

// FilterPhotos drops empty and whitespace-only photo tokens, preserving order
func FilterPhotos(photos []string) []string {
	valid := make([]string, 0, len(photos))
	for _, p := range photos {
		if strings.TrimSpace(p) != "" {
			valid = append(valid, p)
		}
	}
	return valid
}

// ParsePhotos decodes the stored comma-joined photo list
func ParsePhotos(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	photos := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			photos = append(photos, p)
		}
	}
	return photos
}

// JoinPhotos encodes a photo list for storage, dropping empty tokens
func JoinPhotos(photos []string) string {
	return strings.Join(FilterPhotos(photos), ",")
}
