package library

import (
	"context"

	"github.com/rs/zerolog"
)

// SortOption selects how the library groups and orders plants.
type SortOption string

const (
	ByPlantName      SortOption = "byPlantName"
	ByDateDescending SortOption = "byDateDescending"
	ByDateAscending  SortOption = "byDateAscending"
	ByActive         SortOption = "byActive"
)

// SortOptionKey is the preference key the option is stored under.
const SortOptionKey = "librarySortOption"

var sortOptions = []SortOption{ByPlantName, ByDateDescending, ByDateAscending, ByActive}

// SortOptions lists every option in menu order.
func SortOptions() []SortOption {
	out := make([]SortOption, len(sortOptions))
	copy(out, sortOptions)
	return out
}

func (o SortOption) String() string { return string(o) }

func (o SortOption) Valid() bool {
	for _, known := range sortOptions {
		if o == known {
			return true
		}
	}
	return false
}

// Title is the menu label for the option.
func (o SortOption) Title() string {
	switch o {
	case ByDateDescending:
		return "By date (descending)"
	case ByDateAscending:
		return "By date (ascending)"
	case ByActive:
		return "Into Active and Archived"
	default:
		return "By plant name"
	}
}

// ParseSortOption never fails: anything that is not a known option name
// yields ByPlantName.
func ParseSortOption(s string) SortOption {
	if o := SortOption(s); o.Valid() {
		return o
	}
	return ByPlantName
}

// PreferenceStore persists string preferences.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// LoadSortOption reads the stored option. A missing, unreadable or unknown
// value falls back to ByPlantName; read errors are only logged.
func LoadSortOption(ctx context.Context, store PreferenceStore, log zerolog.Logger) SortOption {
	value, ok, err := store.Get(ctx, SortOptionKey)
	if err != nil {
		log.Warn().Err(err).Msg("load sort option, using default")
		return ByPlantName
	}
	if !ok {
		return ByPlantName
	}
	return ParseSortOption(value)
}

func SaveSortOption(ctx context.Context, store PreferenceStore, option SortOption) error {
	return store.Set(ctx, SortOptionKey, option.String())
}
