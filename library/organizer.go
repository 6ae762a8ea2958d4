// Package library turns the plant collection into the sectioned list the
// garden screen shows, and serves the mutations made from that list.
//
// The Organizer is a pure function of (plants, sort option, archival
// predicate) recomputed on demand; it never patches a previous result. It
// does no locking: Service owns it and serializes access.
package library

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"germination_tracker/garden"
)

const (
	AllPlantsSection = "All Plants"
	ActiveSection    = "Active"
	ArchivedSection  = "Archived"
)

// IndexPath is a (section, row) display coordinate.
type IndexPath struct {
	Section int `json:"section"`
	Row     int `json:"row"`
}

func (p IndexPath) String() string {
	return fmt.Sprintf("[%d, %d]", p.Section, p.Row)
}

// Section is a named run of rows. Rows borrow plants from the collection.
type Section struct {
	Name string
	Rows []*garden.Plant
}

// PlantSource is read-only access to the authoritative collection, in
// insertion order.
type PlantSource interface {
	Plants() []*garden.Plant
}

// ArchivalPredicate decides which plants go to the Archived section.
type ArchivalPredicate func(p *garden.Plant) bool

// DefaultArchived archives a plant that has recorded a death and has not
// germinated since its last one.
func DefaultArchived(p *garden.Plant) bool {
	lastDeath, ok := p.LastDeath()
	if !ok {
		return false
	}
	for _, g := range p.Germinations {
		if g.After(lastDeath) {
			return false
		}
	}
	return true
}

type Organizer struct {
	source   PlantSource
	option   SortOption
	archived ArchivalPredicate
	sections []Section
}

type OrganizerOption func(*Organizer)

func WithArchivalPredicate(pred ArchivalPredicate) OrganizerOption {
	return func(o *Organizer) {
		if pred != nil {
			o.archived = pred
		}
	}
}

// NewOrganizer returns an organizer with no sections; call Organize before
// reading.
func NewOrganizer(source PlantSource, option SortOption, opts ...OrganizerOption) *Organizer {
	o := &Organizer{
		source:   source,
		option:   ParseSortOption(option.String()),
		archived: DefaultArchived,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Organizer) SortOption() SortOption {
	return o.option
}

// SetSortOption only records the option. Sections keep their old layout
// until the next Organize so callers can batch further changes first.
func (o *Organizer) SetSortOption(option SortOption) {
	o.option = ParseSortOption(option.String())
}

// Organize rebuilds every section from the current collection.
func (o *Organizer) Organize() {
	plants := o.source.Plants()

	switch o.option {
	case ByActive:
		active := make([]*garden.Plant, 0, len(plants))
		archived := make([]*garden.Plant, 0)
		for _, p := range plants {
			if o.archived(p) {
				archived = append(archived, p)
			} else {
				active = append(active, p)
			}
		}
		slices.SortStableFunc(active, byDateThenName(-1))
		slices.SortStableFunc(archived, byDateThenName(-1))
		o.sections = []Section{
			{Name: ActiveSection, Rows: active},
			{Name: ArchivedSection, Rows: archived},
		}
	case ByDateDescending:
		o.sections = []Section{single(plants, byDateThenName(-1))}
	case ByDateAscending:
		o.sections = []Section{single(plants, byDateThenName(1))}
	default:
		o.sections = []Section{single(plants, byNameThenDate)}
	}
}

func single(plants []*garden.Plant, order func(a, b *garden.Plant) int) Section {
	rows := make([]*garden.Plant, len(plants))
	copy(rows, plants)
	slices.SortStableFunc(rows, order)
	return Section{Name: AllPlantsSection, Rows: rows}
}

func compareNames(a, b *garden.Plant) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// Ties left by the comparators fall back to collection order because every
// sort is stable.
func byNameThenDate(a, b *garden.Plant) int {
	return cmp.Or(compareNames(a, b), a.SowDate.Compare(b.SowDate))
}

func byDateThenName(direction int) func(a, b *garden.Plant) int {
	return func(a, b *garden.Plant) int {
		return cmp.Or(direction*a.SowDate.Compare(b.SowDate), compareNames(a, b))
	}
}

// Sections returns a copy of the last organized snapshot.
func (o *Organizer) Sections() []Section {
	out := make([]Section, len(o.sections))
	for i, s := range o.sections {
		out[i] = Section{Name: s.Name, Rows: slices.Clone(s.Rows)}
	}
	return out
}

func (o *Organizer) SectionCount() int {
	return len(o.sections)
}

func (o *Organizer) SectionName(section int) (string, error) {
	if section < 0 || section >= len(o.sections) {
		return "", outOfRangef(IndexPath{Section: section}, "%d sections", len(o.sections))
	}
	return o.sections[section].Name, nil
}

func (o *Organizer) RowCount(section int) (int, error) {
	if section < 0 || section >= len(o.sections) {
		return 0, outOfRangef(IndexPath{Section: section}, "%d sections", len(o.sections))
	}
	return len(o.sections[section].Rows), nil
}

// Plant returns the plant displayed at path.
func (o *Organizer) Plant(path IndexPath) (*garden.Plant, error) {
	if path.Section < 0 || path.Section >= len(o.sections) {
		return nil, outOfRangef(path, "%d sections", len(o.sections))
	}
	rows := o.sections[path.Section].Rows
	if path.Row < 0 || path.Row >= len(rows) {
		return nil, outOfRangef(path, "%d rows in section", len(rows))
	}
	return rows[path.Row], nil
}

// IndexPath finds p by identity in the last organized snapshot.
func (o *Organizer) IndexPath(p *garden.Plant) (IndexPath, error) {
	if p != nil {
		for s, section := range o.sections {
			if r := slices.Index(section.Rows, p); r >= 0 {
				return IndexPath{Section: s, Row: r}, nil
			}
		}
	}
	return IndexPath{}, notFound(p)
}

func notFound(p *garden.Plant) error {
	if p == nil {
		return fmt.Errorf("%w: nil plant", ErrNotFound)
	}
	return fmt.Errorf("%w: %q (%s)", ErrNotFound, p.Name, p.UUID)
}
