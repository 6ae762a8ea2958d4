package library

import (
	"time"

	"github.com/google/uuid"

	"germination_tracker/garden"
)

// PlantView is a value copy of a plant taken under the service lock, safe to
// encode after the lock is released.
type PlantView struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	SowDate      time.Time    `json:"sowDate"`
	SeedsSown    int          `json:"seedsSown"`
	Germinations int          `json:"germinations"`
	Deaths       int          `json:"deaths"`
	Stage        garden.Stage `json:"stage"`
}

type SectionView struct {
	Name string      `json:"name"`
	Rows []PlantView `json:"rows"`
}

type LibraryView struct {
	SortOption SortOption    `json:"sortOption"`
	Sections   []SectionView `json:"sections"`
}

// Mutation is the result of a change made from the library list: the plant
// it concerns, where that plant sits now, and the table update.
type Mutation struct {
	Plant     PlantView `json:"plant"`
	IndexPath IndexPath `json:"indexPath"`
	Update    Update    `json:"update"`
}

// PlantDetail is what the plant screen shows.
type PlantDetail struct {
	Plant       PlantView               `json:"plant"`
	IndexPath   IndexPath               `json:"indexPath"`
	Information *garden.InformationView `json:"information"`
}

func newPlantView(p *garden.Plant) PlantView {
	return PlantView{
		ID:           p.UUID,
		Name:         p.Name,
		SowDate:      p.SowDate,
		SeedsSown:    p.SeedsSown,
		Germinations: p.GerminationCount(),
		Deaths:       p.DeathCount(),
		Stage:        p.Stage(),
	}
}

// NewLibraryView copies organized sections into encodable views.
func NewLibraryView(option SortOption, sections []Section) LibraryView {
	view := LibraryView{SortOption: option, Sections: make([]SectionView, len(sections))}
	for i, s := range sections {
		rows := make([]PlantView, len(s.Rows))
		for r, p := range s.Rows {
			rows[r] = newPlantView(p)
		}
		view.Sections[i] = SectionView{Name: s.Name, Rows: rows}
	}
	return view
}
