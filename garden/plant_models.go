package garden

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plant is a single sowing being tracked. In memory a plant is identified by
// its pointer; UUID and Position only exist so the collection survives a
// save/load round trip.
type Plant struct {
	gorm.Model
	UUID      uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name      string
	SowDate   time.Time
	SeedsSown int
	Position  int

	Germinations []time.Time `gorm:"-"`
	Deaths       []time.Time `gorm:"-"`
}

func (p *Plant) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	return nil
}

type EventKind string

const (
	EventGermination EventKind = "germination"
	EventDeath       EventKind = "death"
)

// PlantEvent is the stored form of one germination or death date.
type PlantEvent struct {
	ID      uint `gorm:"primarykey"`
	PlantID uint `gorm:"index"`
	Kind    EventKind
	At      time.Time
}

type Stage string

const (
	StageSeed        Stage = "SEED"
	StageGermination Stage = "GERMINATION"
	StageLost        Stage = "LOST"
)

// NewPlant returns an unsaved plant sown at the given time.
func NewPlant(name string, sown time.Time) *Plant {
	return &Plant{
		UUID:    uuid.New(),
		Name:    name,
		SowDate: sown,
	}
}

func (p *Plant) GerminationCount() int { return len(p.Germinations) }

func (p *Plant) DeathCount() int { return len(p.Deaths) }

// Alive is the number of germinated seedlings that have not died.
func (p *Plant) Alive() int {
	n := len(p.Germinations) - len(p.Deaths)
	if n < 0 {
		return 0
	}
	return n
}

// Stage summarizes the counters: nothing up yet, seedlings alive, or every
// germinated seedling lost.
func (p *Plant) Stage() Stage {
	switch {
	case len(p.Germinations) == 0 && len(p.Deaths) == 0:
		return StageSeed
	case p.Alive() == 0:
		return StageLost
	default:
		return StageGermination
	}
}

// SetGerminationCount moves the germination counter to n. Raising it records
// new events at now, lowering it drops the most recent ones.
func (p *Plant) SetGerminationCount(n int, now time.Time) {
	p.Germinations = setCount(p.Germinations, n, now)
}

// SetDeathCount is the death-counter equivalent of SetGerminationCount.
func (p *Plant) SetDeathCount(n int, now time.Time) {
	p.Deaths = setCount(p.Deaths, n, now)
}

func setCount(events []time.Time, n int, now time.Time) []time.Time {
	if n < 0 {
		n = 0
	}
	for len(events) < n {
		events = append(events, now)
	}
	return events[:n]
}

// LastGermination returns the latest germination date, if any.
func (p *Plant) LastGermination() (time.Time, bool) {
	return latest(p.Germinations)
}

// LastDeath returns the latest death date, if any.
func (p *Plant) LastDeath() (time.Time, bool) {
	return latest(p.Deaths)
}

func latest(events []time.Time) (time.Time, bool) {
	if len(events) == 0 {
		return time.Time{}, false
	}
	last := events[0]
	for _, t := range events[1:] {
		if t.After(last) {
			last = t
		}
	}
	return last, true
}

func (p *Plant) events() []PlantEvent {
	out := make([]PlantEvent, 0, len(p.Germinations)+len(p.Deaths))
	for _, at := range p.Germinations {
		out = append(out, PlantEvent{PlantID: p.ID, Kind: EventGermination, At: at})
	}
	for _, at := range p.Deaths {
		out = append(out, PlantEvent{PlantID: p.ID, Kind: EventDeath, At: at})
	}
	return out
}
