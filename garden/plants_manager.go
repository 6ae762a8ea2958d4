// Package garden holds the sowing records and the collection that owns them.
package garden

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrPlantNotFound = errors.New("plant not found")

// PlantsManager owns the ordered plant collection. Order is insertion order
// and is what Position persists. It does no locking of its own.
type PlantsManager struct {
	db     *gorm.DB
	plants []*Plant
	now    func() time.Time
	log    zerolog.Logger
}

type ManagerOption func(*PlantsManager)

// WithClock replaces time.Now for sow dates and counter events.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *PlantsManager) {
		m.now = now
	}
}

func NewPlantsManager(db *gorm.DB, log zerolog.Logger, opts ...ManagerOption) *PlantsManager {
	m := &PlantsManager{
		db:  db,
		now: time.Now,
		log: log.With().Str("component", "plants").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Plants returns the collection in insertion order. The slice is a copy, the
// plants are not.
func (m *PlantsManager) Plants() []*Plant {
	return slices.Clone(m.plants)
}

func (m *PlantsManager) Count() int {
	return len(m.plants)
}

func (m *PlantsManager) Now() time.Time {
	return m.now()
}

// NewPlant appends a plant sown now.
func (m *PlantsManager) NewPlant(name string) *Plant {
	p := NewPlant(name, m.now())
	m.plants = append(m.plants, p)
	m.log.Debug().Str("plant", p.UUID.String()).Str("name", name).Msg("plant added")
	return p
}

// Add appends an existing plant, for example one built by a caller with
// custom fields.
func (m *PlantsManager) Add(p *Plant) {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	m.plants = append(m.plants, p)
}

func (m *PlantsManager) Remove(p *Plant) error {
	i := slices.Index(m.plants, p)
	if i < 0 {
		return ErrPlantNotFound
	}
	m.plants = slices.Delete(m.plants, i, i+1)
	m.log.Debug().Str("plant", p.UUID.String()).Msg("plant removed")
	return nil
}

func (m *PlantsManager) Find(id uuid.UUID) (*Plant, error) {
	for _, p := range m.plants {
		if p.UUID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlantNotFound, id)
}

// LoadPlants replaces the in-memory collection with the stored one.
func (m *PlantsManager) LoadPlants(ctx context.Context) error {
	stored, err := gorm.G[Plant](m.db).Order("position").Find(ctx)
	if err != nil {
		return fmt.Errorf("load plants: %w", err)
	}
	events, err := gorm.G[PlantEvent](m.db).Order("id").Find(ctx)
	if err != nil {
		return fmt.Errorf("load plant events: %w", err)
	}

	plants := make([]*Plant, len(stored))
	byID := make(map[uint]*Plant, len(stored))
	for i := range stored {
		plants[i] = &stored[i]
		byID[stored[i].ID] = plants[i]
	}
	for _, e := range events {
		p, ok := byID[e.PlantID]
		if !ok {
			m.log.Warn().Uint("plant_id", e.PlantID).Msg("orphan plant event skipped")
			continue
		}
		switch e.Kind {
		case EventGermination:
			p.Germinations = append(p.Germinations, e.At)
		case EventDeath:
			p.Deaths = append(p.Deaths, e.At)
		}
	}

	m.plants = plants
	m.log.Info().Int("count", len(plants)).Msg("plants loaded")
	return nil
}

// SavePlants writes the whole collection: every plant is upserted with its
// current position, events are rewritten, and stored plants that are no
// longer in the collection are hard deleted.
func (m *PlantsManager) SavePlants(ctx context.Context) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(m.plants))
		for i, p := range m.plants {
			p.Position = i
			if err := tx.Save(p).Error; err != nil {
				return fmt.Errorf("save plant %s: %w", p.UUID, err)
			}
			keep = append(keep, p.UUID)
		}

		stale := tx.Unscoped()
		if len(keep) > 0 {
			stale = stale.Where("uuid NOT IN ?", keep)
		} else {
			stale = stale.Where("1 = 1")
		}
		if err := stale.Delete(&Plant{}).Error; err != nil {
			return fmt.Errorf("delete removed plants: %w", err)
		}

		if err := tx.Where("1 = 1").Delete(&PlantEvent{}).Error; err != nil {
			return fmt.Errorf("clear plant events: %w", err)
		}
		var events []PlantEvent
		for _, p := range m.plants {
			events = append(events, p.events()...)
		}
		if len(events) > 0 {
			if err := tx.CreateInBatches(events, 200).Error; err != nil {
				return fmt.Errorf("save plant events: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		m.log.Error().Err(err).Msg("save plants failed")
		return err
	}
	m.log.Debug().Int("count", len(m.plants)).Msg("plants saved")
	return nil
}
