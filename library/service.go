package library

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"germination_tracker/garden"
	"germination_tracker/notify"
)

// PlantChanges carries the editable detail fields; nil means unchanged.
type PlantChanges struct {
	SowDate   *time.Time
	SeedsSown *int
}

// Service performs every library operation under one lock: mutate the
// collection, save it, reorganize, diff, publish. Results are returned as
// views so nothing shared escapes the lock.
type Service struct {
	mu        sync.Mutex
	plants    *garden.PlantsManager
	organizer *Organizer
	prefs     PreferenceStore
	broker    notify.Broker
	log       zerolog.Logger
}

// NewService restores the stored sort option and organizes the collection as
// it currently is. broker may be nil.
func NewService(ctx context.Context, plants *garden.PlantsManager, prefs PreferenceStore, broker notify.Broker, log zerolog.Logger, opts ...OrganizerOption) *Service {
	log = log.With().Str("component", "library").Logger()
	s := &Service{
		plants:    plants,
		organizer: NewOrganizer(plants, LoadSortOption(ctx, prefs, log), opts...),
		prefs:     prefs,
		broker:    broker,
		log:       log,
	}
	s.organize()
	return s
}

func (s *Service) Library() LibraryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewLibraryView(s.organizer.SortOption(), s.organizer.Sections())
}

// Reload replaces the collection with the stored one and reorganizes.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.plants.LoadPlants(ctx); err != nil {
		return err
	}
	s.organize()
	return nil
}

// SetSortOption stores and applies a new option. Choosing the current option
// changes nothing.
func (s *Service) SetSortOption(ctx context.Context, option SortOption) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !option.Valid() {
		return Update{}, fmt.Errorf("%w: sort option %q", ErrInvalid, option)
	}
	if option == s.organizer.SortOption() {
		return Diff(nil, nil), nil
	}
	if err := SaveSortOption(ctx, s.prefs, option); err != nil {
		recordMutation("sort", err)
		return Update{}, fmt.Errorf("save sort option: %w", err)
	}

	before := s.organizer.Sections()
	s.organizer.SetSortOption(option)
	s.organize()
	recordMutation("sort", nil)

	change := notify.NewChange(notify.SortOptionChanged, uuid.Nil)
	change.SortOption = option.String()
	s.publish(ctx, change)
	s.log.Info().Str("sort_option", option.String()).Msg("sort option changed")
	return Diff(before, s.organizer.Sections()), nil
}

// AddPlant sows a new plant named name.
func (s *Service) AddPlant(ctx context.Context, name string) (Mutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p *garden.Plant
	update, err := s.apply(ctx, "add", func() (notify.Change, error) {
		p = s.plants.NewPlant(name)
		return notify.NewChange(notify.PlantAdded, p.UUID), nil
	})
	return s.mutation(p, update, err)
}

// CopyPlant sows a new plant with the name of the plant at path.
func (s *Service) CopyPlant(ctx context.Context, path IndexPath) (Mutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, err := s.organizer.Plant(path)
	if err != nil {
		return Mutation{}, err
	}
	var p *garden.Plant
	update, err := s.apply(ctx, "copy", func() (notify.Change, error) {
		p = s.plants.NewPlant(source.Name)
		return notify.NewChange(notify.PlantAdded, p.UUID), nil
	})
	return s.mutation(p, update, err)
}

// RenamePlant renames the plant at path. Renaming to the same name is a
// no-op with an empty update.
func (s *Service) RenamePlant(ctx context.Context, path IndexPath, name string) (Mutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.organizer.Plant(path)
	if err != nil {
		return Mutation{}, err
	}
	if p.Name == name {
		return Mutation{Plant: newPlantView(p), IndexPath: path, Update: Diff(nil, nil)}, nil
	}
	update, err := s.apply(ctx, "rename", func() (notify.Change, error) {
		p.Name = name
		return notify.NewChange(notify.PlantRenamed, p.UUID), nil
	})
	return s.mutation(p, update, err)
}

// RemovePlant deletes the plant at path.
func (s *Service) RemovePlant(ctx context.Context, path IndexPath) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.organizer.Plant(path)
	if err != nil {
		return Update{}, err
	}
	return s.apply(ctx, "remove", func() (notify.Change, error) {
		if err := s.plants.Remove(p); err != nil {
			return notify.Change{}, err
		}
		return notify.NewChange(notify.PlantRemoved, p.UUID), nil
	})
}

// Plant returns the plant detail at path.
func (s *Service) Plant(path IndexPath) (PlantDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.organizer.Plant(path)
	if err != nil {
		return PlantDetail{}, err
	}
	return s.detail(p, nil)
}

// PlantByID returns a plant, its position and its information view.
func (s *Service) PlantByID(id uuid.UUID) (PlantDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.plants.Find(id)
	if err != nil {
		return PlantDetail{}, err
	}
	return s.detail(p, nil)
}

// UpdatePlant edits the sow date and seed count of a plant.
func (s *Service) UpdatePlant(ctx context.Context, id uuid.UUID, changes PlantChanges) (Mutation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.plants.Find(id)
	if err != nil {
		return Mutation{}, err
	}
	if changes.SeedsSown != nil && *changes.SeedsSown < 0 {
		return Mutation{}, fmt.Errorf("%w: seeds sown %d", ErrInvalid, *changes.SeedsSown)
	}
	update, err := s.apply(ctx, "update", func() (notify.Change, error) {
		if changes.SowDate != nil {
			p.SowDate = *changes.SowDate
		}
		if changes.SeedsSown != nil {
			p.SeedsSown = *changes.SeedsSown
		}
		return notify.NewChange(notify.PlantUpdated, p.UUID), nil
	})
	return s.mutation(p, update, err)
}

// apply runs mutate, then saves, reorganizes and publishes. A failed save is
// returned but the in-memory change and the new organization stand.
func (s *Service) apply(ctx context.Context, op string, mutate func() (notify.Change, error)) (Update, error) {
	before := s.organizer.Sections()
	change, err := mutate()
	if err != nil {
		recordMutation(op, err)
		return Update{}, err
	}

	saveErr := s.plants.SavePlants(ctx)
	s.organize()
	update := Diff(before, s.organizer.Sections())
	recordMutation(op, saveErr)
	s.publish(ctx, change)

	if saveErr != nil {
		return update, fmt.Errorf("%s: %w", op, saveErr)
	}
	s.log.Debug().Str("op", op).Str("plant", change.PlantID.String()).Msg("library updated")
	return update, nil
}

func (s *Service) mutation(p *garden.Plant, update Update, err error) (Mutation, error) {
	if p == nil {
		return Mutation{Update: update}, err
	}
	path, pathErr := s.organizer.IndexPath(p)
	if err == nil {
		err = pathErr
	}
	return Mutation{Plant: newPlantView(p), IndexPath: path, Update: update}, err
}

func (s *Service) detail(p *garden.Plant, view *garden.InformationView) (PlantDetail, error) {
	path, err := s.organizer.IndexPath(p)
	if err != nil {
		return PlantDetail{}, err
	}
	if view == nil {
		view = garden.NewInformationView(nil)
		view.ConfigureFor(p)
	}
	return PlantDetail{Plant: newPlantView(p), IndexPath: path, Information: view}, nil
}

func (s *Service) organize() {
	start := time.Now()
	s.organizer.Organize()
	organizeDuration.Observe(time.Since(start).Seconds())
	plantsGauge.Set(float64(s.plants.Count()))
}

func (s *Service) publish(ctx context.Context, change notify.Change) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, notify.TopicLibrary, change); err != nil {
		s.log.Warn().Err(err).Str("kind", string(change.Kind)).Msg("publish change")
	}
}
