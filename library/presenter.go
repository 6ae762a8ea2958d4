package library

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"germination_tracker/garden"
	"germination_tracker/notify"
)

type PromptKind string

const (
	PromptSowDate          PromptKind = "sowDate"
	PromptSeedsSown        PromptKind = "seedsSown"
	PromptGerminationDates PromptKind = "germinationDates"
	PromptDeathDates       PromptKind = "deathDates"
)

// Prompt asks the client to open an editor after a label tap.
type Prompt struct {
	Kind  PromptKind  `json:"kind"`
	Label string      `json:"label"`
	Dates []time.Time `json:"dates,omitempty"`
}

// Interaction is the outcome of one information view event.
type Interaction struct {
	Detail PlantDetail `json:"detail"`
	Prompt *Prompt     `json:"prompt,omitempty"`
	Update Update      `json:"update"`
}

// detailPresenter is the InformationDelegate for one plant. Taps become
// prompts; stepper changes move the plant's counters.
type detailPresenter struct {
	plant   *garden.Plant
	now     time.Time
	prompt  *Prompt
	changed bool
}

var _ garden.InformationDelegate = (*detailPresenter)(nil)

func (d *detailPresenter) DateSownLabelTapped(label string) {
	d.prompt = &Prompt{Kind: PromptSowDate, Label: label, Dates: []time.Time{d.plant.SowDate}}
}

func (d *detailPresenter) SeedsSownLabelTapped(label string) {
	d.prompt = &Prompt{Kind: PromptSeedsSown, Label: label}
}

func (d *detailPresenter) GerminationCounterLabelTapped(label string) {
	d.prompt = &Prompt{Kind: PromptGerminationDates, Label: label, Dates: slices.Clone(d.plant.Germinations)}
}

func (d *detailPresenter) DeathCounterLabelTapped(label string) {
	d.prompt = &Prompt{Kind: PromptDeathDates, Label: label, Dates: slices.Clone(d.plant.Deaths)}
}

func (d *detailPresenter) GerminationStepperChanged(value int) {
	if value == d.plant.GerminationCount() {
		return
	}
	d.plant.SetGerminationCount(value, d.now)
	d.changed = true
}

func (d *detailPresenter) DeathStepperChanged(value int) {
	if value == d.plant.DeathCount() {
		return
	}
	d.plant.SetDeathCount(value, d.now)
	d.changed = true
}

// Interact dispatches one information view event for the plant id. Counter
// changes are saved and reorganized like any other mutation.
func (s *Service) Interact(ctx context.Context, id uuid.UUID, event garden.InteractionEvent, value int) (Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.plants.Find(id)
	if err != nil {
		return Interaction{}, err
	}

	presenter := &detailPresenter{plant: p, now: s.plants.Now()}
	view := garden.NewInformationView(presenter)
	view.ConfigureFor(p)

	// the organizer still holds the pre-event sections until apply reorganizes
	if err := view.Dispatch(event, value); err != nil {
		return Interaction{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	update := Diff(nil, nil)
	if presenter.changed {
		update, err = s.apply(ctx, "count", func() (notify.Change, error) {
			return notify.NewChange(notify.PlantUpdated, p.UUID), nil
		})
		if err != nil {
			return Interaction{Update: update}, err
		}
		view.ConfigureFor(p)
	}

	detail, err := s.detail(p, view)
	if err != nil {
		return Interaction{}, err
	}
	return Interaction{Detail: detail, Prompt: presenter.prompt, Update: update}, nil
}
