package garden

import (
	"fmt"
	"time"
)

// InformationDelegate receives every interaction on an InformationView. One
// method per event; the view never decides what an interaction means.
type InformationDelegate interface {
	DateSownLabelTapped(label string)
	SeedsSownLabelTapped(label string)
	GerminationCounterLabelTapped(label string)
	DeathCounterLabelTapped(label string)
	GerminationStepperChanged(value int)
	DeathStepperChanged(value int)
}

type InteractionEvent string

const (
	EventDateSownTapped           InteractionEvent = "dateSownTapped"
	EventSeedsSownTapped          InteractionEvent = "seedsSownTapped"
	EventGerminationCounterTapped InteractionEvent = "germinationCounterTapped"
	EventDeathCounterTapped       InteractionEvent = "deathCounterTapped"
	EventGerminationStepper       InteractionEvent = "germinationStepper"
	EventDeathStepper             InteractionEvent = "deathStepper"
)

// Stepper mirrors a counter control: integer value, floor of Minimum.
type Stepper struct {
	Value   int `json:"value"`
	Minimum int `json:"minimum"`
	Step    int `json:"step"`
}

func (s *Stepper) set(v int) int {
	if v < s.Minimum {
		v = s.Minimum
	}
	s.Value = v
	return v
}

// InformationView is the per-plant counter panel.
type InformationView struct {
	DateSownLabel      string  `json:"dateSownLabel"`
	SeedsSownLabel     string  `json:"seedsSownLabel"`
	GerminationLabel   string  `json:"germinationLabel"`
	DeathLabel         string  `json:"deathLabel"`
	GerminationStepper Stepper `json:"germinationStepper"`
	DeathStepper       Stepper `json:"deathStepper"`

	delegate InformationDelegate
}

func NewInformationView(delegate InformationDelegate) *InformationView {
	return &InformationView{
		GerminationStepper: Stepper{Minimum: 0, Step: 1},
		DeathStepper:       Stepper{Minimum: 0, Step: 1},
		delegate:           delegate,
	}
}

// ConfigureFor fills every label and stepper from p.
func (v *InformationView) ConfigureFor(p *Plant) {
	v.SetDateSown(p.SowDate)
	v.SetSeedsSown(p.SeedsSown)
	v.SetGerminations(p.GerminationCount())
	v.SetDeaths(p.DeathCount())
}

func (v *InformationView) SetDateSown(t time.Time) {
	v.DateSownLabel = "Date sown: " + t.Format("January 2, 2006")
}

func (v *InformationView) SetSeedsSown(n int) {
	v.SeedsSownLabel = fmt.Sprintf("Num. seeds sown: %d", n)
}

func (v *InformationView) SetGerminations(n int) {
	v.GerminationLabel = fmt.Sprintf("Num. of germinations: %d", n)
	v.GerminationStepper.set(n)
}

func (v *InformationView) SetDeaths(n int) {
	v.DeathLabel = fmt.Sprintf("Num. of deaths: %d", n)
	v.DeathStepper.set(n)
}

func (v *InformationView) TapDateSown() {
	if v.delegate == nil {
		return
	}
	v.delegate.DateSownLabelTapped(v.DateSownLabel)
}

func (v *InformationView) TapSeedsSown() {
	if v.delegate == nil {
		return
	}
	v.delegate.SeedsSownLabelTapped(v.SeedsSownLabel)
}

func (v *InformationView) TapGerminationCounter() {
	if v.delegate == nil {
		return
	}
	v.delegate.GerminationCounterLabelTapped(v.GerminationLabel)
}

func (v *InformationView) TapDeathCounter() {
	if v.delegate == nil {
		return
	}
	v.delegate.DeathCounterLabelTapped(v.DeathLabel)
}

// StepGermination moves the germination stepper and reports the clamped
// value to the delegate.
func (v *InformationView) StepGermination(value int) {
	value = v.GerminationStepper.set(value)
	if v.delegate == nil {
		return
	}
	v.delegate.GerminationStepperChanged(value)
}

func (v *InformationView) StepDeath(value int) {
	value = v.DeathStepper.set(value)
	if v.delegate == nil {
		return
	}
	v.delegate.DeathStepperChanged(value)
}

// Dispatch routes a named event to the matching interaction. value is only
// read by stepper events.
func (v *InformationView) Dispatch(event InteractionEvent, value int) error {
	switch event {
	case EventDateSownTapped:
		v.TapDateSown()
	case EventSeedsSownTapped:
		v.TapSeedsSown()
	case EventGerminationCounterTapped:
		v.TapGerminationCounter()
	case EventDeathCounterTapped:
		v.TapDeathCounter()
	case EventGerminationStepper:
		v.StepGermination(value)
	case EventDeathStepper:
		v.StepDeath(value)
	default:
		return fmt.Errorf("unknown interaction event %q", event)
	}
	return nil
}
