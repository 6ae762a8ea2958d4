package garden

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDelegate struct {
	calls []string
	value int
	label string
}

func (d *recordingDelegate) DateSownLabelTapped(label string) {
	d.calls = append(d.calls, "dateSown")
	d.label = label
}

func (d *recordingDelegate) SeedsSownLabelTapped(label string) {
	d.calls = append(d.calls, "seedsSown")
	d.label = label
}

func (d *recordingDelegate) GerminationCounterLabelTapped(label string) {
	d.calls = append(d.calls, "germinationLabel")
	d.label = label
}

func (d *recordingDelegate) DeathCounterLabelTapped(label string) {
	d.calls = append(d.calls, "deathLabel")
	d.label = label
}

func (d *recordingDelegate) GerminationStepperChanged(value int) {
	d.calls = append(d.calls, "germinationStepper")
	d.value = value
}

func (d *recordingDelegate) DeathStepperChanged(value int) {
	d.calls = append(d.calls, "deathStepper")
	d.value = value
}

func TestInformationView_ConfigureFor(t *testing.T) {
	p := NewPlant("Rose", time.Date(2019, 9, 21, 10, 0, 0, 0, time.UTC))
	p.SeedsSown = 10
	p.SetGerminationCount(4, time.Now())
	p.SetDeathCount(1, time.Now())

	v := NewInformationView(nil)
	v.ConfigureFor(p)

	assert.Equal(t, "Date sown: September 21, 2019", v.DateSownLabel)
	assert.Equal(t, "Num. seeds sown: 10", v.SeedsSownLabel)
	assert.Equal(t, "Num. of germinations: 4", v.GerminationLabel)
	assert.Equal(t, "Num. of deaths: 1", v.DeathLabel)
	assert.Equal(t, 4, v.GerminationStepper.Value)
	assert.Equal(t, 1, v.DeathStepper.Value)
	assert.Equal(t, 1, v.DeathStepper.Step)
}

func TestInformationView_DispatchReachesDelegate(t *testing.T) {
	d := &recordingDelegate{}
	v := NewInformationView(d)
	v.ConfigureFor(NewPlant("Mint", time.Now()))

	require.NoError(t, v.Dispatch(EventDateSownTapped, 0))
	assert.Equal(t, v.DateSownLabel, d.label)
	require.NoError(t, v.Dispatch(EventSeedsSownTapped, 0))
	require.NoError(t, v.Dispatch(EventGerminationCounterTapped, 0))
	require.NoError(t, v.Dispatch(EventDeathCounterTapped, 0))
	require.NoError(t, v.Dispatch(EventGerminationStepper, 3))
	assert.Equal(t, 3, d.value)
	require.NoError(t, v.Dispatch(EventDeathStepper, 1))
	assert.Equal(t, 1, d.value)

	assert.Equal(t, []string{
		"dateSown", "seedsSown", "germinationLabel", "deathLabel",
		"germinationStepper", "deathStepper",
	}, d.calls)
}

func TestInformationView_StepperClampsAtMinimum(t *testing.T) {
	d := &recordingDelegate{}
	v := NewInformationView(d)

	v.StepGermination(-4)
	assert.Equal(t, 0, d.value)
	assert.Equal(t, 0, v.GerminationStepper.Value)
}

func TestInformationView_NilDelegateIgnoresEvents(t *testing.T) {
	v := NewInformationView(nil)
	assert.NotPanics(t, func() {
		v.TapDateSown()
		v.StepDeath(2)
	})
	assert.Equal(t, 2, v.DeathStepper.Value)
}

func TestInformationView_UnknownEvent(t *testing.T) {
	v := NewInformationView(&recordingDelegate{})
	assert.Error(t, v.Dispatch("swipe", 0))
}
