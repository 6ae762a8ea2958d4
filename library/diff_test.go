package library

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"germination_tracker/garden"
)

func organized(option SortOption, plants ...*garden.Plant) *Organizer {
	o := NewOrganizer(plantList(plants), option)
	o.Organize()
	return o
}

func TestDiff_Identical(t *testing.T) {
	rose, aster, mint := scenarioPlants()
	o := organized(ByPlantName, rose, aster, mint)

	u := Diff(o.Sections(), o.Sections())
	assert.True(t, u.Empty())
	assert.NotNil(t, u.DeletedRows)
}

func TestDiff_Insert(t *testing.T) {
	rose, aster, mint := scenarioPlants()
	before := organized(ByPlantName, rose, aster).Sections()
	after := organized(ByPlantName, rose, aster, mint).Sections()

	u := Diff(before, after)
	assert.Empty(t, u.DeletedRows)
	assert.Equal(t, []IndexPath{{Section: 0, Row: 1}}, u.InsertedRows)
	assert.Empty(t, u.InsertedSections)
}

func TestDiff_Remove(t *testing.T) {
	rose, aster, mint := scenarioPlants()
	before := organized(ByPlantName, rose, aster, mint).Sections()
	after := organized(ByPlantName, rose, mint).Sections()

	u := Diff(before, after)
	assert.Equal(t, []IndexPath{{Section: 0, Row: 0}}, u.DeletedRows)
	assert.Empty(t, u.InsertedRows)
}

func TestDiff_RenameMovesRow(t *testing.T) {
	rose, aster, mint := scenarioPlants()
	o := organized(ByPlantName, rose, aster, mint)
	before := o.Sections()

	// Aster, Mint, Rose -> Mint, Rose, Zinnia
	aster.Name = "Zinnia"
	o.Organize()

	u := Diff(before, o.Sections())
	assert.Contains(t, u.DeletedRows, IndexPath{Section: 0, Row: 0})
	assert.Contains(t, u.InsertedRows, IndexPath{Section: 0, Row: 2})
	assert.Len(t, u.DeletedRows, len(u.InsertedRows))
}

func TestDiff_RenameWithoutReorder(t *testing.T) {
	rose, aster, mint := scenarioPlants()
	o := organized(ByPlantName, rose, aster, mint)
	before := o.Sections()

	mint.Name = "Nettle"
	o.Organize()

	assert.True(t, Diff(before, o.Sections()).Empty())
}

func TestDiff_MoveBetweenSections(t *testing.T) {
	rose, aster, mint := scenarioPlants()
	o := organized(ByActive, rose, aster, mint)
	before := o.Sections()

	// Active: Aster, Mint, Rose -> Active: Aster, Rose / Archived: Mint
	mint.SetDeathCount(1, day0.AddDate(0, 0, 9))
	o.Organize()

	u := Diff(before, o.Sections())
	assert.Empty(t, u.DeletedSections)
	assert.Empty(t, u.InsertedSections)
	assert.Equal(t, []IndexPath{{Section: 0, Row: 1}}, u.DeletedRows)
	assert.Equal(t, []IndexPath{{Section: 1, Row: 0}}, u.InsertedRows)
}

func TestDiff_SortOptionChangeReplacesSections(t *testing.T) {
	rose, aster, mint := scenarioPlants()
	o := organized(ByPlantName, rose, aster, mint)
	before := o.Sections()

	o.SetSortOption(ByActive)
	o.Organize()

	u := Diff(before, o.Sections())
	assert.Equal(t, []int{0}, u.DeletedSections)
	assert.Equal(t, []int{0, 1}, u.InsertedSections)
	assert.Empty(t, u.DeletedRows)
	assert.Empty(t, u.InsertedRows)
}

func TestDiff_FromNothing(t *testing.T) {
	rose, _, _ := scenarioPlants()
	u := Diff(nil, organized(ByPlantName, rose).Sections())
	assert.Equal(t, []int{0}, u.InsertedSections)
	assert.Empty(t, u.InsertedRows)
}
