package library

import "germination_tracker/garden"

// Update is the batch change between two snapshots, in the order a table view
// applies it: deletions address the old snapshot, insertions the new one.
// Rows of a deleted or inserted section are implied and not listed.
type Update struct {
	DeletedSections  []int       `json:"deletedSections"`
	InsertedSections []int       `json:"insertedSections"`
	DeletedRows      []IndexPath `json:"deletedRows"`
	InsertedRows     []IndexPath `json:"insertedRows"`
}

func (u Update) Empty() bool {
	return len(u.DeletedSections) == 0 && len(u.InsertedSections) == 0 &&
		len(u.DeletedRows) == 0 && len(u.InsertedRows) == 0
}

// Diff compares two snapshots. Sections match by name, plants by identity. A
// plant that changed section, or whose order relative to the plants it shares
// a section with in both snapshots changed, is reported as deleted and
// inserted.
func Diff(before, after []Section) Update {
	u := Update{
		DeletedSections:  []int{},
		InsertedSections: []int{},
		DeletedRows:      []IndexPath{},
		InsertedRows:     []IndexPath{},
	}

	beforeSections := sectionIndex(before)
	afterSections := sectionIndex(after)
	beforeHome := homeSections(before)
	afterHome := homeSections(after)

	for s, section := range before {
		if _, ok := afterSections[section.Name]; !ok {
			u.DeletedSections = append(u.DeletedSections, s)
		}
	}
	for s, section := range after {
		if _, ok := beforeSections[section.Name]; !ok {
			u.InsertedSections = append(u.InsertedSections, s)
		}
	}

	for s, section := range before {
		a, ok := afterSections[section.Name]
		if !ok {
			continue
		}
		oldRank, newRank := sharedRanks(section, after[a], beforeHome, afterHome)
		for r, p := range section.Rows {
			rank, shared := oldRank[p]
			if !shared || rank != newRank[p] {
				u.DeletedRows = append(u.DeletedRows, IndexPath{Section: s, Row: r})
			}
		}
	}
	for s, section := range after {
		b, ok := beforeSections[section.Name]
		if !ok {
			continue
		}
		oldRank, newRank := sharedRanks(before[b], section, beforeHome, afterHome)
		for r, p := range section.Rows {
			rank, shared := newRank[p]
			if !shared || rank != oldRank[p] {
				u.InsertedRows = append(u.InsertedRows, IndexPath{Section: s, Row: r})
			}
		}
	}
	return u
}

func sectionIndex(sections []Section) map[string]int {
	idx := make(map[string]int, len(sections))
	for i, s := range sections {
		idx[s.Name] = i
	}
	return idx
}

func homeSections(sections []Section) map[*garden.Plant]string {
	home := make(map[*garden.Plant]string)
	for _, s := range sections {
		for _, p := range s.Rows {
			home[p] = s.Name
		}
	}
	return home
}

// sharedRanks numbers the plants that sit in this section in both snapshots,
// once in old order and once in new order.
func sharedRanks(oldSection, newSection Section, beforeHome, afterHome map[*garden.Plant]string) (map[*garden.Plant]int, map[*garden.Plant]int) {
	oldRank := make(map[*garden.Plant]int)
	for _, p := range oldSection.Rows {
		if afterHome[p] == oldSection.Name {
			oldRank[p] = len(oldRank)
		}
	}
	newRank := make(map[*garden.Plant]int)
	for _, p := range newSection.Rows {
		if beforeHome[p] == newSection.Name {
			newRank[p] = len(newRank)
		}
	}
	return oldRank, newRank
}
