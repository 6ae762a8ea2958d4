package garden

import (
	"testing"
	"time"
)

func TestPlant_SetGerminationCount(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	p := NewPlant("Tomato", day)

	p.SetGerminationCount(3, day.Add(time.Hour))
	if p.GerminationCount() != 3 {
		t.Fatalf("Expected 3 germinations, got %d", p.GerminationCount())
	}

	later := day.Add(2 * time.Hour)
	p.SetGerminationCount(4, later)
	if last, _ := p.LastGermination(); !last.Equal(later) {
		t.Errorf("Expected last germination %v, got %v", later, last)
	}

	p.SetGerminationCount(2, later)
	if p.GerminationCount() != 2 {
		t.Errorf("Expected 2 germinations after lowering, got %d", p.GerminationCount())
	}
	if last, _ := p.LastGermination(); !last.Equal(day.Add(time.Hour)) {
		t.Errorf("Lowering should drop the most recent events, last is %v", last)
	}

	p.SetGerminationCount(-1, later)
	if p.GerminationCount() != 0 {
		t.Errorf("Negative count should clamp to 0, got %d", p.GerminationCount())
	}
}

func TestPlant_Stage(t *testing.T) {
	now := time.Now()
	p := NewPlant("Pepper", now)
	if p.Stage() != StageSeed {
		t.Errorf("Expected %s, got %s", StageSeed, p.Stage())
	}

	p.SetGerminationCount(2, now)
	if p.Stage() != StageGermination {
		t.Errorf("Expected %s, got %s", StageGermination, p.Stage())
	}

	p.SetDeathCount(2, now)
	if p.Stage() != StageLost {
		t.Errorf("Expected %s, got %s", StageLost, p.Stage())
	}
	if p.Alive() != 0 {
		t.Errorf("Expected 0 alive, got %d", p.Alive())
	}
}

func TestPlant_LastDeathEmpty(t *testing.T) {
	p := NewPlant("Leek", time.Now())
	if _, ok := p.LastDeath(); ok {
		t.Error("Plant without deaths should report no last death")
	}
}
