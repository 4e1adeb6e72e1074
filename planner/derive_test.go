package planner

import (
	"testing"
	"time"

	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/types"
)

func TestDerive_DueDates(t *testing.T) {
	planted := models.NewDate(2025, time.April, 1)

	templates := []types.TaskTemplate{
		{Title: "Udare", DaysAfterPlanting: 3, Category: "irigare"},
		{Title: "Recoltare", DaysAfterPlanting: 90, Category: "recoltare"},
	}

	tasks := Derive(planted, templates)
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}

	if got, want := tasks[0].DueDate.String(), "2025-04-04"; got != want {
		t.Errorf("Due date mismatch: got %q, want %q", got, want)
	}
	if got, want := tasks[1].DueDate.String(), "2025-06-30"; got != want {
		t.Errorf("Due date mismatch: got %q, want %q", got, want)
	}
	for i, task := range tasks {
		if task.Completed {
			t.Errorf("Task %d should start uncompleted", i)
		}
	}
}

func TestDerive_OffsetEdges(t *testing.T) {
	planted := models.NewDate(2025, time.March, 15)

	cases := []struct {
		name   string
		offset int
		want   string
	}{
		{"negative offset lands before planting", -7, "2025-03-08"},
		{"zero offset is the planting date", 0, "2025-03-15"},
		{"offset crosses month boundary", 20, "2025-04-04"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tasks := Derive(planted, []types.TaskTemplate{{Title: "Pregătire sol", DaysAfterPlanting: tc.offset, Category: "tratamente"}})
			if len(tasks) != 1 {
				t.Fatalf("Expected 1 task, got %d", len(tasks))
			}
			if got := tasks[0].DueDate.String(); got != tc.want {
				t.Errorf("Due date mismatch: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDerive_PreservesOrderAndCount(t *testing.T) {
	planted := models.NewDate(2025, time.May, 10)

	templates := []types.TaskTemplate{
		{Title: "Pregătire pat germinativ", DaysAfterPlanting: -3, Category: "tratamente"},
		{Title: "Udare", DaysAfterPlanting: 2, Category: "irigare", Notes: "Dimineața devreme"},
		{Title: "Fertilizare", DaysAfterPlanting: 14, Category: "fertilizare"},
		{Title: "Recoltare", DaysAfterPlanting: 75, Category: "recoltare"},
	}

	tasks := Derive(planted, templates)
	if len(tasks) != len(templates) {
		t.Fatalf("Expected %d tasks, got %d", len(templates), len(tasks))
	}

	seen := make(map[string]bool)
	for i, task := range tasks {
		if task.Title != templates[i].Title {
			t.Errorf("Task %d title mismatch: got %q, want %q", i, task.Title, templates[i].Title)
		}
		if task.Notes != templates[i].Notes {
			t.Errorf("Task %d notes mismatch: got %q, want %q", i, task.Notes, templates[i].Notes)
		}
		if task.ID == "" {
			t.Errorf("Task %d should have an ID", i)
		}
		if seen[task.ID] {
			t.Errorf("Task %d reuses ID %q", i, task.ID)
		}
		seen[task.ID] = true
	}
}

func TestDerive_EmptyTemplates(t *testing.T) {
	tasks := Derive(models.Today(), nil)
	if len(tasks) != 0 {
		t.Errorf("Expected empty task list, got %d tasks", len(tasks))
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		raw  string
		want models.TaskCategory
	}{
		{"irigare", models.CategoryIrrigation},
		{"Irrigation", models.CategoryIrrigation},
		{"fertilizare", models.CategoryFertilization},
		{" Tratamente ", models.CategoryTreatment},
		{"recoltare", models.CategoryHarvest},
		{"harvesting", models.CategoryHarvest},
		{"plivit buruieni", models.CategoryTreatment}, // unknown falls back
		{"", models.CategoryTreatment},
	}

	for _, tc := range cases {
		if got := NormalizeCategory(tc.raw); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
