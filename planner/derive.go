// Package planner turns advisory schedule templates into concrete dated tasks.
package planner

import (
	"strings"

	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/types"
	"github.com/google/uuid"
)

// categoryAliases maps the free-string categories the advisory model emits
// onto the closed task taxonomy. Covers both the Romanian serialized names
// and the English spellings the model occasionally falls back to.
var categoryAliases = map[string]models.TaskCategory{
	"irigare":       models.CategoryIrrigation,
	"irrigation":    models.CategoryIrrigation,
	"fertilizare":   models.CategoryFertilization,
	"fertilization": models.CategoryFertilization,
	"fertilizing":   models.CategoryFertilization,
	"tratamente":    models.CategoryTreatment,
	"tratament":     models.CategoryTreatment,
	"treatment":     models.CategoryTreatment,
	"treatments":    models.CategoryTreatment,
	"recoltare":     models.CategoryHarvest,
	"harvest":       models.CategoryHarvest,
	"harvesting":    models.CategoryHarvest,
}

// NormalizeCategory coerces a model-supplied category string to a member of
// the task taxonomy. Unrecognized categories become CategoryTreatment so that
// nothing downstream ever sees a value outside the enumeration.
func NormalizeCategory(raw string) models.TaskCategory {
	if cat, ok := categoryAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return cat
	}
	return models.CategoryTreatment
}

// Derive produces concrete dated tasks from an ordered template sequence.
// Each task's due date is the planting date plus the template's day offset;
// offsets may be negative, zero, or positive. Template order and count are
// preserved, every task starts uncompleted, and each gets a fresh identifier.
// An empty template sequence yields an empty task list.
func Derive(planted models.Date, templates []types.TaskTemplate) []models.PlannedTask {
	tasks := make([]models.PlannedTask, 0, len(templates))
	for _, tpl := range templates {
		tasks = append(tasks, models.PlannedTask{
			ID:        uuid.NewString(),
			Title:     tpl.Title,
			DueDate:   planted.AddDays(tpl.DaysAfterPlanting),
			Category:  NormalizeCategory(tpl.Category),
			Completed: false,
			Notes:     tpl.Notes,
		})
	}
	return tasks
}
