package ui

import (
	"fmt"
	"strings"

	"github.com/agroplan/agroplan/models"
	"github.com/agroplan/agroplan/weather"
)

// CropTable renders the crop list with task progress per crop.
func CropTable(crops []models.Crop) string {
	t := Table{
		Headers:  []string{"ID", "Cultura", "Soi", "Plantat", "Sol", "Stare", "Sarcini"},
		MaxWidth: 24,
	}
	for _, c := range crops {
		done := 0
		for _, task := range c.Tasks {
			if task.Completed {
				done++
			}
		}
		t.Rows = append(t.Rows, []string{
			TruncateID(c.ID),
			c.Name,
			c.Variety,
			c.PlantedDate.String(),
			string(c.SoilType),
			string(c.Status),
			fmt.Sprintf("%d/%d", done, len(c.Tasks)),
		})
	}
	return t.Render()
}

// TaskList renders a crop's schedule in due date order as stored, one task
// per line with a completion marker.
func TaskList(tasks []models.PlannedTask) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("  (nicio sarcina planificata)") + "\n"
	}

	var sb strings.Builder
	for _, task := range tasks {
		marker := StyleSubtle.Render("[ ]")
		title := StyleText.Render(task.Title)
		if task.Completed {
			marker = StylePrefixDone.Render("[x]")
			title = StyleSubtle.Render(task.Title)
		}
		sb.WriteString(fmt.Sprintf("  %s %s  %s %s %s\n",
			marker,
			StyleSubtle.Render(TruncateID(task.ID)),
			StyleSubtle.Render(task.DueDate.String()),
			StyleEarth.Render(string(task.Category)),
			title,
		))
		if task.Notes != "" {
			sb.WriteString(StyleSubtle.Render("        "+task.Notes) + "\n")
		}
	}
	return sb.String()
}

// ForecastPanel renders current conditions plus the daily outlook, with a
// wind warning when spraying should be postponed.
func ForecastPanel(snap *weather.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s  %s, %.1f°C, vant %.1f km/h\n",
		StyleSectionTitle.Render("Acum"),
		weather.Describe(snap.Current.Code),
		snap.Current.Temperature,
		snap.Current.WindSpeed,
	))

	if snap.WindAlert() {
		sb.WriteString(StylePrefixWarn.Render("⚠ Vant puternic astazi: amana tratamentele prin stropire.") + "\n")
	}

	t := Table{Headers: []string{"Data", "Vreme", "Max", "Min", "Precip", "Vant"}}
	for _, day := range snap.Daily {
		t.Rows = append(t.Rows, []string{
			day.Date.String(),
			weather.Describe(day.Code),
			fmt.Sprintf("%.1f°C", day.TempMax),
			fmt.Sprintf("%.1f°C", day.TempMin),
			fmt.Sprintf("%.1f mm", day.Precipitation),
			fmt.Sprintf("%.1f km/h", day.WindMax),
		})
	}
	sb.WriteString(t.Render())

	return StyleWeatherBox.Render(sb.String())
}

// ChatTurn renders one advisory exchange line with a role prefix.
func ChatTurn(msg models.ChatMessage) string {
	if msg.Role == models.RoleUser {
		return StylePrefixUser.Render("tu> ") + StyleText.Render(msg.Content)
	}
	return StylePrefixModel.Render("agro> ") + StyleText.Render(msg.Content)
}

// SeasonCard renders one entry of the seasonal guide.
func SeasonCard(info models.SeasonInfo) string {
	var sb strings.Builder
	sb.WriteString(info.Icon + " " + StyleSectionTitle.Render(string(info.Name)) + "\n")
	sb.WriteString(StyleText.Render(info.Summary) + "\n")
	for _, activity := range info.KeyActivities {
		sb.WriteString(StyleSubtle.Render("  • "+activity) + "\n")
	}
	return sb.String()
}
