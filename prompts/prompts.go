package prompts

import (
	"fmt"
	"strings"

	"github.com/agroplan/agroplan/types"
)

const (
	// SystemRules is the system instruction applied to every advisory
	// conversation. Keeps the assistant scoped to agronomy and responding
	// in Romanian.
	SystemRules = `Esti un consilier agricol pentru fermieri si gradinari din Romania.
Raspunde DOAR la intrebari despre agricultura, culturi, sol, irigare, fertilizare, tratamente si recoltare.
Daca intrebarea nu are legatura cu agricultura, spune politicos ca poti ajuta doar cu subiecte agricole.
Raspunde in limba romana, scurt si practic. Foloseste propozitii simple, fara jargon.
Cand dai recomandari, tine cont de clima temperat-continentala a Romaniei si de sezonul curent.`

	// DiagnosePromptText accompanies an uploaded plant photo.
	DiagnosePromptText = `Identifica planta din imagine si evalueaza starea ei de sanatate.
Daca observi boli, daunatori sau carente, numeste-le si propune un tratament simplu.
Raspunde in limba romana, in cel mult cateva propozitii.`
)

// SchedulePrompt builds the task generation prompt for a crop. Soil details
// are folded into a single phrase so the model sees one coherent context.
func SchedulePrompt(req types.ScheduleRequest) string {
	soilInfo := req.SoilType
	var extras []string
	if req.SoilPH != nil {
		extras = append(extras, fmt.Sprintf("pH %.1f", *req.SoilPH))
	}
	if strings.TrimSpace(req.SoilTexture) != "" {
		extras = append(extras, "textura "+req.SoilTexture)
	}
	if len(extras) > 0 {
		soilInfo = fmt.Sprintf("%s (%s)", soilInfo, strings.Join(extras, ", "))
	}

	variety := strings.TrimSpace(req.Variety)
	crop := req.CropName
	if variety != "" {
		crop = crop + " " + variety
	}

	return fmt.Sprintf("Plan de sarcini pentru %s in sol %s din data %s. Note scurte si simple.",
		crop, soilInfo, req.PlantedDate)
}

// RecommendPrompt builds the crop recommendation prompt for a location,
// soil type, and month.
func RecommendPrompt(location, soil, month string) string {
	return fmt.Sprintf("Ce culturi recomanzi pentru %s, sol %s, in luna %s? Enumera 3-5 culturi potrivite si cate un sfat de ingrijire pentru fiecare.",
		location, soil, month)
}
