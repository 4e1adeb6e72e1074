package models

// Season names one of the four agricultural seasons, in Romanian as displayed.
type Season string

const (
	SeasonSpring Season = "Primăvară"
	SeasonSummer Season = "Vară"
	SeasonAutumn Season = "Toamnă"
	SeasonWinter Season = "Iarnă"
)

// SeasonInfo is the seasonal guidance shown by the seasons view.
type SeasonInfo struct {
	Name          Season   `json:"name"`
	Icon          string   `json:"icon"`
	Summary       string   `json:"summary"`
	KeyActivities []string `json:"keyActivities"`
}

// SeasonsData holds the built-in seasonal agronomy guide.
var SeasonsData = []SeasonInfo{
	{
		Name:          SeasonSpring,
		Icon:          "🌱",
		Summary:       "Sezonul renașterii. Momentul ideal pentru semănatul legumelor timpurii și pregătirea intensă a solului.",
		KeyActivities: []string{"Pregătirea patului germinativ", "Semănat mazăre și spanac", "Plantare pomi fructiferi", "Fertilizare inițială"},
	},
	{
		Name:          SeasonSummer,
		Icon:          "☀️",
		Summary:       "Perioada de creștere maximă și întreținere. Irigarea corectă este vitală pentru supraviețuirea culturilor.",
		KeyActivities: []string{"Irigare controlată", "Combaterea dăunătorilor", "Prășit", "Recoltarea cerealelor de toamnă"},
	},
	{
		Name:          SeasonAutumn,
		Icon:          "🍂",
		Summary:       "Sezonul recoltei și al pregătirii pentru iarnă. Se adună roadele și se însămânțează culturile de toamnă.",
		KeyActivities: []string{"Recoltare fructe și legume", "Arături de toamnă", "Semănat grâu și orz", "Depozitarea recoltei"},
	},
	{
		Name:          SeasonWinter,
		Icon:          "❄️",
		Summary:       "Timpul pentru planificare și mentenanță. Solul se odihnește, iar utilajele sunt revizuite.",
		KeyActivities: []string{"Verificarea depozitelor", "Mentenanță utilaje", "Planificarea rotației culturilor", "Achiziție semințe"},
	},
}
