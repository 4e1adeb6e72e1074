package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"omitempty"`
	Weather WeatherConfig `mapstructure:"weather" validate:"omitempty"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir      string `mapstructure:"rootDir" validate:"required"`
	CropsDir     string `mapstructure:"cropsDir" validate:"required"`
	TemplatesDir string `mapstructure:"templatesDir" validate:"required"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// LLMConfig holds configuration for the advisory model integration
type LLMConfig struct {
	Provider        string  `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	ModelName       string  `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey          string  `mapstructure:"apiKey" validate:"omitempty,min=1"`
	BaseURL         string  `mapstructure:"baseUrl" validate:"omitempty,url"`
	MaxOutputTokens int     `mapstructure:"maxOutputTokens" validate:"omitempty,min=1"`
	Temperature     float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	// RequestTimeoutSeconds controls the HTTP client timeout for advisory calls
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// Debug enables extra request/response logging within the provider (generally tied to --verbose)
	Debug bool `mapstructure:"debug"`
}

// WeatherConfig holds the forecast location. When no coordinates are
// configured and none are passed by flag, the Bucharest fallback is used.
type WeatherConfig struct {
	Latitude              float64 `mapstructure:"latitude" validate:"omitempty,latitude"`
	Longitude             float64 `mapstructure:"longitude" validate:"omitempty,longitude"`
	RequestTimeoutSeconds int     `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=120"`
}
