package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/agroplan/agroplan/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = ".agroplan"
	envPrefix  = "AGROPLAN"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. It's okay if it doesn't exist.
	_ = godotenv.Load()

	// Environment variable handling must be set up BEFORE reading the config
	// file so that env vars can influence config loading.
	viper.SetEnvPrefix(envPrefix) // e.g., AGROPLAN_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config") // Value from --config flag

	// Determine project root directory for config search path priority.
	potentialProjectConfigDir := viper.GetString("project.rootDir")
	if potentialProjectConfigDir == "" {
		potentialProjectConfigDir = ".agroplan"
	}

	if cfgFileFlag != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if _, err := os.Stat(potentialProjectConfigDir); !os.IsNotExist(err) {
			// Project-specific config directory exists. Prioritize it.
			viper.AddConfigPath(potentialProjectConfigDir)
			viper.SetConfigName(configName)
		} else {
			// Fallback to home and current directory for global/legacy config.
			home, err := os.UserHomeDir()
			cobra.CheckErr(err)
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigName(configName)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	// Set default values
	viper.SetDefault("project.rootDir", ".agroplan")
	viper.SetDefault("project.cropsDir", "crops")
	viper.SetDefault("project.templatesDir", "templates")
	viper.SetDefault("data.file", "crops.json")
	viper.SetDefault("data.format", "json")

	// Defaults for LLMConfig
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.modelName", "gemini-3-flash-preview")
	viper.SetDefault("llm.apiKey", "")
	viper.SetDefault("llm.maxOutputTokens", 8192)
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.requestTimeoutSeconds", 60)

	// Defaults for WeatherConfig: Bucharest until the user configures a field.
	viper.SetDefault("weather.latitude", 44.43)
	viper.SetDefault("weather.longitude", 26.10)
	viper.SetDefault("weather.requestTimeoutSeconds", 15)

	// After all sources are configured, unmarshal into GlobalAppConfig
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// The GEMINI_API_KEY env var is the conventional home for the key and
	// wins over an empty config value.
	if GlobalAppConfig.LLM.APIKey == "" {
		GlobalAppConfig.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	// Tie provider debug logging to --verbose unless set explicitly.
	if viper.GetBool("verbose") {
		GlobalAppConfig.LLM.Debug = true
	}

	// Ensure critical project paths are set, falling back to Viper's defaults
	// if empty after unmarshal. Handles config files missing nested keys.
	if GlobalAppConfig.Project.RootDir == "" {
		GlobalAppConfig.Project.RootDir = viper.GetString("project.rootDir")
	}
	if GlobalAppConfig.Project.CropsDir == "" {
		GlobalAppConfig.Project.CropsDir = viper.GetString("project.cropsDir")
	}
	if GlobalAppConfig.Project.TemplatesDir == "" {
		GlobalAppConfig.Project.TemplatesDir = viper.GetString("project.templatesDir")
	}

	// Validate the populated configuration
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
