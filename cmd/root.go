package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talent-matcher"
)

type Config struct {
	Job    *JobConfig    `mapstructure:"job"`
	API    *APIConfig    `mapstructure:"api"`
	Report *ReportConfig `mapstructure:"report"`
}

type JobConfig struct {
	Title           string `mapstructure:"title"`
	Company         string `mapstructure:"company"`
	Department      string `mapstructure:"department"`
	Location        string `mapstructure:"location"`
	WorkMode        string `mapstructure:"work-mode"`
	Description     string `mapstructure:"description"`
	DescriptionFile string `mapstructure:"description-file"`
}

type APIConfig struct {
	Key          string `mapstructure:"key" json:"-"`
	KeyFile      string `mapstructure:"key-file"`
	URL          string `mapstructure:"url"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ReportConfig struct {
	OutputDir string `mapstructure:"output-dir"`
	Logo      string `mapstructure:"logo"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-matcher scores candidate CVs against a role and builds ranked evaluation reports",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("api.key", "DEEPSEEK_API_KEY"); err != nil {
		log.Fatalf("binding DEEPSEEK_API_KEY environment variable: %v", err)
	}

	if err := viper.BindEnv("api.key-file", "DEEPSEEK_API_KEY_FILE"); err != nil {
		log.Fatalf("binding DEEPSEEK_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the evaluate command.
	if evaluateCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless one was named explicitly;
	// flags and environment variables can carry the whole configuration.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{
		Job:    &JobConfig{},
		API:    &APIConfig{},
		Report: &ReportConfig{},
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}
