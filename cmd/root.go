package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "trs-engine"
)

type Config struct {
	Data       *DataConfig       `mapstructure:"data"`
	Team       *TeamConfig       `mapstructure:"team"`
	Thresholds *ThresholdsConfig `mapstructure:"thresholds"`
	Workday    *WorkdayConfig    `mapstructure:"workday"`
	Penalties  *PenaltiesConfig  `mapstructure:"penalties"`

	Concurrency int    `mapstructure:"concurrency"`
	ReportsDir  string `mapstructure:"reports-dir"`
}

type DataConfig struct {
	Profiles   string `mapstructure:"profiles"`
	Vacancies  string `mapstructure:"vacancies"`
	Recruiters string `mapstructure:"recruiters"`
}

type TeamConfig struct {
	Zones []string `mapstructure:"zones"`
}

type ThresholdsConfig struct {
	Timezone       float64 `mapstructure:"timezone"`
	DesiredEmotion string  `mapstructure:"desired-emotion"`
	MaxIssues      int     `mapstructure:"max-issues"`
	MinMatchScore  float64 `mapstructure:"min-match-score"`
}

type WorkdayConfig struct {
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
}

type PenaltiesConfig struct {
	Modality    float64 `mapstructure:"modality"`
	Zone        float64 `mapstructure:"zone"`
	HighUrgency float64 `mapstructure:"high-urgency"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "trs-engine scores candidates against vacancies, assigns recruiters and proposes meeting times",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Local .env files may carry data paths in development setups.
	_ = godotenv.Load()

	if err := viper.BindEnv("reports-dir", "TRS_REPORTS_DIR"); err != nil {
		log.Fatalf("binding TRS_REPORTS_DIR environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is trs-engine.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
