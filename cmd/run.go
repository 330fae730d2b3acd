package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/saori-ai/trs-engine/internal/filtering"
	"github.com/saori-ai/trs-engine/internal/logger"
	"github.com/saori-ai/trs-engine/internal/pipeline"
	"github.com/saori-ai/trs-engine/internal/recruitment"
	"github.com/saori-ai/trs-engine/internal/report"
	"github.com/saori-ai/trs-engine/internal/tz"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes               = "Yes"
	PromptNo                = "No"
	PromptRejectedBreakdown = "Show rejected breakdown"
	PromptRecordsToFile     = "Dump records to file"
	defaultReportsDir       = "reports"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Write reports?",
	Items: []string{PromptYes, PromptNo, PromptRejectedBreakdown, PromptRecordsToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the trs-engine candidate pipeline",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before writing reports")
	runCmd.Flags().StringP("reports-dir", "o", "", "directory for generated reports. Default is ./reports.")

	viper.BindPFlag("reports-dir", runCmd.Flags().Lookup("reports-dir"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the trs-engine", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Data == nil {
		logger.Fatal("data paths are required under the data section to load profiles, vacancies and recruiters")
	}

	candidates, vacancies, recruiters := loadData(config, logger)

	engine := pipeline.New(pipelineConfig(config), tz.NewService(nil, logger), logger)

	result, err := engine.Run(ctx, candidates, vacancies, recruiters)
	if err != nil {
		logger.Fatal("running the pipeline", zap.Error(err))
	}

	report.PrintSummary(os.Stdout, result)

	generator := report.NewGenerator(logger)
	reportsDir := viper.GetString("reports-dir")
	if reportsDir == "" {
		reportsDir = config.ReportsDir
	}
	if reportsDir == "" {
		reportsDir = defaultReportsDir
	}

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, generator, logger, reportsDir, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if cmd.Flag("auto-approve").Value.String() == "true" {
			return
		}
	}
}

func handleAction(action string, generator *report.Generator, logger *zap.Logger, reportsDir string, result *pipeline.Result) error {
	switch action {
	case PromptYes:
		if err := generator.WriteAll(reportsDir, result); err != nil {
			return fmt.Errorf("write reports: %w", err)
		}
		logger.Info("reports written", zap.String("dir", reportsDir))
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptRejectedBreakdown:
		for _, bucket := range filtering.Buckets() {
			logger.Info("rejected bucket",
				zap.String("bucket", string(bucket)),
				zap.Int("count", len(result.Rejected[bucket])),
			)
		}
		return nil
	case PromptRecordsToFile:
		filename, err := dumpRecordsToTmpFile(result.Records)
		if err != nil {
			return fmt.Errorf("dump records to file: %w", err)
		}
		logger.Info("dumping records to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func loadData(config *Config, logger *zap.Logger) (*recruitment.Candidates, *recruitment.Vacancies, *recruitment.Recruiters) {
	candidates, err := recruitment.LoadCandidates(config.Data.Profiles)
	if err != nil {
		logger.Fatal("loading candidate profiles", zap.Error(err))
	}
	logger.Info("loading candidate profiles", zap.Int("count", candidates.Len()))

	vacancies, err := recruitment.LoadVacancies(config.Data.Vacancies)
	if err != nil {
		logger.Fatal("loading vacancies", zap.Error(err))
	}
	logger.Info("loading vacancies", zap.Int("count", vacancies.Len()))

	recruiters, err := recruitment.LoadRecruiters(config.Data.Recruiters)
	if err != nil {
		logger.Fatal("loading recruiters", zap.Error(err))
	}
	logger.Info("loading recruiters", zap.Int("count", recruiters.Len()))

	return candidates, vacancies, recruiters
}

func pipelineConfig(config *Config) pipeline.Config {
	cfg := pipeline.DefaultConfig()

	if config.Concurrency > 0 {
		cfg.Concurrency = config.Concurrency
	}
	if config.Team != nil && len(config.Team.Zones) > 0 {
		cfg.TeamZones = config.Team.Zones
	}
	if config.Workday != nil && config.Workday.End > config.Workday.Start {
		cfg.Timezone.WorkStart = config.Workday.Start
		cfg.Timezone.WorkEnd = config.Workday.End
	}
	if config.Penalties != nil {
		cfg.Matching.ModalityPenalty = config.Penalties.Modality
		cfg.Matching.ZonePenalty = config.Penalties.Zone
		cfg.Matching.HighUrgencyPenalty = config.Penalties.HighUrgency
	}
	if config.Thresholds != nil {
		if config.Thresholds.Timezone > 0 {
			cfg.Filtering.TimezoneThreshold = config.Thresholds.Timezone
		}
		if config.Thresholds.DesiredEmotion != "" {
			cfg.Filtering.DesiredEmotion = config.Thresholds.DesiredEmotion
		}
		if config.Thresholds.MaxIssues > 0 {
			cfg.Filtering.MaxIssues = config.Thresholds.MaxIssues
		}
		if config.Thresholds.MinMatchScore > 0 {
			cfg.Filtering.MinMatchScore = config.Thresholds.MinMatchScore
		}
	}

	return cfg
}

func dumpRecordsToTmpFile(records *recruitment.FinalRecords) (string, error) {
	file, err := os.CreateTemp("", "records_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", err
	}
	return file.Name(), nil
}
