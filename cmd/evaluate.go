package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bottomline-assist/talent-matcher/internal/deepseek"
	"github.com/bottomline-assist/talent-matcher/internal/evaluator"
	"github.com/bottomline-assist/talent-matcher/internal/ingestion"
	"github.com/bottomline-assist/talent-matcher/internal/logger"
	"github.com/bottomline-assist/talent-matcher/internal/models"
	"github.com/bottomline-assist/talent-matcher/internal/report"
	"github.com/bottomline-assist/talent-matcher/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	defaultDepartment = "Department"
)

var confirmPrompt = promptui.Select{
	Label: "Evaluate these candidates?",
	Items: []string{PromptYes, PromptNo},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [CV file...]",
	Short: "Evaluate candidate CVs against a role and build ranked reports",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		evaluate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("title", "t", "", "job title the candidates are evaluated against")
	evaluateCmd.Flags().StringP("company", "c", "", "hiring company name")
	evaluateCmd.Flags().String("department", "", "hiring department")
	evaluateCmd.Flags().String("location", "", "job location")
	evaluateCmd.Flags().String("work-mode", "", "work mode, e.g. On-site, Remote or Hybrid")
	evaluateCmd.Flags().String("job-description", "", "file with the full job description text")
	evaluateCmd.Flags().StringP("output-dir", "o", ".", "directory for the generated reports")
	evaluateCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before calling the model")

	viper.BindPFlag("job.title", evaluateCmd.Flags().Lookup("title"))
	viper.BindPFlag("job.company", evaluateCmd.Flags().Lookup("company"))
	viper.BindPFlag("job.department", evaluateCmd.Flags().Lookup("department"))
	viper.BindPFlag("job.location", evaluateCmd.Flags().Lookup("location"))
	viper.BindPFlag("job.work-mode", evaluateCmd.Flags().Lookup("work-mode"))
	viper.BindPFlag("job.description-file", evaluateCmd.Flags().Lookup("job-description"))
	viper.BindPFlag("report.output-dir", evaluateCmd.Flags().Lookup("output-dir"))
}

// evaluate is the main command for the cli.
func evaluate(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talent-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config.Job == nil || config.Job.Title == "" {
		logger.Fatal("job title is required",
			zap.String("hint", "pass --title or set job.title in the configuration file"),
		)
	}

	if config.Job.Company == "" {
		logger.Fatal("company name is required",
			zap.String("hint", "pass --company or set job.company in the configuration file"),
		)
	}

	apiKey, err := resolveAPIKey(config, cmd)
	if err != nil {
		logger.Fatal(
			"loading deepseek api key",
			zap.Error(err),
			zap.String("hint", "set DEEPSEEK_API_KEY, DEEPSEEK_API_KEY_FILE or the api section in the configuration file"),
		)
	}

	client, err := newDeepSeekClient(apiKey, config.API, logger)
	if err != nil {
		logger.Fatal("creating a deepseek client", zap.Error(err))
	}

	job := buildJob(config.Job, logger)

	sources := make([]models.Source, 0, len(args))
	for _, arg := range args {
		sources = append(sources, models.NewSource(arg))
	}

	logger.Info("prepared the evaluation plan",
		zap.String("role", job.Title),
		zap.String("company", job.Company),
		zap.Int("candidates", len(sources)),
		zap.String("model", client.Model),
	)

	if cmd.Flag("yes").Value.String() == "false" {
		_, action, err := confirmPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if action == PromptNo {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	doc, err := evaluator.New(ingestion.NewExtractor(), client, logger).Run(ctx, job, sources)
	if err != nil {
		logger.Fatal("evaluation failed", zap.Error(err))
	}

	if doc.TotalCandidates == 0 {
		logger.Warn("no candidates could be evaluated",
			zap.String("hint", "check the warnings above for extraction or api failures"),
		)
	}

	outputDir := config.Report.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Fatal("creating the output directory", zap.Error(err))
	}

	jsonPath := filepath.Join(outputDir, report.JSONFileName)
	if err := report.WriteJSON(doc, jsonPath); err != nil {
		logger.Fatal("writing the json report", zap.Error(err))
	}

	logger.Info("json report saved", zap.String("file", jsonPath))

	renderer := report.NewPDFRenderer(outputDir, logger)
	if config.Report.Logo != "" {
		renderer.LogoPath = config.Report.Logo
	}

	pdfPath, err := renderer.Render(doc)
	if err != nil {
		logger.Fatal("rendering the pdf report", zap.Error(err))
	}

	logger.Info("pdf report generated", zap.String("file", pdfPath))
}

// buildJob assembles the job spec from the configuration. A description file
// that cannot be read only costs the prompt its job description section.
func buildJob(cfg *JobConfig, logger *zap.Logger) models.JobSpec {
	description := cfg.Description

	if description == "" && cfg.DescriptionFile != "" {
		data, err := os.ReadFile(cfg.DescriptionFile)
		if err != nil {
			logger.Warn("could not read the job description file",
				zap.String("file", cfg.DescriptionFile),
				zap.Error(err),
			)
		} else {
			description = string(data)
		}
	}

	department := strings.TrimSpace(cfg.Department)
	if department == "" {
		department = defaultDepartment
	}

	return models.JobSpec{
		Title:       cfg.Title,
		Company:     cfg.Company,
		Department:  department,
		Location:    cfg.Location,
		WorkMode:    cfg.WorkMode,
		Description: description,
	}
}

func resolveAPIKey(config *Config, cmd *cobra.Command) (string, error) {
	key, err := secrets.Load(secrets.Source{
		Name:  "deepseek api key",
		Value: config.API.Key,
		File:  config.API.KeyFile,
	})
	if err == nil {
		return key, nil
	}

	// Without a terminal to ask on, the original error is all we have.
	if cmd.Flag("yes").Value.String() == "true" {
		return "", err
	}

	keyPrompt := promptui.Prompt{
		Label: "DeepSeek API key",
		Mask:  '*',
	}

	entered, promptErr := keyPrompt.Run()
	if promptErr != nil {
		return "", err
	}

	return secrets.Load(secrets.Source{
		Name:  "deepseek api key",
		Value: entered,
	})
}

func newDeepSeekClient(apiKey string, cfg *APIConfig, logger *zap.Logger) (*deepseek.Client, error) {
	client, err := deepseek.New(apiKey, logger)
	if err != nil {
		return nil, err
	}

	if cfg.URL != "" {
		client.APIURL = cfg.URL
	}

	if cfg.Model != "" {
		client.Model = cfg.Model
	}

	if cfg.MaxRetries > 0 {
		client.MaxRetries = cfg.MaxRetries
	}

	if cfg.MaxLogLength > 0 {
		client.MaxLogLength = cfg.MaxLogLength
	}

	return client, nil
}
