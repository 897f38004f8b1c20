package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns 0 when every scenario calculated, 1 when any failed validation
// or could not be calculated, and 2 on usage or configuration errors.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("mortgage-calculator", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configLocation := flags.String("config", "", "path to a scenario file; overrides the single-input flags")
	amount := flags.String("amount", "", "mortgage amount, thousands separators allowed")
	term := flags.String("term", "", "mortgage term in years")
	rate := flags.String("rate", "", "annual interest rate in percent")
	repaymentType := flags.String("type", "", "repayment type: repayment or interest-only")
	outputFormatFlag := flags.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	conf := &config.Configuration{}
	if *configLocation != "" {
		loaded, err := config.LoadConfiguration(*configLocation)
		if err != nil {
			fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			return 2
		}
		conf = loaded
	} else {
		conf.Scenarios = []config.Scenario{{
			Name: "input",
			Input: mortgage.Input{
				Amount:       *amount,
				Term:         *term,
				InterestRate: *rate,
				Type:         mortgage.ParseRepaymentType(*repaymentType),
			},
		}}
	}

	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return 2
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat, err := validation.NormalizeOutputFormat(validation.FirstNonEmpty(*outputFormatFlag, conf.Output.Format))
	if err != nil {
		logger.Error(err.Error(),
			zap.String("op", "main"),
		)
		return 2
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results := evaluate(logger, conf)

	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(stdout, results)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(stdout, results)
	}
	if err != nil {
		logger.Error("failed to write results",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return 2
	}

	for _, result := range results {
		if result.Failed() {
			return 1
		}
	}
	return 0
}

// evaluate validates every scenario and calculates the ones that pass.
func evaluate(logger *zap.Logger, conf *config.Configuration) []output.ScenarioResult {
	results := make([]output.ScenarioResult, 0, len(conf.Scenarios))
	for i, scenario := range conf.Scenarios {
		result := output.ScenarioResult{Name: conf.ScenarioName(i), Input: scenario.Input}

		calculated, err := mortgage.Evaluate(scenario.Input)
		var errs mortgage.ValidationErrors
		switch {
		case errors.As(err, &errs):
			logger.Debug("scenario failed validation",
				zap.String("op", "main.evaluate"),
				zap.String("scenario", result.Name),
				zap.Error(errs),
			)
			result.Errors = errs
		case err != nil:
			logger.Warn("scenario could not be calculated",
				zap.String("op", "main.evaluate"),
				zap.String("scenario", result.Name),
				zap.Error(err),
			)
			result.Err = err
		default:
			result.Result = calculated
			logger.Debug("scenario calculated",
				zap.String("op", "main.evaluate"),
				zap.String("scenario", result.Name),
				zap.Float64("monthlyPayment", result.Result.MonthlyPayment),
				zap.Float64("totalPayment", result.Result.TotalPayment),
			)
		}
		results = append(results, result)
	}
	return results
}
