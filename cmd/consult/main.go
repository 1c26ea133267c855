package main

import (
	"consult-lab/classifier"
	"consult-lab/domain"
	"consult-lab/export"
	"consult-lab/infrastructure/gateway"
	"consult-lab/internal"
	"consult-lab/repositories"
	"consult-lab/runtime"
	"consult-lab/services"
	"consult-lab/synthesis"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

type options struct {
	condition   string
	task        string
	mode        string
	specialties string
	reportPath  string
}

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", color.FgRed.Render(export.DescribeFailure(err)))
	}
	os.Exit(code)
}

// run wires the pipeline from the environment, runs one consultation and prints it.
// Deferred cleanups (Badger in particular) always run before the exit code is returned.
func run(args []string, out io.Writer) (int, error) {
	opts, err := parseFlags(args)
	if err != nil {
		return exitConfig, err
	}

	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Consultation history (BadgerDB)
	var repository repositories.IConsultationRepository
	if config.StoreConsultations {
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
		if err != nil {
			return exitRuntime, fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			logger.Debug("Closing BadgerDB...")
			_ = db.Close()
		}()
		repository = repositories.NewConsultationRepository(db, logger)
	}

	// 3. Pipeline
	gw := gateway.NewClient(logger, config.GatewayURL, &http.Client{})
	service := services.NewConsultationService(logger,
		classifier.NewClassifier(logger, gw, config.Catalog(), config.ClassifierEndpoint, config.GatewayTimeout),
		runtime.NewDispatcher(logger, gw, config.DispatcherConfig()),
		synthesis.NewSynthesizer(logger, gw, config.SynthesisConfig()),
		repository,
	)

	consultation, err := service.Consult(ctx, services.ConsultationRequest{
		Condition:   opts.condition,
		Task:        opts.task,
		Credential:  config.GatewayAPIKey,
		Mode:        domain.Mode(opts.mode),
		Specialties: internal.ParseList(opts.specialties),
	})
	if consultation.Opinions.Len() == 0 && err != nil {
		return exitRuntime, err
	}

	// 4. Display & export
	printConsultation(out, consultation)
	if opts.reportPath != "" {
		if saveErr := export.SaveJSON(opts.reportPath, consultation); saveErr != nil {
			return exitRuntime, fmt.Errorf("saving report: %w", saveErr)
		}
		fmt.Fprintf(out, "Final report saved to %q\n", opts.reportPath)
	}
	if err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("consult", flag.ContinueOnError)
	fs.StringVar(&opts.condition, "condition", "", "Medical condition to consult about")
	fs.StringVar(&opts.task, "task", "", "Task given to every specialist")
	fs.StringVar(&opts.mode, "mode", string(domain.DynamicMode), "dynamic (classifier picks specialties) or static")
	fs.StringVar(&opts.specialties, "specialties", "", "Comma separated specialties for static mode")
	fs.StringVar(&opts.reportPath, "report", "", "Optional path of the JSON report")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if strings.TrimSpace(opts.condition) == "" {
		return options{}, fmt.Errorf("-condition is required")
	}
	return opts, nil
}

func printConsultation(out io.Writer, consultation domain.Consultation) {
	header := color.New(color.BgBlack, color.FgGreen)

	fmt.Fprintln(out, header.Render(fmt.Sprintf("  ====== Consultation %s (%s) ======", consultation.ID, consultation.Mode)))
	fmt.Fprintf(out, "Specialties: %s\n\n", strings.Join(consultation.Specialties, ", "))

	fmt.Fprintln(out, header.Render("  ====== Responses from specialists ======"))
	export.RenderOpinions(out, consultation.Opinions)

	fmt.Fprintln(out)
	fmt.Fprintln(out, header.Render("  ====== Aggregated report ======"))
	if consultation.Report.Succeeded() {
		fmt.Fprintln(out, consultation.Report.Text)
	}
}
