package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	multigrid "github.com/ess-dg/multigrid_go/pkg"
)

var configuration multigrid.Configuration

var (
	logger         Logger
	VerbosityLevel int
	DiscardErrors  bool
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	multigrid.SetConfiguration(configuration)
	multigrid.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	DiscardErrors = configuration.Discard
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	classifier, err := loadClassifier(configuration)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	nWorkers := configuration.NumWorkers
	if nWorkers < 1 {
		nWorkers = 1
	}
	jobs := make(chan string, len(configuration.FilesIn))
	results := make(chan FileResult, len(configuration.FilesIn))

	start := time.Now()
	for w := 1; w <= nWorkers; w++ {
		go worker(w, classifier, jobs, results)
	}
	go sendFilesToWorkers(configuration.FilesIn, jobs)

	err = processWorkerResults(results, len(configuration.FilesIn))
	duration := time.Since(start)
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Total time: %d ms", duration.Milliseconds())
		logger.Info(message, "main")
	}
	if err != nil {
		os.Exit(1)
	}
}

const noDBWarning = "no_db is set: no channel mapping loaded, every cluster channel will be unmapped (-10)"

func loadClassifier(config multigrid.Configuration) (*multigrid.Classifier, error) {
	if config.NoDB {
		logger.Error(noDBWarning)
		return multigrid.NewClassifier(nil), nil
	}

	dbConn, err := multigrid.ConnectToDatabase(config.User, config.Passwd, config.Host, config.DBName)
	if err != nil {
		return nil, fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()

	channelMap, err := multigrid.LoadChannelMap(dbConn, config.RunNumber)
	if err != nil {
		return nil, fmt.Errorf("Error loading channel map: %w", err)
	}
	return multigrid.NewClassifier(channelMap), nil
}

// Input errors only spoil the file they come from
func isInputError(err error) bool {
	var inputErr *multigrid.ErrInputRecord
	var fileErr *multigrid.ErrOpenFile
	var datasetErr *multigrid.ErrOpenDataset
	return errors.As(err, &inputErr) || errors.As(err, &fileErr) || errors.As(err, &datasetErr)
}
