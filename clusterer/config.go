package main

import (
	"encoding/json"
	"fmt"
	"os"

	multigrid "github.com/ess-dg/multigrid_go/pkg"
)

func LoadConfiguration(filename string) (multigrid.Configuration, error) {
	var config multigrid.Configuration

	// Set default values
	config.Window = 20
	config.MaxTimeRegression = -1
	config.Sample = false
	config.SampleSize = 20
	config.RunNumber = 0
	config.Verbosity = 0
	config.Discard = false
	config.NumWorkers = 1
	config.NoDB = false
	config.Host = "localhost"
	config.User = "mgreader"
	config.Passwd = "readonly"
	config.DBName = "MultiGrid"

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	if len(config.FilesIn) == 0 {
		return config, fmt.Errorf("no input files in %s", filename)
	}
	return config, nil
}

func printConfiguration(config multigrid.Configuration, logger Logger) {
	for _, file := range config.FilesIn {
		logger.Info(fmt.Sprintf("File in: %s", file), "config")
	}
	logger.Info(fmt.Sprintf("Time window: %d", config.Window), "config")
	logger.Info(fmt.Sprintf("Max time regression: %d", config.MaxTimeRegression), "config")
	logger.Info(fmt.Sprintf("Sample: %t", config.Sample), "config")
	logger.Info(fmt.Sprintf("Sample size: %d", config.SampleSize), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Discard: %t", config.Discard), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
}
