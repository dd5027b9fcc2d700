package main

import (
	"fmt"

	multigrid "github.com/ess-dg/multigrid_go/pkg"
)

// Each file is clustered in a single pass by one worker. Files are independent
// so several of them can be processed at the same time.
type FileResult struct {
	File    string
	Summary Summary
	Err     error
}

func worker(id int, classifier *multigrid.Classifier, jobs <-chan string, results chan<- FileResult) {
	for fileIn := range jobs {
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Worker %d processing file %s", id, fileIn)
			logger.Info(message, "workers")
		}
		results <- processFile(fileIn, classifier)
	}
}

func sendFilesToWorkers(files []string, jobs chan<- string) {
	for _, fileIn := range files {
		jobs <- fileIn
	}
	close(jobs)
}

func processFile(fileIn string, classifier *multigrid.Classifier) (fileResult FileResult) {
	fileResult.File = fileIn
	defer func() {
		if r := recover(); r != nil {
			fileResult.Err = fmt.Errorf("recovered from panic on file %s: %v", fileIn, r)
		}
	}()

	events, err := multigrid.ReadRawEvents(fileIn, configuration.RowsToRead())
	if err != nil {
		fileResult.Err = fmt.Errorf("error reading %s: %w", fileIn, err)
		return fileResult
	}

	result, err := multigrid.ClusterEvents(events, classifier, configuration.ClusteringOptions())
	if result != nil {
		fileResult.Summary = Summarize(*result)
	}
	if err != nil {
		fileResult.Err = fmt.Errorf("error clustering %s: %w", fileIn, err)
	}
	return fileResult
}

// processWorkerResults logs every file summary and returns the first error
// that must stop the run.
func processWorkerResults(results <-chan FileResult, nFiles int) error {
	var fatal error
	for i := 0; i < nFiles; i++ {
		fileResult := <-results
		if fileResult.Err == nil {
			message := fmt.Sprintf("%s: %s", fileResult.File, fileResult.Summary)
			logger.Info(message, "main")
			continue
		}

		logger.Error(fileResult.Err.Error())
		if fileResult.Summary.RawEvents > 0 {
			message := fmt.Sprintf("%s (incomplete): %s", fileResult.File, fileResult.Summary)
			logger.Info(message, "main")
		}
		if DiscardErrors && isInputError(fileResult.Err) {
			message := fmt.Sprintf("discarding file %s", fileResult.File)
			logger.Error(message)
			continue
		}
		if fatal == nil {
			fatal = fileResult.Err
		}
	}
	return fatal
}
