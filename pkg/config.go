package multigrid

type Configuration struct {
	FilesIn           []string `json:"files_in"`
	Window            int64    `json:"window"`
	MaxTimeRegression int64    `json:"max_time_regression"`
	Sample            bool     `json:"sample"`
	SampleSize        int      `json:"sample_size"`
	RunNumber         int      `json:"run_number"`
	Verbosity         int      `json:"verbosity"`
	Discard           bool     `json:"discard"`
	NumWorkers        int      `json:"num_workers"`
	NoDB              bool     `json:"no_db"`
	Host              string   `json:"host"`
	User              string   `json:"user"`
	Passwd            string   `json:"pass"`
	DBName            string   `json:"dbname"`
}

var configuration Configuration

func SetConfiguration(config Configuration) {
	configuration = config
}

// ClusteringOptions returns the accumulator options of the configuration.
func (c Configuration) ClusteringOptions() Options {
	return Options{
		Window:            c.Window,
		MaxTimeRegression: c.MaxTimeRegression,
	}
}

// RowsToRead returns the number of hits to read from each file, 0 meaning all.
func (c Configuration) RowsToRead() int {
	if !c.Sample {
		return 0
	}
	return c.SampleSize
}
