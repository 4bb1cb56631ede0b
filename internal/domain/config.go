package domain

// PathConfig carries the optional output locations from the configuration file.
type PathConfig struct {
	OutputPath string `json:"output_path"`
	LogPath    string `json:"log_path"`
}

// Config is the decoded configuration file. Username and Repositories are
// always required; every other field is an optional extension that is only
// validated when present.
type Config struct {
	Username     string          `json:"username"`
	Repositories []string        `json:"repositories"`
	Path         *PathConfig     `json:"path,omitempty"`
	Timeout      *int            `json:"timeout,omitempty"`
	Metrics      map[string]bool `json:"metrics,omitempty"`
}
