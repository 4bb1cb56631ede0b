// Package domain contains the core data structures and domain logic for the application.
package domain

// RepositoryRecord holds the fetched metrics for a single repository.
// It is the core domain entity of this application: one record is created
// per repository for which all remote lookups completed, and it is never
// mutated afterwards.
type RepositoryRecord struct {
	User     string `json:"user"`
	Name     string `json:"repository_name"`
	Stars    int    `json:"stars"`
	Forks    int    `json:"forks"`
	Branches int    `json:"branches_count"`
	Commits  int    `json:"commits_count"`
}

// FetchOutcome is the result of one fetch run over a list of repositories.
// AllSucceeded is true iff every requested repository produced a complete
// record; Records only ever contains complete records, in input order.
type FetchOutcome struct {
	Records      []RepositoryRecord
	AllSucceeded bool
}
