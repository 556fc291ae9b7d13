package analysis

import "time"

// Contributor is one entry from the repository's contributor list,
// unique by login within a single scoring run.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// RepoFacts is the metadata snapshot the ramp-up, correctness and
// responsiveness calculators score against. Zero values mean "no data";
// calculators must return a defined score for them, never an error.
type RepoFacts struct {
	Description  string
	HasWiki      bool
	Topics       int
	ReadmeBytes  int
	Stars        int
	Forks        int
	OpenIssues   int
	ClosedIssues int
	PushedAt     time.Time
}

// License is the validated license payload for a repository. SPDXID is
// empty when GitHub could not detect a license.
type License struct {
	SPDXID string `json:"spdx_id"`
	Name   string `json:"name"`
}
