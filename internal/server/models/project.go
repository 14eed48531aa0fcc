package models

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
	ProjectStatusDeleted  ProjectStatus = "deleted"
)

type SnowballingType string

const (
	SnowballingBackward SnowballingType = "backward"
	SnowballingForward  SnowballingType = "forward"
	SnowballingBoth     SnowballingType = "both"
)

type Project struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Status       ProjectStatus   `json:"status"`
	CurrentStage int64           `json:"currentStage"`
	MaxStage     int64           `json:"maxStage"`
	Settings     ProjectSettings `json:"settings"`
}

type ProjectSettings struct {
	SimilarityThreshold float64         `json:"similarityThreshold" yaml:"similarityThreshold"`
	FetcherAPIs         []string        `json:"fetcherApis" yaml:"fetcherApis"`
	SnowballingType     SnowballingType `json:"snowballingType" yaml:"snowballingType"`
	ReviewMaybeAllowed  bool            `json:"reviewMaybeAllowed" yaml:"reviewMaybeAllowed"`
	DecisionMatrix      DecisionMatrix  `json:"decisionMatrix" yaml:"decisionMatrix"`
}

// DecisionMatrix maps exact review tallies to a paper decision. Patterns are
// evaluated in order and the first exact match wins.
type DecisionMatrix struct {
	NumberOfReviewers int64     `json:"numberOfReviewers" yaml:"numberOfReviewers"`
	Patterns          []Pattern `json:"patterns" yaml:"patterns"`
}

type Pattern struct {
	Accepted int64         `json:"accepted" yaml:"accepted"`
	Declined int64         `json:"declined" yaml:"declined"`
	Maybe    int64         `json:"maybe" yaml:"maybe"`
	Decision PaperDecision `json:"decision" yaml:"decision"`
}

type MemberRole string

const (
	MemberRoleAdmin   MemberRole = "admin"
	MemberRoleDefault MemberRole = "default"
)

// Member is one row of a project's membership list.
type Member struct {
	UserID string     `json:"userId"`
	Role   MemberRole `json:"role"`
}

// ProjectStatistics summarises the decisions of one stage.
type ProjectStatistics struct {
	Stage      int64   `json:"stage"`
	Total      int64   `json:"total"`
	Unreviewed int64   `json:"unreviewed"`
	InReview   int64   `json:"inReview"`
	Accepted   int64   `json:"accepted"`
	Declined   int64   `json:"declined"`
	Progress   float64 `json:"progress"`
}

// DefaultProjectSettings are applied when a project is created without
// explicit settings: two reviewers who must agree.
func DefaultProjectSettings() ProjectSettings {
	return ProjectSettings{
		SimilarityThreshold: 0.8,
		FetcherAPIs:         []string{},
		SnowballingType:     SnowballingBoth,
		ReviewMaybeAllowed:  true,
		DecisionMatrix: DecisionMatrix{
			NumberOfReviewers: 2,
			Patterns: []Pattern{
				{Accepted: 2, Decision: PaperDecisionAccepted},
				{Declined: 2, Decision: PaperDecisionDeclined},
			},
		},
	}
}
