package models

type CriterionCategory string

const (
	CriterionInclusion     CriterionCategory = "inclusion"
	CriterionExclusion     CriterionCategory = "exclusion"
	CriterionHardExclusion CriterionCategory = "hard_exclusion"
)

type Criterion struct {
	ID          string            `json:"id"`
	Tag         string            `json:"tag"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    CriterionCategory `json:"category"`
}

type ReviewDecision string

const (
	ReviewDecisionAccepted ReviewDecision = "accepted"
	ReviewDecisionDeclined ReviewDecision = "declined"
	ReviewDecisionMaybe    ReviewDecision = "maybe"
)

type Review struct {
	ID                  string         `json:"id"`
	UserID              string         `json:"userId"`
	Decision            ReviewDecision `json:"decision"`
	SelectedCriteriaIDs []string       `json:"selectedCriteriaIds"`
}
