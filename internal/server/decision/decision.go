// Package decision derives paper decisions from reviews and reports how far a
// project stage has progressed.
package decision

import "github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"

// Tally counts reviews by decision.
type Tally struct {
	Accepted int64
	Declined int64
	Maybe    int64
}

func (t Tally) Empty() bool {
	return t.Accepted == 0 && t.Declined == 0 && t.Maybe == 0
}

// Count tallies the decisions of reviews.
func Count(reviews []models.Review) Tally {
	var t Tally
	for _, r := range reviews {
		switch r.Decision {
		case models.ReviewDecisionAccepted:
			t.Accepted++
		case models.ReviewDecisionDeclined:
			t.Declined++
		case models.ReviewDecisionMaybe:
			t.Maybe++
		}
	}
	return t
}

// Decide returns the decision of the first pattern matching the tally of
// reviews exactly. Without a match the paper is unreviewed when nobody has
// reviewed it and in review otherwise.
func Decide(matrix models.DecisionMatrix, reviews []models.Review) models.PaperDecision {
	t := Count(reviews)
	for _, p := range matrix.Patterns {
		if p.Accepted == t.Accepted && p.Declined == t.Declined && p.Maybe == t.Maybe {
			return p.Decision
		}
	}
	if t.Empty() {
		return models.PaperDecisionUnreviewed
	}
	return models.PaperDecisionInReview
}

// Statistics summarises papers of one stage. Progress is the share of those
// papers whose decision is no longer unreviewed, or 0 for an empty stage.
func Statistics(stage int64, papers []models.ProjectPaper) models.ProjectStatistics {
	s := models.ProjectStatistics{Stage: stage}
	for _, pp := range papers {
		if pp.Stage != stage {
			continue
		}
		s.Total++
		switch pp.Decision {
		case models.PaperDecisionAccepted:
			s.Accepted++
		case models.PaperDecisionDeclined:
			s.Declined++
		case models.PaperDecisionInReview:
			s.InReview++
		default:
			s.Unreviewed++
		}
	}
	if s.Total > 0 {
		s.Progress = float64(s.Total-s.Unreviewed) / float64(s.Total)
	}
	return s
}

// StageProgress is the progress of the project's current stage.
func StageProgress(project models.Project, papers []models.ProjectPaper) float64 {
	return Statistics(project.CurrentStage, papers).Progress
}
