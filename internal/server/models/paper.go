package models

type Author struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Orcid     string `json:"orcid,omitempty" yaml:"orcid"`
}

type Paper struct {
	ID                         string   `json:"id"`
	DOI                        string   `json:"doi"`
	Title                      string   `json:"title"`
	Abstract                   string   `json:"abstract"`
	Year                       int64    `json:"year"`
	PublisherName              string   `json:"publisherName"`
	PublicationType            string   `json:"publicationType"`
	PublicationName            string   `json:"publicationName"`
	Authors                    []Author `json:"authors"`
	BackwardReferencedPaperIDs []string `json:"backwardReferencedPaperIds"`
	ForwardReferencedPaperIDs  []string `json:"forwardReferencedPaperIds"`
}

type PaperDecision string

const (
	PaperDecisionUnreviewed PaperDecision = "unreviewed"
	PaperDecisionInReview   PaperDecision = "in_review"
	PaperDecisionAccepted   PaperDecision = "accepted"
	PaperDecisionDeclined   PaperDecision = "declined"
)

// ProjectPaper places a Paper into a project stage. Its ID has the form
// "{projectId}-{localId}".
type ProjectPaper struct {
	ID       string        `json:"id"`
	LocalID  string        `json:"localId"`
	PaperID  string        `json:"paperId"`
	Stage    int64         `json:"stage"`
	Decision PaperDecision `json:"decision"`
}
