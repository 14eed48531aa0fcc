package models

// Specs carry the client-supplied fields of a new entity. The validate tags
// are checked before anything is written.

type RegisterSpec struct {
	Email     string `json:"email" validate:"notblank"`
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Password  string `json:"password" validate:"notblank"`
}

type ProjectSpec struct {
	Name     string           `json:"name" validate:"notblank"`
	MaxStage int64            `json:"maxStage" validate:"gte=0"`
	Settings *ProjectSettings `json:"settings,omitempty"`
}

type CriterionSpec struct {
	ProjectID   string            `json:"projectId" validate:"required"`
	Tag         string            `json:"tag" validate:"notblank"`
	Name        string            `json:"name" validate:"notblank"`
	Description string            `json:"description"`
	Category    CriterionCategory `json:"category" validate:"oneof=inclusion exclusion hard_exclusion"`
}

type PaperSpec struct {
	DOI                        string   `json:"doi"`
	Title                      string   `json:"title" validate:"notblank"`
	Abstract                   string   `json:"abstract"`
	Year                       int64    `json:"year" validate:"gte=0"`
	PublisherName              string   `json:"publisherName"`
	PublicationType            string   `json:"publicationType"`
	PublicationName            string   `json:"publicationName"`
	Authors                    []Author `json:"authors" validate:"dive"`
	BackwardReferencedPaperIDs []string `json:"backwardReferencedPaperIds"`
	ForwardReferencedPaperIDs  []string `json:"forwardReferencedPaperIds"`
}

type ProjectPaperSpec struct {
	ProjectID string `json:"projectId" validate:"required"`
	PaperID   string `json:"paperId" validate:"required"`
	Stage     *int64 `json:"stage,omitempty" validate:"omitempty,gte=0"`
}

type ReviewSpec struct {
	ProjectPaperID      string         `json:"projectPaperId" validate:"required"`
	Decision            ReviewDecision `json:"decision" validate:"oneof=accepted declined maybe"`
	SelectedCriteriaIDs []string       `json:"selectedCriteriaIds"`
}

type MemberInvite struct {
	ProjectID string `json:"projectId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
}
