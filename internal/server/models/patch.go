package models

// Patch types mirror their entity with every field optional, so an absent
// field can be told apart from a zero value. ID is accepted on the wire and
// always ignored.

type UserPatch struct {
	ID        *string     `json:"id,omitempty"`
	Email     *string     `json:"email,omitempty"`
	FirstName *string     `json:"firstName,omitempty"`
	LastName  *string     `json:"lastName,omitempty"`
	Role      *UserRole   `json:"role,omitempty"`
	Status    *UserStatus `json:"status,omitempty"`
}

type UserSettingsPatch struct {
	ShowHotkeys *bool `json:"showHotkeys,omitempty"`
}

type ProjectPatch struct {
	ID           *string               `json:"id,omitempty"`
	Name         *string               `json:"name,omitempty"`
	Status       *ProjectStatus        `json:"status,omitempty"`
	CurrentStage *int64                `json:"currentStage,omitempty"`
	MaxStage     *int64                `json:"maxStage,omitempty"`
	Settings     *ProjectSettingsPatch `json:"settings,omitempty"`
}

type ProjectSettingsPatch struct {
	SimilarityThreshold *float64         `json:"similarityThreshold,omitempty"`
	FetcherAPIs         *[]string        `json:"fetcherApis,omitempty"`
	SnowballingType     *SnowballingType `json:"snowballingType,omitempty"`
	ReviewMaybeAllowed  *bool            `json:"reviewMaybeAllowed,omitempty"`
	DecisionMatrix      *DecisionMatrix  `json:"decisionMatrix,omitempty"`
}

type CriterionPatch struct {
	ID          *string            `json:"id,omitempty"`
	Tag         *string            `json:"tag,omitempty"`
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Category    *CriterionCategory `json:"category,omitempty"`
}

type PaperPatch struct {
	ID                         *string   `json:"id,omitempty"`
	DOI                        *string   `json:"doi,omitempty"`
	Title                      *string   `json:"title,omitempty"`
	Abstract                   *string   `json:"abstract,omitempty"`
	Year                       *int64    `json:"year,omitempty"`
	PublisherName              *string   `json:"publisherName,omitempty"`
	PublicationType            *string   `json:"publicationType,omitempty"`
	PublicationName            *string   `json:"publicationName,omitempty"`
	Authors                    *[]Author `json:"authors,omitempty"`
	BackwardReferencedPaperIDs *[]string `json:"backwardReferencedPaperIds,omitempty"`
	ForwardReferencedPaperIDs  *[]string `json:"forwardReferencedPaperIds,omitempty"`
}

type ProjectPaperPatch struct {
	ID       *string        `json:"id,omitempty"`
	Stage    *int64         `json:"stage,omitempty"`
	Decision *PaperDecision `json:"decision,omitempty"`
}

type ReviewPatch struct {
	ID                  *string         `json:"id,omitempty"`
	Decision            *ReviewDecision `json:"decision,omitempty"`
	SelectedCriteriaIDs *[]string       `json:"selectedCriteriaIds,omitempty"`
}
