package models

// ProjectPaperDetail is a ProjectPaper with its paper and reviews resolved.
type ProjectPaperDetail struct {
	ProjectPaper
	Paper   Paper    `json:"paper"`
	Reviews []Review `json:"reviews"`
}

// MemberDetail is a project member row with the user resolved.
type MemberDetail struct {
	User User       `json:"user"`
	Role MemberRole `json:"role"`
}
