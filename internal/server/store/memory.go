package store

import (
	"context"
	"sync"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
)

// Memory is the volatile Store used by the mock backend. Each Update works
// on a shallow copy of the collection maps and publishes it only when fn
// succeeds, so a failed operation leaves no trace.
type Memory struct {
	mu    sync.RWMutex
	state *state
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{state: newState()}
}

func (m *Memory) Update(ctx context.Context, fn func(tx Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.state.copy()

	// a panic inside fn drops next and propagates
	if err = fn(next); err != nil {
		return err
	}
	m.state = next
	return nil
}

func (m *Memory) View(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return fn(m.state.copy())
}

type state struct {
	users         *Collection[models.Account]
	settings      *Collection[models.UserSettings]
	projects      *Collection[models.Project]
	papers        *Collection[models.Paper]
	projectPapers *Collection[models.ProjectPaper]
	criteria      *Collection[models.Criterion]
	reviews       *Collection[models.Review]

	members         *Lists[models.Member]
	projectCriteria *Lists[string]
	projectPapersIx *Lists[string]
	reviewIx        *Lists[string]
	readingLists    *Lists[string]
	invitations     *Lists[string]
}

func newState() *state {
	return &state{
		users:         newCollection("user", models.Account.Clone),
		settings:      newCollection[models.UserSettings]("user settings", nil),
		projects:      newCollection("project", models.Project.Clone),
		papers:        newCollection("paper", models.Paper.Clone),
		projectPapers: newCollection[models.ProjectPaper]("project paper", nil),
		criteria:      newCollection[models.Criterion]("criterion", nil),
		reviews:       newCollection("review", models.Review.Clone),

		members:         newLists[models.Member]("project"),
		projectCriteria: newLists[string]("project"),
		projectPapersIx: newLists[string]("project"),
		reviewIx:        newLists[string]("project paper"),
		readingLists:    newLists[string]("user"),
		invitations:     newLists[string]("user"),
	}
}

func (s *state) copy() *state {
	return &state{
		users:         s.users.copy(),
		settings:      s.settings.copy(),
		projects:      s.projects.copy(),
		papers:        s.papers.copy(),
		projectPapers: s.projectPapers.copy(),
		criteria:      s.criteria.copy(),
		reviews:       s.reviews.copy(),

		members:         s.members.copy(),
		projectCriteria: s.projectCriteria.copy(),
		projectPapersIx: s.projectPapersIx.copy(),
		reviewIx:        s.reviewIx.copy(),
		readingLists:    s.readingLists.copy(),
		invitations:     s.invitations.copy(),
	}
}

func (s *state) Users() *Collection[models.Account] { return s.users }
func (s *state) Settings() *Collection[models.UserSettings] { return s.settings }
func (s *state) Projects() *Collection[models.Project] { return s.projects }
func (s *state) Papers() *Collection[models.Paper] { return s.papers }
func (s *state) ProjectPapers() *Collection[models.ProjectPaper] { return s.projectPapers }
func (s *state) Criteria() *Collection[models.Criterion] { return s.criteria }
func (s *state) Reviews() *Collection[models.Review] { return s.reviews }

func (s *state) Members() *Lists[models.Member] { return s.members }
func (s *state) ProjectCriteria() *Lists[string] { return s.projectCriteria }
func (s *state) ProjectPaperIndex() *Lists[string] { return s.projectPapersIx }
func (s *state) ReviewIndex() *Lists[string] { return s.reviewIx }
func (s *state) ReadingLists() *Lists[string] { return s.readingLists }
func (s *state) Invitations() *Lists[string] { return s.invitations }
