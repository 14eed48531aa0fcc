// Package seed fills a fresh store with example data before the server
// starts listening.
package seed

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/decision"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"gopkg.in/yaml.v3"
)

const (
	DummyAdminEmail    = "admin@example.com"
	DummyAdminPassword = "admin"
)

// Accounts creates users inside a running transaction.
type Accounts interface {
	CreateAccount(tx store.Tx, spec models.RegisterSpec, role models.UserRole) (models.Account, error)
}

// Data is the example data file. Entities reference each other by the keys
// given in the file; users are referenced by email.
type Data struct {
	Users    []User    `yaml:"users"`
	Papers   []Paper   `yaml:"papers"`
	Projects []Project `yaml:"projects"`
}

type User struct {
	Email     string          `yaml:"email"`
	FirstName string          `yaml:"firstName"`
	LastName  string          `yaml:"lastName"`
	Password  string          `yaml:"password"`
	Role      models.UserRole `yaml:"role"`
	Deleted   bool            `yaml:"deleted"`
	// ReadingList holds paper keys.
	ReadingList []string `yaml:"readingList"`
}

type Paper struct {
	Key             string          `yaml:"key"`
	DOI             string          `yaml:"doi"`
	Title           string          `yaml:"title"`
	Abstract        string          `yaml:"abstract"`
	Year            int64           `yaml:"year"`
	PublisherName   string          `yaml:"publisherName"`
	PublicationType string          `yaml:"publicationType"`
	PublicationName string          `yaml:"publicationName"`
	Authors         []models.Author `yaml:"authors"`
	Backward        []string        `yaml:"backwardReferences"`
	Forward         []string        `yaml:"forwardReferences"`
}

type Project struct {
	Name         string                  `yaml:"name"`
	Status       models.ProjectStatus    `yaml:"status"`
	CurrentStage int64                   `yaml:"currentStage"`
	MaxStage     int64                   `yaml:"maxStage"`
	Settings     *models.ProjectSettings `yaml:"settings"`
	Members      []Member                `yaml:"members"`
	// Invitations holds the emails of invited users.
	Invitations []string       `yaml:"invitations"`
	Criteria    []Criterion    `yaml:"criteria"`
	Papers      []ProjectPaper `yaml:"papers"`
}

type Member struct {
	Email string            `yaml:"email"`
	Role  models.MemberRole `yaml:"role"`
}

type Criterion struct {
	Key         string                   `yaml:"key"`
	Tag         string                   `yaml:"tag"`
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description"`
	Category    models.CriterionCategory `yaml:"category"`
}

type ProjectPaper struct {
	Paper   string   `yaml:"paper"`
	Stage   int64    `yaml:"stage"`
	Reviews []Review `yaml:"reviews"`
}

type Review struct {
	Reviewer string                `yaml:"reviewer"`
	Decision models.ReviewDecision `yaml:"decision"`
	Criteria []string              `yaml:"criteria"`
}

// Load reads an example data file. JSON files are accepted as well since
// they are valid YAML.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes example data; unknown keys are rejected.
func Parse(raw []byte) (*Data, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var d Data
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("example data: %w", err)
	}
	return &d, nil
}

// Import writes d into s in a single transaction. Either everything is
// imported or nothing is.
func Import(ctx context.Context, s store.Store, accounts Accounts, d *Data) error {
	return s.Update(ctx, func(tx store.Tx) error {
		im := importer{
			tx:       tx,
			accounts: accounts,
			users:    map[string]string{},
			papers:   map[string]string{},
		}
		return im.run(d)
	})
}

// DummyAdmin registers admin@example.com with the admin role.
func DummyAdmin(ctx context.Context, s store.Store, accounts Accounts) (models.User, error) {
	var user models.User
	err := s.Update(ctx, func(tx store.Tx) error {
		acc, err := accounts.CreateAccount(tx, models.RegisterSpec{
			Email:     DummyAdminEmail,
			FirstName: "Admin",
			LastName:  "Admin",
			Password:  DummyAdminPassword,
		}, models.UserRoleAdmin)
		user = acc.User
		return err
	})
	return user, err
}

type importer struct {
	tx       store.Tx
	accounts Accounts
	users    map[string]string // email -> id
	papers   map[string]string // key -> id
}

func (im *importer) run(d *Data) error {
	for _, u := range d.Users {
		if err := im.user(u); err != nil {
			return err
		}
	}
	for _, p := range d.Papers {
		if err := im.paper(p); err != nil {
			return err
		}
	}
	// References may point forward in the file.
	for _, p := range d.Papers {
		if err := im.references(p); err != nil {
			return err
		}
	}
	for _, u := range d.Users {
		for _, key := range u.ReadingList {
			paperID, err := im.paperID(key)
			if err != nil {
				return err
			}
			if im.tx.ReadingLists().Contains(im.users[u.Email], paperID) {
				continue
			}
			if err := im.tx.ReadingLists().Append(im.users[u.Email], paperID); err != nil {
				return err
			}
		}
	}
	for _, p := range d.Projects {
		if err := im.project(p); err != nil {
			return err
		}
	}
	return nil
}

func (im *importer) user(u User) error {
	role := u.Role
	if role == "" {
		role = models.UserRoleDefault
	}
	acc, err := im.accounts.CreateAccount(im.tx, models.RegisterSpec{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Password:  u.Password,
	}, role)
	if err != nil {
		return fmt.Errorf("user %s: %w", u.Email, err)
	}
	if u.Deleted {
		acc.User.Status = models.UserStatusDeleted
		im.tx.Users().Put(acc.User.ID, acc)
	}
	im.users[u.Email] = acc.User.ID
	return nil
}

func (im *importer) userID(email string) (string, error) {
	id, ok := im.users[email]
	if !ok {
		return "", common.NewNotFound("user", email)
	}
	return id, nil
}

func (im *importer) paper(p Paper) error {
	if common.IsBlank(p.Title) {
		return common.NewInvalidArgument("title", "must not be blank")
	}
	if _, dup := im.papers[p.Key]; dup && p.Key != "" {
		return common.AlreadyExistsf("paper key %s", p.Key)
	}
	paper := models.Paper{
		ID:                         im.tx.Papers().NextID(),
		DOI:                        p.DOI,
		Title:                      p.Title,
		Abstract:                   p.Abstract,
		Year:                       p.Year,
		PublisherName:              p.PublisherName,
		PublicationType:            p.PublicationType,
		PublicationName:            p.PublicationName,
		Authors:                    p.Authors,
		BackwardReferencedPaperIDs: []string{},
		ForwardReferencedPaperIDs:  []string{},
	}
	if paper.Authors == nil {
		paper.Authors = []models.Author{}
	}
	im.tx.Papers().Put(paper.ID, paper)
	if p.Key != "" {
		im.papers[p.Key] = paper.ID
	}
	return nil
}

func (im *importer) paperID(key string) (string, error) {
	id, ok := im.papers[key]
	if !ok {
		return "", common.NewNotFound("paper", key)
	}
	return id, nil
}

func (im *importer) references(p Paper) error {
	if len(p.Backward) == 0 && len(p.Forward) == 0 {
		return nil
	}
	id, err := im.paperID(p.Key)
	if err != nil {
		return err
	}
	paper, err := im.tx.Papers().Get(id)
	if err != nil {
		return err
	}
	for _, key := range p.Backward {
		ref, err := im.paperID(key)
		if err != nil {
			return err
		}
		paper.BackwardReferencedPaperIDs = append(paper.BackwardReferencedPaperIDs, ref)
	}
	for _, key := range p.Forward {
		ref, err := im.paperID(key)
		if err != nil {
			return err
		}
		paper.ForwardReferencedPaperIDs = append(paper.ForwardReferencedPaperIDs, ref)
	}
	im.tx.Papers().Put(id, paper)
	return nil
}

func (im *importer) project(p Project) error {
	if common.IsBlank(p.Name) {
		return common.NewInvalidArgument("name", "must not be blank")
	}
	if p.CurrentStage < 0 || p.CurrentStage > p.MaxStage {
		return common.NewInvalidArgument("currentStage", "out of range")
	}
	settings := models.DefaultProjectSettings()
	if p.Settings != nil {
		settings = p.Settings.Clone()
	}
	status := p.Status
	if status == "" {
		status = models.ProjectStatusActive
	}
	project := models.Project{
		ID:           im.tx.Projects().NextID(),
		Name:         p.Name,
		Status:       status,
		CurrentStage: p.CurrentStage,
		MaxStage:     p.MaxStage,
		Settings:     settings,
	}
	tx := im.tx
	tx.Projects().Put(project.ID, project)
	tx.Members().Init(project.ID)
	tx.ProjectCriteria().Init(project.ID)
	tx.ProjectPaperIndex().Init(project.ID)

	for _, m := range p.Members {
		userID, err := im.userID(m.Email)
		if err != nil {
			return err
		}
		role := m.Role
		if role == "" {
			role = models.MemberRoleDefault
		}
		if err := tx.Members().Append(project.ID, models.Member{UserID: userID, Role: role}); err != nil {
			return err
		}
	}
	for _, email := range p.Invitations {
		userID, err := im.userID(email)
		if err != nil {
			return err
		}
		if err := tx.Invitations().Append(userID, project.ID); err != nil {
			return err
		}
	}

	criteria := map[string]string{}
	for _, c := range p.Criteria {
		crit := models.Criterion{
			ID:          tx.Criteria().NextID(),
			Tag:         c.Tag,
			Name:        c.Name,
			Description: c.Description,
			Category:    c.Category,
		}
		tx.Criteria().Put(crit.ID, crit)
		if err := tx.ProjectCriteria().Append(project.ID, crit.ID); err != nil {
			return err
		}
		if c.Key != "" {
			criteria[c.Key] = crit.ID
		}
	}

	for _, pp := range p.Papers {
		if err := im.projectPaper(project, criteria, pp); err != nil {
			return err
		}
	}
	return nil
}

func (im *importer) projectPaper(project models.Project, criteria map[string]string, spec ProjectPaper) error {
	tx := im.tx
	paperID, err := im.paperID(spec.Paper)
	if err != nil {
		return err
	}
	if spec.Stage < 0 || spec.Stage > project.MaxStage {
		return common.NewInvalidArgument("stage", "out of range")
	}

	prefix := project.ID + "-"
	id := store.SmallestUnused(tx.ProjectPapers().Has, prefix)
	pp := models.ProjectPaper{
		ID:      id,
		LocalID: id[len(prefix):],
		PaperID: paperID,
		Stage:   spec.Stage,
	}
	tx.ReviewIndex().Init(id)
	if err := tx.ProjectPaperIndex().Append(project.ID, id); err != nil {
		return err
	}

	reviews := make([]models.Review, 0, len(spec.Reviews))
	for _, r := range spec.Reviews {
		userID, err := im.userID(r.Reviewer)
		if err != nil {
			return err
		}
		review := models.Review{
			ID:                  tx.Reviews().NextID(),
			UserID:              userID,
			Decision:            r.Decision,
			SelectedCriteriaIDs: []string{},
		}
		for _, key := range r.Criteria {
			cid, ok := criteria[key]
			if !ok {
				return common.NewNotFound("criterion", key)
			}
			review.SelectedCriteriaIDs = append(review.SelectedCriteriaIDs, cid)
		}
		tx.Reviews().Put(review.ID, review)
		if err := tx.ReviewIndex().Append(id, review.ID); err != nil {
			return err
		}
		reviews = append(reviews, review)
	}

	pp.Decision = decision.Decide(project.Settings.DecisionMatrix, reviews)
	tx.ProjectPapers().Put(id, pp)
	return nil
}
