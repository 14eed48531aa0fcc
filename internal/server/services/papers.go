package services

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/patch"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/store"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

func (s *Service) GetPaper(ctx context.Context, id string) (models.Paper, error) {
	var out models.Paper
	err := s.view(ctx, func(tx store.Tx) error {
		var err error
		out, err = tx.Papers().Get(id)
		return err
	})
	return out, err
}

func (s *Service) CreatePaper(ctx context.Context, spec models.PaperSpec) (models.Paper, error) {
	if err := check(s.validate, spec); err != nil {
		return models.Paper{}, err
	}
	var out models.Paper
	err := s.update(ctx, func(tx store.Tx) error {
		out = models.Paper{
			ID:                         tx.Papers().NextID(),
			DOI:                        spec.DOI,
			Title:                      spec.Title,
			Abstract:                   spec.Abstract,
			Year:                       spec.Year,
			PublisherName:              spec.PublisherName,
			PublicationType:            spec.PublicationType,
			PublicationName:            spec.PublicationName,
			Authors:                    orEmpty(spec.Authors),
			BackwardReferencedPaperIDs: orEmpty(spec.BackwardReferencedPaperIDs),
			ForwardReferencedPaperIDs:  orEmpty(spec.ForwardReferencedPaperIDs),
		}
		tx.Papers().Put(out.ID, out)
		return nil
	})
	return out, err
}

func (s *Service) UpdatePaper(ctx context.Context, id string, p models.PaperPatch, mask *fieldmaskpb.FieldMask) (models.Paper, error) {
	var out models.Paper
	err := s.update(ctx, func(tx store.Tx) error {
		cur, err := tx.Papers().Get(id)
		if err != nil {
			return err
		}
		merged, err := patch.Apply(cur, p, mask)
		if err != nil {
			return err
		}
		if common.IsBlank(merged.Title) {
			return common.NewInvalidArgument("title", "must not be blank")
		}
		tx.Papers().Put(id, merged)
		out = merged
		return nil
	})
	return out, err
}

// GetForwardReferencedPapers resolves the forward references of paper id.
// References to unknown papers are skipped.
func (s *Service) GetForwardReferencedPapers(ctx context.Context, id string) ([]models.Paper, error) {
	return s.referenced(ctx, id, func(p models.Paper) []string { return p.ForwardReferencedPaperIDs })
}

func (s *Service) GetBackwardReferencedPapers(ctx context.Context, id string) ([]models.Paper, error) {
	return s.referenced(ctx, id, func(p models.Paper) []string { return p.BackwardReferencedPaperIDs })
}

func (s *Service) referenced(ctx context.Context, id string, refs func(models.Paper) []string) ([]models.Paper, error) {
	var out []models.Paper
	err := s.view(ctx, func(tx store.Tx) error {
		paper, err := tx.Papers().Get(id)
		if err != nil {
			return err
		}
		out = []models.Paper{}
		for _, ref := range refs(paper) {
			if p, err := tx.Papers().Get(ref); err == nil {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

// GetPaperPdf returns the stored PDF of paper id, NotFound when there is none.
func (s *Service) GetPaperPdf(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.GetPaper(ctx, id); err != nil {
		return nil, err
	}
	return s.pdfs.Get(ctx, id)
}

// SetPaperPdf stores data as the PDF of paper id, replacing any previous one.
func (s *Service) SetPaperPdf(ctx context.Context, id string, data []byte) error {
	if _, err := s.GetPaper(ctx, id); err != nil {
		return err
	}
	if len(data) == 0 {
		return common.NewInvalidArgument("pdf", "must not be empty")
	}
	return s.pdfs.Put(ctx, id, data)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
