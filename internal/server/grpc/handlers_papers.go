package grpc

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) GetPaperById(ctx context.Context, req *api.Id) (*models.Paper, error) {
	p, err := s.service.GetPaper(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GRPCServer) CreatePaper(ctx context.Context, req *models.PaperSpec) (*models.Paper, error) {
	p, err := s.service.CreatePaper(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GRPCServer) UpdatePaper(ctx context.Context, req *api.Update[models.PaperPatch]) (*models.Paper, error) {
	p, err := s.service.UpdatePaper(ctx, req.ID, req.Patch, req.UpdateMask)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GRPCServer) GetForwardReferencedPapers(ctx context.Context, req *api.Id) (*api.List[models.Paper], error) {
	ps, err := s.service.GetForwardReferencedPapers(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(ps), nil
}

func (s *GRPCServer) GetBackwardReferencedPapers(ctx context.Context, req *api.Id) (*api.List[models.Paper], error) {
	ps, err := s.service.GetBackwardReferencedPapers(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return api.NewList(ps), nil
}

func (s *GRPCServer) GetPaperPdf(ctx context.Context, req *api.Id) (*api.Blob, error) {
	data, err := s.service.GetPaperPdf(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &api.Blob{Data: data}, nil
}

func (s *GRPCServer) SetPaperPdf(ctx context.Context, req *api.PdfUpdate) (*emptypb.Empty, error) {
	return empty(s.service.SetPaperPdf(ctx, req.PaperID, req.Data))
}
