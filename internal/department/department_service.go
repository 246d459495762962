package department

import (
	"context"
	"strings"
)

type Service interface {
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToListResponse(rows []Summary) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		out = append(out, DepartmentResponse{Name: name, Headcount: r.Headcount, Active: r.Active})
	}
	return out
}
