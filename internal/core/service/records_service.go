package service

import (
	"context"

	"github.com/hospitalhq/records-system/internal/core/domain"
	"github.com/hospitalhq/records-system/internal/core/ports"
)

// RecordsService exposes read access to hospital client profiles and their
// linked records. It is a thin wrapper over the repository; authorization
// happens upstream in the policy middleware.
type RecordsService struct {
	repo ports.ClientRepository
}

func NewRecordsService(repo ports.ClientRepository) *RecordsService {
	return &RecordsService{repo: repo}
}

func (s *RecordsService) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RecordsService) GetClientByUserID(ctx context.Context, userID int64) (*domain.Client, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *RecordsService) ListAppointments(ctx context.Context, clientID int64) ([]domain.Appointment, error) {
	if _, err := s.repo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListAppointments(ctx, clientID)
}

func (s *RecordsService) ListMedicalRecords(ctx context.Context, clientID int64) ([]domain.MedicalRecord, error) {
	if _, err := s.repo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListMedicalRecords(ctx, clientID)
}

func (s *RecordsService) ListBillings(ctx context.Context, clientID int64) ([]domain.Billing, error) {
	if _, err := s.repo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListBillings(ctx, clientID)
}
