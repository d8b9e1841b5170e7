package ports

import (
	"context"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

type RecordsService interface {
	GetClient(ctx context.Context, id int64) (*domain.Client, error)
	GetClientByUserID(ctx context.Context, userID int64) (*domain.Client, error)
	ListAppointments(ctx context.Context, clientID int64) ([]domain.Appointment, error)
	ListMedicalRecords(ctx context.Context, clientID int64) ([]domain.MedicalRecord, error)
	ListBillings(ctx context.Context, clientID int64) ([]domain.Billing, error)
}
