package ports

import (
	"context"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

// ClientRepository reads hospital client profiles and their linked records.
type ClientRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Client, error)
	ListAppointments(ctx context.Context, clientID int64) ([]domain.Appointment, error)
	ListMedicalRecords(ctx context.Context, clientID int64) ([]domain.MedicalRecord, error)
	ListBillings(ctx context.Context, clientID int64) ([]domain.Billing, error)
}
