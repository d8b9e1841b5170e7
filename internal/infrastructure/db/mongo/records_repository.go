package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

const (
	clientsCollection        = "clients"
	appointmentsCollection   = "appointments"
	medicalRecordsCollection = "medical_records"
	billingsCollection       = "billings"
)

// ClientRepository reads client profiles and their linked records. The
// authorization core is the only writer of users; these collections are
// maintained by the surrounding CRUD endpoints, so this repository is
// read-only.
type ClientRepository struct {
	clients      *mongo.Collection
	appointments *mongo.Collection
	records      *mongo.Collection
	billings     *mongo.Collection
	users        *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{
		clients:      db.Collection(clientsCollection),
		appointments: db.Collection(appointmentsCollection),
		records:      db.Collection(medicalRecordsCollection),
		billings:     db.Collection(billingsCollection),
		users:        db.Collection(usersCollection),
	}
}

type mongoClient struct {
	ID     int64 `bson:"_id"`
	UserID int64 `bson:"user_id"`
}

type mongoAppointment struct {
	ID       int64     `bson:"_id"`
	ClientID int64     `bson:"client_id"`
	DoctorID int64     `bson:"doctor_id"`
	NurseID  int64     `bson:"nurse_id"`
	Date     time.Time `bson:"date"`
	Status   string    `bson:"status"`
}

type mongoMedicalRecord struct {
	ID         int64     `bson:"_id"`
	ClientID   int64     `bson:"client_id"`
	Diagnosis  string    `bson:"diagnosis"`
	Treatment  string    `bson:"treatment"`
	RecordDate time.Time `bson:"record_date"`
}

type mongoBilling struct {
	ID         int64      `bson:"_id"`
	ClientID   int64      `bson:"client_id"`
	Amount     float64    `bson:"amount"`
	DateIssued time.Time  `bson:"date_issued"`
	DatePaid   *time.Time `bson:"date_paid,omitempty"`
	IsPaid     bool       `bson:"is_paid"`
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ClientRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*domain.Client, error) {
	var mc mongoClient
	if err := r.clients.FindOne(ctx, filter).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}

	client := &domain.Client{ID: mc.ID, UserID: mc.UserID}

	// Embed the linked user when present; a dangling reference is not fatal.
	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"_id": mc.UserID}).Decode(&mu); err == nil {
		client.User = mu.toDomain()
	}

	return client, nil
}

func (r *ClientRepository) ListAppointments(ctx context.Context, clientID int64) ([]domain.Appointment, error) {
	cursor, err := r.appointments.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Appointment
	for cursor.Next(ctx) {
		var ma mongoAppointment
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		out = append(out, domain.Appointment{
			ID:       ma.ID,
			ClientID: ma.ClientID,
			DoctorID: ma.DoctorID,
			NurseID:  ma.NurseID,
			Date:     ma.Date,
			Status:   domain.AppointmentStatus(ma.Status),
		})
	}
	return out, cursor.Err()
}

func (r *ClientRepository) ListMedicalRecords(ctx context.Context, clientID int64) ([]domain.MedicalRecord, error) {
	cursor, err := r.records.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("list medical records: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.MedicalRecord
	for cursor.Next(ctx) {
		var mr mongoMedicalRecord
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode medical record: %w", err)
		}
		out = append(out, domain.MedicalRecord{
			ID:         mr.ID,
			ClientID:   mr.ClientID,
			Diagnosis:  mr.Diagnosis,
			Treatment:  mr.Treatment,
			RecordDate: mr.RecordDate,
		})
	}
	return out, cursor.Err()
}

func (r *ClientRepository) ListBillings(ctx context.Context, clientID int64) ([]domain.Billing, error) {
	cursor, err := r.billings.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("list billings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Billing
	for cursor.Next(ctx) {
		var mb mongoBilling
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode billing: %w", err)
		}
		out = append(out, domain.Billing{
			ID:         mb.ID,
			ClientID:   mb.ClientID,
			Amount:     mb.Amount,
			DateIssued: mb.DateIssued,
			DatePaid:   mb.DatePaid,
			IsPaid:     mb.IsPaid,
		})
	}
	return out, cursor.Err()
}
