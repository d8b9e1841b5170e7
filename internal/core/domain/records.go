package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")

// Client links a user account to its hospital client profile.
type Client struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	User   *User `json:"user,omitempty"`
}

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// Appointment is a scheduled visit between a client and clinical staff.
type Appointment struct {
	ID       int64             `json:"id"`
	ClientID int64             `json:"client_id"`
	DoctorID int64             `json:"doctor_id"`
	NurseID  int64             `json:"nurse_id"`
	Date     time.Time         `json:"date"`
	Status   AppointmentStatus `json:"status"`
}

// MedicalRecord is a diagnosis/treatment entry for a client.
type MedicalRecord struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	Diagnosis  string    `json:"diagnosis"`
	Treatment  string    `json:"treatment"`
	RecordDate time.Time `json:"record_date"`
}

// Billing is an issued invoice for a client.
type Billing struct {
	ID         int64      `json:"id"`
	ClientID   int64      `json:"client_id"`
	Amount     float64    `json:"amount"`
	DateIssued time.Time  `json:"date_issued"`
	DatePaid   *time.Time `json:"date_paid,omitempty"`
	IsPaid     bool       `json:"is_paid"`
}
