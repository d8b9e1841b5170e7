package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hospitalhq/records-system/internal/api/middleware"
	"github.com/hospitalhq/records-system/internal/api/response"
	"github.com/hospitalhq/records-system/internal/core/ports"
)

// ClientHandler serves the thin client-record read endpoints. Authorization
// is enforced by the policy middleware on each route; the handlers only do
// data access.
type ClientHandler struct {
	records ports.RecordsService
}

func NewClientHandler(records ports.RecordsService) *ClientHandler {
	return &ClientHandler{records: records}
}

// Get returns a client profile by id.
//
// @Summary      Get a client profile
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client id"
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	client, err := h.records.GetClient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response.Success(client, "Operation successful."))
}

// Me returns the client profile linked to the authenticated user.
//
// @Summary      Get my client profile
// @Tags         clients
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/clients/me [get]
func (h *ClientHandler) Me(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	client, err := h.records.GetClientByUserID(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response.Success(client, "Operation successful."))
}

// Appointments lists a client's appointments.
//
// @Summary      List a client's appointments
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/clients/{id}/appointments [get]
func (h *ClientHandler) Appointments(c echo.Context) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	apps, err := h.records.ListAppointments(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response.Success(apps, "Operation successful."))
}

// MedicalRecords lists a client's medical records.
//
// @Summary      List a client's medical records
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/clients/{id}/medical-records [get]
func (h *ClientHandler) MedicalRecords(c echo.Context) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	records, err := h.records.ListMedicalRecords(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response.Success(records, "Operation successful."))
}

// Bills lists a client's billing entries.
//
// @Summary      List a client's bills
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/clients/{id}/bills [get]
func (h *ClientHandler) Bills(c echo.Context) error {
	id, err := clientID(c)
	if err != nil {
		return err
	}

	bills, err := h.records.ListBillings(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response.Success(bills, "Operation successful."))
}

func clientID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "client id must be numeric")
	}
	return id, nil
}
