package handlers

import (
	"errors"
	"net/http"

	"roombooking/middleware"
	"roombooking/models"
	"roombooking/services/booking"
	"roombooking/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking recorder over HTTP.
type BookingHandler struct {
	Recorder booking.BookingRecorder
	// HostAvailable is resolved once at startup: true when the chat
	// announcer could be initialized.
	HostAvailable bool
	Logger        *zap.Logger
}

func NewBookingHandler(recorder booking.BookingRecorder, hostAvailable bool, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Recorder: recorder, HostAvailable: hostAvailable, Logger: logger}
}

type submitResponse struct {
	models.SubmissionResult
	Status    string `json:"status"`
	CloseView bool   `json:"closeView"`
}

// SubmitBooking handles POST /api/bookings.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, h.Logger, http.StatusBadRequest, "invalidInput", "Invalid booking payload", err.Error())
		return
	}

	env := models.Environment{HostAvailable: h.HostAvailable, Identity: middleware.IdentityFrom(c)}
	result, err := h.Recorder.Submit(c.Request.Context(), req, env)
	if err != nil {
		var vErr *booking.ValidationError
		var sErr *booking.StorageError
		switch {
		case errors.As(err, &vErr):
			utils.JSONError(c, h.Logger, http.StatusBadRequest, vErr.Code, booking.StatusMessage(nil, err), vErr.Message)
		case errors.As(err, &sErr):
			h.Logger.Error("SubmitBooking: storage failure", zap.Error(err))
			utils.JSONError(c, h.Logger, http.StatusServiceUnavailable, "storageError", booking.StatusMessage(nil, err), "")
		default:
			h.Logger.Error("SubmitBooking: unexpected failure", zap.Error(err))
			utils.JSONError(c, h.Logger, http.StatusInternalServerError, "internalError", booking.StatusMessage(nil, err), "")
		}
		return
	}

	c.JSON(http.StatusCreated, submitResponse{
		SubmissionResult: *result,
		Status:           booking.StatusMessage(result, nil),
		CloseView:        env.Embedded(),
	})
}

// ListBookings handles GET /api/bookings?date=&roomId=.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var filter models.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.JSONError(c, h.Logger, http.StatusBadRequest, "invalidInput", "Invalid filter", err.Error())
		return
	}

	bookings, err := h.Recorder.List(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Error("ListBookings: storage failure", zap.Error(err))
		utils.JSONError(c, h.Logger, http.StatusServiceUnavailable, "storageError", "Bookings are unavailable right now", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GetCatalog handles GET /api/catalog.
func (h *BookingHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.Recorder.Catalog())
}
