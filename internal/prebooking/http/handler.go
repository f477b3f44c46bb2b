package http

import (
	"github.com/gin-gonic/gin"

	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/apperror"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/request"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/response"
	"github.com/ashokahotel/hotel-booking-backend/internal/prebooking"
	"github.com/ashokahotel/hotel-booking-backend/internal/receipt"
)

type Handler struct {
	service prebooking.Service
}

func NewHandler(service prebooking.Service) *Handler {
	return &Handler{service: service}
}

// CreateLink handles POST /api/admin/create-booking-link.
func (h *Handler) CreateLink(c *gin.Context) {
	var body CreateLinkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.BadRequest("invalid request body"))
		return
	}

	p, err := h.service.CreateLink(c.Request.Context(), body.details())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"preBookingId": p.PreBookingID,
		"bookingLink":  p.BookingLink,
		"message":      "Booking link created successfully",
	})
}

// Resolve handles GET /api/pre-booking/:id for the guest completion page.
func (h *Handler) Resolve(c *gin.Context) {
	p, err := h.service.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"preBooking": NewPreBookingResponse(p)})
}

// Complete handles POST /api/complete-booking/:id (multipart, optional receipt).
func (h *Handler) Complete(c *gin.Context) {
	var upload *receipt.Upload
	if file, err := request.File(c, "payment_receipt"); err == nil && file != nil {
		upload = &receipt.Upload{
			Filename:    file.Filename,
			ContentType: file.ContentType,
			Content:     file.Content,
		}
	}

	b, err := h.service.Complete(c.Request.Context(), c.Param("id"), upload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"bookingId": b.BookingID,
		"message":   "Booking completed successfully",
	})
}
