package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashokahotel/hotel-booking-backend/internal/booking"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/request"
	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/response"
	"github.com/ashokahotel/hotel-booking-backend/internal/receipt"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /api/bookings (guest self-service, multipart form).
func (h *Handler) Submit(c *gin.Context) {
	req, err := parseSubmitForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"bookingId": b.BookingID,
		"message":   "Booking submitted successfully",
	})
}

// StaffBook handles POST /api/admin/book-room; identical form, but the booking
// starts confirmed.
func (h *Handler) StaffBook(c *gin.Context) {
	req, err := parseSubmitForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.SubmitAsStaff(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"bookingId": b.BookingID,
		"message":   "Room booked successfully by admin",
	})
}

// List handles GET /api/admin/bookings.
func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	response.OK(c, gin.H{"bookings": items})
}

// UpdateStatus handles PUT /api/admin/bookings/:id.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, booking.ErrInvalidStatus)
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), booking.UpdateStatusRequest{
		Status:        body.Status,
		PaymentStatus: body.PaymentStatus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Status updated"})
}

// Stats handles GET /api/admin/stats.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"stats": StatsResponse{
		TotalBookings:   stats.Total,
		TodayBookings:   stats.Today,
		PendingBookings: stats.Pending,
	}})
}

// parseSubmitForm maps the multipart booking form to a SubmitRequest.
// Numeric fields arrive as strings; parse failures are validation errors.
func parseSubmitForm(c *gin.Context) (booking.SubmitRequest, error) {
	var req booking.SubmitRequest

	req.Fullname = c.PostForm("fullname")
	req.Mobile = c.PostForm("mobile")
	req.RoomType = c.PostForm("room")
	req.Occupancy = c.PostForm("occupancy")
	req.SpecialRequests = c.PostForm("special_requests")

	adults, err := strconv.Atoi(c.PostForm("adult"))
	if err != nil {
		return req, booking.ErrInvalidAdults
	}
	req.Adults = adults

	if v := c.PostForm("children"); v != "" {
		children, err := strconv.Atoi(v)
		if err != nil {
			return req, booking.ErrInvalidChildren
		}
		req.Children = children
	}

	amount, err := strconv.Atoi(c.PostForm("total_amount"))
	if err != nil {
		return req, booking.ErrInvalidAmount
	}
	req.TotalAmount = amount

	file, err := request.File(c, "payment_receipt")
	if err != nil {
		return req, err
	}
	if file != nil {
		req.Receipt = &receipt.Upload{
			Filename:    file.Filename,
			ContentType: file.ContentType,
			Content:     file.Content,
		}
	}

	return req, nil
}
