package controllers

import (
	stderrors "errors"
	"strconv"

	"uninest/dto"
	"uninest/errors"
	"uninest/models"
	"uninest/response"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps a service failure onto the HTTP envelope.
func handleServiceError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		switch appErr.Code {
		case errors.ErrCodeForbidden:
			response.Forbidden(c)
		case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
			response.Unauthorized(c)
		case errors.ErrCodeUserNotFound, errors.ErrCodeDBNotFound:
			response.NotFound(c)
		case errors.ErrCodeNoRoomsAvailable, errors.ErrCodeAlreadyReviewed, errors.ErrCodeUserExists:
			response.Conflict(c, appErr.Message)
		case errors.ErrCodeRateLimited:
			response.TooManyRequests(c)
		case errors.ErrCodeDBError:
			response.ServerError(c)
		default:
			response.BadRequest(c, appErr.Message)
		}
		return
	}

	switch {
	case stderrors.Is(err, errors.ErrBookingNotFound),
		stderrors.Is(err, errors.ErrHostelNotFound),
		stderrors.Is(err, errors.ErrRoomTypeNotFound),
		stderrors.Is(err, errors.ErrUserNotFound):
		response.NotFound(c)
	case stderrors.Is(err, errors.ErrForbidden):
		response.Forbidden(c)
	case stderrors.Is(err, errors.ErrNoRoomsAvailable):
		response.Conflict(c, "No rooms available")
	case stderrors.Is(err, errors.ErrInvalidTransition):
		response.BadRequest(c, "Invalid status transition")
	case stderrors.Is(err, errors.ErrInventoryInconsistent):
		response.Conflict(c, "Room inventory inconsistent")
	default:
		response.ServerError(c)
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func queryFloat(c *gin.Context, name string) float64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// toBookingResponse converts a booking to its public shape.
func toBookingResponse(booking *models.Booking) dto.BookingResponse {
	resp := dto.BookingResponse{
		ID:         booking.ID,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
		TotalPrice: booking.TotalPrice,
		Status:     models.BookingStatusLabel(booking.Status),
		Message:    booking.Message,
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}
	if booking.Student != nil {
		resp.Student = dto.ActorResponse{
			ID:        booking.Student.ID,
			FirstName: booking.Student.FirstName,
			LastName:  booking.Student.LastName,
			Email:     booking.Student.Email,
			Phone:     booking.Student.Phone,
		}
	}
	if booking.Hostel != nil {
		resp.Hostel = dto.BookingHostelResponse{
			ID:      booking.Hostel.ID,
			Name:    booking.Hostel.Name,
			Address: booking.Hostel.Address,
			Owner: dto.ActorResponse{
				ID:        booking.Hostel.Owner.ID,
				FirstName: booking.Hostel.Owner.FirstName,
				LastName:  booking.Hostel.Owner.LastName,
				Phone:     booking.Hostel.Owner.Phone,
			},
		}
	}
	if booking.RoomType != nil {
		resp.RoomType = dto.BookingRoomTypeResponse{
			ID:            booking.RoomType.ID,
			Name:          booking.RoomType.Name,
			Capacity:      booking.RoomType.Capacity,
			PricePerMonth: booking.RoomType.PricePerMonth,
			Amenities:     booking.RoomType.Amenities,
		}
	}
	return resp
}
