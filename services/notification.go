package services

import (
	"encoding/json"

	"uninest/models"
	"uninest/services/logger"

	"github.com/olahol/melody"
)

// WSNotifier pushes booking lifecycle events to websocket clients and
// emails the student. Failures are logged, never propagated.
type WSNotifier struct {
	m   *melody.Melody
	log logger.Logger
}

func NewWSNotifier(m *melody.Melody, log logger.Logger) *WSNotifier {
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &WSNotifier{m: m, log: log}
}

type bookingEvent struct {
	Type      string `json:"type"`
	BookingID uint   `json:"bookingId"`
	HostelID  uint   `json:"hostelId"`
	Status    string `json:"status"`
	Previous  string `json:"previous"`
}

func (n *WSNotifier) BookingStatusChanged(booking *models.Booking, previousStatus int) {
	event := bookingEvent{
		Type:      "booking_status_changed",
		BookingID: booking.ID,
		HostelID:  booking.HostelID,
		Status:    models.BookingStatusLabel(booking.Status),
		Previous:  models.BookingStatusLabel(previousStatus),
	}

	if n.m != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			n.log.Error("marshal booking event: %v", err)
		} else if err := n.m.Broadcast(payload); err != nil {
			n.log.Error("broadcast booking event: %v", err)
		}
	}

	if booking.Student != nil && booking.Student.Email != "" {
		if err := SendBookingStatusEmail(booking.Student.Email, booking); err != nil {
			n.log.Error("send booking email to %s: %v", booking.Student.Email, err)
		}
	}
}

var _ BookingNotifier = (*WSNotifier)(nil)
