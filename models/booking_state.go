package models

import "errors"

// BookingState is the state-machine view of a booking status. Each state
// answers which transitions leave it; anything else is rejected.
type BookingState interface {
	Confirm(b *Booking) error
	Cancel(b *Booking) error
	Complete(b *Booking) error
}

// PendingState: initial state, set at creation.
type PendingState struct{}

func (s *PendingState) Confirm(b *Booking) error {
	b.Status = BookingStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(b *Booking) error {
	b.Status = BookingStatusCancelled
	return nil
}

func (s *PendingState) Complete(b *Booking) error {
	return errors.New("cannot complete a pending booking")
}

// ConfirmedState: owner accepted the booking, a room unit is reserved.
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(b *Booking) error {
	return errors.New("booking already confirmed")
}

func (s *ConfirmedState) Cancel(b *Booking) error {
	b.Status = BookingStatusCancelled
	return nil
}

func (s *ConfirmedState) Complete(b *Booking) error {
	b.Status = BookingStatusCompleted
	return nil
}

// CompletedState: terminal.
type CompletedState struct{}

func (s *CompletedState) Confirm(b *Booking) error {
	return errors.New("booking already completed")
}

func (s *CompletedState) Cancel(b *Booking) error {
	return errors.New("cannot cancel a completed booking")
}

func (s *CompletedState) Complete(b *Booking) error {
	return errors.New("booking already completed")
}

// CancelledState: terminal.
type CancelledState struct{}

func (s *CancelledState) Confirm(b *Booking) error {
	return errors.New("cannot confirm a cancelled booking")
}

func (s *CancelledState) Cancel(b *Booking) error {
	return errors.New("booking already cancelled")
}

func (s *CancelledState) Complete(b *Booking) error {
	return errors.New("cannot complete a cancelled booking")
}

// GetBookingState returns the state object for a status value.
func GetBookingState(status int) BookingState {
	switch status {
	case BookingStatusPending:
		return &PendingState{}
	case BookingStatusConfirmed:
		return &ConfirmedState{}
	case BookingStatusCompleted:
		return &CompletedState{}
	case BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}
