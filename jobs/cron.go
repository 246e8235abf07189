package jobs

import (
	"context"
	"time"

	"uninest/utils"

	"github.com/robfig/cron/v3"
)

// BookingCompleter closes out confirmed bookings whose stay has ended.
type BookingCompleter interface {
	CompleteExpired(ctx context.Context, now time.Time) (int, error)
}

var bookingCompleter BookingCompleter

// SetBookingCompleter sets the implementation used by the nightly job.
func SetBookingCompleter(completer BookingCompleter) {
	bookingCompleter = completer
}

// InitCronJobs schedules the nightly booking sweep at midnight.
func InitCronJobs(c *cron.Cron) error {
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		if bookingCompleter == nil {
			utils.LogError("Booking completer not configured, skipping sweep")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		count, err := bookingCompleter.CompleteExpired(ctx, now)
		if err != nil {
			utils.LogError("Booking sweep failed: %v", err)
			return
		}
		utils.LogInfo("Booking sweep completed %d stays at %v", count, now)
	})
	if err != nil {
		return err
	}

	c.Start()
	utils.LogInfo("Cron jobs initialized successfully")
	return nil
}
