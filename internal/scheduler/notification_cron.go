package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ExpiredNotificationCleaner deletes notifications past their expiry.
type ExpiredNotificationCleaner interface {
	DeleteExpiredNotifications(ctx context.Context) error
}

// StartNotificationCronJobs schedules the hourly cleanup and returns the running scheduler.
// Call Stop on shutdown.
func StartNotificationCronJobs(cleaner ExpiredNotificationCleaner) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := cleaner.DeleteExpiredNotifications(ctx); err != nil {
			logrus.WithError(err).Error("DeleteExpiredNotifications failed")
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
