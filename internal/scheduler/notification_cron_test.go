package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCleaner struct{ calls int }

func (c *countingCleaner) DeleteExpiredNotifications(ctx context.Context) error {
	c.calls++
	return nil
}

func TestStartNotificationCronJobs(t *testing.T) {
	cleaner := &countingCleaner{}
	c, err := StartNotificationCronJobs(cleaner)
	require.NoError(t, err)
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Next.IsZero())

	entries[0].Job.Run()
	assert.Equal(t, 1, cleaner.calls)
}
