package cmd

import "time"

// Config carries all runtime settings of the service. Populated from the
// environment in cmd/app; every field is required unless noted.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LedgerBaseURL string
	LedgerTimeout time.Duration

	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration

	QueueMaxDepth            int
	QueueBatchThreshold      int
	QueueTerminalGracePeriod time.Duration

	CommitterMaxBatchSize   int
	CommitterMaxInFlight    int
	CommitterMaxRetries     int
	CommitterBaseRetryDelay time.Duration

	// Six-field cron expressions.
	CommitSchedule string
	SweepSchedule  string
}
