package config

import "time"

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./libris.db"

	// DefaultLoanPeriod is how long a borrowed book may be kept
	DefaultLoanPeriod = 14 * 24 * time.Hour
)
