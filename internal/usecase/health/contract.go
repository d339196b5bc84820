package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Checker checks the availability of an upstream provider.
type Checker interface {
	HealthCheck(ctx context.Context) error
}
