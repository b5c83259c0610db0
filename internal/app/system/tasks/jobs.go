// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dalemusser/stratametrics/internal/app/system/apiclient"
	"github.com/dalemusser/stratametrics/internal/app/system/metrics"
	"go.uber.org/zap"
)

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend states tracked by the probe.
const (
	backendUnknown int32 = iota
	backendUp
	backendDown
)

// BackendProbeJob periodically pings the analytics backend and records the
// result in the backend_up gauge. Transitions between up and down are logged
// once each; a backend that stays down is not logged on every tick.
func BackendProbeJob(api Pinger, interval, timeout time.Duration, logger *zap.Logger) Job {
	var last atomic.Int32

	return Job{
		Name:     "backend-probe",
		Interval: interval,
		Timeout:  timeout,
		Run: func(ctx context.Context) error {
			err := api.Ping(ctx)
			if err != nil && errors.Is(ctx.Err(), context.Canceled) {
				return err
			}
			metrics.SetBackendUp(err == nil)

			if err == nil {
				if last.Swap(backendUp) == backendDown {
					logger.Info("analytics backend reachable again")
				}
				return nil
			}

			if last.Swap(backendDown) != backendDown {
				logger.Warn("analytics backend unreachable",
					zap.String("kind", apiclient.KindOf(err)),
					zap.Error(err))
			}
			return nil
		},
	}
}
