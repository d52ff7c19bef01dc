package provider

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Result is the outcome of a fulfillment attempt. A declined top-up is a
// normal Result with Success=false, not an error; errors are reserved for the
// call itself failing (timeout, cancellation).
type Result struct {
	Success   bool
	Reference string
}

type Provider interface {
	TopUp(ctx context.Context, providerName, customerNumber string, amount decimal.Decimal) (*Result, error)
}

const (
	simulatedLatency = 100 * time.Millisecond

	// Providers whose name contains "test" decline half their requests so the
	// refund path stays exercised in every environment.
	testSuccessRate    = 0.5
	defaultSuccessRate = 0.9
)

// Simulated stands in for the external telco/utility fulfillment systems.
type Simulated struct {
	latency   time.Duration
	randFloat func() float64
}

func NewSimulated() *Simulated {
	return &Simulated{
		latency:   simulatedLatency,
		randFloat: rand.Float64,
	}
}

func (s *Simulated) TopUp(ctx context.Context, providerName, customerNumber string, amount decimal.Decimal) (*Result, error) {
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	rate := defaultSuccessRate
	if strings.Contains(strings.ToLower(providerName), "test") {
		rate = testSuccessRate
	}

	if s.randFloat() >= rate {
		zap.L().Info("provider declined top-up",
			zap.String("provider", providerName),
			zap.String("customerNumber", customerNumber),
		)
		return &Result{Success: false}, nil
	}

	reference := fmt.Sprintf("%s-%d-%s", strings.ToUpper(providerName), time.Now().UnixMilli(), uuid.NewString()[:6])
	return &Result{Success: true, Reference: reference}, nil
}
