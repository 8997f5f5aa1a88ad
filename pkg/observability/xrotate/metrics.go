package xrotate

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/omeyang/xlogkit/xrotate"

	metricRotateTotal  = "xlogkit.rotate.total"
	metricRotateErrors = "xlogkit.rotate.errors"

	attrTrigger = "trigger"
)

// 轮转触发原因
const (
	triggerSize   = "size"
	triggerTime   = "time"
	triggerManual = "manual"
)

type rotateMetrics struct {
	total  metric.Int64Counter
	errors metric.Int64Counter
}

func newRotateMetrics(mp metric.MeterProvider) (*rotateMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	total, err := meter.Int64Counter(
		metricRotateTotal,
		metric.WithDescription("completed log file rotations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xrotate: create counter failed: %w", err)
	}

	errs, err := meter.Int64Counter(
		metricRotateErrors,
		metric.WithDescription("failed log file rotations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xrotate: create counter failed: %w", err)
	}

	return &rotateMetrics{total: total, errors: errs}, nil
}

func (m *rotateMetrics) record(trigger string, err error) {
	opt := metric.WithAttributes(attribute.String(attrTrigger, trigger))
	if err != nil {
		m.errors.Add(context.Background(), 1, opt)
		return
	}
	m.total.Add(context.Background(), 1, opt)
}
