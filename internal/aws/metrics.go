package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metric names published under the configured namespace.
const (
	MetricOrdersPlaced      = "OrdersPlaced"
	MetricInsufficientStock = "InsufficientStockRejections"
)

// Metrics publishes order counters to CloudWatch. All calls are best
// effort: failures are logged, never surfaced to request handling.
type Metrics struct {
	client    CloudWatchAPI
	namespace string
	logger    *zap.Logger
}

// NewMetrics returns a Metrics recorder bound to a namespace.
func NewMetrics(client CloudWatchAPI, namespace string, logger *zap.Logger) *Metrics {
	return &Metrics{client: client, namespace: namespace, logger: logger}
}

// Count publishes a count of 1 for the named metric.
func (m *Metrics) Count(ctx context.Context, name string) {
	one := 1.0
	input := &cloudwatch.PutMetricDataInput{
		Namespace: &m.namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: &name,
				Value:      &one,
				Unit:       cwtypes.StandardUnitCount,
			},
		},
	}
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Warn("put metric data failed", zap.String("metric", name), zap.Error(err))
	}
}
