package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	out := &dto.Metric{}
	require.Nil(t, m.Write(out))
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	return out.Gauge.GetValue()
}

func TestMetrics(t *testing.T) {
	t.Run(`transition counter`, func(t *testing.T) {
		before := value(t, permitTransitionsTotal.WithLabelValues("PTW", "APPROVED"))
		RecordTransition("PTW", "APPROVED")
		require.Equal(t, before+1, value(t, permitTransitionsTotal.WithLabelValues("PTW", "APPROVED")))
	})

	t.Run(`pending gauge`, func(t *testing.T) {
		SetNotificationsPending(7)
		require.Equal(t, float64(7), value(t, notificationsPending))
	})
}
