package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CopyEventsRecorded counts accepted tracking requests by device class.
var CopyEventsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "copy_events_recorded_total",
	Help: "Number of copy click events accepted by the tracking endpoint.",
}, []string{"device"})

// CopyEventsRejected counts tracking requests refused before recording.
var CopyEventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "copy_events_rejected_total",
	Help: "Number of tracking requests rejected, by reason.",
}, []string{"reason"})
