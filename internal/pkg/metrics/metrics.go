package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for applicant intake. A nil *Metrics is a no-op.
type Metrics struct {
	// Section saves by section and outcome (created, updated, invalid, conflict, failed)
	SectionSaves *prometheus.CounterVec

	// Validation failures by section
	ValidationFailures *prometheus.CounterVec

	// Document uploads by category and outcome
	DocumentUploads *prometheus.CounterVec

	// Legacy address extractions by rule
	AddressExtractions *prometheus.CounterVec

	SaveLatency prometheus.Histogram
}

// New registers the metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SectionSaves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_section_saves_total",
			Help: "Total section saves by section and outcome",
		}, []string{"section", "outcome"}),

		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_validation_failures_total",
			Help: "Total field validation failures by section",
		}, []string{"section"}),

		DocumentUploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_document_uploads_total",
			Help: "Total document uploads by category and outcome",
		}, []string{"category", "outcome"}),

		AddressExtractions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_address_extractions_total",
			Help: "Total legacy address extractions by matching rule",
		}, []string{"method"}),

		SaveLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_section_save_duration_seconds",
			Help:    "Duration of section saves including validation and storage",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncrementSectionSave(section, outcome string) {
	if m != nil {
		m.SectionSaves.WithLabelValues(section, outcome).Inc()
	}
}

// AddValidationFailures records n failing fields for section.
func (m *Metrics) AddValidationFailures(section string, n int) {
	if m != nil && n > 0 {
		m.ValidationFailures.WithLabelValues(section).Add(float64(n))
	}
}

func (m *Metrics) IncrementDocumentUpload(category, outcome string) {
	if m != nil {
		m.DocumentUploads.WithLabelValues(category, outcome).Inc()
	}
}

func (m *Metrics) IncrementAddressExtraction(method string) {
	if m != nil {
		m.AddressExtractions.WithLabelValues(method).Inc()
	}
}

func (m *Metrics) ObserveSaveLatency(d time.Duration) {
	if m != nil {
		m.SaveLatency.Observe(d.Seconds())
	}
}
