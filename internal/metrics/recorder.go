package metrics

import "time"

// FetchOutcome enumerates asset fetch results.
type FetchOutcome string

const (
	FetchSuccess   FetchOutcome = "success"
	FetchHTTPError FetchOutcome = "http_error"
	FetchTransport FetchOutcome = "transport_error"
)

// ConversionOutcome enumerates conversion results.
type ConversionOutcome string

const (
	ConversionSuccess ConversionOutcome = "success"
	ConversionFailed  ConversionOutcome = "failed"
)

// Recorder defines observability hooks for the conversion pipeline.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveFetchDuration(d time.Duration, outcome FetchOutcome)
	IncFetchResult(outcome FetchOutcome)
	ObserveConversionDuration(d time.Duration)
	IncConversion(outcome ConversionOutcome)
	IncUnknownKind(category, kind string) // category: node|widget
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveFetchDuration(time.Duration, FetchOutcome) {}
func (NoopRecorder) IncFetchResult(FetchOutcome)                      {}
func (NoopRecorder) ObserveConversionDuration(time.Duration)          {}
func (NoopRecorder) IncConversion(ConversionOutcome)                  {}
func (NoopRecorder) IncUnknownKind(string, string)                    {}

var _ Recorder = NoopRecorder{}
