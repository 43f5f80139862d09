// Package genai manages the lifecycle of a single reusable on-device model
// session: availability probing, gated creation with download monitoring,
// polling, and teardown.
package genai

import (
	"context"
	"errors"
)

// Availability reports whether the model runtime can serve requests.
type Availability string

const (
	// AvailabilityReadily means the model is downloaded and ready.
	AvailabilityReadily Availability = "readily"
	// AvailabilityAfterDownload means the runtime is up but the model
	// must be downloaded first; creating a session triggers the download.
	AvailabilityAfterDownload Availability = "after-download"
	// AvailabilityNo means the runtime is unreachable or unsupported.
	AvailabilityNo Availability = "no"
)

// Sentinel errors used to classify session failures.
var (
	// ErrActivationRequired indicates creation was attempted without a
	// satisfied user-presence precondition (downloads need consent).
	ErrActivationRequired = errors.New("user activation required to download model")

	// ErrQuota indicates the runtime refused the request for quota reasons.
	ErrQuota = errors.New("model quota exceeded")
)

// Options is the fixed option set used for both availability probes and
// session creation. Backends key availability decisions off the options, so
// the same value must be passed to both calls.
type Options struct {
	Model                  string
	Temperature            float64
	TopK                   int
	SharedContext          string
	ExpectedInputLanguages []string
	OutputLanguage         string
}

// Session is a live model session capable of generating short responses.
type Session interface {
	// Summarize sends a prompt with supporting context and returns the
	// generated text.
	Summarize(ctx context.Context, prompt, promptContext string) (string, error)

	// Destroy releases the session's underlying resources.
	Destroy() error
}

// Runtime is the on-device model runtime collaborator.
type Runtime interface {
	// Availability probes the runtime with the given options.
	Availability(ctx context.Context, opts Options) (Availability, error)

	// Create builds a session, invoking progress with a 0-100 percentage
	// while a model download is in flight.
	Create(ctx context.Context, opts Options, progress func(pct float64)) (Session, error)
}
