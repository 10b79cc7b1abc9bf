package jukebox

import (
	"errors"

	"github.com/desertthunder/jukebox/internal/services"
	"github.com/desertthunder/jukebox/internal/shared"
)

// AlertKind classifies a failed search for the user.
type AlertKind int

const (
	AlertCredentials AlertKind = iota // no usable API key, or the service rejected it
	AlertUpstream                     // the service answered with an error object
	AlertTransport                    // the request failed before an answer arrived
)

func (k AlertKind) String() string {
	switch k {
	case AlertCredentials:
		return "credentials"
	case AlertUpstream:
		return "upstream"
	case AlertTransport:
		return "transport"
	default:
		return ""
	}
}

// Alert is a user-facing error message for a failed operation.
type Alert struct {
	Kind    AlertKind
	Message string
	Err     error
}

func (a *Alert) Error() string { return a.Message }

func (a *Alert) Unwrap() error { return a.Err }

// AlertFor maps a search error to the message shown to the user.
func AlertFor(err error) *Alert {
	if apiErr, ok := services.IsAPIError(err); ok {
		kind := AlertUpstream
		if errors.Is(err, shared.ErrInvalidCredentials) {
			kind = AlertCredentials
		}
		return &Alert{Kind: kind, Message: "YouTube API error: " + apiErr.Message, Err: err}
	}

	if errors.Is(err, shared.ErrMissingCredentials) {
		return &Alert{
			Kind:    AlertCredentials,
			Message: "Please set your YouTube Data API key (credentials.youtube.api_key or " + shared.APIKeyEnv + ")",
			Err:     err,
		}
	}

	if errors.Is(err, shared.ErrTimeout) {
		return &Alert{Kind: AlertTransport, Message: "Search failed: YouTube did not answer in time", Err: err}
	}

	return &Alert{Kind: AlertTransport, Message: "Search failed", Err: err}
}
