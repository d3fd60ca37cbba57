// Package attribution combines the two deferred deep-link channels — the
// clipboard deep link and the install-referrer payload — into a single
// attribution event for application code.
package attribution

import (
	"context"

	"github.com/google/uuid"

	"github.com/linktrace/linktrace/internal/clipboard"
	"github.com/linktrace/linktrace/internal/deeplink"
	"github.com/linktrace/linktrace/internal/referrer"
	"github.com/linktrace/linktrace/internal/utils"
)

// Source reports which channel(s) produced attribution context.
type Source string

const (
	SourceNone      Source = "none"
	SourceClipboard Source = "clipboard"
	SourceReferrer  Source = "referrer"
	SourceBoth      Source = "both"
)

// Event is the outcome of one attribution attempt. Either or both of Link
// and Referrer may be nil.
type Event struct {
	ID       string
	Link     *deeplink.Match
	Referrer *referrer.Payload
	Source   Source
}

// Params merges parameters from both channels. Clipboard deep-link
// parameters win over referrer parameters on key collision, since the deep
// link is the more specific signal.
func (e *Event) Params() map[string]string {
	merged := make(map[string]string)
	if e.Referrer != nil {
		for k, v := range e.Referrer.Params() {
			merged[k] = v
		}
	}
	if e.Link != nil {
		for k, v := range e.Link.Params() {
			merged[k] = v
		}
	}
	return merged
}

// Service resolves deferred deep-link attribution. ReadClipboard defaults
// to the system clipboard and exists as a seam for tests.
type Service struct {
	Patterns      []string
	Options       deeplink.Options
	Referrer      referrer.Client
	ReadClipboard func() string
}

// NewService builds a Service with the full matcher defaults and the given
// referrer client, which is usually already wrapped in referrer.NewCached.
func NewService(patterns []string, client referrer.Client) *Service {
	return &Service{
		Patterns: patterns,
		Options:  deeplink.DefaultOptions(),
		Referrer: client,
	}
}

// Attribute runs one attribution attempt. Clipboard failures degrade to an
// absent link, never an error; a referrer failure surfaces alongside
// whatever the clipboard channel produced, so callers can use a clipboard
// match even when the referrer service is unavailable.
func (s *Service) Attribute(ctx context.Context) (*Event, error) {
	event := &Event{ID: uuid.New().String(), Source: SourceNone}

	readClipboard := s.ReadClipboard
	if readClipboard == nil {
		readClipboard = clipboard.ReadText
	}
	if text := readClipboard(); text != "" {
		event.Link = deeplink.ResolveWith(text, s.Patterns, s.Options)
	}

	var refErr error
	if s.Referrer != nil {
		event.Referrer, refErr = s.Referrer.Fetch(ctx)
		if refErr != nil {
			utils.Debug("attribution %s: referrer fetch failed: %v", event.ID, refErr)
		}
	}

	switch {
	case event.Link != nil && event.Referrer != nil:
		event.Source = SourceBoth
	case event.Link != nil:
		event.Source = SourceClipboard
	case event.Referrer != nil:
		event.Source = SourceReferrer
	}

	utils.Debug("attribution %s: source=%s", event.ID, event.Source)
	return event, refErr
}
