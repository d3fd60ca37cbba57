// Package referrer retrieves the install-referrer payload: the flat
// key/value attribution context recorded by the platform's install-tracking
// service when the user followed a store link. The platform service is
// abstracted behind Client; this package supplies desktop stand-ins and the
// process-wide single-flight cache around whichever client is configured.
package referrer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/linktrace/linktrace/internal/deeplink"
)

// Code is a stable error code string surfaced to application code in place
// of platform-specific failures.
type Code string

const (
	CodeServiceUnavailable  Code = "service unavailable"
	CodeFeatureNotSupported Code = "feature not supported"
	CodeDeveloperError      Code = "developer error"
	CodePermissionError     Code = "permission error"
	CodeDisconnected        Code = "disconnected after retry"
)

// Error carries a stable code plus optional detail. Application code
// branches on Code, never on Detail.
type Error struct {
	Code   Code
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// CodeOf extracts the stable code from an error, or "" for non-referrer
// errors.
func CodeOf(err error) Code {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// Payload is the install-referrer context as delivered by the tracking
// service. InstallReferrer holds the raw key=value&key=value referrer
// string; the timestamps are unix seconds as reported by the store.
type Payload struct {
	InstallReferrer string            `json:"install_referrer"`
	ClickAt         int64             `json:"referrer_click_timestamp_seconds"`
	InstallBeganAt  int64             `json:"install_begin_timestamp_seconds"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// Params decodes the InstallReferrer string into a parameter map, using the
// same decoding rules as deep-link query strings.
func (p *Payload) Params() map[string]string {
	return deeplink.DecodeParams(p.InstallReferrer)
}

// Param looks up a single referrer parameter by name.
func (p *Payload) Param(name string) (string, bool) {
	v, ok := p.Params()[name]
	return v, ok
}

// Client fetches the install-referrer payload. Implementations may block on
// platform IPC and must honor ctx.
type Client interface {
	Fetch(ctx context.Context) (*Payload, error)
}

// StaticClient returns a fixed payload or error. Used in tests and by the
// CLI when a payload is supplied inline.
type StaticClient struct {
	Payload *Payload
	Err     error
}

func (c *StaticClient) Fetch(ctx context.Context) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Payload, c.Err
}

// FileClient reads a JSON-encoded payload from a file, the desktop stand-in
// for the platform service.
type FileClient struct {
	Path string
}

func (c *FileClient) Fetch(ctx context.Context) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Code: CodeFeatureNotSupported, Detail: "no payload file at " + c.Path}
		}
		return nil, &Error{Code: CodePermissionError, Detail: err.Error()}
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &Error{Code: CodeDeveloperError, Detail: "malformed payload file: " + err.Error()}
	}
	return &p, nil
}

// EnvClientVar is the variable EnvClient reads, holding a raw
// key=value&key=value referrer string.
const EnvClientVar = "LINKTRACE_REFERRER"

// EnvClient reads the referrer string from the environment.
type EnvClient struct{}

func (c *EnvClient) Fetch(ctx context.Context) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, ok := os.LookupEnv(EnvClientVar)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, &Error{Code: CodeFeatureNotSupported, Detail: EnvClientVar + " not set"}
	}
	return &Payload{InstallReferrer: strings.TrimSpace(raw)}, nil
}
