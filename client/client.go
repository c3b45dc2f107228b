// Package client is the public face of the library: a typed command
// surface over the Discord RPC session.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cenkalti/backoff/v4"

	"github.com/presenced/discord-ipc-go/proto"
	"github.com/presenced/discord-ipc-go/transport"
)

var (
	// ErrMissingAuthorizationCode is returned when an AUTHORIZE response
	// carries no authorization code.
	ErrMissingAuthorizationCode = errors.New("authorization response carries no code")

	// ErrAuthenticationFailed is returned when an AUTHENTICATE response
	// reports an error code.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Client announces a Rich Presence activity and invokes RPC commands on
// the local Discord application. It composes command payloads and
// delegates all wire work to the session. A Client is not safe for
// concurrent use; callers that share one must serialize access.
type Client struct {
	appID   string
	session *proto.Session
}

// Options ...
type Options struct {
	Handler proto.Handler
	Logger  *slog.Logger

	// Dial overrides endpoint discovery. Used in tests.
	Dial func() (transport.Conn, error)
	// NonceSource overrides request nonce generation. Used in tests.
	NonceSource func() string
}

// New returns a new disconnected Client for a Discord application id.
func New(appID string) *Client {
	return NewWithOptions(appID, Options{})
}

// NewWithOptions returns a new disconnected Client with explicit options.
func NewWithOptions(appID string, opts Options) *Client {
	return &Client{
		appID: appID,
		session: proto.NewSession(proto.Options{
			ClientID:    appID,
			Handler:     opts.Handler,
			Logger:      opts.Logger,
			Dial:        opts.Dial,
			NonceSource: opts.NonceSource,
		}),
	}
}

// Connect opens the IPC channel and performs the handshake.
func (c *Client) Connect() error {
	return c.session.Connect()
}

// ConnectWithRetry retries Connect with exponential backoff until it
// succeeds or ctx is cancelled. Reconnection stays caller-triggered;
// this helper only covers the window where Discord is still starting up.
func (c *Client) ConnectWithRetry(ctx context.Context) error {
	op := func() error {
		err := c.session.Connect()
		if errors.Is(err, proto.ErrAlreadyConnected) {
			return backoff.Permanent(err)
		}

		return err
	}

	return backoff.Retry(op, backoff.WithContext(backoff.NewExponentialBackOff(), ctx))
}

// Close terminates the connection, releasing the underlying channel.
func (c *Client) Close() error {
	return c.session.Close()
}

// Reconnect closes any active connection and connects again.
func (c *Client) Reconnect() error {
	return c.session.Reconnect()
}

// Connected reports whether the endpoint still answers a ping.
func (c *Client) Connected() bool {
	return c.session.Connected()
}

// Run connects, invokes f, and closes the client when f returns.
func (c *Client) Run(ctx context.Context, f func(ctx context.Context) error) error {
	if err := c.Connect(); err != nil {
		return err
	}

	defer func() {
		_ = c.Close() //nolint:errcheck
	}()

	return f(ctx)
}

// Call issues a raw command for anything not covered by the typed
// helpers and returns the data portion of the response.
func (c *Client) Call(command string, args any) (json.RawMessage, error) {
	return c.session.Call(command, args)
}

type activityArgs struct {
	PID      int       `json:"pid"`
	Activity *Activity `json:"activity"`
}

// SetActivity announces an activity for the current process.
func (c *Client) SetActivity(activity Activity) error {
	activity.Buttons = sanitizeButtons(activity.Buttons)

	_, err := c.session.Call("SET_ACTIVITY", activityArgs{
		PID:      os.Getpid(),
		Activity: &activity,
	})

	return err
}

// ClearActivity removes the announced activity.
func (c *Client) ClearActivity() error {
	_, err := c.session.Call("SET_ACTIVITY", activityArgs{
		PID:      os.Getpid(),
		Activity: nil,
	})

	return err
}

type authorizeArgs struct {
	ClientID string   `json:"client_id"`
	Scopes   []string `json:"scopes"`
}

// Authorize asks the user to approve the given OAuth2 scopes and returns
// the authorization code.
func (c *Client) Authorize(scopes []string) (string, error) {
	data, err := c.session.Call("AUTHORIZE", authorizeArgs{
		ClientID: c.appID,
		Scopes:   scopes,
	})
	if err != nil {
		return "", err
	}

	var body struct {
		Code string `json:"code"`
	}

	if err = json.Unmarshal(data, &body); err != nil || body.Code == "" {
		return "", ErrMissingAuthorizationCode
	}

	return body.Code, nil
}

type authenticateArgs struct {
	AccessToken string `json:"access_token"`
}

// Authenticate presents an OAuth2 access token to Discord and returns
// the raw response data.
func (c *Client) Authenticate(accessToken string) (json.RawMessage, error) {
	data, err := c.session.Call("AUTHENTICATE", authenticateArgs{
		AccessToken: accessToken,
	})
	if err != nil {
		return nil, err
	}

	// A code field in the data means the token was rejected.
	var body struct {
		Code json.RawMessage `json:"code"`
	}

	if err = json.Unmarshal(data, &body); err == nil && len(body.Code) > 0 {
		return nil, ErrAuthenticationFailed
	}

	return data, nil
}

// GetVoiceSettings fetches the user's voice settings.
func (c *Client) GetVoiceSettings() (*VoiceSettings, error) {
	data, err := c.session.Call("GET_VOICE_SETTINGS", struct{}{})
	if err != nil {
		return nil, err
	}

	var settings VoiceSettings
	if err = json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal voice settings: %w", err)
	}

	return &settings, nil
}

// SetVoiceSettings updates the user's voice settings and returns the
// state after the update.
func (c *Client) SetVoiceSettings(settings *VoiceSettings) (*VoiceSettings, error) {
	data, err := c.session.Call("SET_VOICE_SETTINGS", settings)
	if err != nil {
		return nil, err
	}

	var updated VoiceSettings
	if err = json.Unmarshal(data, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal voice settings: %w", err)
	}

	return &updated, nil
}
