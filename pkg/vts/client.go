package vts

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/mirabox/vtsgen/pkg/models"
	"github.com/mirabox/vtsgen/pkg/util"
)

const (
	apiName    = "VTubeStudioPublicAPI"
	apiVersion = "1.0"

	defaultSettleDelay = 3 * time.Second
	defaultRetryDelay  = 3 * time.Second
	loadAttempts       = 3
	pingTimeout        = 3 * time.Second
)

// APIError is an error response from the VTube Studio API.
type APIError struct {
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// IsModelLoadCooldown reports whether the error is VTube Studio refusing a
// model change because one is already in progress or on cooldown.
func IsModelLoadCooldown(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "cannot currently change model") ||
		strings.Contains(msg, "model load cooldown")
}

// ModelSummary is one entry of an AvailableModelsRequest response.
type ModelSummary struct {
	ModelName string `json:"modelName"`
	ModelID   string `json:"modelID"`
}

// CurrentModel describes the model currently loaded in VTube Studio.
type CurrentModel struct {
	ModelName     string `json:"modelName"`
	ModelID       string `json:"modelID"`
	ModelFileName string `json:"modelFileName"`
}

// Hotkey is one entry of a HotkeysInCurrentModelRequest response.
type Hotkey struct {
	HotkeyID string `json:"hotkeyID"`
	Name     string `json:"name"`
	Type     string `json:"type"`
}

type envelope struct {
	APIName     string          `json:"apiName"`
	APIVersion  string          `json:"apiVersion"`
	RequestID   string          `json:"requestID"`
	MessageType string          `json:"messageType"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// Client talks to the VTube Studio public API over a WebSocket. All calls
// are synchronous: one request, one response.
type Client struct {
	address   string
	plugin    string
	developer string

	settleDelay time.Duration
	retryDelay  time.Duration

	conn   *websocket.Conn
	token  string
	authed bool
}

type Option func(*Client)

// WithSettleDelay overrides the wait after a successful model load, giving
// VTube Studio time to finish switching before the next request.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Client) { c.settleDelay = d }
}

// WithRetryDelay overrides the wait between model load attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

func NewClient(address string, opts ...Option) *Client {
	c := &Client{
		address:     address,
		plugin:      models.PluginName,
		developer:   models.PluginDeveloper,
		settleDelay: defaultSettleDelay,
		retryDelay:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.address, nil)
	if err != nil {
		return errors.Wrapf(err, "cannot connect to VTube Studio at %s", c.address)
	}
	c.conn = conn
	util.Verbose("Connected to %s\n", c.address)
	return nil
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// request sends one API message and waits for its response. A broken
// connection is redialed once and the request retried, matching how VTube
// Studio drops connections between model loads.
func (c *Client) request(ctx context.Context, messageType string, data map[string]interface{}) (json.RawMessage, error) {
	if c.conn == nil {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.roundTrip(ctx, messageType, data)
	if err == nil {
		return resp, nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil, err
	}

	util.Verbose("Connection lost during %s, reconnecting\n", messageType)
	c.Close()
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return c.roundTrip(ctx, messageType, data)
}

func (c *Client) roundTrip(ctx context.Context, messageType string, data map[string]interface{}) (json.RawMessage, error) {
	if data == nil {
		data = map[string]interface{}{}
	}
	if c.authed {
		data["authenticationToken"] = c.token
	}
	rawData, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode request data")
	}

	deadline := time.Time{}
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	c.conn.SetWriteDeadline(deadline)
	c.conn.SetReadDeadline(deadline)

	req := envelope{
		APIName:     apiName,
		APIVersion:  apiVersion,
		RequestID:   uuid.New().String(),
		MessageType: messageType,
		Data:        rawData,
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return nil, errors.Wrapf(err, "cannot send %s", messageType)
	}

	var resp envelope
	if err := c.conn.ReadJSON(&resp); err != nil {
		return nil, errors.Wrapf(err, "no response to %s", messageType)
	}
	if resp.MessageType == "APIError" {
		apiErr := &APIError{}
		if err := json.Unmarshal(resp.Data, apiErr); err != nil {
			return nil, errors.Wrap(err, "cannot parse API error")
		}
		return nil, apiErr
	}
	return resp.Data, nil
}

// Authenticate performs the two-phase token flow. On the very first run the
// operator has to click Allow inside VTube Studio before the token request
// resolves.
func (c *Client) Authenticate(ctx context.Context) error {
	identity := map[string]interface{}{
		"pluginName":      c.plugin,
		"pluginDeveloper": c.developer,
	}

	resp, err := c.request(ctx, "AuthenticationTokenRequest", identity)
	if err != nil {
		if strings.Contains(err.Error(), "authentication is currently ongoing") {
			return errors.New("an authentication window is already open; click Allow in VTube Studio and run again")
		}
		return errors.Wrap(err, "authentication token request failed")
	}
	var tok struct {
		AuthenticationToken string `json:"authenticationToken"`
	}
	if err := json.Unmarshal(resp, &tok); err != nil {
		return errors.Wrap(err, "cannot parse authentication token")
	}
	c.token = tok.AuthenticationToken
	util.Verbose("Received authentication token\n")

	resp, err = c.request(ctx, "AuthenticationRequest", map[string]interface{}{
		"pluginName":          c.plugin,
		"pluginDeveloper":     c.developer,
		"authenticationToken": c.token,
	})
	if err != nil {
		return errors.Wrap(err, "authentication request failed")
	}
	var auth struct {
		Authenticated bool   `json:"authenticated"`
		Reason        string `json:"reason"`
	}
	if err := json.Unmarshal(resp, &auth); err != nil {
		return errors.Wrap(err, "cannot parse authentication response")
	}
	if !auth.Authenticated {
		return errors.Errorf("VTube Studio denied authentication: %s", auth.Reason)
	}
	c.authed = true
	util.Info("Authenticated with VTube Studio\n")
	return nil
}

// Ping checks that the API answers within a short deadline. A silent API
// usually means an error dialog is blocking the VTube Studio UI.
func (c *Client) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	_, err := c.request(ctx, "APIStateRequest", nil)
	return err == nil
}

func (c *Client) AvailableModels(ctx context.Context) ([]ModelSummary, error) {
	resp, err := c.request(ctx, "AvailableModelsRequest", nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		AvailableModels []ModelSummary `json:"availableModels"`
	}
	if err := json.Unmarshal(resp, &data); err != nil {
		return nil, errors.Wrap(err, "cannot parse available models")
	}
	return data.AvailableModels, nil
}

// LoadModel asks VTube Studio to switch to the given model, retrying while
// the change is on cooldown, then waits for the model to settle.
func (c *Client) LoadModel(ctx context.Context, modelID string) error {
	for attempt := 1; ; attempt++ {
		_, err := c.request(ctx, "ModelLoadRequest", map[string]interface{}{"modelID": modelID})
		if err == nil {
			sleep(ctx, c.settleDelay)
			return nil
		}
		if !IsModelLoadCooldown(err) || attempt == loadAttempts {
			return err
		}
		util.Info("%sModel change refused, retrying (%d/%d)\n", util.Indent1(), attempt, loadAttempts)
		sleep(ctx, c.retryDelay)
	}
}

func (c *Client) CurrentModel(ctx context.Context) (CurrentModel, error) {
	var current CurrentModel
	resp, err := c.request(ctx, "CurrentModelRequest", nil)
	if err != nil {
		return current, err
	}
	if err := json.Unmarshal(resp, &current); err != nil {
		return current, errors.Wrap(err, "cannot parse current model")
	}
	return current, nil
}

func (c *Client) Hotkeys(ctx context.Context) ([]Hotkey, error) {
	resp, err := c.request(ctx, "HotkeysInCurrentModelRequest", nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		AvailableHotkeys []Hotkey `json:"availableHotkeys"`
	}
	if err := json.Unmarshal(resp, &data); err != nil {
		return nil, errors.Wrap(err, "cannot parse hotkeys")
	}
	return data.AvailableHotkeys, nil
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
