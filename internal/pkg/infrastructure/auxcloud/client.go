package auxcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/samber/lo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("climate-hub/auxcloud")

const defaultTimeout = 30 * time.Second

// Client talks to the vendor cloud. It is stateless over requests apart
// from the session tokens captured at login.
type Client struct {
	baseURL string
	region  Region

	httpClient http.Client
	now        func() time.Time

	mu           sync.RWMutex
	loginSession string
	userID       string
}

type Option func(*Client)

// WithBaseURL overrides the regional API host. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithClock overrides the clock used for timestamps and key derivation.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func New(region Region, opts ...Option) *Client {
	c := &Client{
		baseURL: region.apiURL(),
		region:  region,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultTimeout,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Region() Region {
	return c.region
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the login session token and user id captured at login.
func (c *Client) Session() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loginSession, c.userID
}

func (c *Client) IsLoggedIn() bool {
	session, userID := c.Session()
	return session != "" && userID != ""
}

// Headers returns the spoofed vendor header set, including current session
// tokens. Keys are assigned directly to preserve the exact casing the
// vendor's backend matches on.
func (c *Client) Headers(extra map[string]string) http.Header {
	session, userID := c.Session()

	h := http.Header{
		"Content-Type": {"application/x-java-serialized-object"},
		"licenseId":    {vendorLicenseID},
		"lid":          {vendorLicenseID},
		"language":     {"en"},
		"appVersion":   {spoofAppVersion},
		"User-Agent":   {spoofUserAgent},
		"system":       {spoofSystem},
		"appPlatform":  {spoofAppPlatform},
		"loginsession": {session},
		"userid":       {userID},
	}

	for k, v := range extra {
		h[k] = []string{v}
	}

	return h
}

// RelayHeaders returns the header set for the push relay handshake, which
// additionally requires CompanyId and Origin or the relay refuses to
// upgrade.
func (c *Client) RelayHeaders() http.Header {
	return c.Headers(map[string]string{
		"CompanyId": vendorCompanyID,
		"Origin":    c.baseURL,
	})
}

func (c *Client) post(ctx context.Context, endpoint string, query url.Values, headers http.Header, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header = headers

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, nil
}

type loginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	CompanyID string `json:"companyid"`
	LID       string `json:"lid"`
}

type loginResponse struct {
	Status       int    `json:"status"`
	LoginSession string `json:"loginsession"`
	UserID       string `json:"userid"`
}

// Login authenticates against the vendor cloud. The body is AES encrypted
// under a key derived from the request timestamp; the token header lets the
// server validate the plaintext after decryption.
func (c *Client) Login(ctx context.Context, email, password string) (err error) {
	ctx, span := tracer.Start(ctx, "login")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	timestamp := c.now().Unix()

	body, err := json.Marshal(loginRequest{
		Email:     email,
		Password:  hashPassword(password),
		CompanyID: vendorCompanyID,
		LID:       vendorLicenseID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	encrypted, err := encryptAESCBCZeroPad(aesInitialVector, sessionKey(timestamp), body)
	if err != nil {
		return fmt.Errorf("failed to encrypt login request: %w", err)
	}

	headers := c.Headers(map[string]string{
		"timestamp": strconv.FormatInt(timestamp, 10),
		"token":     bodyToken(body),
	})

	respBody, err := c.post(ctx, "account/login", nil, headers, encrypted)
	if err != nil {
		return err
	}

	var resp loginResponse
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return fmt.Errorf("failed to unmarshal login response: %w", err)
	}

	if resp.Status != 0 {
		err = fmt.Errorf("%w: login rejected with status %d", ErrAuthentication, resp.Status)
		return err
	}

	c.mu.Lock()
	c.loginSession = resp.LoginSession
	c.userID = resp.UserID
	c.mu.Unlock()

	return nil
}

// ListFamilies returns the account's device groupings.
func (c *Client) ListFamilies(ctx context.Context) (families []types.Family, err error) {
	ctx, span := tracer.Start(ctx, "list-families")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	respBody, err := c.post(ctx, "appsync/group/member/getfamilylist", nil, c.Headers(nil), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status int `json:"status"`
		Data   struct {
			FamilyList []types.Family `json:"familyList"`
		} `json:"data"`
	}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal family list: %w", err)
	}

	if resp.Status != 0 {
		err = fmt.Errorf("failed to list families: status %d", resp.Status)
		return nil, err
	}

	return resp.Data.FamilyList, nil
}

// ListRooms returns the rooms within a family.
func (c *Client) ListRooms(ctx context.Context, familyID string) (rooms []types.Room, err error) {
	ctx, span := tracer.Start(ctx, "list-rooms")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	respBody, err := c.post(ctx, "appsync/group/room/query", nil, c.Headers(map[string]string{"familyid": familyID}), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status int `json:"status"`
		Data   struct {
			RoomList []types.Room `json:"roomList"`
		} `json:"data"`
	}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal room list: %w", err)
	}

	if resp.Status != 0 {
		err = fmt.Errorf("failed to list rooms: status %d", resp.Status)
		return nil, err
	}

	return resp.Data.RoomList, nil
}

// ListDevices returns the devices paired into a family.
func (c *Client) ListDevices(ctx context.Context, familyID string) (devices []types.Device, err error) {
	ctx, span := tracer.Start(ctx, "list-devices")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	respBody, err := c.post(ctx, "appsync/group/dev/query",
		url.Values{"action": {"select"}},
		c.Headers(map[string]string{"familyid": familyID}),
		[]byte(`{"pids":[]}`),
	)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status int `json:"status"`
		Data   struct {
			Endpoints []types.Device `json:"endpoints"`
		} `json:"data"`
	}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal device list: %w", err)
	}

	if resp.Status != 0 {
		err = fmt.Errorf("failed to list devices: status %d", resp.Status)
		return nil, err
	}

	devices = resp.Data.Endpoints
	for i := range devices {
		if devices[i].FriendlyName == "" {
			devices[i].FriendlyName = "Unnamed"
		}
	}

	return devices, nil
}

// QueryDeviceStates refreshes the online flag for many devices in one round
// trip. The result maps endpoint id to state.
func (c *Client) QueryDeviceStates(ctx context.Context, devices []types.Device) (states map[string]int, err error) {
	ctx, span := tracer.Start(ctx, "query-device-states")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	entries := lo.Map(devices, func(d types.Device, _ int) studataEntry {
		return studataEntry{DID: d.EndpointID, DevSession: d.DevSession}
	})

	_, userID := c.Session()
	body, err := json.Marshal(buildQueryStateRequest(entries, userID, c.now().Unix()))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state query: %w", err)
	}

	respBody, err := c.post(ctx, "device/control/v2/querystate", nil, c.Headers(nil), body)
	if err != nil {
		return nil, err
	}

	parsed, err := parseStateResponse(respBody)
	if err != nil {
		return nil, err
	}

	states = make(map[string]int, len(parsed))
	for _, entry := range parsed {
		states[entry.DID] = entry.State
	}

	return states, nil
}

// GetDeviceParams fetches the named parameters from a device. An empty list
// queries everything the device reports.
func (c *Client) GetDeviceParams(ctx context.Context, device types.Device, params []string) (values map[string]int, err error) {
	ctx, span := tracer.Start(ctx, "get-device-params")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if params == nil {
		params = []string{}
	}

	req, err := buildControlRequest(device, "get", params, nil, c.now().Unix())
	if err != nil {
		return nil, err
	}

	return c.sdkControl(ctx, req)
}

// SetDeviceParams writes parameter values to a device and returns the
// parameters echoed back by the cloud.
func (c *Client) SetDeviceParams(ctx context.Context, device types.Device, values map[string]int) (echoed map[string]int, err error) {
	ctx, span := tracer.Start(ctx, "set-device-params")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params := slices.Sorted(maps.Keys(values))
	vals := lo.Map(params, func(name string, _ int) []paramValue {
		return []paramValue{{Idx: 1, Val: values[name]}}
	})

	req, err := buildControlRequest(device, "set", params, vals, c.now().Unix())
	if err != nil {
		return nil, err
	}

	return c.sdkControl(ctx, req)
}

func (c *Client) sdkControl(ctx context.Context, req controlRequest) (map[string]int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal control request: %w", err)
	}

	respBody, err := c.post(ctx, "device/control/v2/sdkcontrol",
		url.Values{"license": {vendorLicense}},
		c.Headers(nil),
		body,
	)
	if err != nil {
		return nil, err
	}

	return parseControlResponse(respBody)
}
