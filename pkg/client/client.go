package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/diwise/climate-hub/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("climate-hub-client")

var ErrDeviceNotFound = fmt.Errorf("device not found")

// ClimateHubClient is a typed client for the hub api, used by climatectl and
// by services that prefer http over the message bus.
type ClimateHubClient interface {
	Devices(ctx context.Context) ([]types.DeviceDTO, error)
	Device(ctx context.Context, idOrName string) (types.DeviceDTO, error)

	SetPower(ctx context.Context, idOrName string, on bool) error
	SetTemperature(ctx context.Context, idOrName string, celsius float64) error
	SetMode(ctx context.Context, idOrName string, mode string) error
	SetFanSpeed(ctx context.Context, idOrName string, speed string) error
	SetSwing(ctx context.Context, idOrName string, direction string, on bool) error
}

type climateHubClient struct {
	url        string
	token      string
	httpClient http.Client
}

func New(hubURL, token string) ClimateHubClient {
	return &climateHubClient{
		url:   strings.TrimSuffix(hubURL, "/"),
		token: token,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *climateHubClient) Devices(ctx context.Context) (devices []types.DeviceDTO, err error) {
	ctx, span := tracer.Start(ctx, "get-devices")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b, err := c.get(ctx, "/api/v0/devices")
	if err != nil {
		return nil, err
	}

	list := types.DeviceListResponse{}
	err = json.Unmarshal(b, &list)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return list.Devices, nil
}

func (c *climateHubClient) Device(ctx context.Context, idOrName string) (device types.DeviceDTO, err error) {
	ctx, span := tracer.Start(ctx, "get-device")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b, err := c.get(ctx, "/api/v0/devices/"+url.PathEscape(idOrName))
	if err != nil {
		return types.DeviceDTO{}, err
	}

	err = json.Unmarshal(b, &device)
	if err != nil {
		return types.DeviceDTO{}, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return device, nil
}

func (c *climateHubClient) SetPower(ctx context.Context, idOrName string, on bool) (err error) {
	ctx, span := tracer.Start(ctx, "set-power")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	return c.post(ctx, idOrName, "power", map[string]any{"on": on})
}

func (c *climateHubClient) SetTemperature(ctx context.Context, idOrName string, celsius float64) (err error) {
	ctx, span := tracer.Start(ctx, "set-temperature")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	return c.post(ctx, idOrName, "temperature", map[string]any{"temperature": celsius})
}

func (c *climateHubClient) SetMode(ctx context.Context, idOrName string, mode string) (err error) {
	ctx, span := tracer.Start(ctx, "set-mode")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	return c.post(ctx, idOrName, "mode", map[string]any{"mode": mode})
}

func (c *climateHubClient) SetFanSpeed(ctx context.Context, idOrName string, speed string) (err error) {
	ctx, span := tracer.Start(ctx, "set-fanspeed")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	return c.post(ctx, idOrName, "fanspeed", map[string]any{"speed": speed})
}

func (c *climateHubClient) SetSwing(ctx context.Context, idOrName string, direction string, on bool) (err error) {
	ctx, span := tracer.Start(ctx, "set-swing")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	return c.post(ctx, idOrName, "swing", map[string]any{"direction": direction, "on": on})
}

func (c *climateHubClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	if c.token != "" {
		req.Header.Add("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp.StatusCode, b)
	}

	return b, nil
}

func (c *climateHubClient) post(ctx context.Context, idOrName, action string, body map[string]any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	u := c.url + "/api/v0/devices/" + url.PathEscape(idOrName) + "/" + action

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Add("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return errorFromResponse(resp.StatusCode, respBody)
	}

	return nil
}

func errorFromResponse(statusCode int, body []byte) error {
	e := struct {
		Error string `json:"error"`
	}{}

	msg := http.StatusText(statusCode)
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}

	if statusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, msg)
	}

	return fmt.Errorf("request failed (%d): %s", statusCode, msg)
}
