package auxcloud

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/diwise/climate-hub/pkg/types"
)

var (
	ErrAuthentication = fmt.Errorf("authentication failed")
	ErrServerBusy     = fmt.Errorf("cloud reports server busy")
	ErrDataError      = fmt.Errorf("cloud rejected request data")
	ErrDeviceOffline  = fmt.Errorf("endpoint unreachable")
	ErrProtocol       = fmt.Errorf("malformed cloud response")
)

// APIError carries the vendor's error type and status for failures that do
// not map onto one of the sentinel errors above.
type APIError struct {
	Type    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s (status %d): %s", e.Type, e.Status, e.Message)
}

// directiveHeader is the header stanza on every control-gateway request.
// Timstamp is spelled the way the vendor spells it; renaming it breaks
// state queries.
type directiveHeader struct {
	Namespace        string `json:"namespace"`
	Name             string `json:"name"`
	InterfaceVersion string `json:"interfaceVersion"`
	SenderID         string `json:"senderId"`
	MessageID        string `json:"messageId"`
	MessageType      string `json:"messageType,omitempty"`
	Timstamp         string `json:"timstamp,omitempty"`
}

func newDirectiveHeader(namespace, name, messageIDPrefix string, timestamp int64) directiveHeader {
	return directiveHeader{
		Namespace:        namespace,
		Name:             name,
		InterfaceVersion: "2",
		SenderID:         "sdk",
		MessageID:        fmt.Sprintf("%s-%d", messageIDPrefix, timestamp),
	}
}

type studataEntry struct {
	DID        string `json:"did"`
	DevSession string `json:"devSession"`
}

type queryStatePayload struct {
	Studata []studataEntry `json:"studata"`
	MsgType string         `json:"msgtype"`
}

type queryStateDirective struct {
	Header  directiveHeader   `json:"header"`
	Payload queryStatePayload `json:"payload"`
}

type queryStateRequest struct {
	Directive queryStateDirective `json:"directive"`
}

func buildQueryStateRequest(devices []studataEntry, userID string, timestamp int64) queryStateRequest {
	header := newDirectiveHeader("DNA.QueryState", "queryState", userID, timestamp)
	header.MessageType = "controlgw.batch"
	header.Timstamp = fmt.Sprintf("%d", timestamp)

	return queryStateRequest{
		Directive: queryStateDirective{
			Header:  header,
			Payload: queryStatePayload{Studata: devices, MsgType: "batch"},
		},
	}
}

type devicePairedInfo struct {
	DID            string `json:"did"`
	PID            string `json:"pid"`
	MAC            string `json:"mac"`
	DeviceTypeFlag int    `json:"devicetypeflag"`
	Cookie         string `json:"cookie"`
}

type controlEndpoint struct {
	DevicePairedInfo devicePairedInfo `json:"devicePairedInfo"`
	EndpointID       string           `json:"endpointId"`
	Cookie           struct{}         `json:"cookie"`
	DevSession       string           `json:"devSession"`
}

type paramValue struct {
	Idx int `json:"idx"`
	Val int `json:"val"`
}

type controlPayload struct {
	Act    string         `json:"act"`
	Params []string       `json:"params"`
	Vals   [][]paramValue `json:"vals"`
	DID    string         `json:"did"`
}

type controlDirective struct {
	Header   directiveHeader `json:"header"`
	Endpoint controlEndpoint `json:"endpoint"`
	Payload  controlPayload  `json:"payload"`
}

type controlRequest struct {
	Directive controlDirective `json:"directive"`
}

func buildControlRequest(device types.Device, act string, params []string, vals [][]paramValue, timestamp int64) (controlRequest, error) {
	mapped, err := mapCookie(device)
	if err != nil {
		return controlRequest{}, err
	}

	payload := controlPayload{
		Act:    act,
		Params: params,
		Vals:   vals,
		DID:    device.EndpointID,
	}
	if payload.Vals == nil {
		payload.Vals = [][]paramValue{}
	}

	// the vendor requires a placeholder value stanza on single-parameter gets
	if act == "get" && len(params) == 1 {
		payload.Vals = [][]paramValue{{{Idx: 1, Val: 0}}}
	}

	return controlRequest{
		Directive: controlDirective{
			Header: newDirectiveHeader("DNA.KeyValueControl", "KeyValueControl", device.EndpointID, timestamp),
			Endpoint: controlEndpoint{
				DevicePairedInfo: devicePairedInfo{
					DID:            device.EndpointID,
					PID:            device.ProductID,
					MAC:            device.MAC,
					DeviceTypeFlag: device.DeviceTypeFlag,
					Cookie:         mapped,
				},
				EndpointID: device.EndpointID,
				DevSession: device.DevSession,
			},
			Payload: payload,
		},
	}, nil
}

type deviceCookie struct {
	TerminalID string `json:"terminalid"`
	AESKey     string `json:"aeskey"`
}

type mappedCookie struct {
	Device mappedCookieDevice `json:"device"`
}

type mappedCookieDevice struct {
	ID         string `json:"id"`
	Key        string `json:"key"`
	DevSession string `json:"devSession"`
	AESKey     string `json:"aeskey"`
	DID        string `json:"did"`
	PID        string `json:"pid"`
	MAC        string `json:"mac"`
}

// mapCookie re-frames the device's opaque cookie the way control envelopes
// expect it: decoded, enriched with session and identity, re-encoded.
func mapCookie(device types.Device) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(device.Cookie)
	if err != nil {
		return "", fmt.Errorf("failed to decode device cookie: %w", err)
	}

	var cookie deviceCookie
	if err := json.Unmarshal(raw, &cookie); err != nil {
		return "", fmt.Errorf("failed to unmarshal device cookie: %w", err)
	}

	b, err := json.Marshal(mappedCookie{
		Device: mappedCookieDevice{
			ID:         cookie.TerminalID,
			Key:        cookie.AESKey,
			DevSession: device.DevSession,
			AESKey:     cookie.AESKey,
			DID:        device.EndpointID,
			PID:        device.ProductID,
			MAC:        device.MAC,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal mapped cookie: %w", err)
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

type responseEnvelope struct {
	Event *struct {
		Header *struct {
			Name string `json:"name"`
		} `json:"header"`
		Payload json.RawMessage `json:"payload"`
	} `json:"event"`
}

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type deviceStateEntry struct {
	DID    string `json:"did"`
	State  int    `json:"state"`
	Status int    `json:"status"`
}

// unwrapEnvelope validates the two-stage response shape and returns the
// inner payload, mapping ErrorResponse envelopes onto the error taxonomy.
func unwrapEnvelope(raw []byte) (json.RawMessage, error) {
	var envelope responseEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProtocol, err.Error())
	}

	if envelope.Event == nil || envelope.Event.Payload == nil {
		return nil, fmt.Errorf("%w: missing event payload", ErrProtocol)
	}

	if envelope.Event.Header != nil && envelope.Event.Header.Name == "ErrorResponse" {
		var p errorPayload
		if err := json.Unmarshal(envelope.Event.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: undecodable error payload", ErrProtocol)
		}
		return nil, mapAPIError(p)
	}

	return envelope.Event.Payload, nil
}

func mapAPIError(p errorPayload) error {
	switch {
	case p.Status == -49002:
		return fmt.Errorf("%w: %s", ErrServerBusy, p.Message)
	case p.Status == -1005:
		return fmt.Errorf("%w: %s", ErrDataError, p.Message)
	case p.Type == "ENDPOINT_UNREACHABLE":
		return fmt.Errorf("%w: %s", ErrDeviceOffline, p.Message)
	}
	return &APIError{Type: p.Type, Status: p.Status, Message: p.Message}
}

// parseStateResponse decodes a bulk state query response into per-device
// state entries.
func parseStateResponse(raw []byte) ([]deviceStateEntry, error) {
	payload, err := unwrapEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var state struct {
		Status int                `json:"status"`
		Data   []deviceStateEntry `json:"data"`
	}
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProtocol, err.Error())
	}

	if state.Status != 0 {
		return nil, mapAPIError(errorPayload{Status: state.Status, Message: "state query failed"})
	}

	return state.Data, nil
}

// parseControlResponse decodes a get/set response. The payload's data field
// is a nested JSON document carrying parallel name and value lists that are
// zipped positionally.
func parseControlResponse(raw []byte) (map[string]int, error) {
	payload, err := unwrapEnvelope(raw)
	if err != nil {
		return nil, err
	}

	var outer struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(payload, &outer); err != nil || outer.Data == "" {
		return nil, fmt.Errorf("%w: missing control response data", ErrProtocol)
	}

	var inner struct {
		Params []string `json:"params"`
		Vals   [][]struct {
			Val int `json:"val"`
		} `json:"vals"`
	}
	if err := json.Unmarshal([]byte(outer.Data), &inner); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProtocol, err.Error())
	}

	if len(inner.Vals) < len(inner.Params) {
		return nil, fmt.Errorf("%w: %d params but %d value groups", ErrProtocol, len(inner.Params), len(inner.Vals))
	}

	result := make(map[string]int, len(inner.Params))
	for i, name := range inner.Params {
		if len(inner.Vals[i]) == 0 {
			return nil, fmt.Errorf("%w: empty value group for %s", ErrProtocol, name)
		}
		result[name] = inner.Vals[i][0].Val
	}

	return result, nil
}
