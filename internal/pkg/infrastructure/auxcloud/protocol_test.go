package auxcloud

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/diwise/climate-hub/pkg/types"
	"github.com/matryer/is"
)

func testDevice() types.Device {
	cookie := base64.StdEncoding.EncodeToString([]byte(`{"terminalid":"term-1","aeskey":"key-1"}`))

	return types.Device{
		EndpointID:     "d1",
		ProductID:      "000000000000000000000000c0620000",
		FriendlyName:   "Living Room",
		MAC:            "aa:bb:cc",
		DevSession:     "sess-1",
		DeviceTypeFlag: 1,
		Cookie:         cookie,
		State:          types.DeviceStateOnline,
	}
}

func TestQueryStateRequestShape(t *testing.T) {
	is := is.New(t)

	req := buildQueryStateRequest([]studataEntry{{DID: "d1", DevSession: "s1"}}, "user-1", 1700000000)

	b, err := json.Marshal(req)
	is.NoErr(err)

	var decoded map[string]any
	is.NoErr(json.Unmarshal(b, &decoded))

	directive := decoded["directive"].(map[string]any)
	header := directive["header"].(map[string]any)

	is.Equal(header["namespace"], "DNA.QueryState")
	is.Equal(header["name"], "queryState")
	is.Equal(header["interfaceVersion"], "2")
	is.Equal(header["senderId"], "sdk")
	is.Equal(header["messageId"], "user-1-1700000000")
	is.Equal(header["messageType"], "controlgw.batch")

	// the vendor's field really is spelled like this
	is.Equal(header["timstamp"], "1700000000")
	_, hasCorrectSpelling := header["timestamp"]
	is.True(!hasCorrectSpelling)

	payload := directive["payload"].(map[string]any)
	is.Equal(payload["msgtype"], "batch")

	studata := payload["studata"].([]any)
	is.Equal(len(studata), 1)
	is.Equal(studata[0].(map[string]any)["did"], "d1")
	is.Equal(studata[0].(map[string]any)["devSession"], "s1")
}

func TestControlRequestMapsCookie(t *testing.T) {
	is := is.New(t)

	device := testDevice()
	req, err := buildControlRequest(device, "set", []string{"temp"}, [][]paramValue{{{Idx: 1, Val: 220}}}, 1700000000)
	is.NoErr(err)

	is.Equal(req.Directive.Header.Namespace, "DNA.KeyValueControl")
	is.Equal(req.Directive.Header.Name, "KeyValueControl")
	is.Equal(req.Directive.Header.MessageID, "d1-1700000000")
	is.Equal(req.Directive.Endpoint.EndpointID, "d1")
	is.Equal(req.Directive.Endpoint.DevSession, "sess-1")
	is.Equal(req.Directive.Endpoint.DevicePairedInfo.DID, "d1")
	is.Equal(req.Directive.Endpoint.DevicePairedInfo.DeviceTypeFlag, 1)

	raw, err := base64.StdEncoding.DecodeString(req.Directive.Endpoint.DevicePairedInfo.Cookie)
	is.NoErr(err)

	var mapped mappedCookie
	is.NoErr(json.Unmarshal(raw, &mapped))
	is.Equal(mapped.Device.ID, "term-1")
	is.Equal(mapped.Device.Key, "key-1")
	is.Equal(mapped.Device.AESKey, "key-1")
	is.Equal(mapped.Device.DevSession, "sess-1")
	is.Equal(mapped.Device.DID, "d1")
	is.Equal(mapped.Device.PID, device.ProductID)
	is.Equal(mapped.Device.MAC, "aa:bb:cc")
}

func TestControlRequestRejectsBrokenCookie(t *testing.T) {
	is := is.New(t)

	device := testDevice()
	device.Cookie = "not base64!"

	_, err := buildControlRequest(device, "get", nil, nil, 0)
	is.True(err != nil)
}

func TestSingleParamGetCarriesPlaceholderVals(t *testing.T) {
	is := is.New(t)

	req, err := buildControlRequest(testDevice(), "get", []string{"mode"}, nil, 0)
	is.NoErr(err)
	is.Equal(req.Directive.Payload.Vals, [][]paramValue{{{Idx: 1, Val: 0}}})

	// multi-parameter gets keep an empty vals list
	req, err = buildControlRequest(testDevice(), "get", []string{"pwr", "temp"}, nil, 0)
	is.NoErr(err)
	is.Equal(len(req.Directive.Payload.Vals), 0)
}

func TestParseControlResponse(t *testing.T) {
	is := is.New(t)

	inner := `{"params":["temp","pwr"],"vals":[[{"val":220,"idx":1}],[{"val":1,"idx":1}]]}`
	envelope, err := json.Marshal(map[string]any{
		"event": map[string]any{
			"header":  map[string]any{"name": "KeyValueControl"},
			"payload": map[string]any{"data": inner},
		},
	})
	is.NoErr(err)

	params, err := parseControlResponse(envelope)
	is.NoErr(err)
	is.Equal(params, map[string]int{"temp": 220, "pwr": 1})
}

func TestParseControlResponseRejectsMissingData(t *testing.T) {
	is := is.New(t)

	_, err := parseControlResponse([]byte(`{"event":{"payload":{}}}`))
	is.True(errors.Is(err, ErrProtocol))
}

func TestParseStateResponse(t *testing.T) {
	is := is.New(t)

	raw := []byte(`{"event":{"payload":{"status":0,"data":[{"did":"d1","state":1},{"did":"d2","state":0}]}}}`)

	entries, err := parseStateResponse(raw)
	is.NoErr(err)
	is.Equal(len(entries), 2)
	is.Equal(entries[0].DID, "d1")
	is.Equal(entries[0].State, 1)
	is.Equal(entries[1].State, 0)
}

func TestMalformedEnvelopeIsProtocolError(t *testing.T) {
	is := is.New(t)

	for _, raw := range []string{`{}`, `{"event":{}}`, `not json`} {
		_, err := parseStateResponse([]byte(raw))
		is.True(errors.Is(err, ErrProtocol))
	}
}

func TestErrorResponseMapping(t *testing.T) {
	is := is.New(t)

	build := func(errType string, status int) []byte {
		b, _ := json.Marshal(map[string]any{
			"event": map[string]any{
				"header": map[string]any{"name": "ErrorResponse"},
				"payload": map[string]any{
					"type":    errType,
					"message": "nope",
					"status":  status,
				},
			},
		})
		return b
	}

	_, err := parseControlResponse(build("SERVICE_EXCEPTION", -49002))
	is.True(errors.Is(err, ErrServerBusy))

	_, err = parseControlResponse(build("DATA_EXCEPTION", -1005))
	is.True(errors.Is(err, ErrDataError))

	_, err = parseControlResponse(build("ENDPOINT_UNREACHABLE", -1))
	is.True(errors.Is(err, ErrDeviceOffline))

	_, err = parseControlResponse(build("SOMETHING_ELSE", -42))
	var apiErr *APIError
	is.True(errors.As(err, &apiErr))
	is.Equal(apiErr.Status, -42)
	is.Equal(apiErr.Type, "SOMETHING_ELSE")
}
