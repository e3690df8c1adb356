package client

import (
	"context"
	"errors"
	"testing"

	test "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

func TestDevices(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices"),
			expects.RequestMethod("GET"),
			expects.RequestHeaderContains("Authorization", "Bearer testtoken"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(deviceListResponse)),
		),
	)
	defer mockedService.Close()

	c := New(mockedService.URL(), "testtoken")

	devices, err := c.Devices(context.Background())
	is.NoErr(err)
	is.Equal(len(devices), 1)
	is.Equal(devices[0].EndpointID, "d1")
	is.Equal(devices[0].Mode, "Cooling")
	is.Equal(*devices[0].TargetTemperature, 22.0)
}

func TestDeviceNotFound(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/garage"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(404),
			response.Body([]byte(`{"error":"no device matches \"garage\""}`)),
		),
	)
	defer mockedService.Close()

	c := New(mockedService.URL(), "testtoken")

	_, err := c.Device(context.Background(), "garage")
	is.True(errors.Is(err, ErrDeviceNotFound))
}

func TestSetTemperature(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/d1/temperature"),
			expects.RequestMethod("POST"),
			expects.RequestHeaderContains("Content-Type", "application/json"),
			expects.RequestBodyContaining(`"temperature":21.5`),
		),
		test.Returns(
			response.Code(204),
		),
	)
	defer mockedService.Close()

	c := New(mockedService.URL(), "testtoken")

	is.NoErr(c.SetTemperature(context.Background(), "d1", 21.5))
}

func TestSetSwing(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/d1/swing"),
			expects.RequestMethod("POST"),
			expects.RequestBodyContaining(`"direction":"vertical"`, `"on":true`),
		),
		test.Returns(
			response.Code(204),
		),
	)
	defer mockedService.Close()

	c := New(mockedService.URL(), "testtoken")

	is.NoErr(c.SetSwing(context.Background(), "d1", "vertical", true))
}

func TestControlErrorCarriesServerMessage(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/devices/d1/mode"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(503),
			response.Body([]byte(`{"error":"cloud is busy: try again later"}`)),
		),
	)
	defer mockedService.Close()

	c := New(mockedService.URL(), "testtoken")

	err := c.SetMode(context.Background(), "d1", "cool")
	is.True(err != nil)
	is.True(!errors.Is(err, ErrDeviceNotFound))
}

const deviceListResponse string = `{
	"devices": [
		{
			"endpointId": "d1",
			"friendlyName": "Living Room",
			"isOnline": true,
			"state": 1,
			"params": {"pwr": 1, "temp": 220, "envtemp": 195, "ac_mode": 0},
			"targetTemperature": 22.0,
			"ambientTemperature": 19.5,
			"mode": "Cooling",
			"fanSpeed": "Medium"
		}
	]
}`
