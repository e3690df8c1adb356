package types

import (
	"time"
)

const (
	DeviceStateOffline = 0
	DeviceStateOnline  = 1
)

// Device is the in-memory twin of one cloud-connected HVAC unit. Identity
// fields are replayed verbatim into control envelopes; Params carries the
// last observed parameter snapshot (temperatures in tenths of a degree).
type Device struct {
	EndpointID     string         `json:"endpointId"`
	ProductID      string         `json:"productId"`
	FriendlyName   string         `json:"friendlyName"`
	MAC            string         `json:"mac"`
	DevSession     string         `json:"devSession"`
	DeviceTypeFlag int            `json:"devicetypeFlag"`
	Cookie         string         `json:"cookie"`
	State          int            `json:"state"`
	Params         map[string]int `json:"params"`
	LastUpdated    time.Time      `json:"lastUpdated,omitzero"`
}

func (d Device) IsOnline() bool {
	return d.State == DeviceStateOnline
}

// Clone returns a copy with its own params map, safe to hand out to readers.
func (d Device) Clone() Device {
	c := d
	c.Params = make(map[string]int, len(d.Params))
	for k, v := range d.Params {
		c.Params[k] = v
	}
	return c
}

// TargetTemperature returns the target temperature in °C, or false if the
// device has not reported one.
func (d Device) TargetTemperature() (float64, bool) {
	t, ok := d.Params["temp"]
	if !ok {
		return 0, false
	}
	return float64(t) / 10.0, true
}

// AmbientTemperature returns the ambient temperature in °C, or false if the
// device has not reported one.
func (d Device) AmbientTemperature() (float64, bool) {
	t, ok := d.Params["envtemp"]
	if !ok {
		return 0, false
	}
	return float64(t) / 10.0, true
}

type Family struct {
	FamilyID string `json:"familyid"`
	Name     string `json:"name"`
}

type Room struct {
	RoomID   string `json:"roomid"`
	FamilyID string `json:"familyid"`
	Name     string `json:"name"`
}

// DeviceDTO is the camelCase boundary shape handed to HTTP and websocket
// consumers. Temperature pointers are nil (null) until the device has
// reported the corresponding parameter.
type DeviceDTO struct {
	EndpointID         string         `json:"endpointId"`
	FriendlyName       string         `json:"friendlyName"`
	Product            string         `json:"product"`
	IsOnline           bool           `json:"isOnline"`
	State              int            `json:"state"`
	LastUpdated        time.Time      `json:"lastUpdated,omitzero"`
	Params             map[string]int `json:"params"`
	TargetTemperature  *float64       `json:"targetTemperature"`
	AmbientTemperature *float64       `json:"ambientTemperature"`
	Mode               string         `json:"mode"`
	FanSpeed           string         `json:"fanSpeed"`
}

type DeviceListResponse struct {
	Devices []DeviceDTO `json:"devices"`
}
