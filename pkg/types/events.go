package types

import (
	"encoding/json"
	"time"
)

type DeviceCreated struct {
	Device    Device    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
}

func (d *DeviceCreated) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}
func (d *DeviceCreated) ContentType() string {
	return "application/json"
}
func (d *DeviceCreated) TopicName() string {
	return "device.created"
}

type DeviceRemoved struct {
	DeviceID  string    `json:"deviceID"`
	Timestamp time.Time `json:"timestamp"`
}

func (d *DeviceRemoved) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}
func (d *DeviceRemoved) ContentType() string {
	return "application/json"
}
func (d *DeviceRemoved) TopicName() string {
	return "device.removed"
}

type DeviceStateUpdated struct {
	DeviceID  string    `json:"deviceID"`
	State     int       `json:"state"`
	Device    Device    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
}

func (d *DeviceStateUpdated) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}
func (d *DeviceStateUpdated) ContentType() string {
	return "application/json"
}
func (d *DeviceStateUpdated) TopicName() string {
	return "device.stateUpdated"
}

// ControlCommand is a control request arriving over the message bus instead
// of the HTTP façade. Action selects which of the optional fields apply.
type ControlCommand struct {
	DeviceID    string   `json:"deviceID"`
	Action      string   `json:"action"`
	On          *bool    `json:"on,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	FanSpeed    string   `json:"fanSpeed,omitempty"`
	Direction   string   `json:"direction,omitempty"`
}

const (
	ControlActionPower       = "power"
	ControlActionTemperature = "temperature"
	ControlActionMode        = "mode"
	ControlActionFanSpeed    = "fanspeed"
	ControlActionSwing       = "swing"
)

func (c *ControlCommand) ContentType() string {
	return "application/json"
}
func (c *ControlCommand) TopicName() string {
	return "device.control"
}
