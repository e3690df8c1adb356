package api

import (
	"github.com/diwise/climate-hub/internal/pkg/application/control"
	"github.com/diwise/climate-hub/pkg/types"
)

// request bodies for the control endpoints

type powerRequest struct {
	On bool `json:"on"`
}

type temperatureRequest struct {
	Temperature float64 `json:"temperature"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type fanSpeedRequest struct {
	Speed string `json:"speed"`
}

type swingRequest struct {
	Direction string `json:"direction"`
	On        bool   `json:"on"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewDeviceDTO converts a device twin into the boundary representation, with
// wire integers decoded into friendly values.
func NewDeviceDTO(d types.Device) types.DeviceDTO {
	dto := types.DeviceDTO{
		EndpointID:   d.EndpointID,
		FriendlyName: d.FriendlyName,
		Product:      types.ProductDisplayName(d.ProductID),
		IsOnline:     d.IsOnline(),
		State:        d.State,
		LastUpdated:  d.LastUpdated,
		Params:       d.Params,
	}

	if t, ok := d.TargetTemperature(); ok {
		dto.TargetTemperature = &t
	}

	if t, ok := d.AmbientTemperature(); ok {
		dto.AmbientTemperature = &t
	}

	if m, ok := d.Params[control.ParamMode]; ok {
		dto.Mode = control.ModeName(m)
	}

	if s, ok := d.Params[control.ParamFanSpeed]; ok {
		dto.FanSpeed = control.FanSpeedName(s)
	}

	return dto
}
