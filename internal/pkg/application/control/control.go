package control

import (
	"fmt"
	"math"
	"strings"
)

var ErrInvalidParameter = fmt.Errorf("invalid parameter")

// Wire parameter names understood by the vendor cloud.
const (
	ParamPower           = "pwr"
	ParamTargetTemp      = "temp"
	ParamAmbientTemp     = "envtemp"
	ParamMode            = "ac_mode"
	ParamFanSpeed        = "ac_mark"
	ParamSwingVertical   = "ac_vdir"
	ParamSwingHorizontal = "ac_hdir"
	ParamEcoMode         = "ecomode"
)

const (
	MinTemperature = 16.0
	MaxTemperature = 30.0
)

var (
	modes = map[string]int{
		"cool": 0,
		"heat": 1,
		"dry":  2,
		"fan":  3,
		"auto": 4,
	}
	modeOrder = []string{"cool", "heat", "dry", "fan", "auto"}
	modeNames = map[int]string{
		0: "Cooling",
		1: "Heating",
		2: "Dry",
		3: "Fan",
		4: "Auto",
	}

	fanSpeeds = map[string]int{
		"auto":   0,
		"low":    1,
		"medium": 2,
		"high":   3,
		"turbo":  4,
		"mute":   5,
	}
	fanSpeedOrder = []string{"auto", "low", "medium", "high", "turbo", "mute"}
	fanSpeedNames = map[int]string{
		0: "Auto",
		1: "Low",
		2: "Medium",
		3: "High",
		4: "Turbo",
		5: "Mute",
	}
)

// Power returns the wire parameters for switching a device on or off.
func Power(on bool) map[string]int {
	if on {
		return map[string]int{ParamPower: 1}
	}
	return map[string]int{ParamPower: 0}
}

// Temperature validates a target temperature in °C (half-degree steps
// supported) and returns it encoded in tenths.
func Temperature(celsius float64) (map[string]int, error) {
	if celsius < MinTemperature || celsius > MaxTemperature {
		return nil, fmt.Errorf("%w: temperature %v is out of range, accepted values are %v-%v°C",
			ErrInvalidParameter, celsius, MinTemperature, MaxTemperature)
	}
	if math.Mod(celsius*10, 5) != 0 {
		return nil, fmt.Errorf("%w: temperature %v is not supported, accepted values are %v-%v°C in steps of 0.5",
			ErrInvalidParameter, celsius, MinTemperature, MaxTemperature)
	}
	return map[string]int{ParamTargetTemp: CelsiusToAPI(celsius)}, nil
}

// Mode validates an operation mode name (case-insensitive) and returns the
// wire parameters.
func Mode(mode string) (map[string]int, error) {
	m, ok := modes[strings.ToLower(mode)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown mode %q, accepted values are %s",
			ErrInvalidParameter, mode, strings.Join(modeOrder, ", "))
	}
	return map[string]int{ParamMode: m}, nil
}

// FanSpeed validates a fan speed name (case-insensitive) and returns the
// wire parameters.
func FanSpeed(speed string) (map[string]int, error) {
	s, ok := fanSpeeds[strings.ToLower(speed)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown fan speed %q, accepted values are %s",
			ErrInvalidParameter, speed, strings.Join(fanSpeedOrder, ", "))
	}
	return map[string]int{ParamFanSpeed: s}, nil
}

// Swing validates a swing axis and returns the wire parameters for turning
// swing on or off along it.
func Swing(direction string, on bool) (map[string]int, error) {
	v := 0
	if on {
		v = 1
	}

	switch strings.ToLower(direction) {
	case "vertical":
		return map[string]int{ParamSwingVertical: v}, nil
	case "horizontal":
		return map[string]int{ParamSwingHorizontal: v}, nil
	}

	return nil, fmt.Errorf("%w: unknown swing direction %q, accepted values are vertical, horizontal",
		ErrInvalidParameter, direction)
}

// CelsiusToAPI encodes a temperature in °C as the wire integer (tenths).
func CelsiusToAPI(celsius float64) int {
	return int(math.Round(celsius * 10))
}

// APIToCelsius decodes a wire temperature (tenths) into °C.
func APIToCelsius(api int) float64 {
	return float64(api) / 10.0
}

// ModeName returns the human-readable name for a mode value.
func ModeName(mode int) string {
	if name, ok := modeNames[mode]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", mode)
}

// FanSpeedName returns the human-readable name for a fan speed value.
func FanSpeedName(speed int) string {
	if name, ok := fanSpeedNames[speed]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", speed)
}
