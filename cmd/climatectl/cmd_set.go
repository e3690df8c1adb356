package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Send a control command to a device",
}

var setPowerCmd = &cobra.Command{
	Use:   "power <device> <on|off>",
	Short: "Switch a device on or off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[1])
		if err != nil {
			return err
		}

		return newClient().SetPower(cmd.Context(), args[0], on)
	},
}

var setTemperatureCmd = &cobra.Command{
	Use:   "temperature <device> <celsius>",
	Short: "Set the target temperature",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		celsius, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%q is not a temperature", args[1])
		}

		return newClient().SetTemperature(cmd.Context(), args[0], celsius)
	},
}

var setModeCmd = &cobra.Command{
	Use:   "mode <device> <cool|heat|dry|fan|auto>",
	Short: "Set the operation mode",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().SetMode(cmd.Context(), args[0], args[1])
	},
}

var setFanSpeedCmd = &cobra.Command{
	Use:   "fanspeed <device> <auto|low|medium|high|turbo|mute>",
	Short: "Set the fan speed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().SetFanSpeed(cmd.Context(), args[0], args[1])
	},
}

var setSwingCmd = &cobra.Command{
	Use:   "swing <device> <vertical|horizontal> <on|off>",
	Short: "Toggle swing along an axis",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[2])
		if err != nil {
			return err
		}

		return newClient().SetSwing(cmd.Context(), args[0], args[1], on)
	},
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not on or off", s)
}

func init() {
	setCmd.AddCommand(setPowerCmd)
	setCmd.AddCommand(setTemperatureCmd)
	setCmd.AddCommand(setModeCmd)
	setCmd.AddCommand(setFanSpeedCmd)
	setCmd.AddCommand(setSwingCmd)
}
