package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List all devices known to the hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()

		devices, err := c.Devices(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tONLINE\tMODE\tFAN\tTARGET\tAMBIENT")

		for _, d := range devices {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				d.EndpointID, d.FriendlyName, onlineText(d.IsOnline),
				valueOrDash(d.Mode), valueOrDash(d.FanSpeed),
				tempText(d.TargetTemperature), tempText(d.AmbientTemperature))
		}

		return w.Flush()
	},
}

var deviceCmd = &cobra.Command{
	Use:   "device <id or name>",
	Short: "Show details for one device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()

		d, err := c.Device(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Endpoint ID:\t%s\n", d.EndpointID)
		fmt.Fprintf(w, "Name:\t%s\n", d.FriendlyName)
		fmt.Fprintf(w, "Product:\t%s\n", valueOrDash(d.Product))
		fmt.Fprintf(w, "Online:\t%s\n", onlineText(d.IsOnline))
		fmt.Fprintf(w, "Mode:\t%s\n", valueOrDash(d.Mode))
		fmt.Fprintf(w, "Fan speed:\t%s\n", valueOrDash(d.FanSpeed))
		fmt.Fprintf(w, "Target temperature:\t%s\n", tempText(d.TargetTemperature))
		fmt.Fprintf(w, "Ambient temperature:\t%s\n", tempText(d.AmbientTemperature))
		if !d.LastUpdated.IsZero() {
			fmt.Fprintf(w, "Last updated:\t%s\n", d.LastUpdated.Format("2006-01-02 15:04:05 MST"))
		}
		err = w.Flush()
		if err != nil {
			return err
		}

		if len(d.Params) > 0 {
			fmt.Println()
			pw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(pw, "PARAMETER\tVALUE")
			for _, name := range sortedKeys(d.Params) {
				fmt.Fprintf(pw, "%s\t%d\n", name, d.Params[name])
			}
			return pw.Flush()
		}

		return nil
	},
}

func onlineText(online bool) string {
	if online {
		return "yes"
	}
	return "no"
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func tempText(t *float64) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f°C", *t)
}

func sortedKeys(m map[string]int) []string {
	return slices.Sorted(maps.Keys(m))
}
