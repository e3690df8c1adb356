// Climatectl is a command line companion to the climate-hub service.
//
//	climatectl login                       # verify cloud credentials, store config
//	climatectl devices                     # table of all known devices
//	climatectl device "Living Room"        # details for one device
//	climatectl set temperature bedroom 21.5
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diwise/climate-hub/pkg/client"
)

var (
	hubURL   string
	apiToken string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "climatectl",
	Short:         "Control cloud connected HVAC devices through a climate-hub",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&hubURL, "hub", "", "climate-hub base url (default from config)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "api token (default from config)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(deviceCmd)
	rootCmd.AddCommand(setCmd)
}

// cliConfig is what climatectl remembers between invocations.
type cliConfig struct {
	Hub    string `json:"hub"`
	Token  string `json:"token,omitempty"`
	Email  string `json:"email,omitempty"`
	Region string `json:"region,omitempty"`
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "climate-hub", "config.json")
}

func loadConfig() cliConfig {
	cfg := cliConfig{Hub: "http://localhost:8080"}

	path := configPath()
	if path == "" {
		return cfg
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	json.Unmarshal(b, &cfg)
	return cfg
}

func saveConfig(cfg cliConfig) error {
	path := configPath()
	if path == "" {
		return fmt.Errorf("could not determine home directory")
	}

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o600)
}

// newClient builds a hub client from config and command line overrides.
func newClient() client.ClimateHubClient {
	cfg := loadConfig()

	hub := cfg.Hub
	if hubURL != "" {
		hub = hubURL
	}

	token := cfg.Token
	if apiToken != "" {
		token = apiToken
	}

	return client.New(hub, token)
}
