// Package main is the entry point for the iris CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	iris "github.com/iris-hq/iris-golang"
)

var version = "0.1.0"

// Global flags.
var (
	debug      bool
	timeout    float64
	maxRetries int
	envFile    string
	configFile string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "iris",
		Short: "Command-line client for the IRIS platform",
		Long: `iris proxies resource.method calls and raw HTTP requests into the
IRIS API, printing JSON responses. Credentials come from flags,
environment variables (IRIS_API_KEY etc.), a .env file, or a YAML
config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadDotenv()
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "Log requests and responses")
	root.PersistentFlags().Float64Var(&timeout, "timeout", 0, "Request timeout in seconds")
	root.PersistentFlags().IntVar(&maxRetries, "retries", 0, "Max attempts per request")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file to load")
	root.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCallCmd())
	root.AddCommand(newRequestCmd())

	return root
}

// loadDotenv loads an explicit --env-file strictly, or ./.env
// opportunistically.
func loadDotenv() error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	_ = godotenv.Load()
	return nil
}

func newClient() (*iris.Client, error) {
	params := iris.ConfigParams{
		TimeoutSeconds: timeout,
		MaxRetries:     maxRetries,
		ConfigFile:     configFile,
	}
	if debug {
		params.Debug = &debug
	}
	return iris.NewClientWithParams(params)
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
