package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teamsdoc/docfix/pkg/docfix"
	"github.com/teamsdoc/docfix/pkg/docfix/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP fix service",
		Long: `Serve starts an HTTP server exposing POST /api/fix.

Clients upload a DOCX as multipart form data under the "file" field and
receive the fixed document back as an attachment. Configuration is read from
` + docfix.DefaultConfigFile + ` (current directory, then home directory),
overridden by DOCFIX_* environment variables and then by flags.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().String("listen", "", "Address to listen on (default "+docfix.DefaultListenAddr+")")
	cmd.Flags().Int64("max-upload", 0, "Maximum upload size in bytes")
	cmd.Flags().String("config", "", "Path to configuration file")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	config, err := loadServeConfig(configPath)
	if err != nil {
		return err
	}

	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		config.ListenAddr = listen
	}
	if maxUpload, _ := cmd.Flags().GetInt64("max-upload"); maxUpload > 0 {
		config.MaxUploadSize = maxUpload
	}
	applyVerbose(cmd, config)

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	docfix.SetGlobalConfig(config)

	srv := server.New(config)
	docfix.GetLogger().Info("listening on %s", config.ListenAddr)
	return srv.ListenAndServe()
}

// loadServeConfig resolves the layered configuration for the server: the
// YAML file when found, then environment overrides. A missing file is only
// an error when its path was given explicitly.
func loadServeConfig(configPath string) (*docfix.Config, error) {
	found := docfix.FindConfigFile(configPath)
	if found == "" {
		if configPath != "" {
			return nil, fmt.Errorf("configuration file %s: %w", configPath, docfix.ErrConfigNotFound)
		}
		return docfix.ConfigFromEnvironment(), nil
	}

	config, err := docfix.LoadConfigFile(found)
	if err != nil {
		if errors.Is(err, docfix.ErrConfigNotFound) && configPath == "" {
			return docfix.ConfigFromEnvironment(), nil
		}
		return nil, err
	}

	overlayEnvironment(config)
	return config, nil
}

// overlayEnvironment applies environment variables on top of a file-derived
// configuration, mirroring the precedence file < environment < flags.
func overlayEnvironment(config *docfix.Config) {
	env := docfix.ConfigFromEnvironment()
	defaults := docfix.DefaultConfig()

	if env.LogLevel != defaults.LogLevel {
		config.LogLevel = env.LogLevel
	}
	if env.MaxUploadSize != defaults.MaxUploadSize {
		config.MaxUploadSize = env.MaxUploadSize
	}
	if env.ListenAddr != defaults.ListenAddr {
		config.ListenAddr = env.ListenAddr
	}
	if env.AllowedOrigin != defaults.AllowedOrigin {
		config.AllowedOrigin = env.AllowedOrigin
	}
	if env.Jobs != defaults.Jobs {
		config.Jobs = env.Jobs
	}
}
