package main

import (
	"fmt"

	"github.com/Laadnanimoustapha/DevMatch-AI/pkg/config"
	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Validate a configuration file",
				Action: runConfigValidateCmd,
			},
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: runConfigShowCmd,
			},
		},
	}
}

func runConfigValidateCmd(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		color.Yellow("No config file given. Default configuration is valid.")
		return nil
	}

	if _, err := config.Load(path); err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}

	color.Green("Configuration valid: %s", path)
	return nil
}

func runConfigShowCmd(c *cli.Context) error {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		fmt.Printf("# Configuration from: %s\n\n", path)
	} else {
		cfg = config.LoadOrDefault()
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(content))

	return nil
}
