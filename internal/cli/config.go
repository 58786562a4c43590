package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/codalotl/magicstring/internal/q/cascade"
	qcli "github.com/codalotl/magicstring/internal/q/cli"
	"github.com/codalotl/magicstring/internal/sourcemap"
)

// Config holds defaults for command flags. A flag given on the command line always wins.
type Config struct {
	// Hires is the default map resolution: "", "false", "true", or "boundary".
	Hires string `json:"hires"`

	IncludeContent bool `json:"include_content"`

	// Color is "auto", "always", or "never".
	Color string `json:"color"`

	// Context is the number of unchanged lines around each diff hunk.
	Context int `json:"context"`

	// Filename is the source name recorded in maps. Empty uses the input path.
	Filename string `json:"filename"`
}

var configFormats = []string{"json", "yaml", "toml"}

var configEnv = map[string]string{
	"hires":           "MAGICSTRING_HIRES",
	"include_content": "MAGICSTRING_INCLUDE_CONTENT",
	"color":           "MAGICSTRING_COLOR",
	"context":         "MAGICSTRING_CONTEXT",
	"filename":        "MAGICSTRING_FILENAME",
}

func newConfigLoader() *cascade.Loader {
	loader := cascade.New().WithDefaults(map[string]any{
		"color":   "auto",
		"context": 3,
	})

	// Per-user config, then the nearest project config, then env.
	for _, ext := range configFormats {
		loader = loader.WithFile(cascade.InUserConfigDirectory(".magicstring/config." + ext))
	}
	for _, ext := range configFormats {
		loader = loader.WithNearestFile(".magicstring."+ext, "")
	}
	return loader.WithEnv(configEnv)
}

func loadConfig() (Config, *cascade.Loader, error) {
	loader := newConfigLoader()
	var cfg Config
	if err := loader.StrictlyLoad(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, nil, err
	}
	return cfg, loader, nil
}

func validateConfig(cfg Config) error {
	if _, err := sourcemap.ParseHires(cfg.Hires); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !slices.Contains(colorChoices, cfg.Color) {
		return fmt.Errorf("invalid configuration: color must be one of auto, always, never (got %q)", cfg.Color)
	}
	if cfg.Context < 0 {
		return fmt.Errorf("invalid configuration: context must be >= 0 (got %d)", cfg.Context)
	}
	return nil
}

func newConfigCommand() *qcli.Command {
	cmd := &qcli.Command{
		Name:  "config",
		Short: "Print the effective configuration",
		Long: "Configuration is read, lowest priority first, from built-in defaults, ~/.magicstring/config.{json,yaml,toml}, the nearest\n" +
			".magicstring.{json,yaml,toml} in the working directory or its parents, and MAGICSTRING_* environment variables.",
		Args: qcli.NoArgs,
	}
	origins := cmd.Flags().Bool("origins", 0, false, "Print where each value came from instead")
	cmd.Run = func(c *qcli.Context) error {
		cfg, loader, err := loadConfig()
		if err != nil {
			return err
		}
		if *origins {
			byKey := loader.Origins()
			keys := make([]string, 0, len(byKey))
			for k := range byKey {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(c.Out, "%s\t%s\n", k, byKey[k])
			}
			return nil
		}
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(c.Out, "%s\n", b)
		return err
	}
	return cmd
}
