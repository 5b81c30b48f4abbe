package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/breathe/internal/config"
	"github.com/mrz1836/breathe/internal/constants"
	"github.com/mrz1836/breathe/internal/tui"
)

// ConfigShowFlags holds flags specific to the config show command.
type ConfigShowFlags struct {
	// Raw prints the effective configuration as plain YAML, ready to be
	// saved as a config file.
	Raw bool
}

// AddConfigCommand adds the config command and its subcommands.
func AddConfigCommand(root *cobra.Command, globals *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(newConfigShowCmd(globals, &ConfigShowFlags{}))
	root.AddCommand(cmd)
}

// newConfigShowCmd creates the 'config show' subcommand.
func newConfigShowCmd(globals *GlobalFlags, flags *ConfigShowFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective breathe configuration with source annotations.

Each value is annotated with where it came from:
  - default: Built-in default value
  - global: From ~/.breathe/config.yaml
  - project: From .breathe/config.yaml
  - env: From a BREATHE_* environment variable

Examples:
  breathe config show
  breathe config show --output json
  breathe config show --raw > ~/.breathe/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd.OutOrStdout(), globals.Output, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Raw, "raw", false, "print plain YAML without annotations")

	return cmd
}

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from global config.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from project config.
	SourceProject ConfigSource = "project"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
)

// ConfigValueWithSource represents a configuration value with its source.
type ConfigValueWithSource struct {
	Value  any          `json:"value" yaml:"value"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// AnnotatedConfig maps section and key to an annotated value.
type AnnotatedConfig map[string]map[string]ConfigValueWithSource

// configField is one leaf of the configuration in display order.
type configField struct {
	section string
	key     string
	value   any
}

// configFields lists every configuration value in display order.
func configFields(cfg *config.Config) []configField {
	return []configField{
		{"geometry", "diagonal_length", cfg.Geometry.DiagonalLength},
		{"geometry", "max_horizontal_length", cfg.Geometry.MaxHorizontalLength},
		{"geometry", "viewport_width", cfg.Geometry.ViewportWidth},
		{"geometry", "fixed_ball_position", cfg.Geometry.FixedBallPosition},
		{"geometry", "diagonal_angle_degrees", cfg.Geometry.DiagonalAngleDegrees},
		{"engine", "cache_size", cfg.Engine.CacheSize},
		{"engine", "max_transitions_per_update", cfg.Engine.MaxTransitionsPerUpdate},
		{"display", "frame_interval", cfg.Display.FrameInterval},
		{"display", "show_progress", cfg.Display.ShowProgress},
		{"display", "canvas_height", cfg.Display.CanvasHeight},
		{"display", "default_pattern", cfg.Display.DefaultPattern},
		{"patterns", "dir", cfg.Patterns.Dir},
	}
}

// configShowStyles contains styling for the config show command output.
type configShowStyles struct {
	header    lipgloss.Style
	section   lipgloss.Style
	key       lipgloss.Style
	value     lipgloss.Style
	sourceEnv lipgloss.Style
	sourcePrj lipgloss.Style
	sourceGbl lipgloss.Style
	sourceDef lipgloss.Style
	dim       lipgloss.Style
}

// newConfigShowStyles creates styles for config show command output.
func newConfigShowStyles() *configShowStyles {
	return &configShowStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(tui.ColorPrimary),
		section:   lipgloss.NewStyle().Bold(true),
		key:       lipgloss.NewStyle().Foreground(tui.ColorPrimary),
		value:     lipgloss.NewStyle(),
		sourceEnv: lipgloss.NewStyle().Foreground(tui.ColorError), // highest precedence
		sourcePrj: lipgloss.NewStyle().Foreground(tui.ColorWarning),
		sourceGbl: lipgloss.NewStyle().Foreground(tui.ColorSuccess),
		sourceDef: lipgloss.NewStyle().Foreground(tui.ColorMuted),
		dim:       lipgloss.NewStyle().Foreground(tui.ColorMuted),
	}
}

// runConfigShow executes the config show command.
func runConfigShow(ctx context.Context, w io.Writer, format string, flags *ConfigShowFlags) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.Raw {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		return enc.Close()
	}

	annotated := buildAnnotatedConfig(cfg)

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(annotated)
	}

	tui.CheckNoColor()
	printAnnotated(w, cfg)
	return nil
}

// buildAnnotatedConfig creates an annotated configuration with source information.
func buildAnnotatedConfig(cfg *config.Config) AnnotatedConfig {
	globalCfg := loadGlobalConfigOnly()
	projectCfg := loadProjectConfigOnly()

	annotated := make(AnnotatedConfig)
	for _, f := range configFields(cfg) {
		if annotated[f.section] == nil {
			annotated[f.section] = make(map[string]ConfigValueWithSource)
		}
		annotated[f.section][f.key] = determineSource(f.section, f.key, displayValue(f.value), globalCfg, projectCfg)
	}
	return annotated
}

// configValues holds the keys present in a config file, by section.
type configValues map[string]map[string]any

// loadGlobalConfigOnly loads only the global config for source comparison.
func loadGlobalConfigOnly() configValues {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return nil
	}
	return loadConfigFile(path)
}

// loadProjectConfigOnly loads only the project config for source comparison.
func loadProjectConfigOnly() configValues {
	return loadConfigFile(config.ProjectConfigPath())
}

// loadConfigFile decodes a config file for source determination. Missing or
// malformed files yield nil.
func loadConfigFile(path string) configValues {
	data, err := os.ReadFile(path) //nolint:gosec // Config file path
	if err != nil {
		return nil
	}

	var values configValues
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil
	}
	return values
}

// determineSource determines where a configuration value came from.
func determineSource(section, key string, value any, globalCfg, projectCfg configValues) ConfigValueWithSource {
	envKey := constants.EnvPrefix + "_" + strings.ToUpper(section+"_"+key)
	if _, ok := os.LookupEnv(envKey); ok {
		return ConfigValueWithSource{Value: value, Source: SourceEnv}
	}
	if _, ok := projectCfg[section][key]; ok {
		return ConfigValueWithSource{Value: value, Source: SourceProject}
	}
	if _, ok := globalCfg[section][key]; ok {
		return ConfigValueWithSource{Value: value, Source: SourceGlobal}
	}
	return ConfigValueWithSource{Value: value, Source: SourceDefault}
}

// displayValue renders durations as strings and dereferences optional
// numbers so JSON output stays readable.
func displayValue(v any) any {
	switch x := v.(type) {
	case time.Duration:
		return x.String()
	case *float64:
		if x == nil {
			return "centre"
		}
		return *x
	default:
		return v
	}
}

// printAnnotated writes the configuration as YAML with source comments.
func printAnnotated(w io.Writer, cfg *config.Config) {
	styles := newConfigShowStyles()
	annotated := buildAnnotatedConfig(cfg)

	_, _ = fmt.Fprintln(w, styles.header.Render("Effective breathe configuration"))
	_, _ = fmt.Fprintln(w, styles.dim.Render("Sources: ")+
		styles.sourceEnv.Render("env")+" > "+
		styles.sourcePrj.Render("project")+" > "+
		styles.sourceGbl.Render("global")+" > "+
		styles.sourceDef.Render("default"))

	section := ""
	for _, f := range configFields(cfg) {
		if f.section != section {
			section = f.section
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, styles.section.Render(section+":"))
		}
		printConfigValue(w, styles, "  "+f.key, annotated[f.section][f.key])
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.dim.Render("Configuration files:"))
	if globalPath, err := config.GlobalConfigPath(); err == nil {
		printConfigPath(w, styles, "Global", globalPath, styles.sourceGbl)
	}
	projectPath := config.ProjectConfigPath()
	if abs, err := filepath.Abs(projectPath); err == nil {
		projectPath = abs
	}
	printConfigPath(w, styles, "Project", projectPath, styles.sourcePrj)
}

func printConfigPath(w io.Writer, styles *configShowStyles, label, path string, found lipgloss.Style) {
	if _, err := os.Stat(path); err == nil {
		_, _ = fmt.Fprintln(w, styles.dim.Render("  "+label+": ")+found.Render(path))
		return
	}
	_, _ = fmt.Fprintln(w, styles.dim.Render("  "+label+": ")+styles.dim.Render(path+" (not found)"))
}

// printConfigValue prints a configuration value with its source annotation.
func printConfigValue(w io.Writer, styles *configShowStyles, key string, vs ConfigValueWithSource) {
	_, _ = fmt.Fprintf(w, "%s: %s  %s\n",
		styles.key.Render(key),
		styles.value.Render(formatConfigValue(vs.Value)),
		getSourceStyle(vs.Source, styles).Render("# "+string(vs.Source)))
}

// formatConfigValue converts a configuration value to a displayable string.
func formatConfigValue(value any) string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "(not set)"
		}
		return v
	case nil:
		return "(not set)"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// getSourceStyle returns the appropriate style for a config source.
func getSourceStyle(source ConfigSource, styles *configShowStyles) lipgloss.Style {
	switch source {
	case SourceEnv:
		return styles.sourceEnv
	case SourceProject:
		return styles.sourcePrj
	case SourceGlobal:
		return styles.sourceGbl
	default:
		return styles.sourceDef
	}
}
