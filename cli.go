package bgone

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liek944/Bgone/internal/config"
	"github.com/liek944/Bgone/pkg/batch"
	"github.com/liek944/Bgone/pkg/geometry"
	"github.com/liek944/Bgone/pkg/presets"
)

type cliFlags struct {
	ConfigPath string
	ServerURL  string
	OutputDir  string
	Suffix     string
	Overwrite  bool
	Quiet      bool

	Preset     string
	Width      int
	Height     int
	Mode       string
	Background string
	Prefix     string
}

var flags = &cliFlags{}

var rootCmd = &cobra.Command{
	Use:           "bgone",
	Short:         "Remove image backgrounds and export transparent PNGs.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var singleCmd = &cobra.Command{
	Use:   "single <file>",
	Short: "Remove the background from a single image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cfg, err := buildApp()
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		outcome := app.RemoveBackground(ctx, args[0], BatchOptions{
			OutputDir: outputDir(cfg),
			Suffix:    suffix(cfg),
			Overwrite: flags.Overwrite || cfg.Output.Overwrite,
		})

		switch outcome.Status {
		case batch.Processed:
			report("Processed: %s -> %s", filepath.Base(args[0]), outcome.OutputPath)
			return nil
		case batch.Skipped:
			report("Skipped (exists): %s", outcome.OutputPath)
			return nil
		case batch.Cancelled:
			report("Cancelled: %s", filepath.Base(args[0]))
			return nil
		default:
			return fmt.Errorf("%s: %s", filepath.Base(args[0]), outcome.Reason)
		}
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <folder>",
	Short: "Remove backgrounds from all images in a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cfg, err := buildApp()
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		result, err := app.RemoveBackgroundBatch(ctx, args[0], BatchOptions{
			OutputDir:  outputDir(cfg),
			Suffix:     suffix(cfg),
			Overwrite:  flags.Overwrite || cfg.Output.Overwrite,
			OnProgress: printProgress,
		})
		if err != nil {
			return err
		}

		return finish(result)
	},
}

var resizeCmd = &cobra.Command{
	Use:   "resize <folder>",
	Short: "Resize all images in a folder to a platform preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cfg, err := buildApp()
		if err != nil {
			return err
		}

		presetName := flags.Preset
		if presetName == "" {
			presetName = cfg.Resize.Preset
		}
		modeStr := flags.Mode
		if modeStr == "" {
			modeStr = cfg.Resize.Mode
		}
		mode, err := geometry.ParseMode(modeStr)
		if err != nil {
			return err
		}

		bgStr := flags.Background
		if bgStr == "" {
			bgStr = cfg.Resize.Background
		}
		bg, err := parseHexColor(bgStr)
		if err != nil {
			return err
		}

		prefix := flags.Prefix
		if prefix == "" {
			prefix = cfg.Resize.Prefix
		}

		ctx, stop := signalContext()
		defer stop()

		result, err := app.ResizeBatch(ctx, args[0], ResizeOptions{
			OutputDir:  outputDir(cfg),
			Prefix:     prefix,
			Preset:     presetName,
			Width:      flags.Width,
			Height:     flags.Height,
			Mode:       mode,
			Background: bg,
			Overwrite:  flags.Overwrite || cfg.Output.Overwrite,
			OnProgress: printProgress,
		})
		if err != nil {
			return err
		}

		return finish(result)
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available dimension presets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range presets.Names() {
			size, _ := presets.Lookup(name)
			if size == nil {
				fmt.Printf("%-14s (custom dimensions via --width/--height)\n", name)
			} else {
				fmt.Printf("%-14s %dx%d\n", name, size.Width, size.Height)
			}
		}
	},
}

func buildApp() (*App, *config.Config, error) {
	cfg := config.Default()
	path := flags.ConfigPath
	if path == "" {
		path = config.Path()
	}
	if loaded, err := config.LoadFromFile(path); err == nil {
		cfg = loaded
	} else if flags.ConfigPath != "" {
		// An explicitly named config file must exist.
		return nil, nil, err
	}

	if flags.ServerURL != "" {
		cfg.Server.URL = flags.ServerURL
	}

	app, err := NewApp(cfg)
	if err != nil {
		return nil, nil, err
	}
	return app, cfg, nil
}

func outputDir(cfg *config.Config) string {
	if flags.OutputDir != "" {
		return flags.OutputDir
	}
	return cfg.Output.Dir
}

func suffix(cfg *config.Config) string {
	if flags.Suffix != "" {
		return flags.Suffix
	}
	return cfg.Output.Suffix
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func printProgress(e batch.Event) {
	if flags.Quiet {
		return
	}
	name := filepath.Base(e.Outcome.Item.Path)
	switch e.Outcome.Status {
	case batch.Processed:
		fmt.Printf("[%d/%d] Processed: %s -> %s\n", e.Visited, e.Total, name, filepath.Base(e.Outcome.OutputPath))
	case batch.Skipped:
		fmt.Printf("[%d/%d] Skipped (%s): %s\n", e.Visited, e.Total, e.Outcome.Reason, name)
	case batch.Failed:
		fmt.Printf("[%d/%d] Failed: %s - %s\n", e.Visited, e.Total, name, e.Outcome.Reason)
	}
}

func report(format string, args ...any) {
	if !flags.Quiet {
		fmt.Printf(format+"\n", args...)
	}
}

func finish(result batch.Result) error {
	report("%s", result.Summary())
	if result.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", result.Failed)
	}
	return nil
}

// parseHexColor parses #RGB-style hex colors: #RRGGBB or #RRGGBBAA.
func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")

	var c color.NRGBA
	c.A = 0xFF
	switch len(s) {
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return c, fmt.Errorf("invalid color %q: %v", s, err)
		}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return c, fmt.Errorf("invalid color %q: %v", s, err)
		}
	default:
		return c, fmt.Errorf("invalid color %q: use #RRGGBB or #RRGGBBAA", s)
	}
	return c, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&flags.ServerURL, "server", "", "rembg server URL")
	rootCmd.PersistentFlags().StringVarP(&flags.OutputDir, "out", "o", "", "Output directory")
	rootCmd.PersistentFlags().BoolVar(&flags.Overwrite, "overwrite", false, "Overwrite existing files")
	rootCmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress per-file output")

	singleCmd.Flags().StringVar(&flags.Suffix, "suffix", "", "Output filename suffix")
	batchCmd.Flags().StringVar(&flags.Suffix, "suffix", "", "Output filename suffix")

	resizeCmd.Flags().StringVarP(&flags.Preset, "preset", "p", "", "Dimension preset (see 'bgone presets')")
	resizeCmd.Flags().IntVar(&flags.Width, "width", 0, "Custom target width")
	resizeCmd.Flags().IntVar(&flags.Height, "height", 0, "Custom target height")
	resizeCmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", "Aspect ratio mode: fit, fill or stretch")
	resizeCmd.Flags().StringVar(&flags.Background, "bg", "", "Padding color for fit mode (#RRGGBB[AA])")
	resizeCmd.Flags().StringVar(&flags.Prefix, "prefix", "", "Output filename prefix")

	rootCmd.AddCommand(singleCmd, batchCmd, resizeCmd, presetsCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
