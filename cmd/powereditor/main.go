// Package main is the entry point for the power editor.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/powereditor/internal/combotree"
	"github.com/samdwyer/powereditor/internal/cursor"
	"github.com/samdwyer/powereditor/internal/editor"
	"github.com/samdwyer/powereditor/internal/export"
	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/powerio"
	"github.com/samdwyer/powereditor/internal/report"
	"github.com/samdwyer/powereditor/internal/telemetry"
	"github.com/samdwyer/powereditor/internal/timeline"
	"github.com/samdwyer/powereditor/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_POWEREDITOR_API_KEY and POWEREDITOR_* available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := editor.ConfigFromEnv()
	if cfg.Tracing {
		setupOTelEnv()

		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Editor will run without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	return newRootCmd(cfg).ExecuteContext(ctx)
}

func newRootCmd(cfg editor.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "powereditor [file]",
		Short: "Edit power tables and inspect combo chains and cast timelines",
		Long: `powereditor opens a power table in an interactive terminal editor.
Powers are listed as combo trees grouped by their parent item; the selected
power shows its combos, its cast timeline and a hitbox preview.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.File = args[0]
			}
			return runEditor(cmd.Context(), cfg)
		},
	}
	rootCmd.Flags().StringVar(&cfg.Descriptions, "descriptions", cfg.Descriptions, "Column description JSON file")
	rootCmd.Flags().StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "Directory for exported frame images")
	rootCmd.Flags().StringVar(&cfg.HitboxColor, "hitbox-color", cfg.HitboxColor, "Hitbox color as #RRGGBB")

	treeCmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print every power grouped into combo trees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := load(cmd, args[0])
			if err != nil {
				return err
			}
			forest := combotree.Build(cmd.Context(), res.Powers, nil)
			return report.Forest(cmd.OutOrStdout(), forest)
		},
	}

	combosCmd := &cobra.Command{
		Use:   "combos FILE POWER",
		Short: "Print what a power combos into and what reaches it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := load(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := findPower(res.Powers, args[1])
			if err != nil {
				return err
			}
			return report.Combos(cmd.OutOrStdout(), p, res.Powers)
		},
	}

	timelineCmd := &cobra.Command{
		Use:   "timeline FILE POWER",
		Short: "Print the decoded casts of a power",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := load(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := findPower(res.Powers, args[1])
			if err != nil {
				return err
			}
			return report.Timeline(cmd.OutOrStdout(), p)
		},
	}

	frameCmd := &cobra.Command{
		Use:   "frame FILE POWER",
		Short: "Render one frame of a power's timeline to PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := load(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := findPower(res.Powers, args[1])
			if err != nil {
				return err
			}
			frame, _ := cmd.Flags().GetInt("frame")
			out, _ := cmd.Flags().GetString("output")
			color, _ := cmd.Flags().GetString("hitbox-color")
			return renderFrame(cmd, p, frame, out, color)
		},
	}
	frameCmd.Flags().Int("frame", 0, "Global frame number, starting at 0")
	frameCmd.Flags().StringP("output", "o", "frame.png", "Output PNG path")
	frameCmd.Flags().String("hitbox-color", cfg.HitboxColor, "Hitbox color as #RRGGBB")

	rootCmd.AddCommand(treeCmd, combosCmd, timelineCmd, frameCmd)
	return rootCmd
}

func runEditor(ctx context.Context, cfg editor.Config) error {
	e, err := editor.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize editor: %w", err)
	}
	if err := e.Run(ctx); err != nil {
		return fmt.Errorf("editor error: %w", err)
	}
	return nil
}

func load(cmd *cobra.Command, path string) (*powerio.LoadResult, error) {
	res, err := powerio.LoadPowers(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	if res.Skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d malformed rows\n", res.Skipped)
	}
	return res, nil
}

// findPower matches a power by id first, then by name.
func findPower(powers []*power.Power, query string) (*power.Power, error) {
	query = strings.TrimSpace(query)
	for _, p := range powers {
		if p.ID == query {
			return p, nil
		}
	}
	for _, p := range powers {
		if p.NameMatches(query) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no power named or numbered %q", query)
}

func renderFrame(cmd *cobra.Command, p *power.Power, frame int, out, hex string) error {
	casts, err := timeline.Decode(p)
	if err != nil {
		return err
	}
	cur := cursor.New(casts)
	cur.SeekFrame(frame)

	opts := export.DefaultOptions()
	if c, err := ui.ParseHexColor(hex); err == nil {
		opts.HitboxColor = ui.RGBA(c)
	}
	if err := export.SavePNG(cmd.Context(), out, p.Label(), cur, opts); err != nil {
		return err
	}
	castIndex, within, total := cur.State()
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (cast %d, frame %d of %d)\n", out, castIndex+1, within+1, total)
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_POWEREDITOR_API_KEY")
	if apiKey == "" {
		// Leave any OTEL_* settings alone
		return
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	dataset := os.Getenv("HONEYCOMB_POWEREDITOR_DATASET")
	if dataset == "" {
		dataset = "powereditor"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
