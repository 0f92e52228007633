package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"RasterBoard/internal/board"
	"RasterBoard/internal/config"
	"RasterBoard/internal/export"
	"RasterBoard/internal/ui"
)

// version is set with -ldflags "-X main.version=...".
var version = ""

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("rasterboard command failed")
		return 1
	}
	return 0
}

type rootFlags struct {
	config string
	width  int
	height int
}

// load reads the config file and applies the window flags on top.
func (f *rootFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("width") {
		cfg.Window.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Window.Height = f.height
	}
	return cfg, cfg.Validate()
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "rasterboard",
		Short:         "Single-user raster whiteboard",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			pslog.Ctx(cmd.Context()).Info("opening whiteboard", "width", cfg.Window.Width, "height", cfg.Window.Height)
			return ui.RunApp(cmd.Context(), cfg)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "config file (default $XDG_CONFIG_HOME/rasterboard/config.yaml)")
	pf.IntVar(&flags.width, "width", 0, "board width, overrides window.width")
	pf.IntVar(&flags.height, "height", 0, "board height, overrides window.height")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newExportCmd(flags))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "rasterboard %s\n", currentVersion())
			return err
		},
	}
}

func currentVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// newExportCmd renders a blank board of the configured size and saves it
// without opening a window.
func newExportCmd(flags *rootFlags) *cobra.Command {
	var dir string
	var pdf bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a blank board as whiteboard.png (and optionally whiteboard.pdf)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") {
				dir = cfg.Export.Dir
			}
			return exportBlank(cmd.Context(), cfg, dir, pdf)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory, overrides export.dir")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "also write whiteboard.pdf")
	return cmd
}

func exportBlank(ctx context.Context, cfg config.Config, dir string, pdf bool) error {
	opts, err := cfg.BoardOptions()
	if err != nil {
		return err
	}
	b := board.New(ctx, opts)
	vp := board.NewResizer(cfg.Window.Width, cfg.Window.Height)
	b.Mount(vp)
	defer b.Dispose()

	saver := export.DirSaver{Dir: dir}
	if err := b.Download(ctx, saver); err != nil {
		return err
	}
	if pdf {
		return b.DownloadPDF(ctx, saver)
	}
	return nil
}
