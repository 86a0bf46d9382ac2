package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"fitsview/internal/logging"
	"fitsview/internal/models"
	"fitsview/pkg/config"
	"fitsview/pkg/visualization"
	"fitsview/pkg/viewer"
)

var (
	stretchChoices  = []string{"linear", "log", "asinh"}
	plotTypeChoices = []string{visualization.PlotImage, visualization.PlotContours, visualization.PlotImageContours}
)

// Deps are the collaborators of the root command
type Deps struct {
	// Render runs one invocation; defaults to viewer.Render
	Render func(viewer.Options) (*visualization.Figure, error)

	// Display builds the interactive window; nil never displays
	Display func(*slog.Logger) viewer.Displayer
}

// NewRootCmd creates the fitsview command with defaults taken from cfg
func NewRootCmd(cfg *config.Config, deps Deps) *cobra.Command {
	if deps.Render == nil {
		deps.Render = viewer.Render
	}

	var (
		zoom          []int
		output        string
		stretch       string
		title         string
		cmap          string
		vmin          float64
		vmax          float64
		plotType      string
		contourColor  string
		contourLevels []float64
		noShow        bool
		configPath    string
		logLevel      string
		writeConfig   bool
	)

	cmd := &cobra.Command{
		Use:   "fitsview <filename>",
		Short: "View a FITS file as an image, contours, or both",
		Long: `View the first image plane of a FITS file with celestial coordinate axes.
The plane can be drawn as a raster, as labeled contour lines, or both, with a
linear, log or asinh stretch. The figure is shown in a window and optionally
saved to disk at 300 DPI.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if writeConfig {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateChoice("stretch", stretch, stretchChoices); err != nil {
				return err
			}
			if err := validateChoice("plot-type", plotType, plotTypeChoices); err != nil {
				return err
			}
			if cmd.Flags().Changed("zoom") && len(zoom) != 4 {
				return fmt.Errorf("--zoom expects 4 values XMIN XMAX YMIN YMAX, got %d", len(zoom))
			}
			cmd.SilenceUsage = true

			log := logging.New(cmd.ErrOrStderr(), logLevel, cfg.Logging.Format)

			if writeConfig {
				path, err := config.Path(configPath)
				if err != nil {
					return err
				}
				if err := config.CreateDefaultConfigFile(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
				return nil
			}

			opts := viewer.Options{
				Filename:      args[0],
				Output:        output,
				Stretch:       stretch,
				Title:         title,
				Colormap:      cmap,
				PlotType:      plotType,
				ContourColor:  contourColor,
				ContourLevels: contourLevels,
				Stdout:        cmd.OutOrStdout(),
				Log:           log,
			}
			if len(zoom) == 4 {
				opts.Zoom = &models.Zoom{XMin: zoom[0], XMax: zoom[1], YMin: zoom[2], YMax: zoom[3]}
			}
			if cmd.Flags().Changed("vmin") {
				opts.VMin = &vmin
			}
			if cmd.Flags().Changed("vmax") {
				opts.VMax = &vmax
			}
			if !noShow && deps.Display != nil {
				opts.Display = deps.Display(log)
			}

			_, err := deps.Render(opts)
			return err
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVar(&zoom, "zoom", nil, "region to zoom in on in pixel coordinates: XMIN XMAX YMIN YMAX")
	flags.StringVar(&output, "output", "", "path to save the output image (png, jpg, tiff, svg, pdf, eps)")
	flags.StringVar(&stretch, "stretch", cfg.Render.Stretch, "type of stretch to apply ("+strings.Join(stretchChoices, "|")+")")
	flags.StringVar(&title, "title", "", "title for the plot")
	flags.StringVar(&cmap, "cmap", cfg.Render.Colormap, "colormap to use")
	flags.Float64Var(&vmin, "vmin", 0, "minimum value for color scaling")
	flags.Float64Var(&vmax, "vmax", 0, "maximum value for color scaling")
	flags.StringVar(&plotType, "plot-type", cfg.Render.PlotType, "plot type ("+strings.Join(plotTypeChoices, "|")+")")
	flags.StringVar(&contourColor, "contour-color", cfg.Render.ContourColor, "color of the contours")
	flags.Float64SliceVar(&contourLevels, "contour-levels", nil, "list of contour levels")
	flags.BoolVar(&noShow, "no-show", !cfg.Display.Enabled, "do not open the interactive window")
	flags.StringVar(&configPath, "config", "", "configuration file (default $"+config.EnvPath+" or ~/.config/fitsview/config.yaml)")
	flags.StringVar(&logLevel, "log-level", cfg.Logging.Level, "log level (debug|info|warn|error)")
	flags.BoolVar(&writeConfig, "write-config", false, "write the default configuration file and exit")

	return cmd
}

func validateChoice(flag, value string, choices []string) error {
	if slices.Contains(choices, value) {
		return nil
	}
	return fmt.Errorf("invalid --%s %q (choose from %s)", flag, value, strings.Join(choices, ", "))
}
