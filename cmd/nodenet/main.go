// Command nodenet runs the node-network background animation in a window and
// manages its settings file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/nodenet"
)

var (
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	subtle = color.New(color.Faint)
)

var (
	flagNodes       int
	flagMaxDistance float64
	flagDebug       bool
	flagSettings    string
)

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "nodenet.toml"
	}
	return filepath.Join(dir, "nodenet", "settings.toml")
}

var rootCmd = &cobra.Command{
	Use:   "nodenet",
	Short: "nodenet — animated node-network background",
	Long: "nodenet renders a field of drifting glyph particles joined by\n" +
		"proximity connections. Drag nodes with the mouse; scroll to exercise\n" +
		"the adaptive frame-skip policy.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow()
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change persisted preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := nodenet.OpenFileSettings(flagSettings)
		if err != nil {
			return err
		}
		s := fs.Current()
		fmt.Printf("enable_animations     = %v\n", s.EnableAnimations)
		fmt.Printf("reduce_motion         = %v\n", s.ReduceMotion)
		fmt.Printf("psychedelic_intensity = %g\n", s.PsychedelicIntensity)
		subtle.Printf("(%s)\n", flagSettings)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one setting and persist it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := nodenet.OpenFileSettings(flagSettings)
		if err != nil {
			return err
		}
		key, raw := args[0], args[1]
		var keyErr error
		err = fs.Update(func(s *nodenet.Settings) {
			switch key {
			case "enable_animations":
				s.EnableAnimations = raw == "true"
			case "reduce_motion":
				s.ReduceMotion = raw == "true"
			case "psychedelic_intensity":
				if v, perr := strconv.ParseFloat(raw, 64); perr == nil {
					s.PsychedelicIntensity = v
				} else {
					keyErr = fmt.Errorf("not a number: %q", raw)
				}
			default:
				keyErr = fmt.Errorf("unknown setting %q", key)
			}
		})
		if keyErr != nil {
			bad.Printf("nodenet: %v\n", keyErr)
			return keyErr
		}
		if err != nil {
			bad.Printf("nodenet: %v\n", err)
			return err
		}
		good.Printf("saved %s\n", key)
		return nil
	},
}

type game struct {
	anim  *nodenet.NodeNetworkAnimation
	start time.Time

	w, h      int
	scrollPos float64
}

func (g *game) now() float64 {
	return float64(time.Since(g.start)) / float64(time.Millisecond)
}

func (g *game) Update() error {
	_, wheelY := ebiten.Wheel()
	g.scrollPos += wheelY * 40
	now := g.now()
	g.anim.ReportScroll(g.scrollPos, now)
	g.anim.Tick(now)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.anim.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	g.w = int(float64(outsideWidth) * scale)
	g.h = int(float64(outsideHeight) * scale)
	return g.w, g.h
}

func runWindow() error {
	settings, err := nodenet.OpenFileSettings(flagSettings)
	if err != nil {
		bad.Printf("nodenet: %v\n", err)
		return err
	}

	g := &game{start: time.Now()}
	anim, err := nodenet.New(nodenet.Config{
		NodeCount:             flagNodes,
		MaxConnectionDistance: flagMaxDistance,
		Layout: func() (float64, float64, float64) {
			scale := ebiten.Monitor().DeviceScaleFactor()
			if g.w == 0 || g.h == 0 {
				return 960, 540, scale
			}
			return float64(g.w) / scale, float64(g.h) / scale, scale
		},
		Settings: settings,
		Debug:    flagDebug,
	})
	if err != nil {
		return err
	}
	if err := anim.Init(); err != nil {
		bad.Printf("nodenet: %v\n", err)
		return err
	}
	anim.Bus().Subscribe(func(evt nodenet.Event) {
		switch evt.Type {
		case nodenet.EventCanvasResized:
			if flagDebug {
				subtle.Printf("canvas resized to %gx%g\n", evt.Width, evt.Height)
			}
		case nodenet.EventPerformanceWarning:
			bad.Printf("performance warning: %.1f fps\n", evt.FPS)
		}
	})
	anim.Activate()
	defer anim.Destroy()
	g.anim = anim

	good.Println("nodenet running — drag nodes, scroll to throttle")
	ebiten.SetWindowSize(960, 540)
	ebiten.SetWindowTitle("nodenet")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", defaultSettingsPath(), "Settings file path")
	rootCmd.Flags().IntVar(&flagNodes, "nodes", 0, "Node count (default 80)")
	rootCmd.Flags().Float64Var(&flagMaxDistance, "max-distance", 0, "Max connection distance in px (default 150)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log metrics to stderr")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
