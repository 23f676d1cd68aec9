package cmd

import (
	"context"
	"errors"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceSymbol/internal/config"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/fontmetrics"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/render"
	giorender "github.com/OpenTraceLab/OpenTraceSymbol/pkg/render/gio"
	"github.com/OpenTraceLab/OpenTraceSymbol/pkg/symbol"
)

var viewCmd = &cobra.Command{
	Use:   "view [symbol_file]",
	Short: "Preview a symbol in a window",
	Long: `Open a window showing the symbol scaled to fit.

Controls: left-drag pans | scroll zooms | F fits | Ctrl+O opens a file |
Ctrl+T or the palette button cycles themes | Q or Esc quits. Without a file the built-in example is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().BoolVar(&pinNumbers, "pin-numbers", false, "append physical pin numbers (BSDL input)")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	theme, err := symbol.ParseTheme(cfg.Theme)
	if err != nil {
		return err
	}

	v := &viewer{
		logger: loggerFromContext(cmd.Context()),
		cfg:    cfg,
		theme:  theme,
	}
	if len(args) == 1 {
		if err := v.load(args[0]); err != nil {
			return err
		}
	} else {
		v.sym = demoSymbol()
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("otsym - " + v.sym.Name))
		w.Option(app.Size(unit.Dp(900), unit.Dp(600)))
		if err := v.run(w); err != nil {
			v.logger.Fatal("viewer failed", "err", err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

type viewer struct {
	logger *log.Logger
	cfg    config.Config

	window   *app.Window
	th       *material.Theme
	explorer *explorer.Explorer

	sym   *symbol.Symbol
	path  string
	theme symbol.Theme

	face *fontmetrics.Face
	view giorender.View

	// picked carries symbols loaded by the file picker to the frame loop.
	picked chan pickedSymbol

	openBtn  widget.Clickable
	themeBtn widget.Clickable
	fitBtn   widget.Clickable
	openIcon *widget.Icon
	themeIcn *widget.Icon
	fitIcon  *widget.Icon
}

type pickedSymbol struct {
	sym  *symbol.Symbol
	path string
}

func (v *viewer) load(path string) error {
	sym, err := loadSymbol(withLogger(context.Background(), v.logger), path)
	if err != nil {
		return err
	}
	v.sym = sym
	v.path = path
	v.logger.Info("loaded symbol", "name", sym.Name, "sections", len(sym.Sections()))
	return nil
}

// relayout records the current symbol with the current theme. fit resets
// the camera to show the whole page.
func (v *viewer) relayout(fit bool) error {
	if v.face == nil {
		face, err := v.cfg.LoadFace()
		if err != nil {
			return err
		}
		v.face = face
	}
	l := symbol.NewLayout(v.face)
	cfg := v.cfg
	cfg.Theme = v.theme.String()
	if err := cfg.Apply(l); err != nil {
		return err
	}

	page, err := render.Record(v.sym, l, cfg.Render.Margin)
	if err != nil {
		return err
	}
	v.view.SetPage(page, fit)
	v.view.Background = l.Palette.Background
	v.view.FontSize = v.face.Size()
	return nil
}

func (v *viewer) run(w *app.Window) error {
	v.window = w
	if err := v.relayout(true); err != nil {
		return err
	}
	defer v.face.Close()

	th, err := giorender.NewTheme(v.face.Data())
	if err != nil {
		return err
	}
	v.th = th
	v.explorer = explorer.NewExplorer(w)
	v.picked = make(chan pickedSymbol, 1)

	if v.openIcon, err = widget.NewIcon(icons.FileFolderOpen); err != nil {
		return err
	}
	if v.themeIcn, err = widget.NewIcon(icons.ImagePalette); err != nil {
		return err
	}
	if v.fitIcon, err = widget.NewIcon(icons.NavigationFullscreen); err != nil {
		return err
	}

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			v.explorer.ListenEvents(e)
			gtx := app.NewContext(&ops, e)
			v.handleInput(gtx)
			v.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (v *viewer) handleInput(gtx layout.Context) {
	select {
	case p := <-v.picked:
		v.sym, v.path = p.sym, p.path
		v.window.Option(app.Title("otsym - " + v.sym.Name))
		if err := v.relayout(true); err != nil {
			v.logger.Error("relayout failed", "err", err)
		}
	default:
	}

	if v.openBtn.Clicked(gtx) {
		v.openFilePicker()
	}
	if v.themeBtn.Clicked(gtx) {
		v.cycleTheme()
	}
	if v.fitBtn.Clicked(gtx) {
		v.view.Fit()
	}
	v.view.Update(gtx)

	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "O", Required: key.ModShortcut},
			key.Filter{Name: "T", Required: key.ModShortcut},
			key.Filter{Name: "F"},
			key.Filter{Name: "Q"},
			key.Filter{Name: key.NameEscape},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case "O":
			v.openFilePicker()
		case "T":
			v.cycleTheme()
		case "F":
			v.view.Fit()
		default:
			os.Exit(0)
		}
	}
}

func (v *viewer) cycleTheme() {
	v.theme = v.theme.Next()
	if err := v.relayout(false); err != nil {
		v.logger.Error("relayout failed", "err", err)
		return
	}
	v.logger.Debug("theme switched", "theme", v.theme)
	v.window.Invalidate()
}

func (v *viewer) openFilePicker() {
	go func() {
		file, err := v.explorer.ChooseFile("sym", "yaml", "yml", "bsd", "bsdl", "bsm")
		if err != nil {
			if !errors.Is(err, explorer.ErrUserDecline) {
				v.logger.Error("file picker", "err", err)
			}
			return
		}
		defer file.Close()

		f, ok := file.(*os.File)
		if !ok {
			v.logger.Warn("picked file has no path")
			return
		}
		sym, err := loadSymbol(withLogger(context.Background(), v.logger), f.Name())
		if err != nil {
			v.logger.Error("load failed", "path", f.Name(), "err", err)
			return
		}
		v.logger.Info("loaded symbol", "name", sym.Name, "sections", len(sym.Sections()))
		v.picked <- pickedSymbol{sym: sym, path: f.Name()}
		v.window.Invalidate()
	}()
}

func (v *viewer) layout(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(material.IconButton(v.th, &v.openBtn, v.openIcon, "Open").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
					layout.Rigid(material.IconButton(v.th, &v.themeBtn, v.themeIcn, "Theme").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
					layout.Rigid(material.IconButton(v.th, &v.fitBtn, v.fitIcon, "Fit").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(material.Body1(v.th, v.theme.String()).Layout),
				)
			})
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return v.view.Layout(gtx, v.th)
		}),
	)
}
