package editor

import (
	"context"
	"log"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/powereditor/internal/powerio"
	"github.com/samdwyer/powereditor/internal/telemetry"
	"github.com/samdwyer/powereditor/internal/ui"
)

// loadResult is posted back to the event loop when a background load finishes.
type loadResult struct {
	path string
	res  *powerio.LoadResult
	err  error
}

// Editor runs the terminal user interface around a Session.
type Editor struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	cfg      Config
	running  bool
	loading  bool
}

// New creates an editor on a fresh terminal screen.
func New(cfg Config) (*Editor, error) {
	descriptions, err := powerio.LoadDescriptions(cfg.Descriptions)
	if err != nil {
		log.Printf("Note: column descriptions not loaded: %v", err)
		descriptions = powerio.BundledDescriptions()
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Editor{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		session:  NewSession(cfg, descriptions, nil),
		cfg:      cfg,
		running:  true,
	}, nil
}

// Run executes the main editor loop.
func (e *Editor) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("editor")
	_, span := tracer.Start(ctx, "editor.init")
	span.SetAttributes(
		attribute.String("editor.session", e.session.ID()),
		attribute.Bool("editor.file", e.cfg.File != ""),
	)
	if e.cfg.File != "" {
		e.load(ctx, e.cfg.File)
	}
	span.End()

	for e.running {
		e.renderer.Render(e.session.View())
		e.screen.Show()
		e.handleEvent(ctx)
	}

	e.screen.Close()
	return nil
}

// load reads path on a separate goroutine. The result is applied on the loop goroutine so
// the store is only ever replaced whole.
func (e *Editor) load(ctx context.Context, path string) {
	if e.loading {
		return
	}
	e.loading = true
	e.session.SetStatus("loading " + filepath.Base(path) + "...")
	go func() {
		res, err := powerio.LoadPowers(ctx, path)
		if postErr := e.screen.Post(loadResult{path: path, res: res, err: err}); postErr != nil {
			log.Printf("Error posting load result: %v", postErr)
		}
	}()
}

// handleEvent processes a single terminal event.
func (e *Editor) handleEvent(ctx context.Context) {
	switch ev := e.screen.PollEvent().(type) {
	case *tcell.EventKey:
		switch e.session.HandleKey(ctx, ev.Key(), ev.Rune()) {
		case ActionQuit:
			e.running = false
		case ActionReload:
			e.load(ctx, e.session.Path())
		}
	case *tcell.EventInterrupt:
		if lr, ok := ev.Data().(loadResult); ok {
			e.loading = false
			if lr.err != nil {
				e.session.SetStatus("error: " + lr.err.Error())
				return
			}
			e.session.Apply(lr.path, lr.res)
		}
	case *tcell.EventResize:
		e.screen.Sync()
	case nil:
		// Screen finalized.
		e.running = false
	}
}

// Close cleans up editor resources.
func (e *Editor) Close() {
	if e.screen != nil {
		e.screen.Close()
	}
}
