// Package dashboard is the composition root of the explorer: it owns
// the immutable dataset reference, observes selection changes, invokes
// the filter engine, and pushes the resulting view to registered
// renderers. This replaces the implicit dependency tracking of the
// original reactive framework with explicit, synchronous recomputation.
package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/gjrich/cintel-04-local/internal/domain"
	"github.com/gjrich/cintel-04-local/internal/render"
)

// Frame is the latest artifact per renderer name.
type Frame map[string]render.Artifact

// Dashboard coordinates one dataset, one selection snapshot, and a set
// of renderers. All state transitions happen under a single mutex so
// every recomputation pass observes a fully-formed selection.
type Dashboard struct {
	mu        sync.Mutex
	dataset   domain.Dataset
	cache     *resultCache
	renderers []render.Renderer

	selection   domain.Selection
	display     domain.Display
	fingerprint string
	filtered    domain.Dataset
	frame       Frame
}

// Option customizes a Dashboard at construction time.
type Option func(*Dashboard)

// WithSelection sets the initial filter selection.
func WithSelection(selection domain.Selection) Option {
	return func(d *Dashboard) {
		d.selection = selection
	}
}

// WithDisplay sets the initial display parameters.
func WithDisplay(display domain.Display) Option {
	return func(d *Dashboard) {
		d.display = display
	}
}

// WithRenderers registers renderers at construction time.
func WithRenderers(renderers ...render.Renderer) Option {
	return func(d *Dashboard) {
		d.renderers = append(d.renderers, renderers...)
	}
}

// New creates a dashboard over the given dataset. Call Refresh once
// after construction to produce the initial frame.
func New(dataset domain.Dataset, opts ...Option) *Dashboard {
	d := &Dashboard{
		dataset:   dataset,
		cache:     newResultCache(dataset),
		selection: domain.DefaultSelection(),
		display:   domain.DefaultDisplay(),
		filtered:  domain.EmptyDataset(),
		frame:     Frame{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds a renderer. Renderers are notified in registration
// order on every recomputation.
func (d *Dashboard) Register(r render.Renderer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renderers = append(d.renderers, r)
}

// Refresh forces a full filter pass and re-render with the current
// selection and display state.
func (d *Dashboard) Refresh(ctx context.Context) (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.recompute(ctx)
}

// SetSelection replaces the filter selection. The filter engine runs
// only when the selection actually changed; an identical snapshot
// returns the retained frame untouched.
func (d *Dashboard) SetSelection(ctx context.Context, selection domain.Selection) (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if selection.Fingerprint() == d.fingerprint && len(d.frame) > 0 {
		return d.frame.clone(), nil
	}
	d.selection = selection
	return d.recompute(ctx)
}

// SetDisplay replaces the chart-only parameters and re-renders from
// the already-filtered dataset. The filter engine is NOT invoked:
// display parameters are not filter inputs.
func (d *Dashboard) SetDisplay(display domain.Display) Frame {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.display = display.Normalized()
	d.renderLocked()
	return d.frame.clone()
}

// Selection returns the current selection snapshot.
func (d *Dashboard) Selection() domain.Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selection
}

// Display returns the current display parameters.
func (d *Dashboard) Display() domain.Display {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.display
}

// Dataset returns the full dataset.
func (d *Dashboard) Dataset() domain.Dataset {
	return d.dataset
}

// Filtered returns the most recently computed filtered dataset.
func (d *Dashboard) Filtered() domain.Dataset {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filtered
}

// Frame returns the latest rendered artifacts.
func (d *Dashboard) Frame() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame.clone()
}

func (d *Dashboard) recompute(ctx context.Context) (Frame, error) {
	filtered, err := d.cache.Filtered(ctx, d.selection)
	if err != nil {
		return nil, err
	}
	d.filtered = filtered
	d.fingerprint = d.selection.Fingerprint()
	log.Printf("[dashboard] selection %s matched %d of %d records", d.fingerprint, filtered.Len(), d.dataset.Len())

	d.renderLocked()
	return d.frame.clone(), nil
}

func (d *Dashboard) renderLocked() {
	view := render.View{
		Full:      d.dataset,
		Filtered:  d.filtered,
		Selection: d.selection,
		Display:   d.display,
	}
	frame := make(Frame, len(d.renderers))
	for _, r := range d.renderers {
		frame[r.Name()] = r.Render(view)
	}
	d.frame = frame
}

func (f Frame) clone() Frame {
	out := make(Frame, len(f))
	for name, artifact := range f {
		out[name] = artifact
	}
	return out
}
