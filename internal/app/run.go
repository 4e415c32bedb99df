package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/framegraph/internal/builder"
	"github.com/vk/framegraph/internal/config"
	"github.com/vk/framegraph/internal/ctxlog"
	"github.com/vk/framegraph/internal/graph"
	"github.com/vk/framegraph/modules/output"
)

// Run loads the patch, builds its graph and renders frames until the frame
// limit is reached or ctx is cancelled. Cancellation is a clean stop.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		if err := a.startHealthcheckServer(a.config.HealthcheckPort); err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, a.closeHealthcheckServer())
		}()
	}

	patch, err := a.buildPatch(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, patch.Close())
	}()

	s := patch.Settings
	period := time.Duration(s.BlockSize) * time.Second / time.Duration(s.SampleRate)
	a.logger.Info("🚀 Rendering patch...", "frames", a.config.Frames, "sample_rate", s.SampleRate, "block_size", s.BlockSize, "realtime", a.config.Realtime, "frame_period", period)
	a.ready.Store(true)
	defer a.ready.Store(false)

	if err := a.render(ctx, patch.Graph, period); err != nil {
		return err
	}

	stats := patch.Graph.Stats()
	a.logger.Info("🏁 Rendering finished.", "frames", stats.Frames, "nodes", stats.Nodes, "slots", stats.Slots, "peak_slots", stats.PeakSlots)
	a.reportOutputs(patch)
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) buildPatch(ctx context.Context) (*builder.Patch, error) {
	overrides := config.Settings{SampleRate: a.config.SampleRate, BlockSize: a.config.BlockSize}
	loader, err := newLoader(a.config.PatchPath, overrides)
	if err != nil {
		return nil, err
	}
	model, err := loader.Load(ctx, a.config.PatchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load patch: %w", err)
	}
	a.logger.Debug("Patch loaded into unified model.", "nodes", len(model.Nodes))

	if a.config.PublishURL != "" {
		n := addPublishers(model, a.config.PublishURL, a.config.PublishNamespace)
		a.logger.Info("Publishing output nodes.", "url", a.config.PublishURL, "streams", n)
	}

	patch, err := builder.Build(ctx, model, a.registry, graph.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	if len(patch.Graph.Sinks()) == 0 {
		_ = patch.Close()
		return nil, errors.New("patch has no sink nodes, nothing would render")
	}
	return patch, nil
}

// render runs the frame loop. With realtime pacing each frame waits for a
// ticker at the frame period; otherwise frames run back to back.
func (a *App) render(ctx context.Context, g *graph.Graph, period time.Duration) error {
	var tick <-chan time.Time
	if a.config.Realtime {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for i := 0; a.config.Frames == 0 || i < a.config.Frames; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				a.logger.Info("Rendering interrupted.", "frames", i)
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			a.logger.Info("Rendering interrupted.", "frames", i)
			return nil
		}

		if err := g.Render(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		a.frames.Add(1)
	}
	return nil
}

// reportOutputs prints a one-line summary per output node.
func (a *App) reportOutputs(p *builder.Patch) {
	for _, name := range p.Names() {
		id, _ := p.Node(name)
		out, ok := graph.Lookup[*output.Node](p.Graph, id)
		if !ok {
			continue
		}
		active := 0
		for ch := 0; ch < out.Channels(); ch++ {
			if _, on := out.Samples(ch); on {
				active++
			}
		}
		fmt.Fprintf(a.outW, "output %s: %d frames, %d/%d channels active in the last frame\n", name, out.Frames(), active, out.Channels())
	}
}
