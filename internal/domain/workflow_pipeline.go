package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"mapdispel.dev/pkg/mapdispel/internal/controller"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// scanProgressBuffer bounds how far hashing may run ahead of the UI.
const scanProgressBuffer = 16

type workflowPipeline struct {
	Engine
	controller.UI
}

// NewWorkflowPipeline creates a Workflow that drives engine and reports to ui.
func NewWorkflowPipeline(engine Engine, ui controller.UI) Workflow {
	return &workflowPipeline{
		Engine: engine,
		UI:     ui,
	}
}

// Scan hashes every map in the directory and displays the catalog.
func (w *workflowPipeline) Scan(ctx context.Context, args ScanArgs) error {
	return w.session(ctx, controller.WithScanMode(), func(ctx context.Context) error {
		if _, err := w.scan(ctx, args.Dir); err != nil {
			return err
		}

		return w.DisplayCatalog(ctx, w.Directory(), w.Entries())
	})
}

// Verify scans the directory, classifies every hashed map and displays the result.
func (w *workflowPipeline) Verify(ctx context.Context, args VerifyArgs) error {
	return w.session(ctx, controller.WithVerifyMode(), func(ctx context.Context) error {
		if _, err := w.scan(ctx, args.Dir); err != nil {
			return err
		}

		if err := w.verify(ctx); err != nil {
			return err
		}

		return w.DisplayCatalog(ctx, w.Directory(), w.Entries())
	})
}

// Delete scans the directory, resolves the selection and deletes it.
func (w *workflowPipeline) Delete(ctx context.Context, args DeleteArgs) error {
	return w.session(ctx, controller.WithDeleteMode(), func(ctx context.Context) error {
		if _, err := w.scan(ctx, args.Dir); err != nil {
			return err
		}

		names, err := w.selection(ctx, args)
		if err != nil {
			return err
		}

		report, err := w.DeleteSelected(ctx, names)
		if err != nil {
			slog.Error("Deletion aborted", "error", err)
			w.Notify(ctx, err)

			return err
		}

		for _, failed := range report.Failed() {
			w.Notify(ctx, failed.Err)
		}

		if err := w.DisplayDeletionReport(ctx, report); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if err := w.DisplayCatalog(ctx, w.Directory(), w.Entries()); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if failed := len(report.Failed()); failed > 0 {
			return fmt.Errorf("%d of %d deletions failed: %w", failed, len(report.Results), ErrDeletion)
		}

		return nil
	})
}

// session starts the UI, runs fn, waits for the user and closes the UI.
func (w *workflowPipeline) session(ctx context.Context, mode controller.StartOption, fn func(ctx context.Context) error) error {
	if err := w.Start(ctx, mode); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	if err := fn(ctx); err != nil {
		w.Close(ctx)
		return err
	}

	// Wait for UI to be closed by user (press 'q')
	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

// scan runs the scan off the calling goroutine and forwards progress to the UI.
func (w *workflowPipeline) scan(ctx context.Context, dir m.Path) (m.ScanReport, error) {
	progressChannel := make(chan m.ScanProgress, scanProgressBuffer)

	var report m.ScanReport

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(progressChannel)

		var err error

		report, err = w.Engine.Scan(groupCtx, dir, func(progress m.ScanProgress) {
			select {
			case <-groupCtx.Done():
			case progressChannel <- progress:
			}
		})

		return err
	})

	group.Go(func() error {
		for progress := range progressChannel {
			w.DisplayScanProgress(groupCtx, progress)
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		slog.Error("Scan failed", "dir", dir, "error", err)
		w.Notify(ctx, err)

		return report, fmt.Errorf("scan %s: %w", dir, err)
	}

	for _, unreadable := range report.Unreadable {
		w.Notify(ctx, unreadable)
	}

	return report, nil
}

// verify runs one verification round and waits for its completion.
func (w *workflowPipeline) verify(ctx context.Context) error {
	results, err := w.BeginVerification(ctx)
	if err != nil {
		w.Notify(ctx, err)
		return fmt.Errorf("verify: %w", err)
	}

	hashed := 0

	for _, entry := range w.Entries() {
		if entry.Hashed() {
			hashed++
		}
	}

	w.DisplayVerificationStarted(ctx, hashed)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case result := <-results:
		if result.Err != nil {
			slog.Error("Verification failed", "error", result.Err)
			w.Notify(ctx, result.Err)

			return fmt.Errorf("verify: %w", result.Err)
		}

		return nil
	}
}

// selection resolves the names to delete from the command line, the cheat
// filter and the interactive picker.
func (w *workflowPipeline) selection(ctx context.Context, args DeleteArgs) ([]string, error) {
	names := append([]string(nil), args.Names...)

	if args.Cheats || args.Interactive {
		if err := w.verify(ctx); err != nil {
			if args.Cheats {
				return nil, err
			}
			// The picker still works without labels.
			slog.Warn("Continuing selection without classifications", "error", err)
		}
	}

	if args.Cheats {
		for _, entry := range w.Entries() {
			if entry.Classification.Kind == m.Cheat {
				names = append(names, entry.Name)
			}
		}
	}

	if args.Interactive {
		picked, err := w.SelectForDeletion(ctx, w.Entries())
		if err != nil {
			if errors.Is(err, controller.ErrSelectionAborted) {
				slog.Info("Selection aborted by user")
			}

			return nil, fmt.Errorf("select maps: %w", err)
		}

		names = append(names, picked...)
	}

	return names, nil
}
