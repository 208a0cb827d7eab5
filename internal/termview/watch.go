package termview

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	poller "github.com/radovskyb/watcher"
	"golang.org/x/sync/errgroup"

	"github.com/wandb/timechart/internal/observability"
)

const defaultPollingPeriod = 500 * time.Millisecond

// DatasetChangedMsg reports that the dataset file was written.
type DatasetChangedMsg struct{}

// FileWatcher polls the dataset file and reports writes as messages.
type FileWatcher struct {
	mu       sync.Mutex
	delegate *poller.Watcher
	wg       sync.WaitGroup
	msgs     chan tea.Msg
	finished bool
	logger   *observability.CoreLogger
}

func NewFileWatcher(logger *observability.CoreLogger) *FileWatcher {
	return &FileWatcher{
		msgs:   make(chan tea.Msg, 1),
		logger: logger,
	}
}

// Start begins polling path.
func (w *FileWatcher) Start(path string, period time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return fmt.Errorf("watcher: tried to call Start() after Finish()")
	}
	if w.delegate != nil {
		return fmt.Errorf("watcher: already started")
	}
	if period <= 0 {
		period = defaultPollingPeriod
	}

	w.delegate = poller.New()
	w.delegate.SetMaxEvents(1)
	w.delegate.FilterOps(poller.Write, poller.Create)
	if err := w.delegate.Add(path); err != nil {
		w.delegate = nil
		return fmt.Errorf("watcher: %v", err)
	}

	grp, ctx := errgroup.WithContext(context.Background())
	w.wg.Add(2)
	grp.Go(func() error {
		defer w.wg.Done()
		w.loop(ctx)
		return nil
	})
	grp.Go(func() error {
		defer w.wg.Done()
		return w.delegate.Start(period)
	})

	// Close is a no-op until the polling loop runs.
	started := make(chan struct{})
	go func() {
		w.delegate.Wait()
		close(started)
	}()
	select {
	case <-started:
	case <-ctx.Done():
		return grp.Wait()
	}

	w.logger.Debug(fmt.Sprintf("watcher: watching %s", path))
	return nil
}

func (w *FileWatcher) loop(ctx context.Context) {
	for {
		select {
		case event := <-w.delegate.Event:
			if event.IsDir() {
				continue
			}
			select {
			case w.msgs <- DatasetChangedMsg{}:
			default:
				// A change is already queued.
			}

		case err := <-w.delegate.Error:
			w.logger.CaptureError(fmt.Errorf("watcher: error in file watcher: %v", err))

		case <-w.delegate.Closed:
			return

		case <-ctx.Done():
			return
		}
	}
}

// WaitForMsg blocks until the file changes. It returns nil once the
// watcher is finished.
func (w *FileWatcher) WaitForMsg() tea.Msg {
	return <-w.msgs
}

// Finish stops polling.
func (w *FileWatcher) Finish() {
	w.mu.Lock()
	if w.finished {
		w.mu.Unlock()
		return
	}
	w.finished = true
	delegate := w.delegate
	w.mu.Unlock()

	if delegate != nil {
		delegate.Close()
	}
	w.wg.Wait()
	close(w.msgs)
}
