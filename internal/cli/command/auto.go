package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/quill/internal/infra/confloader"
	"github.com/yndnr/quill/internal/infra/shutdown"
	"github.com/yndnr/quill/internal/telemetry/logger"
)

// shutdownTimeout bounds the cleanup hooks of auto.
const shutdownTimeout = 5 * time.Second

// AutoCommand returns the auto command.
func AutoCommand() *cli.Command {
	return &cli.Command{
		Name:   "auto",
		Usage:  "Rescan posts whenever the configuration or posts directory changes",
		Action: runAuto,
	}
}

func runAuto(c *cli.Context) error {
	s, err := requireSite(c)
	if err != nil {
		return err
	}
	log := GetLogger(c).WithContext(logger.WithCommand(c.Context, "auto"))
	out := writer(c)

	if err := s.ScanPosts(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Scanned %d posts in %s\n", len(s.Posts()), s.PostsDir())

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(log)))
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if path := GetConfigPath(c); path != "" {
		if err := w.Watch(path); err != nil {
			w.Stop()
			return fmt.Errorf("watch config: %w", err)
		}
	}
	if err := w.WatchDir(s.PostsDir()); err != nil {
		w.Stop()
		return fmt.Errorf("watch posts: %w", err)
	}

	w.OnChange(func(path string) {
		if err := s.ScanPosts(); err != nil {
			log.Error("rescan failed", "trigger", path, "error", err)
			return
		}
		log.Info("site rescanned", "trigger", path, "posts", len(s.Posts()))
	})
	w.StartAsync()

	h := shutdown.NewHandler(shutdownTimeout)
	h.OnShutdown(shutdown.Closer(w.Stop))

	fmt.Fprintln(out, "Watching for changes, press Ctrl+C to stop")
	err = h.Wait(c.Context)
	log.Info("watch stopped", "reason", h.Reason())
	return err
}
