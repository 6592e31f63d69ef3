// Package shutdown coordinates graceful termination of long-running
// quill commands such as `quill auto`.
//
// A Handler waits for SIGINT/SIGTERM, a programmatic Trigger, or context
// cancellation, then runs the registered hooks in reverse order under a
// timeout.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(shutdown.Closer(watcher.Stop))
//	err := h.Wait(ctx)
package shutdown
