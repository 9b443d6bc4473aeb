// Package shutdown runs cleanup hooks when the process is asked to stop.
//
// Shutdown starts on SIGINT or SIGTERM, when the context given to Wait is
// done, or when a watched error channel fires (for example a server that
// stopped serving on its own). Hooks then run in reverse registration order
// under a shared timeout.
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(srv.Shutdown)
//	h.Watch(srv.Err())
//	return h.Wait(ctx)
package shutdown
