// Package launcher starts a static file server from a Config.
//
// A server mounts one or more folders at URL paths, then any user
// middleware, then an optional metrics endpoint. Requests walk the mounts
// in that order; a folder that has no matching file passes the request on,
// and a request nobody answers gets a 404.
//
//	h, err := launcher.Start(ctx, launcher.Config{
//		Folders: []launcher.Folder{{Path: "./public", Mount: "/"}},
//		Port:    8080,
//	})
//	if err != nil {
//		return err
//	}
//	defer h.Shutdown(context.Background())
//
// Start returns once the listener is bound. Startup failures (bad mounts,
// unreadable TLS files, a port already in use) are returned as errors.
package launcher
