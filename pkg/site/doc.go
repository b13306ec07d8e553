// Package site assembles the practice website: the page registry, the layout
// shell, form and API handlers, the HTTP server and the static exporter.
//
// A Site is built once and is safe for concurrent use:
//
//	s, err := site.New(site.WithBaseURL("https://brickellfamilymed.com"), site.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	return site.Serve(ctx, ":8080", s.Handler(), 10*time.Second, logger)
package site
