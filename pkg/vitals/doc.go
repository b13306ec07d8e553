// Package vitals receives Core Web Vitals beacons from site.js and hands them
// to a Sink, by default a Forwarder that relays them to an analytics endpoint.
//
// The handler mounts like any net/http component:
//
//	forwarder, _ := vitals.NewForwarder(endpoint, vitals.WithForwarderLogger(logger))
//	defer forwarder.Close()
//	vitals.RegisterRoutes(mux, "/", vitals.WithSink(forwarder))
//
// Analytics failures are logged and never surface to the visitor.
package vitals
