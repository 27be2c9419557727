package main

import (
	"fmt"
	"io"

	"github.com/ikodrasi/publist/internal/geo"
	"github.com/ikodrasi/publist/internal/printer"
)

func newResolver(e *env) (*geo.Resolver, func()) {
	client := geo.NewClient(
		geo.WithBaseURL(e.cfg.Geocoder.URL),
		geo.WithUserAgent(e.cfg.Geocoder.UserAgent),
		geo.WithEmail(e.cfg.Geocoder.Email),
		geo.WithRate(e.cfg.Geocoder.Rate),
	)

	cache := openCache(e)
	var r *geo.Resolver
	closeFn := func() {}
	if cache != nil {
		r = geo.NewResolver(client, cache)
		closeFn = func() { cache.Close() }
	} else {
		r = geo.NewResolver(client, nil)
	}
	r.OnCacheError = func(err error) {
		printer.Warning("%v", err)
	}
	return r, closeFn
}

func runGeo(e *env) error {
	r, closeCache := newResolver(e)
	defer closeCache()

	for _, loc := range geo.Locations(e.catalog) {
		p, _, err := r.Lookup(e.ctx, loc)
		switch {
		case err == nil:
			if _, err := io.WriteString(e.out, geo.Marker(loc, p)+"\n"); err != nil {
				return err
			}
		case geo.IsNoMatch(err):
			printer.Warning("No geocode for %s", loc)
		case geo.IsRateLimited(err):
			printer.Warning("geocoder is rate limiting; lower geocoder.rate and retry %s", loc)
		case e.ctx.Err() != nil:
			return e.ctx.Err()
		default:
			printer.Warning("%v", fmt.Errorf("geocoding %s: %w", loc, err))
		}
	}
	return nil
}
