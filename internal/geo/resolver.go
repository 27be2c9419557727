package geo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikodrasi/publist/internal/bib"
	"github.com/ikodrasi/publist/internal/storage"
)

// Geocoder is satisfied by *Client.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Point, error)
}

// Store is the cache the Resolver consults; satisfied by *storage.Cache.
type Store interface {
	GetGeocode(query string) (*storage.Geocode, error)
	PutGeocode(g storage.Geocode) error
}

// Resolver answers from the cache before asking the geocoder. Definite
// answers, including no-match, are cached; network and rate-limit failures
// are not.
type Resolver struct {
	geocoder Geocoder
	store    Store

	// OnCacheError is called for cache failures, which never fail a lookup.
	OnCacheError func(error)
}

// NewResolver creates a Resolver. store may be nil to disable caching.
func NewResolver(g Geocoder, store Store) *Resolver {
	return &Resolver{geocoder: g, store: store}
}

func (r *Resolver) cacheError(err error) {
	if r.OnCacheError != nil {
		r.OnCacheError(err)
	}
}

// Lookup resolves a query. The boolean reports whether the answer came from
// the cache.
func (r *Resolver) Lookup(ctx context.Context, query string) (Point, bool, error) {
	if r.store != nil {
		cached, err := r.store.GetGeocode(query)
		if err != nil {
			r.cacheError(fmt.Errorf("reading geocode cache: %w", err))
		} else if cached != nil {
			if !cached.Found {
				return Point{}, true, fmt.Errorf("%w: %s (cached)", ErrNoMatch, query)
			}
			return Point{Lat: cached.Lat, Lng: cached.Lng}, true, nil
		}
	}

	p, err := r.geocoder.Geocode(ctx, query)
	switch {
	case err == nil:
		r.save(storage.Geocode{Query: query, Found: true, Lat: p.Lat, Lng: p.Lng})
	case IsNoMatch(err):
		r.save(storage.Geocode{Query: query})
	}
	return p, false, err
}

func (r *Resolver) save(g storage.Geocode) {
	if r.store == nil {
		return
	}
	if err := r.store.PutGeocode(g); err != nil {
		r.cacheError(fmt.Errorf("writing geocode cache: %w", err))
	}
}

// Locations returns the distinct "City, Country" strings of every
// conference venue, in declaration order.
func Locations(c *bib.Catalog) []string {
	seen := make(map[string]bool)
	var locations []string
	for _, conf := range c.Conferences() {
		for _, v := range conf.VenueList {
			loc := v.Location()
			if !seen[loc] {
				seen[loc] = true
				locations = append(locations, loc)
			}
		}
	}
	return locations
}

var jsQuote = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Marker renders one map marker as a JavaScript object literal line.
func Marker(location string, p Point) string {
	return fmt.Sprintf("  {title: '%s', position: {lat: %s, lng: %s}},",
		jsQuote.Replace(location),
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
		strconv.FormatFloat(p.Lng, 'f', -1, 64))
}
