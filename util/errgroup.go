package util

import "golang.org/x/sync/errgroup"

// SafeSetLimit sets the limit on g. A limit of 0 would deadlock every Go
// call, so it panics instead.
func SafeSetLimit(g *errgroup.Group, limit int) {
	if limit == 0 {
		panic("limit cannot be 0")
	}

	g.SetLimit(limit)
}
