package physics

import (
	"fmt"
	"log"

	"github.com/milk9111/doomenstein/geom"
)

// typePair orders two collider types as (higher, lower).
type typePair struct {
	high ColliderType
	low  ColliderType
}

type collisionCheck func(high, low Collider2D) bool

// manifoldGenerator returns the manifold with the normal pointing from low
// to high.
type manifoldGenerator func(high, low Collider2D) geom.Manifold2

var collisionChecks = map[typePair]collisionCheck{
	{ColliderDisc, ColliderDisc}: func(a, b Collider2D) bool {
		return geom.DoDiscsOverlap(a.(*DiscCollider2D).WorldDisc(), b.(*DiscCollider2D).WorldDisc())
	},
	{ColliderPolygon, ColliderDisc}: func(a, b Collider2D) bool {
		return geom.DoDiscAndPolygonOverlap(b.(*DiscCollider2D).WorldDisc(), a.(*PolygonCollider2D).WorldPolygon())
	},
	{ColliderPolygon, ColliderPolygon}: func(a, b Collider2D) bool {
		_, ok := geom.GJKIntersect(a.(*PolygonCollider2D).WorldPolygon(), b.(*PolygonCollider2D).WorldPolygon())
		return ok
	},
}

var manifoldGenerators = map[typePair]manifoldGenerator{
	{ColliderDisc, ColliderDisc}: func(a, b Collider2D) geom.Manifold2 {
		return geom.DiscVDiscManifold(a.(*DiscCollider2D).WorldDisc(), b.(*DiscCollider2D).WorldDisc())
	},
	{ColliderPolygon, ColliderDisc}: func(a, b Collider2D) geom.Manifold2 {
		m := geom.DiscVPolygonManifold(b.(*DiscCollider2D).WorldDisc(), a.(*PolygonCollider2D).WorldPolygon())
		return m.Inversed()
	},
	{ColliderPolygon, ColliderPolygon}: func(a, b Collider2D) geom.Manifold2 {
		m, _ := geom.PolygonVPolygonManifold(a.(*PolygonCollider2D).WorldPolygon(), b.(*PolygonCollider2D).WorldPolygon())
		return m
	},
}

// order puts the collider with the higher type first and reports whether
// the arguments were swapped.
func order(a, b Collider2D) (Collider2D, Collider2D, typePair, bool) {
	if a.Type() >= b.Type() {
		return a, b, typePair{high: a.Type(), low: b.Type()}, false
	}
	return b, a, typePair{high: b.Type(), low: a.Type()}, true
}

func intersects(a, b Collider2D) bool {
	if a == nil || b == nil {
		return false
	}
	if !geom.DoDiscsOverlap(a.Bound(), b.Bound()) {
		return false
	}
	high, low, pair, _ := order(a, b)
	check, ok := collisionChecks[pair]
	if !ok {
		unsupportedPair(pair)
	}
	return check(high, low)
}

func getManifold(a, b Collider2D) geom.Manifold2 {
	if a == nil || b == nil {
		return geom.Manifold2{}
	}
	high, low, pair, swapped := order(a, b)
	gen, ok := manifoldGenerators[pair]
	if !ok {
		unsupportedPair(pair)
	}
	m := gen(high, low)
	if swapped {
		m = m.Inversed()
	}
	return m
}

func unsupportedPair(pair typePair) {
	log.Printf("Physics2D: no narrow phase registered for %s vs %s", pair.high, pair.low)
	panicf("unsupported collider pair %s vs %s", pair.high, pair.low)
}

func panicf(format string, args ...any) {
	panic("Physics2D: " + fmt.Sprintf(format, args...))
}
