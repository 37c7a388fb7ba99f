package tree

import (
	"reflect"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	godsutils "github.com/emirpasic/gods/utils"
)

// Finalizer is run exactly once, in insertion order, when the node it is
// registered on with AddFinalizer is swept away (spec.md §3 invariant 4).
type Finalizer func(h Handle)

// GC owns an arena of Nodes plus the root set that anchors reachability.
// There is no per-node refcount (REDESIGN FLAGS §9): liveness is recomputed
// from scratch by a mark-sweep pass over the arena, triggered at explicit
// SafePoint calls rather than asynchronously, so that a rewrite in progress
// is never observed half-collected.
type GC struct {
	arena     []Node
	free      *arraylist.List // free Handles, LIFO reuse
	roots     *treeset.Set    // live root Handles (Handle, ordered for determinism)
	allocated int             // live-or-free nodes handed out so far
	finalizer map[Handle][]Finalizer

	allocSinceGC int
	gcThreshold  int
}

func handleComparator(a, b interface{}) int {
	return godsutils.UInt32Comparator(uint32(a.(Handle)), uint32(b.(Handle)))
}

// NewGC creates an empty arena. Handle 0 is permanently reserved as the nil
// sentinel and is never handed out by Alloc.
func NewGC() *GC {
	g := &GC{
		arena:       make([]Node, 1, 1024),
		free:        arraylist.New(),
		roots:       treeset.NewWith(handleComparator),
		finalizer:   make(map[Handle][]Finalizer),
		gcThreshold: 4096,
	}
	return g
}

func (g *GC) node(h Handle) *Node {
	if h == 0 || int(h) >= len(g.arena) {
		return nil
	}
	n := &g.arena[h]
	if n.Kind == Invalid {
		return nil
	}
	return n
}

// Alloc reserves a fresh Handle for a node of the given kind, reusing a
// swept slot when one is available.
func (g *GC) Alloc(kind Kind) Handle {
	g.allocSinceGC++
	if !g.free.Empty() {
		v, _ := g.free.Get(g.free.Size() - 1)
		g.free.Remove(g.free.Size() - 1)
		h := v.(Handle)
		g.arena[h] = Node{Kind: kind}
		return h
	}
	g.arena = append(g.arena, Node{Kind: kind})
	return Handle(len(g.arena) - 1)
}

// Node exposes the live node addressed by h, or nil if h is not a live
// handle (already swept, or never allocated).
func (g *GC) Node(h Handle) *Node {
	return g.node(h)
}

// AddRoot anchors h in the root set so it (and everything reachable from it)
// survives the next Collect.
func (g *GC) AddRoot(h Handle) {
	if h != 0 {
		g.roots.Add(h)
	}
}

// RemoveRoot releases a previously anchored root.
func (g *GC) RemoveRoot(h Handle) {
	g.roots.Remove(h)
}

// AddFinalizer registers fn to run once, in registration order, if and when
// h is swept. Finalizers back Info records that own external resources
// (compiled code, open handles); they are the Go analogue of the C++
// TypeAllocator::Finalize hook.
func (g *GC) AddFinalizer(h Handle, fn Finalizer) {
	g.finalizer[h] = append(g.finalizer[h], fn)
}

// SafePoint is the only point at which a collection may happen. Callers —
// chiefly the eval loop between rewrite steps — call this instead of having
// Alloc trigger a collection on its own, so that a rewrite never observes a
// half-collected tree (spec.md §5).
func (g *GC) SafePoint() {
	if g.allocSinceGC >= g.gcThreshold {
		g.Collect()
	}
}

// Collect runs a full mark-sweep pass from the root set. It is exported so
// tests and long-running hosts can force a deterministic collection instead
// of waiting for the allocation threshold.
func (g *GC) Collect() {
	tracer().Debugf("tree: gc collect starting, arena size %d, roots %d", len(g.arena), g.roots.Size())
	marked := make([]bool, len(g.arena))
	work := treeset.NewWith(handleComparator)
	for _, r := range g.roots.Values() {
		work.Add(r)
	}
	for !work.Empty() {
		vals := work.Values()
		h := vals[0].(Handle)
		work.Remove(h)
		if h == 0 || marked[h] {
			continue
		}
		marked[h] = true
		n := &g.arena[h]
		for _, c := range n.children() {
			if c != 0 && !marked[c] {
				work.Add(c)
			}
		}
		for r := n.info; r != nil; r = r.next {
			if ref, ok := r.value.(Handle); ok && !r.weak && ref != 0 && !marked[ref] {
				work.Add(ref)
			}
		}
	}

	for h := 1; h < len(g.arena); h++ {
		if marked[h] {
			g.clearDeadWeakRefs(Handle(h), marked)
			continue
		}
		n := &g.arena[h]
		if n.Kind == Invalid {
			continue
		}
		g.runFinalizers(Handle(h))
		g.arena[h] = Node{}
		g.free.Add(Handle(h))
	}
	g.allocSinceGC = 0
	tracer().Debugf("tree: gc collect done")
}

func (g *GC) clearDeadWeakRefs(h Handle, marked []bool) {
	n := &g.arena[h]
	for r := n.info; r != nil; r = r.next {
		// A weak value is a Handle or a named type over Handle, such as
		// `type parentInfo Handle`; it is zeroed keeping its own type.
		v := reflect.ValueOf(r.value)
		if !r.weak || !v.IsValid() || v.Kind() != reflect.Uint32 {
			continue
		}
		if ref := Handle(v.Uint()); ref != 0 && int(ref) < len(marked) && !marked[ref] {
			r.value = reflect.Zero(v.Type()).Interface()
		}
	}
}

func (g *GC) runFinalizers(h Handle) {
	for _, fn := range g.finalizer[h] {
		fn(h)
	}
	delete(g.finalizer, h)
}

// Stats reports coarse allocator occupancy, mirroring the diagnostic surface
// of TypeAllocator::Statistics in the original collector.
type Stats struct {
	ArenaSize int
	FreeCount int
	RootCount int
}

func (g *GC) Stats() Stats {
	return Stats{
		ArenaSize: len(g.arena),
		FreeCount: g.free.Size(),
		RootCount: g.roots.Size(),
	}
}
