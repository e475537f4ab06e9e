package systems

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"
)

// Entity is anything the registry updates and draws each tick.
type Entity interface {
	Update(env *Env, dt float32)
	Draw(p Presenter)
	Dispose()
	Disposed() bool
}

// Disposer is implemented by entities that need a hook when they leave the registry.
type Disposer interface {
	OnDispose(env *Env)
}

// Base carries the disposed flag shared by all entities.
type Base struct {
	disposed bool
}

// Dispose marks the entity for removal at the end of the current tick.
// Calling it more than once has no further effect.
func (b *Base) Dispose() { b.disposed = true }

// Disposed reports whether Dispose has been called.
func (b *Base) Disposed() bool { return b.disposed }

// actor is the single component that binds an ark entity to its behaviour.
type actor struct {
	entity Entity
	order  uint64
}

// Registry owns every live entity. Entities added during a tick are not
// updated until the next tick; entities disposed during a tick receive
// their last update that tick and are gone before the next one.
type Registry struct {
	world  *ecs.World
	mapper *ecs.Map1[actor]
	filter *ecs.Filter1[actor]

	pending []Entity
	nextSeq uint64
	count   int

	// OnRemove is called for each entity after it leaves the registry.
	OnRemove func(e Entity)

	// scratch buffers reused between ticks
	batch   []actor
	handles []ecs.Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	world := ecs.NewWorld()
	return &Registry{
		world:  world,
		mapper: ecs.NewMap1[actor](world),
		filter: ecs.NewFilter1[actor](world),
	}
}

// Add queues e for insertion at the end of the current tick.
func (r *Registry) Add(e Entity) {
	r.pending = append(r.pending, e)
}

// AddNow inserts e immediately. Use only outside Act.
func (r *Registry) AddNow(e Entity) {
	r.insert(e)
}

func (r *Registry) insert(e Entity) {
	a := actor{entity: e, order: r.nextSeq}
	r.nextSeq++
	r.mapper.NewEntity(&a)
	r.count++
}

// Len returns the number of live entities, excluding pending additions.
func (r *Registry) Len() int {
	return r.count
}

// Pending returns the number of entities waiting to be inserted.
func (r *Registry) Pending() int {
	return len(r.pending)
}

// Act advances every live entity by dt, then removes disposed entities and
// inserts the ones added during the tick.
func (r *Registry) Act(env *Env, dt float32) {
	// Snapshot first: entities may add or dispose others while updating.
	r.snapshot()
	for _, a := range r.batch {
		a.entity.Update(env, dt)
	}
	r.flush(env)
}

// Draw submits every live entity in insertion order.
func (r *Registry) Draw(p Presenter) {
	r.snapshot()
	for _, a := range r.batch {
		if !a.entity.Disposed() {
			a.entity.Draw(p)
		}
	}
}

// Each calls fn for every live entity in insertion order.
func (r *Registry) Each(fn func(e Entity)) {
	r.snapshot()
	for _, a := range r.batch {
		fn(a.entity)
	}
}

// Clear disposes and removes every entity, dropping pending additions.
func (r *Registry) Clear(env *Env) {
	r.pending = r.pending[:0]
	r.Each(func(e Entity) { e.Dispose() })
	r.flush(env)
	r.pending = r.pending[:0]
}

func (r *Registry) snapshot() {
	r.batch = r.batch[:0]
	query := r.filter.Query()
	for query.Next() {
		r.batch = append(r.batch, *query.Get())
	}
	sortByOrder(r.batch)
}

// flush removes disposed entities and inserts pending ones.
func (r *Registry) flush(env *Env) {
	// First pass: collect disposed handles (world is locked during the query)
	r.handles = r.handles[:0]
	var removed []Entity
	query := r.filter.Query()
	for query.Next() {
		a := query.Get()
		if a.entity.Disposed() {
			r.handles = append(r.handles, query.Entity())
			removed = append(removed, a.entity)
		}
	}

	// Second pass: remove
	for _, h := range r.handles {
		r.world.RemoveEntity(h)
		r.count--
	}
	for _, e := range removed {
		if d, ok := e.(Disposer); ok {
			d.OnDispose(env)
		}
		if r.OnRemove != nil {
			r.OnRemove(e)
		}
	}

	pending := r.pending
	r.pending = nil
	for _, e := range pending {
		r.insert(e)
	}
}

// sortByOrder restores insertion order; ark iterates by archetype storage,
// which reorders on removal.
func sortByOrder(b []actor) {
	slices.SortFunc(b, func(x, y actor) int { return cmp.Compare(x.order, y.order) })
}
