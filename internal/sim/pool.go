package sim

// identified is implemented by pooled entities so the pool can stamp their id.
type identified interface {
	setID(ID)
}

type slot[T any] struct {
	val    T
	alive  bool
	marked bool // killed this tick, freed by Sweep
}

// Pool is an arena of entities addressed by stable ids. Freed slots are
// reused, so an id is unique among live entities but not across a run.
//
// Spawning into a pool while ranging over that same pool with Each is not
// allowed: the backing array may move.
type Pool[T any] struct {
	slots []slot[T]
	free  []int
	live  int
}

// Spawn stores v and returns its id.
func (p *Pool[T]) Spawn(v T) ID {
	var i int
	if n := len(p.free); n > 0 {
		i = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.slots = append(p.slots, slot[T]{})
		i = len(p.slots) - 1
	}
	id := ID(i + 1)
	if e, ok := any(&v).(identified); ok {
		e.setID(id)
	}
	p.slots[i] = slot[T]{val: v, alive: true}
	p.live++
	return id
}

func (p *Pool[T]) index(id ID) (int, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(p.slots) || !p.slots[i].alive {
		return 0, false
	}
	return i, true
}

// Get returns the live, unmarked entity with the given id.
func (p *Pool[T]) Get(id ID) (*T, bool) {
	i, ok := p.index(id)
	if !ok || p.slots[i].marked {
		return nil, false
	}
	return &p.slots[i].val, true
}

// Each calls fn for every live, unmarked entity in id order.
func (p *Pool[T]) Each(fn func(id ID, v *T)) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.alive && !s.marked {
			fn(ID(i+1), &s.val)
		}
	}
}

// Kill marks an entity for removal. It stays allocated until Sweep but is
// invisible to Get and Each. Returns false if the id is not live.
func (p *Pool[T]) Kill(id ID) bool {
	i, ok := p.index(id)
	if !ok || p.slots[i].marked {
		return false
	}
	p.slots[i].marked = true
	return true
}

// Sweep frees every marked entity and every entity for which expired
// returns true. Returns the number of freed slots. Calling it twice in a
// row frees nothing the second time unless expired changes its answer.
func (p *Pool[T]) Sweep(expired func(*T) bool) int {
	freed := 0
	for i := range p.slots {
		s := &p.slots[i]
		if !s.alive {
			continue
		}
		if s.marked || (expired != nil && expired(&s.val)) {
			var zero T
			*s = slot[T]{val: zero}
			p.free = append(p.free, i)
			p.live--
			freed++
		}
	}
	return freed
}

// Len returns the number of allocated entities, marked ones included.
func (p *Pool[T]) Len() int {
	return p.live
}

// Items returns a copy of the live, unmarked entities in id order.
func (p *Pool[T]) Items() []T {
	out := make([]T, 0, p.live)
	p.Each(func(_ ID, v *T) {
		out = append(out, *v)
	})
	return out
}

// Reset drops every entity.
func (p *Pool[T]) Reset() {
	*p = Pool[T]{}
}

// Clone returns an independent copy of the pool. Entity values are copied
// shallowly, so slices inside them must be treated as immutable.
func (p *Pool[T]) Clone() Pool[T] {
	return Pool[T]{
		slots: append([]slot[T](nil), p.slots...),
		free:  append([]int(nil), p.free...),
		live:  p.live,
	}
}
