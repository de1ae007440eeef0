package main

import (
	"math/rand"

	"github.com/plus3/entstore/ecs"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// shadow is the expected component state of one live entity.
type shadow struct {
	position *Position
	velocity *Velocity
	health   *Health
}

// OpCounts tallies the operations issued by a Churn.
type OpCounts struct {
	Creates  int64
	Destroys int64
	Emplaces int64
	Removes  int64
	Rejected int64
}

// Churn drives random operations against a Manager and checks the result
// against a plain map model after every frame.
type Churn struct {
	manager *ecs.Manager
	rng     *rand.Rand
	log     logrus.FieldLogger

	live  map[ecs.Entity]*shadow
	order []ecs.Entity
	stale []ecs.Entity

	Ops OpCounts
}

const maxStale = 1024

func NewChurn(manager *ecs.Manager, seed int64, log logrus.FieldLogger) *Churn {
	return &Churn{
		manager: manager,
		rng:     rand.New(rand.NewSource(seed)),
		log:     log,
		live:    make(map[ecs.Entity]*shadow),
	}
}

// Populate creates n entities, each with a random subset of components.
func (c *Churn) Populate(n int) {
	for i := 0; i < n; i++ {
		e := c.create()
		for j := 0; j < 3; j++ {
			c.emplace(e)
		}
	}
}

// Frame issues ops random operations.
func (c *Churn) Frame(ops int) {
	for i := 0; i < ops; i++ {
		switch r := c.rng.Intn(10); {
		case r < 2 || len(c.order) == 0:
			c.create()
		case r < 4:
			c.destroy(c.pick())
		case r < 7:
			c.emplace(c.pick())
		case r < 9:
			c.remove(c.pick())
		default:
			c.poke()
		}
	}
}

func (c *Churn) pick() ecs.Entity {
	return c.order[c.rng.Intn(len(c.order))]
}

func (c *Churn) create() ecs.Entity {
	e := c.manager.CreateEntity()
	c.live[e] = &shadow{}
	c.order = append(c.order, e)
	c.Ops.Creates++
	return e
}

func (c *Churn) destroy(e ecs.Entity) {
	if !c.manager.DestroyEntity(e) {
		c.log.WithField("entity", e).Warn("destroy of live entity rejected")
		c.Ops.Rejected++
		return
	}
	c.Ops.Destroys++
	delete(c.live, e)
	for i, o := range c.order {
		if o == e {
			last := len(c.order) - 1
			c.order[i] = c.order[last]
			c.order = c.order[:last]
			break
		}
	}
	if len(c.stale) < maxStale {
		c.stale = append(c.stale, e)
	} else {
		c.stale[c.rng.Intn(maxStale)] = e
	}
}

func (c *Churn) emplace(e ecs.Entity) {
	s := c.live[e]
	var ok bool
	switch c.rng.Intn(3) {
	case 0:
		v := Position{X: c.rng.Float64(), Y: c.rng.Float64()}
		if ok = ecs.Emplace(c.manager, e, v); ok {
			s.position = &v
		}
	case 1:
		v := Velocity{DX: c.rng.Float64(), DY: c.rng.Float64()}
		if ok = ecs.Emplace(c.manager, e, v); ok {
			s.velocity = &v
		}
	default:
		v := Health{Current: c.rng.Intn(100), Max: 100}
		if ok = ecs.Emplace(c.manager, e, v); ok {
			s.health = &v
		}
	}
	if ok {
		c.Ops.Emplaces++
	} else {
		c.Ops.Rejected++
	}
}

func (c *Churn) remove(e ecs.Entity) {
	s := c.live[e]
	var ok bool
	switch c.rng.Intn(3) {
	case 0:
		if ok = ecs.Remove[Position](c.manager, e); ok {
			s.position = nil
		}
	case 1:
		if ok = ecs.Remove[Velocity](c.manager, e); ok {
			s.velocity = nil
		}
	default:
		if ok = ecs.Remove[Health](c.manager, e); ok {
			s.health = nil
		}
	}
	if ok {
		c.Ops.Removes++
	} else {
		c.Ops.Rejected++
	}
}

// poke mutates a component in place through Get, like a system would.
func (c *Churn) poke() {
	if len(c.order) == 0 {
		return
	}
	e := c.pick()
	h := ecs.Get[Health](c.manager, e)
	if h == nil || c.live[e].health == nil {
		return
	}
	h.Current = (h.Current + 1) % (h.Max + 1)
	c.live[e].health.Current = h.Current
}

// Verify checks the manager against the model.
func (c *Churn) Verify() error {
	if c.manager.Len() != len(c.live) {
		return eris.Errorf("manager holds %d entities, model %d", c.manager.Len(), len(c.live))
	}

	var positions, velocities, healths int
	for e, s := range c.live {
		if !c.manager.IsEntityCreated(e) {
			return eris.Wrapf(ecs.ErrStaleEntity, "live entity %v", e)
		}
		if err := check(c.manager, e, s.position); err != nil {
			return err
		}
		if err := check(c.manager, e, s.velocity); err != nil {
			return err
		}
		if err := check(c.manager, e, s.health); err != nil {
			return err
		}
		if s.position != nil {
			positions++
		}
		if s.velocity != nil {
			velocities++
		}
		if s.health != nil {
			healths++
		}
	}

	for _, e := range c.stale {
		if _, ok := c.live[e]; ok {
			// slot reused 256 times; the handle aliases a live entity
			continue
		}
		if c.manager.IsEntityCreated(e) {
			return eris.Errorf("stale entity %v resolves as live", e)
		}
	}

	if err := checkLen[Position](c.manager, positions); err != nil {
		return err
	}
	if err := checkLen[Velocity](c.manager, velocities); err != nil {
		return err
	}
	return checkLen[Health](c.manager, healths)
}

func check[T comparable](m *ecs.Manager, e ecs.Entity, want *T) error {
	got := ecs.Get[T](m, e)
	switch {
	case want == nil && got != nil:
		return eris.Wrapf(ecs.ErrDuplicateComponent, "%v has unexpected %s", e, ecs.TypeName(ecs.TypeIDOf[T]()))
	case want != nil && got == nil:
		return eris.Wrapf(ecs.ErrNoComponent, "%v lost its %s", e, ecs.TypeName(ecs.TypeIDOf[T]()))
	case want != nil && *want != *got:
		return eris.Errorf("%v has %s %+v, want %+v", e, ecs.TypeName(ecs.TypeIDOf[T]()), *got, *want)
	}
	return nil
}

func checkLen[T any](m *ecs.Manager, want int) error {
	got := 0
	if set := ecs.Set[T](m); set != nil {
		got = set.Len()
	}
	if got != want {
		return eris.Errorf("%s set holds %d components, want %d", ecs.TypeName(ecs.TypeIDOf[T]()), got, want)
	}
	return nil
}
