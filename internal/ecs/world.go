package ecs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
)

var (
	// ErrUnknownHandle is returned when editing an object that does not exist
	ErrUnknownHandle = errors.New("unknown object handle")
	// ErrCreateRejected is returned for specs the world cannot build
	ErrCreateRejected = errors.New("create rejected")
)

// EntityID is a unique identifier for an object (never recycled)
type EntityID = entity.Handle

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Transform map[EntityID]Transform
	Body      map[EntityID]Body
	Lifetime  map[EntityID]Lifetime
	Line      map[EntityID]Line
	Meta      map[EntityID]Meta
	Model     map[EntityID]Model
	Target    map[EntityID]Target

	// Tags
	IsArrow  map[EntityID]struct{}
	IsTarget map[EntityID]struct{}

	// Singleton references
	BowID EntityID

	collisions []entity.CollisionEvent
	struck     map[EntityID]EntityID // arrow -> target it already reported

	created   map[entity.ObjectKind]int
	destroyed map[entity.ObjectKind]int
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:    1, // 0 is "nil"
		Transform: make(map[EntityID]Transform),
		Body:      make(map[EntityID]Body),
		Lifetime:  make(map[EntityID]Lifetime),
		Line:      make(map[EntityID]Line),
		Meta:      make(map[EntityID]Meta),
		Model:     make(map[EntityID]Model),
		Target:    make(map[EntityID]Target),
		IsArrow:   make(map[EntityID]struct{}),
		IsTarget:  make(map[EntityID]struct{}),
		struck:    make(map[EntityID]EntityID),
		created:   make(map[entity.ObjectKind]int),
		destroyed: make(map[entity.ObjectKind]int),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	if meta, ok := w.Meta[id]; ok {
		w.destroyed[meta.Kind]++
	}

	delete(w.Transform, id)
	delete(w.Body, id)
	delete(w.Lifetime, id)
	delete(w.Line, id)
	delete(w.Meta, id)
	delete(w.Model, id)
	delete(w.Target, id)
	delete(w.IsArrow, id)
	delete(w.IsTarget, id)
	delete(w.struck, id)

	if id == w.BowID {
		w.BowID = 0
	}
}

// Exists checks if an entity has a Meta component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Meta[id]
	return ok
}

// Create validates spec and builds the object it describes
func (w *World) Create(spec entity.ObjectSpec) (entity.Handle, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}

	var id EntityID
	switch sp := spec.(type) {
	case entity.ArrowSpec:
		id = w.createArrow(sp)
	case entity.StringLineSpec:
		id = w.createLine(entity.KindStringLine, sp.Name, sp.Position, sp.Dimensions, true, sp.UserData)
	case entity.RestLineSpec:
		id = w.createLine(entity.KindRestLine, sp.Name, sp.Position, sp.Dimensions, sp.Visible, sp.UserData)
	case entity.BowSpec:
		id = w.createBow(sp)
	case entity.TargetSpec:
		id = w.createTarget(sp)
	case entity.BeamDisablerSpec:
		id = w.NewEntity()
		w.Transform[id] = Transform{Position: sp.Position, Rotation: geom.Identity}
		w.Meta[id] = Meta{Kind: entity.KindBeamDisabler, Name: sp.Name, UserData: clone(sp.UserData)}
	default:
		return 0, fmt.Errorf("%w: unsupported kind %s", ErrCreateRejected, spec.Kind())
	}

	w.created[spec.Kind()]++
	return id, nil
}

func (w *World) createArrow(sp entity.ArrowSpec) EntityID {
	id := w.NewEntity()

	w.Transform[id] = Transform{Position: sp.Position, Rotation: sp.Rotation, Dimensions: sp.Dimensions}
	w.Body[id] = Body{
		Damping:             sp.Damping,
		CollisionsWillMove:  false,
		IgnoreForCollisions: true,
	}
	w.Lifetime[id] = Lifetime{}
	w.Meta[id] = Meta{Kind: entity.KindArrow, Name: sp.Name, Visible: true, UserData: clone(sp.UserData)}
	w.Model[id] = Model{
		ModelRef:         sp.ModelRef,
		CollisionHullRef: sp.CollisionHullRef,
		CollisionSound:   sp.CollisionSound,
	}
	w.IsArrow[id] = struct{}{}

	return id
}

func (w *World) createLine(kind entity.ObjectKind, name string, pos, dims geom.Vec3, visible bool, userData []byte) EntityID {
	id := w.NewEntity()

	w.Transform[id] = Transform{Position: pos, Rotation: geom.Identity, Dimensions: dims}
	w.Line[id] = Line{}
	w.Lifetime[id] = Lifetime{}
	w.Meta[id] = Meta{Kind: kind, Name: name, Visible: visible, UserData: clone(userData)}

	return id
}

func (w *World) createBow(sp entity.BowSpec) EntityID {
	id := w.NewEntity()

	w.Transform[id] = Transform{Position: sp.Position, Rotation: sp.Rotation, Dimensions: sp.Dimensions}
	w.Body[id] = Body{}
	w.Meta[id] = Meta{Kind: entity.KindBow, Name: sp.Name, Visible: true, UserData: clone(sp.UserData)}

	w.BowID = id
	return id
}

func (w *World) createTarget(sp entity.TargetSpec) EntityID {
	id := w.NewEntity()

	w.Transform[id] = Transform{Position: sp.Position, Rotation: geom.Identity, Dimensions: sp.Dimensions}
	w.Meta[id] = Meta{Kind: entity.KindTarget, Name: sp.Name, Visible: true}
	w.Target[id] = Target{Points: sp.Points}
	w.IsTarget[id] = struct{}{}

	return id
}

// Destroy removes an object; unknown handles are ignored
func (w *World) Destroy(h entity.Handle) {
	if !w.Exists(h) {
		return
	}
	w.DestroyEntity(h)
}

// Properties assembles a snapshot of an object
func (w *World) Properties(h entity.Handle) (entity.Properties, bool) {
	meta, ok := w.Meta[h]
	if !ok {
		return entity.Properties{}, false
	}

	tr := w.Transform[h]
	p := entity.Properties{
		Handle:     h,
		Kind:       meta.Kind,
		Name:       meta.Name,
		Position:   tr.Position,
		Rotation:   tr.Rotation,
		Dimensions: tr.Dimensions,
		Visible:    meta.Visible,
		UserData:   clone(meta.UserData),
	}
	if body, ok := w.Body[h]; ok {
		p.Velocity = body.Velocity
		p.Gravity = body.Gravity
		p.Damping = body.Damping
		p.CollisionsWillMove = body.CollisionsWillMove
		p.IgnoreForCollisions = body.IgnoreForCollisions
	}
	if life, ok := w.Lifetime[h]; ok {
		p.Lifetime = life.Limit
		p.Age = life.Age
	}
	if line, ok := w.Line[h]; ok {
		p.LinePoints = append([]geom.Vec3(nil), line.Points...)
		p.LineWidth = line.Width
		p.Color = line.Color
	}
	if model, ok := w.Model[h]; ok {
		p.ModelRef = model.ModelRef
		p.CollisionHullRef = model.CollisionHullRef
		p.CollisionSound = model.CollisionSound
	}
	if target, ok := w.Target[h]; ok {
		p.Points = target.Points
	}
	return p, true
}

// Edit applies a partial update. Fields for components the object does not
// have (velocity on a line, line points on an arrow) are dropped.
func (w *World) Edit(h entity.Handle, e entity.Edit) error {
	p, ok := w.Properties(h)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	e.Apply(&p)

	tr := w.Transform[h]
	tr.Position = p.Position
	tr.Rotation = p.Rotation
	w.Transform[h] = tr

	meta := w.Meta[h]
	meta.Name = p.Name
	meta.Visible = p.Visible
	meta.UserData = p.UserData
	w.Meta[h] = meta

	if body, ok := w.Body[h]; ok {
		body.Velocity = p.Velocity
		body.Gravity = p.Gravity
		body.CollisionsWillMove = p.CollisionsWillMove
		body.IgnoreForCollisions = p.IgnoreForCollisions
		w.Body[h] = body
	}
	if life, ok := w.Lifetime[h]; ok {
		if e.Lifetime != nil {
			life.Age = 0
		}
		life.Limit = p.Lifetime
		w.Lifetime[h] = life
	}
	if line, ok := w.Line[h]; ok {
		line.Points = p.LinePoints
		line.Width = p.LineWidth
		line.Color = p.Color
		w.Line[h] = line
	}
	return nil
}

// FindNearby returns the objects whose position lies within radius of pos,
// in creation order
func (w *World) FindNearby(pos geom.Vec3, radius float64) []entity.Handle {
	var out []entity.Handle
	for id, tr := range w.Transform {
		if tr.Position.Distance(pos) <= radius {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetHeld tells the world whether the bow is in a hand. A bow whose grab
// metadata asks for invertSolidWhileHeld stops colliding while held.
func (w *World) SetHeld(id EntityID, held bool) {
	body, ok := w.Body[id]
	if !ok {
		return
	}

	var g entity.GrabbableData
	found, err := entity.CustomData(w.Meta[id].UserData, entity.GrabbableKey, &g)
	if err != nil || !found || !g.InvertSolidWhileHeld {
		return
	}
	body.IgnoreForCollisions = held
	w.Body[id] = body
}

// DrainCollisions returns and clears the collisions reported since the last call
func (w *World) DrainCollisions() []entity.CollisionEvent {
	out := w.collisions
	w.collisions = nil
	return out
}

// Created returns how many objects of kind were created
func (w *World) Created(kind entity.ObjectKind) int { return w.created[kind] }

// Destroyed returns how many objects of kind were destroyed
func (w *World) Destroyed(kind entity.ObjectKind) int { return w.destroyed[kind] }

// Count returns how many objects of kind exist
func (w *World) Count(kind entity.ObjectKind) int {
	n := 0
	for _, meta := range w.Meta {
		if meta.Kind == kind {
			n++
		}
	}
	return n
}

// IDs returns all object IDs in creation order
func (w *World) IDs() []EntityID {
	ids := make([]EntityID, 0, len(w.Meta))
	for id := range w.Meta {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
