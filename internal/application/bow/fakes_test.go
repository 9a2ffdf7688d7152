package bow

import (
	"errors"
	"io"
	"log"

	"github.com/younwookim/toybow/internal/domain/entity"
	"github.com/younwookim/toybow/internal/domain/geom"
	"github.com/younwookim/toybow/internal/infrastructure/config"
)

var errRejected = errors.New("rejected")

// fakeStore is an in-memory object store that counts creates and destroys
type fakeStore struct {
	next      entity.Handle
	objects   map[entity.Handle]*entity.Properties
	created   map[entity.ObjectKind]int
	destroyed map[entity.ObjectKind]int
	failKinds map[entity.ObjectKind]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:   make(map[entity.Handle]*entity.Properties),
		created:   make(map[entity.ObjectKind]int),
		destroyed: make(map[entity.ObjectKind]int),
		failKinds: make(map[entity.ObjectKind]bool),
	}
}

// add inserts a fixture without counting it as a create
func (f *fakeStore) add(p entity.Properties) entity.Handle {
	f.next++
	p.Handle = f.next
	f.objects[p.Handle] = &p
	return p.Handle
}

func (f *fakeStore) Create(spec entity.ObjectSpec) (entity.Handle, error) {
	if f.failKinds[spec.Kind()] {
		return 0, errRejected
	}

	p := entity.Properties{Kind: spec.Kind()}
	switch sp := spec.(type) {
	case entity.ArrowSpec:
		p.Name = sp.Name
		p.Position = sp.Position
		p.Rotation = sp.Rotation
		p.Dimensions = sp.Dimensions
		p.IgnoreForCollisions = true
		p.Visible = true
		p.UserData = sp.UserData
	case entity.StringLineSpec:
		p.Name = sp.Name
		p.Position = sp.Position
		p.Dimensions = sp.Dimensions
		p.Visible = true
		p.UserData = sp.UserData
	case entity.RestLineSpec:
		p.Name = sp.Name
		p.Position = sp.Position
		p.Dimensions = sp.Dimensions
		p.Visible = sp.Visible
		p.UserData = sp.UserData
	}

	h := f.add(p)
	f.created[spec.Kind()]++
	return h, nil
}

func (f *fakeStore) Destroy(h entity.Handle) {
	p, ok := f.objects[h]
	if !ok {
		return
	}
	f.destroyed[p.Kind]++
	delete(f.objects, h)
}

func (f *fakeStore) Edit(h entity.Handle, e entity.Edit) error {
	p, ok := f.objects[h]
	if !ok {
		return errRejected
	}
	e.Apply(p)
	return nil
}

func (f *fakeStore) Properties(h entity.Handle) (entity.Properties, bool) {
	p, ok := f.objects[h]
	if !ok {
		return entity.Properties{}, false
	}
	return *p, true
}

func (f *fakeStore) FindNearby(pos geom.Vec3, radius float64) []entity.Handle {
	var out []entity.Handle
	for h, p := range f.objects {
		if p.Position.Distance(pos) <= radius {
			out = append(out, h)
		}
	}
	return out
}

// live counts objects of kind that still exist
func (f *fakeStore) live(kind entity.ObjectKind) int {
	n := 0
	for _, p := range f.objects {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// fakeController returns scripted hand input
type fakeController struct {
	trigger map[entity.Hand]float64
	palm    map[entity.Hand]geom.Vec3
	avatar  geom.Vec3
}

func newFakeController() *fakeController {
	return &fakeController{
		trigger: make(map[entity.Hand]float64),
		palm:    make(map[entity.Hand]geom.Vec3),
	}
}

func (c *fakeController) TriggerValue(hand entity.Hand) float64  { return c.trigger[hand] }
func (c *fakeController) PalmPosition(hand entity.Hand) geom.Vec3 { return c.palm[hand] }
func (c *fakeController) AvatarPosition() geom.Vec3               { return c.avatar }

type playedSound struct {
	ref  entity.SoundRef
	opts entity.SoundOptions
}

// fakeAudio records every play and volume change
type fakeAudio struct {
	played     []playedSound
	adjusted   []entity.SoundOptions
	adjustedID []entity.SoundID
}

func (a *fakeAudio) PlaySound(ref entity.SoundRef, opts entity.SoundOptions) entity.SoundID {
	a.played = append(a.played, playedSound{ref: ref, opts: opts})
	return entity.SoundID(len(a.played))
}

func (a *fakeAudio) AdjustSound(id entity.SoundID, opts entity.SoundOptions) {
	a.adjusted = append(a.adjusted, opts)
	a.adjustedID = append(a.adjustedID, id)
}

func (a *fakeAudio) refs() []entity.SoundRef {
	refs := make([]entity.SoundRef, 0, len(a.played))
	for _, p := range a.played {
		refs = append(refs, p.ref)
	}
	return refs
}

// rig is a session wired to fakes, with the bow at (0, 1.4, 0) facing +X
type rig struct {
	store   *fakeStore
	input   *fakeController
	audio   *fakeAudio
	session *Session
	bow     entity.Handle
}

const frameDt = 1.0 / 60

var (
	bowPosition = geom.V3(0, 1.4, 0)
	bowRotation = geom.FromPitchYawRollDegrees(0, -90, 0)
	// notch for the bow above: position + front*0.08 + up*0.035
	notchPosition = geom.V3(0.08, 1.435, 0)
)

func newRig(cfg config.BowConfig) *rig {
	r := &rig{
		store: newFakeStore(),
		input: newFakeController(),
		audio: &fakeAudio{},
	}
	r.bow = r.store.add(entity.Properties{
		Kind:       entity.KindBow,
		Name:       "bow",
		Position:   bowPosition,
		Rotation:   bowRotation,
		Dimensions: geom.V3(0.04, 1.2, 0.3),
	})
	r.input.avatar = geom.V3(0, 0, 0)

	r.session = NewSession(r.bow, cfg, Host{
		Store:  r.store,
		Input:  r.input,
		Audio:  r.audio,
		Logger: log.New(io.Discard, "", 0),
	})
	return r
}

// grab picks the bow up with hand
func (r *rig) grab(hand entity.Hand) bool {
	r.session.AssignHand(hand)
	return r.session.StartGrab()
}

// pull places the string hand `distance` behind the notch with trigger v
func (r *rig) pull(v, distance float64) {
	hand := r.session.StringHand()
	r.input.trigger[hand] = v
	r.input.palm[hand] = notchPosition.Sub(geom.V3(distance, 0, 0))
}

// frame ticks the session by one 60 Hz frame
func (r *rig) frame() {
	r.session.Tick(frameDt)
}
