package thicket

import "strconv"

// EntityID is a generation-checked handle into a scene's object pool.
// The low 32 bits hold the slot index, the high 32 bits the generation.
// Handles to destroyed objects stop resolving once their slot is reused.
type EntityID uint64

// RootID addresses the scene's synthetic root transform.
const RootID EntityID = 0

const entityIndexBits = 32

func makeEntityID(index, gen uint32) EntityID {
	return EntityID(uint64(gen)<<entityIndexBits | uint64(index))
}

func (e EntityID) index() uint32 {
	return uint32(e)
}

func (e EntityID) generation() uint32 {
	return uint32(uint64(e) >> entityIndexBits)
}

func (e EntityID) String() string {
	return strconv.FormatUint(uint64(e.index()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

// objectPool is the arena that owns every game object of a scene.
// Slot 0 is reserved for the root and never holds an object.
type objectPool struct {
	objects []*GameObject
	gens    []uint32
	free    []uint32
	live    int
}

func newObjectPool() objectPool {
	return objectPool{
		objects: []*GameObject{nil},
		gens:    []uint32{0},
	}
}

func (p *objectPool) insert(obj *GameObject) EntityID {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = uint32(len(p.objects))
		p.objects = append(p.objects, nil)
		p.gens = append(p.gens, 0)
	}
	p.objects[idx] = obj
	p.live++
	return makeEntityID(idx, p.gens[idx])
}

func (p *objectPool) get(id EntityID) *GameObject {
	idx := id.index()
	if idx == 0 || int(idx) >= len(p.objects) || p.gens[idx] != id.generation() {
		return nil
	}
	return p.objects[idx]
}

func (p *objectPool) remove(id EntityID) bool {
	if p.get(id) == nil {
		return false
	}
	idx := id.index()
	p.objects[idx] = nil
	p.gens[idx]++
	p.free = append(p.free, idx)
	p.live--
	return true
}
