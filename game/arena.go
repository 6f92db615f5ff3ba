package game

import (
	"github.com/jakecoffman/cp"
	"github.com/solarlune/resolv"

	"github.com/milk9111/ninja/common"
	"github.com/milk9111/ninja/entity"
	"github.com/milk9111/ninja/physics"
)

const (
	tagPlayer     = "player"
	tagEnemy      = "enemy"
	tagProjectile = "projectile"

	// arenaMargin is how far past the level's tiles, in cells, the
	// broadphase still tracks bodies.
	arenaMargin = 16
)

// arena is the broadphase for entity-vs-entity contacts. Candidates it
// returns are confirmed with exact rect tests by the caller.
type arena struct {
	space       *resolv.Space
	origin      cp.Vector
	player      *resolv.Object
	enemies     map[*entity.Enemy]*resolv.Object
	projectiles map[*entity.Projectile]*resolv.Object
}

func newArena(bounds common.Rect, cell int) *arena {
	margin := float64(arenaMargin * cell)
	origin := cp.Vector{X: bounds.X - margin, Y: bounds.Y - margin}
	w := int(bounds.W+2*margin) + cell
	h := int(bounds.H+2*margin) + cell
	return &arena{
		space:       resolv.NewSpace(w, h, cell, cell),
		origin:      origin,
		enemies:     make(map[*entity.Enemy]*resolv.Object),
		projectiles: make(map[*entity.Projectile]*resolv.Object),
	}
}

// Objects are inflated by a pixel on every side so sub-pixel overlaps that
// straddle a cell edge still share a cell.
func inflate(r common.Rect) common.Rect {
	return common.Rect{X: r.X - 1, Y: r.Y - 1, W: r.W + 2, H: r.H + 2}
}

func (a *arena) object(r common.Rect, data any, tags ...string) *resolv.Object {
	r = inflate(r)
	obj := resolv.NewObject(r.X-a.origin.X, r.Y-a.origin.Y, r.W, r.H, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	obj.Data = data
	a.space.Add(obj)
	return obj
}

func (a *arena) move(obj *resolv.Object, r common.Rect) {
	r = inflate(r)
	obj.X = r.X - a.origin.X
	obj.Y = r.Y - a.origin.Y
	obj.Update()
}

func (a *arena) setPlayer(p *entity.Player) {
	if a.player != nil {
		a.space.Remove(a.player)
	}
	a.player = a.object(p.Rect(), p, tagPlayer)
}

func (a *arena) syncPlayer(b *physics.Body) {
	if a.player != nil {
		a.move(a.player, b.Rect())
	}
}

func (a *arena) addEnemy(e *entity.Enemy) {
	a.enemies[e] = a.object(e.Rect(), e, tagEnemy)
}

func (a *arena) syncEnemy(e *entity.Enemy) {
	if obj, ok := a.enemies[e]; ok {
		a.move(obj, e.Rect())
	}
}

func (a *arena) removeEnemy(e *entity.Enemy) {
	if obj, ok := a.enemies[e]; ok {
		a.space.Remove(obj)
		delete(a.enemies, e)
	}
}

func pointRect(p cp.Vector) common.Rect {
	return common.Rect{X: p.X, Y: p.Y, W: 1, H: 1}
}

func (a *arena) addProjectile(p *entity.Projectile) {
	a.projectiles[p] = a.object(pointRect(p.Pos), p, tagProjectile)
}

func (a *arena) syncProjectile(p *entity.Projectile) {
	if obj, ok := a.projectiles[p]; ok {
		a.move(obj, pointRect(p.Pos))
	}
}

func (a *arena) removeProjectile(p *entity.Projectile) {
	if obj, ok := a.projectiles[p]; ok {
		a.space.Remove(obj)
		delete(a.projectiles, p)
	}
}

// near returns the objects carrying tag that share a cell with the player.
func (a *arena) near(tag string) map[any]bool {
	if a.player == nil {
		return nil
	}
	check := a.player.Check(0, 0, tag)
	if check == nil {
		return nil
	}
	out := make(map[any]bool)
	for _, obj := range check.ObjectsByTags(tag) {
		out[obj.Data] = true
	}
	return out
}
