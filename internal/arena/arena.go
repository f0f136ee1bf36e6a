// Package arena models the battle arena: a fixed tile grid with a river
// splitting the two halves, bridge crossings, and the standard tower
// placements. The arena is static geometry; it never changes during a match.
package arena

import "github.com/jtsang27/crust-sim/internal/game/geom"

// Grid dimensions in tiles. X runs across the long axis from player 1's
// side toward player 2's side.
const (
	Width    = 32
	Height   = 18
	TileSize = 1.0
)

// TileType classifies a single arena tile.
type TileType int

const (
	TileGrass TileType = iota
	TileBridge
	TileRiver
	TileTower
	TileDecoration
	TileWall
)

// Walkable reports whether troops may stand on this tile.
func (t TileType) Walkable() bool {
	return t == TileGrass || t == TileBridge || t == TileTower
}

// River and bridge layout. The river occupies two tile columns in the
// middle of the arena with a bridge crossing in each lane.
const (
	riverMinX  = 15
	riverMaxX  = 16
	bridgeTopY = 4
	bridgeBotY = 13
)

// Arena is the static tile grid.
type Arena struct {
	tiles [Height][Width]TileType
}

// New builds the standard arena layout.
func New() *Arena {
	a := &Arena{}
	for y := 0; y < Height; y++ {
		for x := riverMinX; x <= riverMaxX; x++ {
			if y == bridgeTopY || y == bridgeBotY {
				a.tiles[y][x] = TileBridge
			} else {
				a.tiles[y][x] = TileRiver
			}
		}
	}
	for _, p := range append(TowerPlacements(1), TowerPlacements(2)...) {
		tx, ty := a.WorldToTile(p.Position)
		a.tiles[ty][tx] = TileTower
	}
	return a
}

// TileAt returns the tile type at grid coordinates, or TileWall when out of
// bounds so callers treat the boundary as unwalkable.
func (a *Arena) TileAt(x, y int) TileType {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return TileWall
	}
	return a.tiles[y][x]
}

// WorldToTile converts a world position to clamped tile coordinates.
func (a *Arena) WorldToTile(pos geom.Vec2) (int, int) {
	x := int(pos.X / TileSize)
	y := int(pos.Y / TileSize)
	if x < 0 {
		x = 0
	}
	if x >= Width {
		x = Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= Height {
		y = Height - 1
	}
	return x, y
}

// TileToWorld returns the world position of a tile center.
func (a *Arena) TileToWorld(x, y int) geom.Vec2 {
	return geom.NewVec2((float64(x)+0.5)*TileSize, (float64(y)+0.5)*TileSize)
}

// InBounds reports whether a world position lies inside the arena.
func (a *Arena) InBounds(pos geom.Vec2) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < Width*TileSize && pos.Y < Height*TileSize
}

// ownHalf reports whether the tile column belongs to the player's side of
// the river. Deployment is restricted to the owner's half.
func ownHalf(player int, tileX int) bool {
	if player == 1 {
		return tileX < riverMinX
	}
	return tileX > riverMaxX
}

// CanDeploy reports whether the player may place a unit at the world
// position: in bounds, on a walkable tile, on the player's own half.
// Placement legality is advisory: action application does not enforce it.
// Drivers are expected to pick placements from PlacementMask.
func (a *Arena) CanDeploy(player int, pos geom.Vec2) bool {
	if !a.InBounds(pos) {
		return false
	}
	x, y := a.WorldToTile(pos)
	return a.TileAt(x, y).Walkable() && ownHalf(player, x)
}

// PlacementMask returns a row-major Width*Height mask of legal deployment
// tiles for the player, used by the exported legal-action projection.
func (a *Arena) PlacementMask(player int) []bool {
	mask := make([]bool, Width*Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			mask[y*Width+x] = a.TileAt(x, y).Walkable() && ownHalf(player, x)
		}
	}
	return mask
}

// TowerSlot names one of a player's three structures.
type TowerSlot int

const (
	SlotKing TowerSlot = iota
	SlotLeftPrincess
	SlotRightPrincess
)

func (s TowerSlot) String() string {
	switch s {
	case SlotKing:
		return "king"
	case SlotLeftPrincess:
		return "left_princess"
	case SlotRightPrincess:
		return "right_princess"
	default:
		return "unknown"
	}
}

// Placement pairs a tower slot with its world position.
type Placement struct {
	Slot     TowerSlot
	Position geom.Vec2
}

// TowerPlacements returns the standard tower positions for a player.
// Player 1 owns the low-X half; player 2's placements mirror across the
// river.
func TowerPlacements(player int) []Placement {
	if player == 1 {
		return []Placement{
			{Slot: SlotKing, Position: geom.NewVec2(2.5, 9.0)},
			{Slot: SlotLeftPrincess, Position: geom.NewVec2(7.0, 4.5)},
			{Slot: SlotRightPrincess, Position: geom.NewVec2(7.0, 13.5)},
		}
	}
	return []Placement{
		{Slot: SlotKing, Position: geom.NewVec2(29.5, 9.0)},
		{Slot: SlotLeftPrincess, Position: geom.NewVec2(25.0, 4.5)},
		{Slot: SlotRightPrincess, Position: geom.NewVec2(25.0, 13.5)},
	}
}
