package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsang27/crust-sim/internal/game/geom"
)

func TestRiverAndBridges(t *testing.T) {
	a := New()

	assert.Equal(t, TileRiver, a.TileAt(15, 8))
	assert.Equal(t, TileRiver, a.TileAt(16, 0))
	assert.Equal(t, TileBridge, a.TileAt(15, 4))
	assert.Equal(t, TileBridge, a.TileAt(16, 13))

	assert.False(t, TileRiver.Walkable())
	assert.True(t, TileBridge.Walkable())
	assert.True(t, TileGrass.Walkable())
	assert.False(t, TileWall.Walkable())
}

func TestBounds(t *testing.T) {
	a := New()

	assert.True(t, a.InBounds(geom.NewVec2(0, 0)))
	assert.True(t, a.InBounds(geom.NewVec2(31.9, 17.9)))
	assert.False(t, a.InBounds(geom.NewVec2(-0.1, 5)))
	assert.False(t, a.InBounds(geom.NewVec2(32.0, 5)))
	assert.False(t, a.InBounds(geom.NewVec2(5, 18.0)))

	// Out-of-range tile reads come back as walls.
	assert.Equal(t, TileWall, a.TileAt(-1, 0))
	assert.Equal(t, TileWall, a.TileAt(0, Height))
}

func TestWorldTileRoundTrip(t *testing.T) {
	a := New()

	x, y := a.WorldToTile(geom.NewVec2(10.7, 3.2))
	assert.Equal(t, 10, x)
	assert.Equal(t, 3, y)

	center := a.TileToWorld(10, 3)
	assert.Equal(t, 10.5, center.X)
	assert.Equal(t, 3.5, center.Y)
}

func TestDeploymentHalves(t *testing.T) {
	a := New()

	assert.True(t, a.CanDeploy(1, geom.NewVec2(10, 9)))
	assert.False(t, a.CanDeploy(1, geom.NewVec2(20, 9)))
	assert.True(t, a.CanDeploy(2, geom.NewVec2(20, 9)))
	assert.False(t, a.CanDeploy(2, geom.NewVec2(10, 9)))

	// River tiles are not deployable for anyone.
	assert.False(t, a.CanDeploy(1, geom.NewVec2(15.5, 8.5)))
	assert.False(t, a.CanDeploy(2, geom.NewVec2(15.5, 8.5)))
}

func TestPlacementMaskShapeAndHalves(t *testing.T) {
	a := New()

	mask := a.PlacementMask(1)
	require.Len(t, mask, Width*Height)

	// Own-half grass is legal; the far half is not.
	assert.True(t, mask[9*Width+5])
	assert.False(t, mask[9*Width+25])

	mask2 := a.PlacementMask(2)
	assert.False(t, mask2[9*Width+5])
	assert.True(t, mask2[9*Width+25])
}

func TestTowerPlacementsMirror(t *testing.T) {
	p1 := TowerPlacements(1)
	p2 := TowerPlacements(2)
	require.Len(t, p1, 3)
	require.Len(t, p2, 3)

	assert.Equal(t, SlotKing, p1[0].Slot)
	assert.InDelta(t, p1[0].Position.X+p2[0].Position.X, float64(Width), 1e-9)
	assert.Equal(t, p1[0].Position.Y, p2[0].Position.Y)
}
