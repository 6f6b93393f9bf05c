package main

import "math"

const (
	MapCells = 20               // cells per side
	CellSize = 2.0              // world units per cell
	MapHalf  = MapCells * CellSize / 2 // world spans [-MapHalf, MapHalf]

	WallRadius  = CellSize / 2
	WallDensity = 0.06 // chance of an interior wall per cell

	PlayerSpawnY = MapHalf * 0.6
	EnemySpawnY  = -MapHalf * 0.6
	spawnClearance = 3.0 // interior walls keep this distance from spawns
)

// GameMap is the arena floor: a fixed entity with no collider.
type GameMap struct {
	disposed bool
	visual   string
}

// NewGameMap creates the floor entity.
func NewGameMap(s *Scene) *GameMap {
	return &GameMap{visual: s.visual("ground")}
}

func (m *GameMap) Kind() EntityKind  { return KindMap }
func (m *GameMap) Collider() *Sphere { return nil }
func (m *GameMap) Update(dt float64) {}
func (m *GameMap) Disposed() bool    { return m.disposed }
func (m *GameMap) MarkDisposed()     { m.disposed = true }
func (m *GameMap) Dispose()          { m.visual = "" }

func (m *GameMap) State() EntityState {
	return EntityState{Kind: int(KindMap), Asset: m.visual}
}

// Wall is a static barrier with a fixed collider.
type Wall struct {
	X, Y, Z float64
	Col     Sphere

	disposed bool
	visual   string
}

// NewWall creates a wall at the given position.
func NewWall(s *Scene, x, y float64) *Wall {
	return &Wall{
		X:      x,
		Y:      y,
		Col:    Sphere{X: x, Y: y, R: WallRadius},
		visual: s.visual("wall"),
	}
}

func (w *Wall) Kind() EntityKind  { return KindWall }
func (w *Wall) Collider() *Sphere { return &w.Col }
func (w *Wall) Update(dt float64) {}
func (w *Wall) Disposed() bool    { return w.disposed }
func (w *Wall) MarkDisposed()     { w.disposed = true }
func (w *Wall) Dispose()          { w.visual = "" }

func (w *Wall) State() EntityState {
	return EntityState{
		Kind:  int(KindWall),
		X:     w.X,
		Y:     w.Y,
		Z:     w.Z,
		Asset: w.visual,
	}
}

// NewArena populates a fresh scene with the fixed map, one player, one
// enemy and procedurally placed walls, and returns the player.
func NewArena(s *Scene) *Player {
	s.Register(NewGameMap(s))

	player := NewPlayer(s, 0, PlayerSpawnY)
	s.Register(player)
	s.Register(NewEnemy(s, 0, EnemySpawnY, EnemyBaseSpeed))

	placeWalls(s, player)
	return player
}

// cellCenter maps cell indices (0..MapCells-1) to world coordinates.
func cellCenter(i, j int) (x, y float64) {
	x = -MapHalf + (float64(i)+0.5)*CellSize
	y = -MapHalf + (float64(j)+0.5)*CellSize
	return
}

// placeWalls rings the arena with border walls and scatters interior
// ones, keeping the spawn areas clear.
func placeWalls(s *Scene, player *Player) {
	for i := 0; i < MapCells; i++ {
		for j := 0; j < MapCells; j++ {
			x, y := cellCenter(i, j)
			border := i == 0 || j == 0 || i == MapCells-1 || j == MapCells-1
			if border {
				s.Register(NewWall(s, x, y))
				continue
			}
			if s.rng.Float64() >= WallDensity {
				continue
			}
			if math.Hypot(x-player.X, y-player.Y) < spawnClearance ||
				math.Hypot(x-0, y-EnemySpawnY) < spawnClearance {
				continue
			}
			s.Register(NewWall(s, x, y))
		}
	}
}
