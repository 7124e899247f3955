package terrain

import (
	"math"

	"voxengine/internal/config"
	"voxengine/internal/world"

	lru "github.com/hashicorp/golang-lru"
	"github.com/ojrac/opensimplex-go"
	"github.com/pkg/errors"
)

// octaveEpsilon stops the octave sum once an octave no longer contributes.
const octaveEpsilon = 1.1920929e-07

// noiseField is an octave noise sampler with a spline applied to its sum.
type noiseField struct {
	noise  opensimplex.Noise
	zoom   float64
	depth  int
	step   float64
	spline Spline
}

func newNoiseField(seed int64, s config.NoiseSettings) (noiseField, error) {
	sp, err := SplineFromPairs(s.Spline)
	if err != nil {
		return noiseField{}, err
	}
	return noiseField{
		noise:  opensimplex.New(seed),
		zoom:   s.Zoom,
		depth:  s.Depth,
		step:   s.Step,
		spline: sp,
	}, nil
}

func (f noiseField) eval2(x, z float64) float64 {
	x /= f.zoom
	z /= f.zoom
	sum, amplitude, frequency := 0.0, 1.0, 1.0
	for d := 0; d < f.depth; d++ {
		v := f.noise.Eval2(x*frequency, z*frequency) / amplitude
		if math.Abs(v) <= octaveEpsilon {
			break
		}
		sum += v
		amplitude *= f.step
		frequency *= f.step
	}
	return f.spline.Eval(sum)
}

func (f noiseField) eval3(x, y, z float64) float64 {
	x /= f.zoom
	y /= f.zoom
	z /= f.zoom
	sum, amplitude, frequency := 0.0, 1.0, 1.0
	for d := 0; d < f.depth; d++ {
		v := f.noise.Eval3(x*frequency, y*frequency, z*frequency) / amplitude
		if math.Abs(v) <= octaveEpsilon {
			break
		}
		sum += v
		amplitude *= f.step
		frequency *= f.step
	}
	return f.spline.Eval(sum)
}

// NoiseGenerator shapes terrain from a continentalness height field, fills
// everything below sea level with water and carves caves where two 3D noise
// fields are both close to zero.
type NoiseGenerator struct {
	seaLevel        int
	caveDiameter    float64
	continentalness noiseField
	caveA           noiseField
	caveB           noiseField

	heights *lru.Cache // [2]int -> int
}

// NewNoiseGenerator builds a generator from validated settings.
func NewNoiseGenerator(s config.TerrainSettings) (*NoiseGenerator, error) {
	cont, err := newNoiseField(s.Seed, s.Continentalness)
	if err != nil {
		return nil, errors.Wrap(err, "continentalness")
	}
	caveA, err := newNoiseField(s.Seed, s.Cave)
	if err != nil {
		return nil, errors.Wrap(err, "cave")
	}
	caveB, err := newNoiseField(s.Seed+1, s.Cave)
	if err != nil {
		return nil, errors.Wrap(err, "cave")
	}

	g := &NoiseGenerator{
		seaLevel:        s.SeaLevel,
		caveDiameter:    s.CaveDiameter,
		continentalness: cont,
		caveA:           caveA,
		caveB:           caveB,
	}
	if s.HeightCache > 0 {
		g.heights, err = lru.New(s.HeightCache)
		if err != nil {
			return nil, errors.Wrap(err, "height cache")
		}
	}
	return g, nil
}

// TerrainHeight returns the surface height of column (x, z), capped at the
// top of the world. A negative height leaves the column empty down to y=0.
func (g *NoiseGenerator) TerrainHeight(x, z int) int {
	key := [2]int{x, z}
	if g.heights != nil {
		if h, ok := g.heights.Get(key); ok {
			return h.(int)
		}
	}
	h := int(g.continentalness.eval2(float64(x), float64(z)))
	h = min(h, world.ChunkSizeY-1)
	if g.heights != nil {
		g.heights.Add(key, h)
	}
	return h
}

// Block returns the block at pos for a column of the given height.
func (g *NoiseGenerator) Block(pos world.BlockPos, terrainHeight int) world.Block {
	y := pos.Y()
	t := world.BlockTypeStone
	if y > terrainHeight {
		t = world.BlockTypeAir
	}
	underwater := y <= g.seaLevel && terrainHeight < g.seaLevel

	switch {
	case y == terrainHeight:
		if underwater {
			t = world.BlockTypeDirt
		} else {
			t = world.BlockTypeGrass
		}
	case y < terrainHeight && y > terrainHeight-4:
		t = world.BlockTypeDirt
	}

	if t != world.BlockTypeAir && g.IsCave(pos) {
		t = world.BlockTypeAir
	}
	if t == world.BlockTypeAir && underwater {
		t = world.BlockTypeWater
	}
	return world.NewBlock(t)
}

// IsCave reports whether pos lies inside a cave. The bottom layer is never
// carved.
func (g *NoiseGenerator) IsCave(pos world.BlockPos) bool {
	if pos.Y() == 0 {
		return false
	}
	x, y, z := float64(pos.X()), float64(pos.Y()), float64(pos.Z())
	if math.Abs(g.caveA.eval3(x, y, z)) > g.caveDiameter {
		return false
	}
	return math.Abs(g.caveB.eval3(x, y, z)) <= g.caveDiameter
}
