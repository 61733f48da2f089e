package lowpoly

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Processor holds the parameters of the low-poly pipeline.
type Processor struct {
	// SampleRadius is the half size of the window the local entropy is measured in.
	SampleRadius int
	// DetailPoints is the number of points placed where the entropy is high.
	DetailPoints int
	// BorderPoints is the number of points placed on each of the longer image sides.
	BorderPoints int
	// InfluenceRadius is the radius of the area damped around every detail point.
	InfluenceRadius int
	// InfluenceStrength scales the damping; higher values push detail points further apart.
	InfluenceStrength float64
	// GradientRadiusModifier moves the color samples from the triangle incircle
	// center towards its vertices. 0 gives flat triangles.
	GradientRadiusModifier float64
	// ColorDepth quantizes the entropy source to ColorDepth+1 levels per channel.
	ColorDepth int
	// Grayscale converts the entropy source to luminance before quantization.
	Grayscale bool
	// BlurRadius smooths the entropy source. 0 disables the blur.
	BlurRadius int
	// SuperTriangleAngle is the corner angle of the enclosing triangle, 0 meaning the default.
	SuperTriangleAngle float64
	// Workers is the number of goroutines computing the entropy, 0 meaning one per CPU.
	Workers int

	Logger *zap.Logger
}

// DefaultProcessor returns the parameters used by the command line tool
// when nothing else is configured.
func DefaultProcessor() Processor {
	return Processor{
		SampleRadius:           4,
		DetailPoints:           1000,
		BorderPoints:           10,
		InfluenceRadius:        15,
		InfluenceStrength:      1,
		GradientRadiusModifier: 1,
		ColorDepth:             ColorDepthFromAccuracy(8),
		Grayscale:              true,
		SuperTriangleAngle:     DefaultSuperTriangleAngle,
	}
}

// Validate checks every parameter against the buffer before anything is computed.
func (p *Processor) Validate(buf *PixelBuffer) error {
	switch {
	case buf.Empty():
		return errors.Wrap(ErrEmptyInput, "pixel buffer has no pixels")
	case p.SampleRadius < 0:
		return invalidParam("sample radius %d is negative", p.SampleRadius)
	case p.DetailPoints < 0:
		return invalidParam("detail point count %d is negative", p.DetailPoints)
	case p.BorderPoints < 0:
		return invalidParam("border point count %d is negative", p.BorderPoints)
	case p.DetailPoints == 0 && p.BorderPoints == 0:
		return invalidParam("no detail and no border points requested")
	case p.InfluenceRadius < 0:
		return invalidParam("influence radius %d is negative", p.InfluenceRadius)
	case !(p.InfluenceStrength > 0):
		return invalidParam("influence strength %v must be positive", p.InfluenceStrength)
	case !(p.GradientRadiusModifier >= 0):
		return invalidParam("gradient radius modifier %v is negative", p.GradientRadiusModifier)
	case p.ColorDepth < 1 || p.ColorDepth > 256:
		return invalidParam("color depth %d not in [1, 256]", p.ColorDepth)
	case p.BlurRadius < 0:
		return invalidParam("blur radius %d is negative", p.BlurRadius)
	case p.SuperTriangleAngle != 0 && !(p.SuperTriangleAngle > 0 && p.SuperTriangleAngle < 90):
		return invalidParam("super-triangle angle %v not in (0, 90)", p.SuperTriangleAngle)
	case p.Workers < 0:
		return invalidParam("worker count %d is negative", p.Workers)
	}
	return nil
}

// Filters returns the pre-pass chain applied to the entropy source.
func (p *Processor) Filters() *Chain {
	var filters []Filter
	if p.BlurRadius > 0 {
		filters = append(filters, Blur{Radius: p.BlurRadius})
	}
	if p.Grayscale {
		filters = append(filters, Grayscale{})
	}
	filters = append(filters, ColorDepth{Depth: p.ColorDepth})
	return NewChain(filters...)
}

func (p *Processor) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p *Processor) superTriangleAngle() float64 {
	if p.SuperTriangleAngle == 0 {
		return DefaultSuperTriangleAngle
	}
	return p.SuperTriangleAngle
}

// Generate runs the whole pipeline over buf.
func (p *Processor) Generate(buf *PixelBuffer) (*Result, error) {
	return NewGenerator(*p).Generate(buf)
}

// Result holds the output of every pipeline stage.
type Result struct {
	// Source is the buffer colors are sampled from.
	Source *PixelBuffer
	// Filtered is the buffer the entropy is computed on.
	Filtered  *PixelBuffer
	Entropy   *EntropyField
	Points    []Point
	Triangles []Triangle
	Mesh      *Mesh
}

// entropyKey identifies the inputs of the entropy stage.
type entropyKey struct {
	src          *PixelBuffer
	sampleRadius int
	colorDepth   int
	blurRadius   int
	grayscale    bool
}

// pointsKey identifies the inputs of the point and triangulation stages.
type pointsKey struct {
	detail, border  int
	influenceRadius int
	strength        float64
	angle           float64
}

// Generator runs the pipeline and keeps the intermediate results, so that a
// later call only recomputes the stages whose parameters changed: the entropy
// is reused as long as the source and the filters are the same, the
// triangulation as long as the point parameters are the same. The mesh is
// always rebuilt. A Generator must not be used concurrently.
//
// The source buffer is identified by its address and must not be modified
// between calls.
type Generator struct {
	Processor Processor

	hasEntropy bool
	eKey       entropyKey
	filtered   *PixelBuffer
	field      *EntropyField

	hasPoints bool
	pKey      pointsKey
	points    []Point
	triangles []Triangle
}

// NewGenerator returns a generator with an empty cache.
func NewGenerator(p Processor) *Generator {
	return &Generator{Processor: p}
}

// Reset drops every cached stage.
func (g *Generator) Reset() {
	g.hasEntropy, g.hasPoints = false, false
	g.filtered, g.field = nil, nil
	g.points, g.triangles = nil, nil
}

// Generate runs the pipeline over buf with the current Processor settings.
func (g *Generator) Generate(buf *PixelBuffer) (*Result, error) {
	p := &g.Processor
	if err := p.Validate(buf); err != nil {
		return nil, err
	}
	log := p.logger().With(zap.Int("width", buf.Width), zap.Int("height", buf.Height))

	ek := entropyKey{
		src:          buf,
		sampleRadius: p.SampleRadius,
		colorDepth:   p.ColorDepth,
		blurRadius:   p.BlurRadius,
		grayscale:    p.Grayscale,
	}
	if !g.hasEntropy || g.eKey != ek {
		start := time.Now()
		filtered, err := p.Filters().Apply(buf)
		if err != nil {
			return nil, errors.Wrap(err, "filtering entropy source")
		}
		field, err := ComputeEntropy(filtered, p.SampleRadius, WithWorkers(p.Workers))
		if err != nil {
			return nil, err
		}
		g.filtered, g.field, g.eKey, g.hasEntropy = filtered, field, ek, true
		// Points depend on the entropy.
		g.hasPoints = false
		log.Debug("entropy computed",
			zap.Int("sampleRadius", p.SampleRadius),
			zap.Duration("took", time.Since(start)),
		)
	} else {
		log.Debug("entropy reused")
	}

	pk := pointsKey{
		detail:          p.DetailPoints,
		border:          p.BorderPoints,
		influenceRadius: p.InfluenceRadius,
		strength:        p.InfluenceStrength,
		angle:           p.superTriangleAngle(),
	}
	if !g.hasPoints || g.pKey != pk {
		start := time.Now()
		points, err := g.samplePoints(buf)
		if err != nil {
			return nil, err
		}
		triangles, err := Triangulate(points, buf.Size(), WithSuperTriangleAngle(pk.angle))
		if err != nil {
			return nil, err
		}
		g.points, g.triangles, g.pKey, g.hasPoints = points, triangles, pk, true
		log.Debug("triangulation computed",
			zap.Int("points", len(points)),
			zap.Int("triangles", len(triangles)),
			zap.Duration("took", time.Since(start)),
		)
	} else {
		log.Debug("triangulation reused")
	}

	mesh, err := Synthesize(g.triangles, buf, p.GradientRadiusModifier)
	if err != nil {
		return nil, err
	}
	log.Debug("mesh synthesized", zap.Int("vertices", len(mesh.Vertices)))

	return &Result{
		Source:    buf,
		Filtered:  g.filtered,
		Entropy:   g.field,
		Points:    g.points,
		Triangles: g.triangles,
		Mesh:      mesh,
	}, nil
}

// samplePoints returns the detail points followed by the border points.
// Detail points picked twice are dropped, the triangulation needing distinct points.
func (g *Generator) samplePoints(buf *PixelBuffer) ([]Point, error) {
	p := &g.Processor
	detail, err := SelectDetailPoints(g.field, p.DetailPoints, p.InfluenceRadius, p.InfluenceStrength)
	if err != nil {
		return nil, err
	}
	unique := uniquePoints(detail)
	if dropped := len(detail) - len(unique); dropped > 0 {
		p.logger().Debug("duplicate detail points dropped", zap.Int("count", dropped))
	}
	border, err := BorderPoints(p.BorderPoints, float64(buf.Width), float64(buf.Height))
	if err != nil {
		return nil, err
	}
	return append(unique, border...), nil
}
