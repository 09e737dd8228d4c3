package scene

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/taigrr/mirrorball/pkg/math3d"
	"github.com/taigrr/mirrorball/pkg/models"
)

// GLTFLoader builds scenes from glTF/GLB documents.
//
// Geometry is not tessellated: each node marks itself as a sphere, plane or
// light through its extras, for example
//
//	{"name": "ball", "translation": [0, -5, -15], "scale": [4, 4, 4],
//	 "extras": {"sphere": {"diffuse": [1, 1, 1], "specular": [1, 1, 1],
//	                       "specularExponent": 50, "reflective": true}}}
//
// and its world transform places it.
type GLTFLoader struct {
	// Options
	Background    math3d.Vec3f // Used when the glTF scene has no background extra
	DefaultRadius float32      // Sphere radius before node scale when neither extras nor a mesh give one
}

type nodeExtras struct {
	Sphere *sphereExtras `json:"sphere"`
	Plane  *MaterialSpec `json:"plane"`
	Light  *lightExtras  `json:"light"`
}

type sphereExtras struct {
	MaterialSpec
	Radius float32 `json:"radius"`
}

type lightExtras struct {
	Intensity float32 `json:"intensity"`
}

type sceneExtras struct {
	Background *[3]float32 `json:"background"`
}

// NewGLTFLoader creates a glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Background:    math3d.V3(0.6, 0.6, 0.8),
		DefaultRadius: 1,
	}
}

// LoadGLTF loads a .gltf or .glb scene file.
func LoadGLTF(path string) (*Scene, error) {
	return NewGLTFLoader().Load(path)
}

// DecodeGLTF reads a glTF document from r with default options.
func DecodeGLTF(r io.Reader) (*Scene, error) {
	return NewGLTFLoader().Decode(r)
}

// Load opens a glTF or GLB file and builds its default scene.
func (l *GLTFLoader) Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.Build(doc)
}

// Decode reads a glTF document from r and builds its default scene.
// Buffers referenced by URI cannot be resolved from a bare reader.
func (l *GLTFLoader) Decode(r io.Reader) (*Scene, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}
	return l.Build(doc)
}

// Build converts a decoded document. The document's default scene is used,
// falling back to the first scene, then to every root node.
func (l *GLTFLoader) Build(doc *gltf.Document) (*Scene, error) {
	s := New(l.Background)

	roots, extras := rootNodes(doc)
	var se sceneExtras
	if err := decodeExtras(extras, &se); err != nil {
		return nil, fmt.Errorf("scene extras: %w", err)
	}
	if se.Background != nil {
		s.Background = vec(*se.Background)
	}

	visiting := make(map[int]bool)
	for _, idx := range roots {
		if err := l.walk(doc, idx, math3d.Identity(), s, visiting); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// walk adds node idx and its descendants, composing transforms on the way down.
func (l *GLTFLoader) walk(doc *gltf.Document, idx int, parent math3d.Mat4, s *Scene, visiting map[int]bool) error {
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("%w: node index %d out of range", ErrInvalid, idx)
	}
	if visiting[idx] {
		return fmt.Errorf("%w: node %d is its own ancestor", ErrInvalid, idx)
	}
	visiting[idx] = true
	defer delete(visiting, idx)

	node := doc.Nodes[idx]
	world := parent.Mul(localTransform(node))

	if err := l.processNode(doc, node, world, s); err != nil {
		return fmt.Errorf("node %q: %w", node.Name, err)
	}

	for _, child := range node.Children {
		if err := l.walk(doc, child, world, s, visiting); err != nil {
			return err
		}
	}
	return nil
}

// processNode adds the primitive or light a node declares, if any.
func (l *GLTFLoader) processNode(doc *gltf.Document, node *gltf.Node, world math3d.Mat4, s *Scene) error {
	var ex nodeExtras
	if err := decodeExtras(node.Extras, &ex); err != nil {
		return err
	}

	origin := world.MulPoint(math3d.Zero3())

	switch {
	case ex.Sphere != nil:
		mat, err := ex.Sphere.MaterialSpec.build()
		if err != nil {
			return err
		}
		radius := ex.Sphere.Radius
		if radius == 0 && node.Mesh != nil {
			radius, err = meshRadius(doc, *node.Mesh)
			if err != nil {
				return err
			}
		}
		if radius == 0 {
			radius = l.DefaultRadius
		}
		radius *= world.MaxScale()
		if radius <= 0 {
			return fmt.Errorf("%w: sphere radius must be positive, got %g", ErrInvalid, radius)
		}
		s.Add(models.NewSphere(origin, radius, mat))

	case ex.Plane != nil:
		mat, err := ex.Plane.build()
		if err != nil {
			return err
		}
		normal := world.MulDir(math3d.Up())
		if normal.LenSq() == 0 {
			return fmt.Errorf("%w: plane transform collapses its normal", ErrInvalid)
		}
		s.Add(models.NewPlane(origin, normal.Normalize(), mat))

	case ex.Light != nil:
		if ex.Light.Intensity <= 0 {
			return fmt.Errorf("%w: light intensity must be positive, got %g", ErrInvalid, ex.Light.Intensity)
		}
		s.AddLight(Light{Position: origin, Intensity: ex.Light.Intensity})
	}

	return nil
}

// rootNodes picks the node indices to start from and the extras of the
// chosen glTF scene.
func rootNodes(doc *gltf.Document) ([]int, any) {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		sc := doc.Scenes[*doc.Scene]
		return sc.Nodes, sc.Extras
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes, doc.Scenes[0].Extras
	}

	// No scenes: every node that is nobody's child is a root
	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

// localTransform returns the node's matrix, or T*R*S when it uses TRS.
func localTransform(node *gltf.Node) math3d.Mat4 {
	m := math3d.FromColumnMajor(node.MatrixOrDefault())
	if m != math3d.Identity() {
		return m
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	sc := node.ScaleOrDefault()

	return math3d.Translate(math3d.V3(float32(t[0]), float32(t[1]), float32(t[2]))).
		Mul(math3d.FromQuaternion(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))).
		Mul(math3d.Scale(math3d.V3(float32(sc[0]), float32(sc[1]), float32(sc[2]))))
}

// decodeExtras re-encodes a glTF extras value into v.
func decodeExtras(extras any, v any) error {
	raw, err := json.Marshal(extras)
	if err != nil {
		return fmt.Errorf("read extras: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: extras: %v", ErrInvalid, err)
	}
	return nil
}

// meshRadius returns half the largest bounding-box extent over the mesh's
// triangle primitives, in mesh space.
func meshRadius(doc *gltf.Document, meshIdx int) (float32, error) {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return 0, fmt.Errorf("%w: mesh index %d out of range", ErrInvalid, meshIdx)
	}

	var lo, hi math3d.Vec3f
	found := false
	for _, prim := range doc.Meshes[meshIdx].Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		pmin, pmax, err := positionBounds(doc, posIdx)
		if err != nil {
			return 0, fmt.Errorf("read positions: %w", err)
		}
		if !found {
			lo, hi = pmin, pmax
			found = true
			continue
		}
		lo = math3d.V3(math32.Min(lo.X, pmin.X), math32.Min(lo.Y, pmin.Y), math32.Min(lo.Z, pmin.Z))
		hi = math3d.V3(math32.Max(hi.X, pmax.X), math32.Max(hi.Y, pmax.Y), math32.Max(hi.Z, pmax.Z))
	}

	if !found {
		return 0, nil
	}
	return hi.Sub(lo).MaxComponent() / 2, nil
}

// positionBounds uses the accessor's declared min/max, reading the vertex
// data only when they are absent.
func positionBounds(doc *gltf.Document, accessorIdx int) (lo, hi math3d.Vec3f, err error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return lo, hi, fmt.Errorf("accessor index %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if len(accessor.Min) == 3 && len(accessor.Max) == 3 {
		lo = math3d.V3(float32(accessor.Min[0]), float32(accessor.Min[1]), float32(accessor.Min[2]))
		hi = math3d.V3(float32(accessor.Max[0]), float32(accessor.Max[1]), float32(accessor.Max[2]))
		return lo, hi, nil
	}

	positions, err := readVec3Accessor(doc, accessor)
	if err != nil {
		return lo, hi, err
	}
	if len(positions) == 0 {
		return lo, hi, fmt.Errorf("accessor has no vertices")
	}

	lo, hi = positions[0], positions[0]
	for _, p := range positions[1:] {
		lo = math3d.V3(math32.Min(lo.X, p.X), math32.Min(lo.Y, p.Y), math32.Min(lo.Z, p.Z))
		hi = math3d.V3(math32.Max(hi.X, p.X), math32.Max(hi.Y, p.Y), math32.Max(hi.Z, p.Z))
	}
	return lo, hi, nil
}

// readVec3Accessor reads float VEC3 data from an accessor's buffer view.
func readVec3Accessor(doc *gltf.Document, accessor *gltf.Accessor) ([]math3d.Vec3f, error) {
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = 12 // 3 floats * 4 bytes
	}

	end := start + (accessor.Count-1)*stride + 12
	if accessor.Count > 0 && end > len(buffer.Data) {
		return nil, fmt.Errorf("accessor overruns buffer (%d > %d bytes)", end, len(buffer.Data))
	}

	result := make([]math3d.Vec3f, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		result[i] = math3d.V3(
			readFloat32(buffer.Data[offset:]),
			readFloat32(buffer.Data[offset+4:]),
			readFloat32(buffer.Data[offset+8:]),
		)
	}
	return result, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
