package scenery

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnknownModel = errors.New("scenery: unknown model")

// Mesh is an indexed triangle list in model space.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint16
}

// Edges returns each triangle edge once, as index pairs.
func (m Mesh) Edges() [][2]uint16 {
	seen := make(map[[2]uint16]struct{}, len(m.Indices))
	var edges [][2]uint16
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := [3]uint16{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]uint16{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}
	return edges
}

// Model is renderable geometry made of one or more meshes.
type Model interface {
	Name() string
	Meshes() []Mesh
}

// Factory realizes a model.
type Factory func() Model

type model struct {
	name   string
	meshes []Mesh
}

func (m *model) Name() string   { return m.name }
func (m *model) Meshes() []Mesh { return m.meshes }

// NewModel wraps meshes as a Model.
func NewModel(name string, meshes ...Mesh) Model {
	return &model{name: name, meshes: meshes}
}

var library = map[string]Factory{
	"crate": Crate,
	"rock":  Rock,
	"tree":  Tree,
}

// Register adds or replaces a named factory.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	library[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := library[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return f, nil
}

// Names lists the registered model names in order.
func Names() []string {
	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Crate is a unit cube resting on the origin.
func Crate() Model {
	return NewModel("crate", box(mgl32.Vec3{-0.5, 0, -0.5}, mgl32.Vec3{0.5, 1, 0.5}))
}

// Rock is a squat, irregular dome.
func Rock() Model {
	const sides = 7
	m := Mesh{Vertices: []mgl32.Vec3{{0, 0.55, 0}}}
	for i := 0; i < sides; i++ {
		a := float32(i) / sides * 2 * math32.Pi
		sin, cos := math32.Sincos(a)
		r := 0.6 + 0.15*math32.Sin(3*a+1)
		m.Vertices = append(m.Vertices,
			mgl32.Vec3{r * cos, 0, r * sin},
			mgl32.Vec3{0.7 * r * cos, 0.35, 0.7 * r * sin},
		)
	}
	for i := 0; i < sides; i++ {
		base, mid := uint16(1+2*i), uint16(2+2*i)
		nextBase, nextMid := uint16(1+2*((i+1)%sides)), uint16(2+2*((i+1)%sides))
		m.Indices = append(m.Indices,
			base, nextBase, mid,
			mid, nextBase, nextMid,
			mid, nextMid, 0,
		)
	}
	return NewModel("rock", m)
}

// Tree is a trunk topped with a cone of foliage.
func Tree() Model {
	const sides = 8
	trunk := box(mgl32.Vec3{-0.12, 0, -0.12}, mgl32.Vec3{0.12, 1.2, 0.12})
	crown := Mesh{Vertices: []mgl32.Vec3{{0, 3, 0}}}
	for i := 0; i < sides; i++ {
		sin, cos := math32.Sincos(float32(i) / sides * 2 * math32.Pi)
		crown.Vertices = append(crown.Vertices, mgl32.Vec3{0.8 * cos, 1, 0.8 * sin})
	}
	for i := 0; i < sides; i++ {
		a, b := uint16(1+i), uint16(1+(i+1)%sides)
		crown.Indices = append(crown.Indices, a, b, 0)
	}
	return NewModel("tree", trunk, crown)
}

func box(lo, hi mgl32.Vec3) Mesh {
	v := []mgl32.Vec3{
		{lo.X(), lo.Y(), lo.Z()}, {hi.X(), lo.Y(), lo.Z()}, {hi.X(), lo.Y(), hi.Z()}, {lo.X(), lo.Y(), hi.Z()},
		{lo.X(), hi.Y(), lo.Z()}, {hi.X(), hi.Y(), lo.Z()}, {hi.X(), hi.Y(), hi.Z()}, {lo.X(), hi.Y(), hi.Z()},
	}
	return Mesh{
		Vertices: v,
		Indices: []uint16{
			0, 1, 2, 0, 2, 3,
			4, 6, 5, 4, 7, 6,
			0, 4, 5, 0, 5, 1,
			1, 5, 6, 1, 6, 2,
			2, 6, 7, 2, 7, 3,
			3, 7, 4, 3, 4, 0,
		},
	}
}
