package scene

import (
	"fmt"
	"os"

	"free-walk/internal/physics"
	"free-walk/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// defaultColor is the albedo for boxes that do not set one.
var defaultColor = [4]uint8{128, 128, 128, 255}

// NodeDef is one node in an environment file (e.g. assets/college.yaml).
// Type "box" produces collidable, drawable geometry; an empty Type is an anchor.
// Rotation is Euler XYZ in degrees.
type NodeDef struct {
	Name     string     `yaml:"name"`
	Parent   string     `yaml:"parent,omitempty"`
	Type     string     `yaml:"type,omitempty"`
	Position [3]float32 `yaml:"position,omitempty"`
	Rotation [3]float32 `yaml:"rotation,omitempty"`
	Size     [3]float32 `yaml:"size,omitempty"`
	Color    []uint8    `yaml:"color,omitempty"`
}

// AnchorDef derives an empty anchor at the midpoint of two existing nodes.
type AnchorDef struct {
	Name    string    `yaml:"name"`
	Between [2]string `yaml:"between"`
}

// EnvironmentDef is the on-disk environment description.
type EnvironmentDef struct {
	Name    string      `yaml:"name"`
	Nodes   []NodeDef   `yaml:"nodes"`
	Anchors []AnchorDef `yaml:"anchors,omitempty"`
}

// LoadEnvironment reads an environment file and builds its graph.
func LoadEnvironment(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading environment %s: %w", path, err)
	}
	var def EnvironmentDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing environment %s: %w", path, err)
	}
	g, err := Build(def)
	if err != nil {
		return nil, fmt.Errorf("building environment %s: %w", path, err)
	}
	return g, nil
}

// Build turns def into a graph. Parents must be declared before their children.
func Build(def EnvironmentDef) (*Graph, error) {
	g := NewGraph()
	for _, nd := range def.Nodes {
		n := &Node{
			Name: nd.Name,
			Local: spatial.Transform{
				Position:    mgl32.Vec3(nd.Position),
				Orientation: eulerDeg(nd.Rotation),
			},
			Visible: true,
			Color:   defaultColor,
		}
		if len(nd.Color) == 4 {
			copy(n.Color[:], nd.Color)
		}
		if err := g.Add(n, nd.Parent); err != nil {
			return nil, err
		}
		switch nd.Type {
		case "":
		case "box":
			n.Size = mgl32.Vec3(nd.Size)
			for i := range n.Size {
				if n.Size[i] == 0 {
					n.Size[i] = 1
				}
			}
			wt := n.WorldTransform()
			n.Mesh = physics.BoxMesh(n.Name, wt.Position, n.Size, wt.Orientation)
		default:
			return nil, fmt.Errorf("node %q: unknown type %q", nd.Name, nd.Type)
		}
	}
	for _, a := range def.Anchors {
		if err := g.AddMidpointAnchor(a.Name, a.Between[0], a.Between[1]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func eulerDeg(r [3]float32) mgl32.Quat {
	if r == [3]float32{} {
		return mgl32.QuatIdent()
	}
	return mgl32.AnglesToQuat(mgl32.DegToRad(r[0]), mgl32.DegToRad(r[1]), mgl32.DegToRad(r[2]), mgl32.XYZ).Normalize()
}
