package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/clipspace/pkg/math3d"
)

type fileScene struct {
	Name    string       `yaml:"name"`
	Objects []fileObject `yaml:"objects"`
}

type fileObject struct {
	Name   string      `yaml:"name"`
	Min    *[3]float64 `yaml:"min,omitempty"`
	Max    *[3]float64 `yaml:"max,omitempty"`
	Sphere *fileSphere `yaml:"sphere,omitempty"`
}

type fileSphere struct {
	Center [3]float64 `yaml:"center"`
	Radius float64    `yaml:"radius"`
}

// LoadYAML reads a scene description from a YAML file.
func LoadYAML(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// ParseYAML decodes a scene description. Each object gives either a min/max
// box or a sphere with center and radius.
func ParseYAML(data []byte) (*Scene, error) {
	var fs fileScene
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, err
	}

	s := &Scene{Name: fs.Name}
	for i, fo := range fs.Objects {
		obj, err := fo.object()
		if err != nil {
			return nil, fmt.Errorf("object %d (%q): %w", i, fo.Name, err)
		}
		s.Add(obj)
	}
	return s, nil
}

func (fo fileObject) object() (Object, error) {
	if fo.Name == "" {
		return Object{}, fmt.Errorf("missing name")
	}
	switch {
	case fo.Sphere != nil:
		if fo.Min != nil || fo.Max != nil {
			return Object{}, fmt.Errorf("sphere and box bounds are exclusive")
		}
		if fo.Sphere.Radius < 0 {
			return Object{}, fmt.Errorf("negative radius %v", fo.Sphere.Radius)
		}
		return NewSphereObject(fo.Name, math3d.V3FromArray(fo.Sphere.Center), fo.Sphere.Radius), nil
	case fo.Min != nil && fo.Max != nil:
		obj := NewBoxObject(fo.Name, math3d.V3FromArray(*fo.Min), math3d.V3FromArray(*fo.Max))
		if !obj.Bounds.IsValid() {
			return Object{}, fmt.Errorf("min %v exceeds max %v", *fo.Min, *fo.Max)
		}
		return obj, nil
	default:
		return Object{}, fmt.Errorf("needs min and max or a sphere")
	}
}

// MarshalYAML encodes the scene in the format ParseYAML reads.
func (s *Scene) MarshalYAML() (any, error) {
	fs := fileScene{Name: s.Name, Objects: make([]fileObject, len(s.Objects))}
	for i, o := range s.Objects {
		fo := fileObject{Name: o.Name}
		if o.Sphere != nil {
			fo.Sphere = &fileSphere{Center: o.Sphere.Center.Array(), Radius: o.Sphere.Radius}
		} else {
			lo, hi := o.Bounds.Min.Array(), o.Bounds.Max.Array()
			fo.Min, fo.Max = &lo, &hi
		}
		fs.Objects[i] = fo
	}
	return fs, nil
}
