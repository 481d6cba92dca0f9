// Package scenefile describes thicket scenes in YAML and builds them.
//
//	objects:
//	  - name: camera
//	    camera: {clear_color: black}
//	  - name: ground
//	    position: [0, -100]
//	    sprite: {width: 400, height: 20, color: "#3a3a3a"}
//	    collider: {box: [200, 10]}
//	  - name: hero
//	    position: [0, 50, 1]
//	    sprite: {width: 20, height: 20, color: cornflowerblue, offset: [-10, -10]}
//	    collider: {box: [10, 10], visualize: true}
//	    rigidbody: {acceleration: [0, -200]}
//	    script: hero.tengo
package scenefile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a whole scene file.
type Document struct {
	Objects []ObjectSpec `yaml:"objects"`
}

// ObjectSpec describes one game object and its subtree. Vectors are written
// as [x, y] or [x, y, z].
type ObjectSpec struct {
	Name          string         `yaml:"name"`
	Tags          []string       `yaml:"tags"`
	Active        *bool          `yaml:"active"`
	Position      []float64      `yaml:"position"`
	LocalPosition []float64      `yaml:"local_position"`
	Camera        *CameraSpec    `yaml:"camera"`
	Sprite        *SpriteSpec    `yaml:"sprite"`
	Collider      *ColliderSpec  `yaml:"collider"`
	Rigidbody     *RigidbodySpec `yaml:"rigidbody"`
	Tween         *TweenSpec     `yaml:"tween"`
	Script        string         `yaml:"script"`
	Children      []ObjectSpec   `yaml:"children"`
}

type CameraSpec struct {
	ClearColor string    `yaml:"clear_color"`
	Follow     string    `yaml:"follow"`
	FollowLerp float64   `yaml:"follow_lerp"`
	Offset     []float64 `yaml:"offset"`
}

type SpriteSpec struct {
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	Color  string    `yaml:"color"`
	Image  string    `yaml:"image"` // PNG path, replaces width/height/color
	Offset []float64 `yaml:"offset"`
}

type ColliderSpec struct {
	Contour   [][]float64 `yaml:"contour"`
	Box       []float64   `yaml:"box"` // half extents
	Trigger   bool        `yaml:"trigger"`
	Visualize bool        `yaml:"visualize"`
}

type RigidbodySpec struct {
	Velocity     []float64 `yaml:"velocity"`
	Acceleration []float64 `yaml:"acceleration"`
	Mass         float64   `yaml:"mass"`
}

type TweenSpec struct {
	To       []float64 `yaml:"to"`
	Duration float32   `yaml:"duration"`
	Ease     string    `yaml:"ease"`
	Loop     bool      `yaml:"loop"`
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scenefile: unmarshal: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	return &doc, nil
}

// Load reads and parses the scene file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: load %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) validate() error {
	var errs []error
	for i := range d.Objects {
		d.Objects[i].validate(fmt.Sprintf("objects[%d]", i), &errs)
	}
	return errors.Join(errs...)
}

func (o *ObjectSpec) validate(path string, errs *[]error) {
	if o.Name != "" {
		path = fmt.Sprintf("%s (%s)", path, o.Name)
	}
	fail := func(format string, args ...any) {
		*errs = append(*errs, fmt.Errorf("%s: "+format, append([]any{path}, args...)...))
	}
	checkVec := func(field string, v []float64) {
		if v != nil && len(v) != 2 && len(v) != 3 {
			fail("%s needs 2 or 3 numbers, got %d", field, len(v))
		}
	}

	if o.Position != nil && o.LocalPosition != nil {
		fail("position and local_position are exclusive")
	}
	checkVec("position", o.Position)
	checkVec("local_position", o.LocalPosition)

	if c := o.Camera; c != nil {
		checkVec("camera.offset", c.Offset)
	}
	if s := o.Sprite; s != nil {
		if s.Image == "" && (s.Width <= 0 || s.Height <= 0) {
			fail("sprite needs an image or a positive width and height")
		}
		checkVec("sprite.offset", s.Offset)
	}
	if c := o.Collider; c != nil {
		switch {
		case c.Contour != nil && c.Box != nil:
			fail("collider contour and box are exclusive")
		case c.Box != nil:
			if len(c.Box) != 2 || c.Box[0] <= 0 || c.Box[1] <= 0 {
				fail("collider box needs two positive half extents")
			}
		case c.Contour != nil:
			if len(c.Contour) < 3 {
				fail("collider contour needs at least 3 points, got %d", len(c.Contour))
			}
			for i, p := range c.Contour {
				if len(p) != 2 {
					fail("collider contour point %d needs 2 numbers, got %d", i, len(p))
				}
			}
		}
	}
	if r := o.Rigidbody; r != nil {
		checkVec("rigidbody.velocity", r.Velocity)
		checkVec("rigidbody.acceleration", r.Acceleration)
		if r.Mass < 0 {
			fail("rigidbody mass must not be negative")
		}
	}
	if t := o.Tween; t != nil {
		checkVec("tween.to", t.To)
		if t.To == nil {
			fail("tween needs a target")
		}
		if t.Duration <= 0 {
			fail("tween duration must be positive")
		}
	}

	for i := range o.Children {
		o.Children[i].validate(fmt.Sprintf("%s.children[%d]", path, i), errs)
	}
}
