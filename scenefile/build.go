package scenefile

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/jakecoffman/cp"
	"github.com/phanxgames/thicket"
	"github.com/phanxgames/thicket/script"
	"go.uber.org/zap"
)

// Options control how a document is turned into game objects.
type Options struct {
	// BaseDir resolves relative image and script paths. Usually the
	// directory of the scene file.
	BaseDir string
}

// Build creates the document's objects in scene and returns the top-level
// ones. Components are attached in the order camera, sprite, collider,
// rigidbody, visualizer, tween, script, so a rigidbody always finds its
// collider. On error the objects built so far are scheduled for
// destruction.
func Build(scene *thicket.Scene, doc *Document, opts Options) ([]*thicket.GameObject, error) {
	b := &builder{scene: scene, opts: opts}
	var roots []*thicket.GameObject
	for i := range doc.Objects {
		obj, err := b.object(&doc.Objects[i], nil)
		if obj != nil {
			roots = append(roots, obj)
		}
		if err != nil {
			b.abort(roots)
			return nil, err
		}
	}
	if err := b.resolveFollows(); err != nil {
		b.abort(roots)
		return nil, err
	}
	scene.Logger().Debug("scene built",
		zap.Int("objects", scene.Len()),
		zap.Int("roots", len(roots)),
	)
	return roots, nil
}

// LoadScene loads the scene file at path and builds it with BaseDir set to
// the file's directory.
func LoadScene(scene *thicket.Scene, path string) ([]*thicket.GameObject, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(scene, doc, Options{BaseDir: filepath.Dir(path)})
}

type pendingFollow struct {
	camera *thicket.Camera
	spec   *CameraSpec
}

type builder struct {
	scene   *thicket.Scene
	opts    Options
	follows []pendingFollow
}

func (b *builder) abort(roots []*thicket.GameObject) {
	for _, obj := range roots {
		b.scene.Destroy(obj)
	}
}

func (b *builder) object(spec *ObjectSpec, parent thicket.Positionable) (*thicket.GameObject, error) {
	obj := b.scene.NewGameObject(spec.Name, parent)
	for _, tag := range spec.Tags {
		obj.AddTag(tag)
	}
	switch {
	case spec.Position != nil:
		obj.Transform().SetPosition(vec(spec.Position))
	case spec.LocalPosition != nil:
		obj.Transform().LocalPosition = vec(spec.LocalPosition)
	}

	if err := b.components(obj, spec); err != nil {
		return obj, fmt.Errorf("scenefile: object %q: %w", spec.Name, err)
	}
	for i := range spec.Children {
		if _, err := b.object(&spec.Children[i], obj.Transform()); err != nil {
			return obj, err
		}
	}
	if spec.Active != nil {
		obj.SetActive(*spec.Active)
	}
	return obj, nil
}

func (b *builder) components(obj *thicket.GameObject, spec *ObjectSpec) error {
	if c := spec.Camera; c != nil {
		cam := thicket.NewCamera()
		if c.ClearColor != "" {
			col, err := thicket.ParseColor(c.ClearColor)
			if err != nil {
				return err
			}
			cam.ClearColor = col
		}
		if err := obj.AddComponent(cam); err != nil {
			return err
		}
		if c.Follow != "" {
			b.follows = append(b.follows, pendingFollow{camera: cam, spec: c})
		}
	}

	if s := spec.Sprite; s != nil {
		img, err := b.spriteImage(s)
		if err != nil {
			return err
		}
		sr := thicket.NewSpriteRenderer(img)
		sr.Offset = vec(s.Offset)
		if err := obj.AddComponent(sr); err != nil {
			return err
		}
	}

	if c := spec.Collider; c != nil {
		var col *thicket.Collider
		if c.Box != nil {
			col = thicket.NewBoxCollider(c.Box[0], c.Box[1])
		} else {
			pts := make([]cp.Vector, len(c.Contour))
			for i, p := range c.Contour {
				pts[i] = cp.Vector{X: p[0], Y: p[1]}
			}
			col = thicket.NewCollider(pts...)
		}
		col.IsTrigger = c.Trigger
		if err := obj.AddComponent(col); err != nil {
			return err
		}
	}

	if r := spec.Rigidbody; r != nil {
		rb := thicket.NewRigidbody()
		rb.Velocity = vec(r.Velocity)
		rb.Acceleration = vec(r.Acceleration)
		if r.Mass > 0 {
			rb.Mass = r.Mass
		}
		if err := obj.AddComponent(rb); err != nil {
			return err
		}
	}

	if c := spec.Collider; c != nil && c.Visualize {
		if err := obj.AddComponent(thicket.NewColliderVisualizer()); err != nil {
			return err
		}
	}

	if t := spec.Tween; t != nil {
		fn, err := thicket.EaseByName(t.Ease)
		if err != nil {
			return err
		}
		tw := thicket.NewTween(vec(t.To), t.Duration, fn)
		tw.Loop = t.Loop
		if err := obj.AddComponent(tw); err != nil {
			return err
		}
	}

	if spec.Script != "" {
		sb, err := script.Load(b.path(spec.Script))
		if err != nil {
			return err
		}
		if err := obj.AddComponent(sb); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) spriteImage(s *SpriteSpec) (*image.NRGBA, error) {
	if s.Image == "" {
		col := thicket.DefaultSpriteColor
		if s.Color != "" {
			c, err := thicket.ParseColor(s.Color)
			if err != nil {
				return nil, err
			}
			col = c
		}
		return thicket.NewRectImage(s.Width, s.Height, col), nil
	}
	path := b.path(s.Image)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sprite image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sprite image %s: %w", path, err)
	}
	return thicket.ToNRGBA(img), nil
}

func (b *builder) resolveFollows() error {
	for _, f := range b.follows {
		target := b.scene.Find(f.spec.Follow)
		if target == nil {
			return fmt.Errorf("scenefile: camera follow target %q not found", f.spec.Follow)
		}
		lerp := f.spec.FollowLerp
		if lerp <= 0 {
			lerp = 1
		}
		f.camera.Follow(target, vec(f.spec.Offset), lerp)
	}
	return nil
}

func (b *builder) path(p string) string {
	if filepath.IsAbs(p) || b.opts.BaseDir == "" {
		return p
	}
	return filepath.Join(b.opts.BaseDir, p)
}

func vec(v []float64) thicket.Vector3 {
	var out thicket.Vector3
	if len(v) > 0 {
		out.X = v[0]
	}
	if len(v) > 1 {
		out.Y = v[1]
	}
	if len(v) > 2 {
		out.Z = v[2]
	}
	return out
}
