package script

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/phanxgames/thicket"
	"go.uber.org/zap"
)

// buildEngine returns the map handed to every hook of b. Functions resolve
// the owner on each call, so they see components attached later.
func buildEngine(b *Behaviour) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	values["state"] = b.state
	values["name"] = &tengo.String{Value: b.objectName()}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t := b.Transform()
		if t == nil {
			return tengo.UndefinedValue, nil
		}
		return vectorObject(t.Position()), nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t := b.Transform()
		if t == nil {
			return tengo.FalseValue, nil
		}
		v, err := vectorArgs("set_position", t.Position(), args)
		if err != nil {
			return nil, err
		}
		t.SetPosition(v)
		return tengo.TrueValue, nil
	}}

	values["translate"] = &tengo.UserFunction{Name: "translate", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t := b.Transform()
		if t == nil {
			return tengo.FalseValue, nil
		}
		v, err := vectorArgs("translate", thicket.Vector3{}, args)
		if err != nil {
			return nil, err
		}
		t.Translate(v)
		return tengo.TrueValue, nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb := b.rigidbody()
		if rb == nil {
			return tengo.UndefinedValue, nil
		}
		return vectorObject(rb.Velocity), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb := b.rigidbody()
		if rb == nil {
			return tengo.FalseValue, nil
		}
		v, err := vectorArgs("set_velocity", rb.Velocity, args)
		if err != nil {
			return nil, err
		}
		rb.Velocity = v
		return tengo.TrueValue, nil
	}}

	values["apply_force"] = &tengo.UserFunction{Name: "apply_force", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb := b.rigidbody()
		if rb == nil {
			return tengo.FalseValue, nil
		}
		v, err := vectorArgs("apply_force", thicket.Vector3{}, args)
		if err != nil {
			return nil, err
		}
		rb.ApplyForce(v)
		return tengo.TrueValue, nil
	}}

	values["add_rigidbody"] = &tengo.UserFunction{Name: "add_rigidbody", Value: func(args ...tengo.Object) (tengo.Object, error) {
		obj := b.GameObject()
		if obj == nil || b.rigidbody() != nil {
			return tengo.FalseValue, nil
		}
		acc, err := vectorArgs("add_rigidbody", thicket.Vector3{}, args)
		if err != nil {
			return nil, err
		}
		rb := thicket.NewRigidbody()
		rb.Acceleration = acc
		if err := obj.AddComponent(rb); err != nil {
			return nil, err
		}
		return tengo.TrueValue, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rb := b.rigidbody()
		return boolObject(rb != nil && rb.IsGrounded()), nil
	}}

	values["touching"] = &tengo.UserFunction{Name: "touching", Value: func(args ...tengo.Object) (tengo.Object, error) {
		obj := b.GameObject()
		if obj == nil {
			return tengo.UndefinedValue, nil
		}
		c, err := thicket.Get[*thicket.Collider](obj)
		if err != nil {
			return tengo.UndefinedValue, nil
		}
		other := c.Check()
		if other == nil {
			return tengo.UndefinedValue, nil
		}
		if o := other.GameObject(); o != nil {
			return &tengo.String{Value: o.Name}, nil
		}
		return tengo.UndefinedValue, nil
	}}

	for name, test := range map[string]func(*thicket.Input, string) bool{
		"is_down": (*thicket.Input).IsDown,
		"is_hold": (*thicket.Input).IsHold,
		"is_up":   (*thicket.Input).IsUp,
	} {
		fnName, fn := name, test
		values[fnName] = &tengo.UserFunction{Name: fnName, Value: func(args ...tengo.Object) (tengo.Object, error) {
			s := b.Scene()
			if s == nil || len(args) < 1 {
				return tengo.FalseValue, nil
			}
			return boolObject(fn(s.Input(), objectAsString(args[0]))), nil
		}}
	}

	values["mouse"] = &tengo.UserFunction{Name: "mouse", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s := b.Scene()
		if s == nil {
			return tengo.UndefinedValue, nil
		}
		return vectorObject(s.Input().MousePosition()), nil
	}}

	values["mouse_world"] = &tengo.UserFunction{Name: "mouse_world", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s := b.Scene()
		if s == nil {
			return tengo.UndefinedValue, nil
		}
		p, err := s.ScreenToWorld(s.Input().MousePosition())
		if err != nil {
			return tengo.UndefinedValue, nil
		}
		return vectorObject(p), nil
	}}

	values["dt"] = &tengo.UserFunction{Name: "dt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		s := b.Scene()
		if s == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: s.Clock().DeltaTime()}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		b.logger().Info(strings.Join(parts, " "),
			zap.String("script", b.Name),
			zap.String("object", b.objectName()),
		)
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (b *Behaviour) rigidbody() *thicket.Rigidbody {
	obj := b.GameObject()
	if obj == nil {
		return nil
	}
	rb, err := thicket.Get[*thicket.Rigidbody](obj)
	if err != nil {
		return nil
	}
	return rb
}
