package transform

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/occ2swift/occ/internal/ast"
)

// ArgStrategySpec is the TOML-decodable shape of one ArgStrategy (§4.7.2:
// "a TOML invocation-transformer registry holding the declarative
// {objcFunctionName, target, args} records of §4.5 as data rather than Go
// literals"). Nested strategies (transformed/omitIf/labeled) recurse
// through Inner, matching BurntSushi/toml's support for nested tables.
type ArgStrategySpec struct {
	Kind string `toml:"kind"` // as_is | from_arg_index | fixed | merging_arguments | transformed | omit_if | labeled

	ArgIndex int `toml:"arg_index"`

	MergeI int    `toml:"merge_i"`
	MergeJ int    `toml:"merge_j"`
	Op     string `toml:"op"` // for merging_arguments/transformed: add | subtract | negate

	FixedValue string `toml:"fixed_value"` // nil | zero | true | false
	OmitValue  string `toml:"omit_value"`  // nil | zero | true | false

	Label string `toml:"label"`

	Inner *ArgStrategySpec `toml:"inner"`
}

// TransformerSpec is the TOML-decodable shape of one Transformer.
type TransformerSpec struct {
	ObjcFunctionName string `toml:"objc_function_name"`
	Target           string `toml:"target"` // method | property_getter | property_setter

	MethodName              string `toml:"method_name"`
	FirstArgBecomesReceiver bool   `toml:"first_arg_becomes_receiver"`
	Args                    []ArgStrategySpec `toml:"args"`

	PropertyName string `toml:"property_name"`
}

// registryFile is the root TOML document: an array of [[transformer]] tables.
type registryFile struct {
	Transformer []TransformerSpec `toml:"transformer"`
}

// compileStrategy turns a TOML record into a live ArgStrategy, resolving
// its Make/Merge/OmitWhen closures from the small named-builtin set TOML
// can address by string (literal expressions can't cross the TOML
// boundary as Go closures, so the registry names them instead).
func compileStrategy(spec ArgStrategySpec) (ArgStrategy, error) {
	switch spec.Kind {
	case "as_is":
		return AsIs(), nil
	case "from_arg_index":
		return FromArgIndex(spec.ArgIndex), nil
	case "fixed":
		make, err := literalBuiltin(spec.FixedValue)
		if err != nil {
			return ArgStrategy{}, err
		}
		return Fixed(make), nil
	case "merging_arguments":
		merge, err := mergeBuiltin(spec.Op)
		if err != nil {
			return ArgStrategy{}, err
		}
		return MergingArguments(spec.MergeI, spec.MergeJ, merge), nil
	case "transformed":
		inner, err := compileInner(spec)
		if err != nil {
			return ArgStrategy{}, err
		}
		transform, err := unaryBuiltin(spec.Op)
		if err != nil {
			return ArgStrategy{}, err
		}
		return Transformed(transform, inner), nil
	case "omit_if":
		inner, err := compileInner(spec)
		if err != nil {
			return ArgStrategy{}, err
		}
		omitWhen, err := literalBuiltin(spec.OmitValue)
		if err != nil {
			return ArgStrategy{}, err
		}
		return OmitIf(omitWhen, inner), nil
	case "labeled":
		inner, err := compileInner(spec)
		if err != nil {
			return ArgStrategy{}, err
		}
		return Labeled(spec.Label, inner), nil
	default:
		return ArgStrategy{}, fmt.Errorf("transform: unknown arg strategy kind %q", spec.Kind)
	}
}

func compileInner(spec ArgStrategySpec) (ArgStrategy, error) {
	if spec.Inner == nil {
		return ArgStrategy{}, fmt.Errorf("transform: %q strategy requires an inner strategy", spec.Kind)
	}
	return compileStrategy(*spec.Inner)
}

func literalBuiltin(name string) (func() *ast.Expression, error) {
	switch name {
	case "nil":
		return func() *ast.Expression { return ast.NewNilLiteral(zeroToken) }, nil
	case "zero":
		return func() *ast.Expression { return ast.NewIntLiteral(zeroToken, 0) }, nil
	case "true":
		return func() *ast.Expression { return ast.NewBoolLiteral(zeroToken, true) }, nil
	case "false":
		return func() *ast.Expression { return ast.NewBoolLiteral(zeroToken, false) }, nil
	default:
		return nil, fmt.Errorf("transform: unknown fixed/omit literal %q", name)
	}
}

func mergeBuiltin(op string) (func(a, b *ast.Expression) *ast.Expression, error) {
	switch op {
	case "add":
		return func(a, b *ast.Expression) *ast.Expression { return ast.NewBinary(zeroToken, "+", a, b) }, nil
	case "subtract":
		return func(a, b *ast.Expression) *ast.Expression { return ast.NewBinary(zeroToken, "-", a, b) }, nil
	default:
		return nil, fmt.Errorf("transform: unknown merge op %q", op)
	}
}

func unaryBuiltin(op string) (func(inner *ast.Expression) *ast.Expression, error) {
	switch op {
	case "negate":
		return func(inner *ast.Expression) *ast.Expression { return ast.NewPrefix(zeroToken, "-", inner) }, nil
	default:
		return nil, fmt.Errorf("transform: unknown transform op %q", op)
	}
}

func compileTransformer(spec TransformerSpec) (Transformer, error) {
	switch spec.Target {
	case "method":
		args := make([]ArgStrategy, len(spec.Args))
		for i, a := range spec.Args {
			compiled, err := compileStrategy(a)
			if err != nil {
				return Transformer{}, err
			}
			args[i] = compiled
		}
		return Transformer{
			ObjcFunctionName: spec.ObjcFunctionName,
			Target: Target{
				Kind:                    TargetMethod,
				Name:                    spec.MethodName,
				FirstArgBecomesReceiver: spec.FirstArgBecomesReceiver,
				Args:                    args,
			},
		}, nil
	case "property_getter":
		return Transformer{
			ObjcFunctionName: spec.ObjcFunctionName,
			Target:           Target{Kind: TargetPropertyGetter, PropertyName: spec.PropertyName},
		}, nil
	case "property_setter":
		return Transformer{
			ObjcFunctionName: spec.ObjcFunctionName,
			Target:           Target{Kind: TargetPropertySetter, PropertyName: spec.PropertyName},
		}, nil
	default:
		return Transformer{}, fmt.Errorf("transform: unknown target kind %q", spec.Target)
	}
}

// Registry holds transformers in registration order: the expression-pass
// pipeline applies the first one whose CanApply matches (§4.6's
// "invocation transforms applied in registered order, first match
// wins"). Builtins are registered before anything loaded from TOML, so
// a file can extend but not silently shadow the built-in table within a
// single Load call's additions — the earlier registration simply wins.
type Registry struct {
	entries []Transformer
}

// NewRegistry returns an empty registry. Callers typically seed it with
// Builtins() before loading a project's TOML extensions.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a transformer, to be tried after every previously
// registered one.
func (r *Registry) Register(t Transformer) {
	r.entries = append(r.entries, t)
}

// Load decodes a TOML transformer-registry file and registers each entry
// in file order, after whatever was already registered.
func (r *Registry) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc registryFile
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return err
	}
	for _, spec := range doc.Transformer {
		t, err := compileTransformer(spec)
		if err != nil {
			return fmt.Errorf("transform: %s: %w", spec.ObjcFunctionName, err)
		}
		r.Register(t)
	}
	return nil
}

// Apply tries every registered transformer in order and returns the
// rewritten expression from the first match, or (nil, false).
func (r *Registry) Apply(postfix *ast.Expression) (*ast.Expression, bool) {
	for _, t := range r.entries {
		if t.CanApply(postfix) {
			return t.Apply(postfix), true
		}
	}
	return nil, false
}

// Len reports how many transformers are registered.
func (r *Registry) Len() int { return len(r.entries) }
