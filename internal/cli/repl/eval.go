package repl

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"sort"
	"strconv"
)

// Indexer is implemented by values that support name lookup with [key],
// such as the console command registry.
type Indexer interface {
	Get(key string) (any, bool)
}

// Lister is implemented by values that can enumerate their keys for dir
// and completion.
type Lister interface {
	Names() []string
}

var (
	// ErrUndefined is returned for names not bound in the namespace.
	ErrUndefined = errors.New("undefined")

	// ErrUnsupported is returned for expressions the evaluator cannot run.
	ErrUnsupported = errors.New("unsupported expression")

	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Evaluator resolves Go-like expressions against a namespace.
//
// Supported forms are identifiers, literals, field and method selectors,
// index expressions and calls with literal or namespace arguments:
//
//	SITE.Posts
//	conf.Site.Title
//	commands["posts"]
//	SITE.Post("hello")
//
// A selector naming a method with no parameters is invoked even without
// parentheses.
type Evaluator struct {
	vars map[string]any
}

// NewEvaluator creates an evaluator over a copy of ns.
func NewEvaluator(ns map[string]any) *Evaluator {
	vars := make(map[string]any, len(ns))
	for k, v := range ns {
		vars[k] = v
	}
	return &Evaluator{vars: vars}
}

// Set binds name to v.
func (e *Evaluator) Set(name string, v any) {
	e.vars[name] = v
}

// Lookup returns the value bound to name.
func (e *Evaluator) Lookup(name string) (any, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Names returns the bound names.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	return names
}

// Eval parses and evaluates src. A panic raised by a called method is
// returned as an error.
func (e *Evaluator) Eval(src string) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			result, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()

	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("syntax error: %w", err)
	}

	v, err := e.eval(expr, false)
	if err != nil {
		return nil, err
	}
	if !v.IsValid() {
		return nil, nil
	}
	if !v.CanInterface() {
		return nil, fmt.Errorf("%s: value is not accessible", src)
	}
	return v.Interface(), nil
}

// Resolve evaluates src like Eval but never calls a method. A selector or
// call that names a method yields the method's first result type and no
// value. Completion uses it so that pressing Tab has no side effects.
func (e *Evaluator) Resolve(src string) (value any, typ reflect.Type, err error) {
	defer func() {
		if p := recover(); p != nil {
			value, typ, err = nil, nil, fmt.Errorf("panic: %v", p)
		}
	}()

	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, nil, fmt.Errorf("syntax error: %w", err)
	}
	v, t, err := e.peek(expr)
	if err != nil {
		return nil, nil, err
	}
	if v.IsValid() && v.CanInterface() {
		return v.Interface(), v.Type(), nil
	}
	return nil, t, nil
}

// peek returns either a value or, past a method, only a static type.
func (e *Evaluator) peek(node ast.Expr) (reflect.Value, reflect.Type, error) {
	switch n := node.(type) {
	case *ast.ParenExpr:
		return e.peek(n.X)
	case *ast.Ident:
		v, err := e.ident(n.Name)
		return known(v, err)
	case *ast.BasicLit:
		return known(literal(n))
	case *ast.SelectorExpr:
		x, xt, err := e.peek(n.X)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		if x.IsValid() {
			m, err := selectMember(x, n.Sel.Name, false)
			if err != nil {
				return reflect.Value{}, nil, err
			}
			if m.IsValid() && m.Kind() == reflect.Func {
				t, err := resultType(m.Type())
				return reflect.Value{}, t, err
			}
			return known(m, nil)
		}
		t, err := memberType(xt, n.Sel.Name)
		return reflect.Value{}, t, err
	case *ast.IndexExpr:
		x, xt, err := e.peek(n.X)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		if x.IsValid() {
			key, err := e.eval(n.Index, false)
			if err != nil {
				return reflect.Value{}, nil, err
			}
			return known(index(x, key))
		}
		t, err := elemType(xt)
		return reflect.Value{}, t, err
	case *ast.CallExpr:
		fn, t, err := e.peek(n.Fun)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		if fn = unwrap(fn); fn.IsValid() && fn.Kind() == reflect.Func {
			t, err = resultType(fn.Type())
		}
		return reflect.Value{}, t, err
	default:
		return reflect.Value{}, nil, fmt.Errorf("%w: %T", ErrUnsupported, node)
	}
}

func known(v reflect.Value, err error) (reflect.Value, reflect.Type, error) {
	if err != nil {
		return reflect.Value{}, nil, err
	}
	if !v.IsValid() {
		return v, nil, nil
	}
	return v, v.Type(), nil
}

// resultType is the first non-error result of a function type.
func resultType(ft reflect.Type) (reflect.Type, error) {
	if ft.NumOut() == 0 || ft.Out(0) == errorType {
		return nil, fmt.Errorf("%s has no result", ft)
	}
	return ft.Out(0), nil
}

// memberType resolves name on a static type: a method's result, a struct
// field, or a string-keyed map element.
func memberType(t reflect.Type, name string) (reflect.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("%s: unknown type", name)
	}
	if m, ok := t.MethodByName(name); ok {
		return resultType(m.Type)
	}
	if t.Kind() != reflect.Ptr && t.Kind() != reflect.Interface {
		if m, ok := reflect.PointerTo(t).MethodByName(name); ok {
			return resultType(m.Type)
		}
	}
	d := t
	for d.Kind() == reflect.Ptr {
		d = d.Elem()
	}
	switch d.Kind() {
	case reflect.Struct:
		if f, ok := d.FieldByName(name); ok && f.IsExported() {
			return f.Type, nil
		}
	case reflect.Map:
		if d.Key().Kind() == reflect.String {
			return d.Elem(), nil
		}
	}
	return nil, fmt.Errorf("%s has no field or method %s", t, name)
}

func elemType(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, errors.New("index of unknown type")
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return t.Elem(), nil
	case reflect.String:
		return reflect.TypeOf(byte(0)), nil
	}
	return nil, fmt.Errorf("%w: cannot index %s", ErrUnsupported, t)
}

func (e *Evaluator) eval(node ast.Expr, callee bool) (reflect.Value, error) {
	switch n := node.(type) {
	case *ast.ParenExpr:
		return e.eval(n.X, callee)
	case *ast.Ident:
		return e.ident(n.Name)
	case *ast.BasicLit:
		return literal(n)
	case *ast.SelectorExpr:
		x, err := e.eval(n.X, false)
		if err != nil {
			return reflect.Value{}, err
		}
		return selectMember(x, n.Sel.Name, !callee)
	case *ast.IndexExpr:
		x, err := e.eval(n.X, false)
		if err != nil {
			return reflect.Value{}, err
		}
		key, err := e.eval(n.Index, false)
		if err != nil {
			return reflect.Value{}, err
		}
		return index(x, key)
	case *ast.CallExpr:
		return e.call(n)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrUnsupported, node)
	}
}

func (e *Evaluator) ident(name string) (reflect.Value, error) {
	switch name {
	case "nil":
		return reflect.Value{}, nil
	case "true":
		return reflect.ValueOf(true), nil
	case "false":
		return reflect.ValueOf(false), nil
	}

	v, ok := e.vars[name]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUndefined, name)
	}
	return reflect.ValueOf(v), nil
}

func literal(lit *ast.BasicLit) (reflect.Value, error) {
	switch lit.Kind {
	case token.STRING, token.CHAR:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(s), nil
	case token.INT:
		i, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(int(i)), nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: literal %s", ErrUnsupported, lit.Value)
	}
}

func (e *Evaluator) call(n *ast.CallExpr) (reflect.Value, error) {
	if n.Ellipsis.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: variadic spread", ErrUnsupported)
	}

	fn, err := e.eval(n.Fun, true)
	if err != nil {
		return reflect.Value{}, err
	}
	fn = unwrap(fn)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return reflect.Value{}, fmt.Errorf("%w: call of non-function", ErrUnsupported)
	}

	args := make([]reflect.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := e.eval(a, false)
		if err != nil {
			return reflect.Value{}, err
		}
		args = append(args, v)
	}

	return invoke(fn, args)
}

// unwrap removes interface wrapping so methods and fields of the dynamic
// value are reachable.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// selectMember resolves name on v: a method first, then an Indexer key,
// then a struct field (through pointers), then a string map key.
func selectMember(v reflect.Value, name string, autoCall bool) (reflect.Value, error) {
	v = unwrap(v)
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%s: nil value has no members", name)
	}

	if m := methodByName(v, name); m.IsValid() {
		if autoCall && m.Type().NumIn() == 0 {
			return invoke(m, nil)
		}
		return m, nil
	}

	if v.CanInterface() {
		if ix, ok := v.Interface().(Indexer); ok {
			if found, ok := ix.Get(name); ok {
				return reflect.ValueOf(found), nil
			}
		}
	}

	d := v
	for d.Kind() == reflect.Ptr {
		if d.IsNil() {
			return reflect.Value{}, fmt.Errorf("%s: nil pointer", name)
		}
		d = d.Elem()
	}

	switch d.Kind() {
	case reflect.Struct:
		if f, ok := d.Type().FieldByName(name); ok && f.IsExported() {
			return d.FieldByIndex(f.Index), nil
		}
	case reflect.Map:
		if d.Type().Key().Kind() == reflect.String {
			if mv := d.MapIndex(reflect.ValueOf(name).Convert(d.Type().Key())); mv.IsValid() {
				return mv, nil
			}
		}
	}

	return reflect.Value{}, fmt.Errorf("%s has no field or method %s", v.Type(), name)
}

func methodByName(v reflect.Value, name string) reflect.Value {
	if m := v.MethodByName(name); m.IsValid() {
		return m
	}
	if v.Kind() != reflect.Ptr && v.CanAddr() {
		return v.Addr().MethodByName(name)
	}
	return reflect.Value{}
}

func index(x, key reflect.Value) (reflect.Value, error) {
	x = unwrap(x)
	key = unwrap(key)
	if !x.IsValid() {
		return reflect.Value{}, errors.New("index of nil value")
	}

	if x.CanInterface() {
		if ix, ok := x.Interface().(Indexer); ok {
			if !key.IsValid() || key.Kind() != reflect.String {
				return reflect.Value{}, errors.New("index key must be a string")
			}
			v, found := ix.Get(key.String())
			if !found {
				return reflect.Value{}, fmt.Errorf("%w: %q", ErrUndefined, key.String())
			}
			return reflect.ValueOf(v), nil
		}
	}

	for x.Kind() == reflect.Ptr {
		if x.IsNil() {
			return reflect.Value{}, errors.New("index of nil pointer")
		}
		x = x.Elem()
	}

	switch x.Kind() {
	case reflect.Map:
		k, err := convert(key, x.Type().Key())
		if err != nil {
			return reflect.Value{}, err
		}
		v := x.MapIndex(k)
		if !v.IsValid() {
			return reflect.Value{}, fmt.Errorf("%w: key %v", ErrUndefined, key)
		}
		return v, nil
	case reflect.Slice, reflect.Array, reflect.String:
		if !key.IsValid() || key.Kind() != reflect.Int {
			return reflect.Value{}, errors.New("index must be an integer")
		}
		i := int(key.Int())
		if i < 0 || i >= x.Len() {
			return reflect.Value{}, fmt.Errorf("index %d out of range [0:%d]", i, x.Len())
		}
		return x.Index(i), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: cannot index %s", ErrUnsupported, x.Type())
	}
}

func invoke(fn reflect.Value, args []reflect.Value) (reflect.Value, error) {
	ft := fn.Type()
	if ft.IsVariadic() {
		return reflect.Value{}, fmt.Errorf("%w: variadic function", ErrUnsupported)
	}
	if len(args) != ft.NumIn() {
		return reflect.Value{}, fmt.Errorf("want %d arguments, got %d", ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		v, err := convert(a, ft.In(i))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("argument %d: %w", i+1, err)
		}
		in[i] = v
	}

	out := fn.Call(in)
	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if errv := out[n-1]; !errv.IsNil() {
			return reflect.Value{}, errv.Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return reflect.Value{}, nil
	case 1:
		return out[0], nil
	default:
		results := make([]any, len(out))
		for i, o := range out {
			results[i] = o.Interface()
		}
		return reflect.ValueOf(results), nil
	}
}

// convert adapts v to type t for assignment, allowing numeric conversion
// and nil for nillable types.
func convert(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", t)
	}
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumber(v.Kind()) && isNumber(t.Kind()) {
		return v.Convert(t), nil
	}
	if v.Kind() == reflect.String && t.Kind() == reflect.String {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), t)
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Members lists the exported methods and fields reachable from v, plus
// Lister names and string map keys, for dir and completion.
func Members(v any) []string {
	rv := unwrap(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil
	}

	ms := newMemberSet()
	if l, ok := v.(Lister); ok {
		for _, n := range l.Names() {
			ms.add(n)
		}
	}
	ms.addType(rv.Type())

	d := rv
	for d.Kind() == reflect.Ptr && !d.IsNil() {
		d = d.Elem()
	}
	if d.Kind() == reflect.Map && d.Type().Key().Kind() == reflect.String {
		for _, k := range d.MapKeys() {
			ms.add(k.String())
		}
	}
	return ms.sorted()
}

// TypeMembers lists the exported methods and fields of t.
func TypeMembers(t reflect.Type) []string {
	if t == nil {
		return nil
	}
	ms := newMemberSet()
	ms.addType(t)
	return ms.sorted()
}

type memberSet struct {
	seen  map[string]bool
	names []string
}

func newMemberSet() *memberSet {
	return &memberSet{seen: make(map[string]bool)}
}

func (ms *memberSet) add(name string) {
	if !ms.seen[name] {
		ms.seen[name] = true
		ms.names = append(ms.names, name)
	}
}

func (ms *memberSet) addType(t reflect.Type) {
	for i := 0; i < t.NumMethod(); i++ {
		ms.add(t.Method(i).Name)
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				ms.add(f.Name)
			}
		}
	}
}

func (ms *memberSet) sorted() []string {
	sort.Strings(ms.names)
	return ms.names
}
