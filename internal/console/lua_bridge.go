//go:build !nolua

package console

import (
	"fmt"
	"reflect"

	lua "github.com/yuin/gopher-lua"
)

// luaObjectType names the metatable shared by all bridged Go values.
const luaObjectType = "quill.object"

// registerLuaBridge installs the metatable that lets Lua code read fields,
// call methods and index maps and slices of Go values.
func registerLuaBridge(L *lua.LState) {
	mt := L.NewTypeMetatable(luaObjectType)
	L.SetField(mt, "__index", L.NewFunction(luaIndex))
	L.SetField(mt, "__tostring", L.NewFunction(luaToString))
	L.SetField(mt, "__len", L.NewFunction(luaLen))
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("Go values are read-only")
		return 0
	}))
}

// toLua converts v to a Lua value. Scalars become Lua scalars; everything
// else is wrapped as userdata.
func toLua(L *lua.LState, v reflect.Value) lua.LValue {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return lua.LNil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return lua.LNil
	}

	switch v.Kind() {
	case reflect.Bool:
		return lua.LBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(v.Uint())
	case reflect.Float32, reflect.Float64:
		return lua.LNumber(v.Float())
	case reflect.String:
		return lua.LString(v.String())
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return lua.LNil
		}
	}

	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(luaObjectType))
	return ud
}

// fromLua converts lv to a value assignable to t.
func fromLua(lv lua.LValue, t reflect.Type) (reflect.Value, error) {
	var v reflect.Value
	switch x := lv.(type) {
	case *lua.LNilType:
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", t)
	case lua.LBool:
		v = reflect.ValueOf(bool(x))
	case lua.LNumber:
		v = reflect.ValueOf(float64(x))
	case lua.LString:
		v = reflect.ValueOf(string(x))
	case *lua.LUserData:
		rv, ok := x.Value.(reflect.Value)
		if !ok {
			return reflect.Value{}, fmt.Errorf("cannot use foreign userdata as %s", t)
		}
		v = rv
	default:
		return reflect.Value{}, fmt.Errorf("cannot use %s as %s", lv.Type(), t)
	}

	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if v.Kind() == reflect.Float64 && isNumericKind(t.Kind()) {
		return v.Convert(t), nil
	}
	if v.Kind() == reflect.String && t.Kind() == reflect.String {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), t)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func checkValue(L *lua.LState) (*lua.LUserData, reflect.Value) {
	ud := L.CheckUserData(1)
	v, ok := ud.Value.(reflect.Value)
	if !ok {
		L.ArgError(1, "Go value expected")
	}
	return ud, v
}

// luaIndex implements obj.name, obj:method(...) and obj[key].
// Slices and arrays are indexed from 1.
func luaIndex(L *lua.LState) int {
	ud, v := checkValue(L)
	key := L.Get(2)

	if n, ok := key.(lua.LNumber); ok {
		L.Push(indexNumber(L, v, int(n)))
		return 1
	}

	name := lua.LVAsString(key)

	if m := v.MethodByName(name); m.IsValid() {
		L.Push(luaMethod(L, ud, m))
		return 1
	}

	if v.CanInterface() {
		if ix, ok := v.Interface().(interface{ Get(string) (any, bool) }); ok {
			if cmd, found := ix.Get(name); found {
				L.Push(toLua(L, reflect.ValueOf(cmd)))
				return 1
			}
		}
	}

	d := v
	for d.Kind() == reflect.Ptr && !d.IsNil() {
		d = d.Elem()
	}

	switch d.Kind() {
	case reflect.Struct:
		if f, ok := d.Type().FieldByName(name); ok && f.IsExported() {
			L.Push(toLua(L, d.FieldByIndex(f.Index)))
			return 1
		}
	case reflect.Map:
		if d.Type().Key().Kind() == reflect.String {
			L.Push(toLua(L, d.MapIndex(reflect.ValueOf(name).Convert(d.Type().Key()))))
			return 1
		}
	}

	L.Push(lua.LNil)
	return 1
}

func indexNumber(L *lua.LState, v reflect.Value, n int) lua.LValue {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if n < 1 || n > v.Len() {
			return lua.LNil
		}
		return toLua(L, v.Index(n-1))
	case reflect.Map:
		if !isNumericKind(v.Type().Key().Kind()) {
			return lua.LNil
		}
		return toLua(L, v.MapIndex(reflect.ValueOf(n).Convert(v.Type().Key())))
	}
	return lua.LNil
}

// luaMethod wraps a bound Go method. When called with colon syntax the
// receiver arrives as the first argument and is dropped.
func luaMethod(L *lua.LState, self *lua.LUserData, m reflect.Value) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		mt := m.Type()
		if mt.IsVariadic() {
			L.RaiseError("variadic Go methods are not supported")
			return 0
		}

		first := 1
		if L.GetTop() > 0 && L.Get(1) == self {
			first = 2
		}
		argc := L.GetTop() - first + 1
		if argc != mt.NumIn() {
			L.RaiseError("want %d arguments, got %d", mt.NumIn(), argc)
			return 0
		}

		in := make([]reflect.Value, argc)
		for i := 0; i < argc; i++ {
			v, err := fromLua(L.Get(first+i), mt.In(i))
			if err != nil {
				L.ArgError(first+i, err.Error())
				return 0
			}
			in[i] = v
		}

		out := m.Call(in)
		if n := len(out); n > 0 && mt.Out(n-1) == reflect.TypeOf((*error)(nil)).Elem() {
			if errv := out[n-1]; !errv.IsNil() {
				L.RaiseError("%s", errv.Interface().(error).Error())
				return 0
			}
			out = out[:n-1]
		}

		for _, o := range out {
			L.Push(toLua(L, o))
		}
		return len(out)
	})
}

func luaToString(L *lua.LState) int {
	_, v := checkValue(L)

	if v.CanInterface() {
		L.Push(lua.LString(fmt.Sprint(v.Interface())))
	} else {
		L.Push(lua.LString("<" + v.Type().String() + ">"))
	}
	return 1
}

func luaLen(L *lua.LState) int {
	_, orig := checkValue(L)
	v := orig
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		L.Push(lua.LNumber(v.Len()))
	default:
		n := 0
		if orig.CanInterface() {
			if l, ok := orig.Interface().(interface{ Len() int }); ok {
				n = l.Len()
			}
		}
		L.Push(lua.LNumber(n))
	}
	return 1
}
