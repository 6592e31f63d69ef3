//go:build !nolua

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

const luaLibrary = "github.com/yuin/gopher-lua"

const luaPrompt = "lua> "

func luaCandidate(streams IO) Candidate {
	return Candidate{
		Name:      ShellLua,
		Display:   "Lua",
		Library:   luaLibrary,
		Available: func() bool { return true },
		Launch: func(ctx context.Context, ec *ExecutionContext, banner string) error {
			L := newLuaState(streams, ec)
			defer L.Close()

			fmt.Fprintln(streams.Out, banner)
			return runLua(L, streams)
		},
	}
}

// newLuaState returns a Lua state with the namespace bound as globals and
// print redirected to streams.Out.
func newLuaState(streams IO, ec *ExecutionContext) *lua.LState {
	L := lua.NewState()
	registerLuaBridge(L)

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		fmt.Fprintln(streams.Out, luaJoin(L, 1, L.GetTop()))
		return 0
	}))

	// os.exit would end the host process
	if osTable, ok := L.GetGlobal("os").(*lua.LTable); ok {
		L.SetField(osTable, "exit", lua.LNil)
	}

	for name, v := range ec.Namespace() {
		L.SetGlobal(name, toLua(L, reflect.ValueOf(v)))
	}
	return L
}

// runLua reads lines until exit, quit or end of input. Lua errors are
// printed and the loop continues.
func runLua(L *lua.LState, streams IO) error {
	reader := bufio.NewReader(streams.In)

	for {
		fmt.Fprint(streams.Out, luaPrompt)

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(streams.Out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		if err := evalLua(L, streams.Out, line); err != nil {
			fmt.Fprintln(streams.Err, err)
		}
	}
}

// evalLua runs line as an expression when it parses as one, printing its
// values, and as a statement otherwise.
func evalLua(L *lua.LState, w io.Writer, line string) error {
	top := L.GetTop()

	fn, err := L.LoadString("return " + line)
	if err != nil {
		return L.DoString(line)
	}

	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return err
	}

	n := L.GetTop() - top
	defer L.Pop(n)
	if n == 0 || (n == 1 && L.Get(top+1) == lua.LNil) {
		return nil
	}

	_, err = fmt.Fprintln(w, luaJoin(L, top+1, top+n))
	return err
}

// luaJoin converts stack values from..to with tostring and joins them with tabs.
func luaJoin(L *lua.LState, from, to int) string {
	parts := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	return strings.Join(parts, "\t")
}
