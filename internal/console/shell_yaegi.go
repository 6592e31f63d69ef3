//go:build !noyaegi

package console

import (
	"context"
	"fmt"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

const yaegiLibrary = "github.com/traefik/yaegi"

// yaegiPackage is the import path under which the namespace is exported.
const yaegiPackage = "quill"

// yaegiPrelude binds the exported namespace to package-level variables so
// the REPL sees conf, SITE, Quill and commands directly.
const yaegiPrelude = `import "quill"

var (
	conf     = quill.Conf
	SITE     = quill.SITE
	Quill    = quill.Quill
	commands = quill.Commands
)`

func yaegiCandidate(streams IO) Candidate {
	return Candidate{
		Name:      ShellYaegi,
		Display:   "Yaegi",
		Library:   yaegiLibrary,
		Available: func() bool { return true },
		Launch: func(ctx context.Context, ec *ExecutionContext, banner string) error {
			i, err := newYaegiInterpreter(streams, ec)
			if err != nil {
				return err
			}

			fmt.Fprintln(streams.Out, banner)
			_, err = i.REPL()
			return err
		},
	}
}

// newYaegiInterpreter returns an interpreter with the standard library and
// the namespace loaded.
func newYaegiInterpreter(streams IO, ec *ExecutionContext) (*interp.Interpreter, error) {
	i := interp.New(interp.Options{
		Stdin:  streams.In,
		Stdout: streams.Out,
		Stderr: streams.Err,
	})

	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("yaegi: load stdlib: %w", err)
	}
	if err := i.Use(yaegiExports(ec)); err != nil {
		return nil, fmt.Errorf("yaegi: export namespace: %w", err)
	}
	if _, err := i.Eval(yaegiPrelude); err != nil {
		return nil, fmt.Errorf("yaegi: bind namespace: %w", err)
	}

	return i, nil
}

// yaegiExports exposes the namespace as package "quill". Each value is
// exported as a variable of its dynamic type so fields and methods resolve
// without type assertions.
func yaegiExports(ec *ExecutionContext) interp.Exports {
	appType := ec.AppType
	return interp.Exports{
		yaegiPackage + "/" + yaegiPackage: {
			"Conf":     exportVar(ec.Conf),
			"SITE":     exportVar(ec.Site),
			"Quill":    reflect.ValueOf(&appType).Elem(),
			"Commands": exportVar(ec.Commands),
		},
	}
}

func exportVar(v any) reflect.Value {
	if v == nil {
		return reflect.ValueOf(&v).Elem()
	}
	p := reflect.New(reflect.TypeOf(v))
	p.Elem().Set(reflect.ValueOf(v))
	return p.Elem()
}
