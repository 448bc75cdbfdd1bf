/*
Package registry maps step kinds to the factories that build them.

A compiled script refers to steps by kind ("message", "prompt", ...). The
Registry resolves each kind to a Factory, so hosts can add their own kinds
without touching the compiler.

# Usage

	reg := registry.NewDefault()
	reg.Register("banner", func(spec domain.StepSpec, env registry.Env) (session.Step, error) {
		return steps.NewMessage("# "+spec.Text, env.Memory), nil
	})
*/
package registry
