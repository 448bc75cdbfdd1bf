/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing clui scripts.

It allows developers to define conversational flows using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for dynamic
scripts, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	b := dsl.New("onboarding")

	b.Message("# Welcome!")
	b.Prompt("lang", "Favourite language?").
		Default("Go").
		On("Go", func(f *dsl.Builder) {
			f.Message("Same here.")
		})
	b.Sub("profile", func(p *dsl.Builder) {
		p.Prompt("name", "Your name?")
		p.Confirm("Is {{ .name }} right?").ResetOnNo()
	})

	// The resulting loader can be passed to clui.New(...) with clui.WithLoader.
	loader, err := b.Build()
*/
package dsl
