package clui_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aretw0/clui"
	"github.com/aretw0/clui/pkg/dsl"
	"github.com/aretw0/clui/pkg/runner"
)

// ExampleNew_memory demonstrates how to use the Engine with a script built in Go.
// This is useful for testing, embedded scenarios, or when you don't want to rely on the file system.
func ExampleNew_memory() {
	// 1. Declare the script with the DSL
	b := dsl.New("greeting")
	b.Message("Hello!")
	b.Prompt("name", "What is your name?")
	b.Message("Nice to meet you, {{ .name }}.")

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Initialize clui with the custom loader
	// Note: We leave path empty ("") because we are providing a loader.
	eng, err := clui.New("", clui.WithLoader(loader), clui.WithOnDone(func() {
		fmt.Println("(done)")
	}))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Run it against canned input
	handler := runner.NewTextHandler(strings.NewReader("Ada\n"), os.Stdout)
	if err := eng.Run(context.Background(), runner.WithInputHandler(handler)); err != nil {
		log.Fatal(err)
	}

	// Output:
	// Hello!
	// What is your name?
	// > Nice to meet you, Ada.
	// (done)
}
