// Command shapecheck-dump is a debugging aid: it loads a single function (and its type
// environment) from a txtar fixture, runs it through the full shapecheck pipeline, and prints the
// resulting constraints. It is not the production front-end driver (parsing real module IR is out
// of scope for this tool); it exists to make the worked scenarios easy to poke at by hand.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	shapecheck "go.tfp.dev/shapecheck"
	"go.tfp.dev/shapecheck/diagnostic"
	"go.tfp.dev/shapecheck/interp"
	"go.tfp.dev/shapecheck/ir"
)

var debug bool

func main() {
	root := &cobra.Command{
		Use:   "shapecheck-dump <fixture.txtar>",
		Short: "Abstract and check one function from a txtar fixture, printing its constraints",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().BoolVar(&debug, "debug", false, "dump the full constraint AST with go-spew instead of the printed form")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}
	archive := txtar.Parse(raw)

	var f fixture
	found := false
	for _, file := range archive.Files {
		if file.Name == "fixture.yaml" {
			if err := yaml.Unmarshal(file.Data, &f); err != nil {
				return fmt.Errorf("parsing fixture.yaml: %w", err)
			}
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("archive has no fixture.yaml file")
	}

	fn, tenv, err := f.toIR()
	if err != nil {
		return fmt.Errorf("converting fixture to IR: %w", err)
	}

	sink := diagnostic.NewBufferingSink()
	result, err := shapecheck.CheckModule(map[string]*ir.Function{fn.Name: fn}, tenv, sink)
	if err != nil {
		return fmt.Errorf("checking module: %w", err)
	}

	for _, w := range sink.Warnings() {
		fmt.Fprintln(os.Stderr, color.YellowString("warning: %s (%s)", w.Message, w.Location.String()))
	}

	constraints, ok := result[fn.Name]
	if !ok {
		fmt.Fprintln(os.Stderr, color.RedString("function %q was skipped during abstraction", fn.Name))
		return nil
	}

	if debug {
		spew.Dump(constraints)
		return nil
	}

	for _, c := range constraints {
		label := color.CyanString("implied")
		if c.Origin == interp.Asserted {
			label = color.GreenString("asserted")
		}
		fmt.Printf("[%s] %s  (assuming %s)\n", label, c.Pred.String(), c.Assume.String())
	}
	return nil
}
