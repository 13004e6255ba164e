package main

import (
	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"github.com/joeydtaylor/steeze-runtime/pkg/serverfx"
	"go.uber.org/fx"
)

// Echo returns its input unchanged.
type Echo struct{}

func (Echo) Apply(s string) string { return s }

func init() {
	catalog.MustRegister[Echo](catalog.Default(), "example.Echo")
}

func main() {
	fx.New(
		serverfx.Module(serverfx.WithService("echo-function")),
	).Run()
}
