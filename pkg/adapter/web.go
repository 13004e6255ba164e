package adapter

import (
	"context"
	"fmt"
	"net/http"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"github.com/joeydtaylor/steeze-runtime/pkg/codec"
	"github.com/joeydtaylor/steeze-runtime/pkg/function"
	httpx "github.com/joeydtaylor/steeze-runtime/pkg/transport/httpx"
)

// Servlet serves proxy events through a servlet-style http.Handler entry point.
type Servlet struct {
	entry string
	h     http.Handler
}

// NewServlet instantiates the entry point described by d.
func NewServlet(d *catalog.TypeDescriptor) (*Servlet, error) {
	if d == nil {
		return nil, fmt.Errorf("adapter: servlet: nil type descriptor")
	}
	inst, err := d.New()
	if err != nil {
		return nil, fmt.Errorf("adapter: servlet %q: %w", d.Name(), err)
	}
	h, ok := inst.(http.Handler)
	if !ok {
		return nil, fmt.Errorf("adapter: servlet %q: %T is not an http.Handler", d.Name(), inst)
	}
	return &Servlet{entry: d.Name(), h: h}, nil
}

func (s *Servlet) Invoke(ctx context.Context, in []byte) ([]byte, error) {
	if s.h == nil {
		return nil, ErrNotInitialized
	}
	return serveProxy(ctx, s.h, codec.JSON, in)
}

// Entry is the entry-point name the adapter wraps.
func (s *Servlet) Entry() string { return s.entry }

// Bootstrap boots a web application entry point onto a chi router once and
// then serves proxy events through it.
type Bootstrap struct {
	entry string
	mux   http.Handler
}

func NewBootstrap(d *catalog.TypeDescriptor) (*Bootstrap, error) {
	if d == nil {
		return nil, fmt.Errorf("adapter: bootstrap: nil type descriptor")
	}
	inst, err := d.New()
	if err != nil {
		return nil, fmt.Errorf("adapter: bootstrap %q: %w", d.Name(), err)
	}
	app, ok := inst.(function.Application)
	if !ok {
		return nil, fmt.Errorf("adapter: bootstrap %q: %T does not implement function.Application", d.Name(), inst)
	}
	r := httpx.NewChi()
	r.Use(chimd.Recoverer)
	if err := app.Configure(r); err != nil {
		return nil, fmt.Errorf("adapter: bootstrap %q: configure: %w", d.Name(), err)
	}
	return &Bootstrap{entry: d.Name(), mux: r.Mux()}, nil
}

func (b *Bootstrap) Invoke(ctx context.Context, in []byte) ([]byte, error) {
	if b.mux == nil {
		return nil, ErrNotInitialized
	}
	return serveProxy(ctx, b.mux, codec.JSON, in)
}

func (b *Bootstrap) Entry() string { return b.entry }
