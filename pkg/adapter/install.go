package adapter

import (
	"errors"

	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"github.com/joeydtaylor/steeze-runtime/pkg/function"
)

// InstallServletCapability makes the servlet base contract visible to the
// classifier.
func InstallServletCapability(c *catalog.Catalog) error {
	return catalog.RegisterInterface[function.Servlet](c, function.ServletCapability)
}

// InstallServletAdapter registers the adapter type servlet-style entry points
// are wrapped in.
func InstallServletAdapter(c *catalog.Catalog) error {
	return catalog.Register[Servlet](c, ServletAdapterType,
		catalog.WithConstructor(catalog.Ctor1E(NewServlet)))
}

// InstallServletSupport installs both the capability and its adapter. It may
// be called more than once on the same catalog.
func InstallServletSupport(c *catalog.Catalog) error {
	if err := once(InstallServletCapability(c)); err != nil {
		return err
	}
	return once(InstallServletAdapter(c))
}

// InstallWebCapability registers the web application marker annotation.
func InstallWebCapability(c *catalog.Catalog) error {
	return catalog.RegisterAnnotation(c, function.WebApplicationMarker)
}

func InstallBootstrapAdapter(c *catalog.Catalog) error {
	return catalog.Register[Bootstrap](c, BootstrapAdapterType,
		catalog.WithConstructor(catalog.Ctor1E(NewBootstrap)))
}

func InstallWebSupport(c *catalog.Catalog) error {
	if err := once(InstallWebCapability(c)); err != nil {
		return err
	}
	return once(InstallBootstrapAdapter(c))
}

// once treats an earlier installation as success.
func once(err error) error {
	if errors.Is(err, catalog.ErrDuplicate) {
		return nil
	}
	return err
}
