// pkg/function/function.go
package function

import (
	"context"
	"net/http"
	"reflect"

	httpx "github.com/joeydtaylor/steeze-runtime/pkg/transport/httpx"
)

// Capability names looked up in the catalog. Both are optional: an
// environment without servlet or web support simply never registers them.
const (
	ServletCapability    = "steeze.servlet.Servlet"
	WebApplicationMarker = "steeze.web.Application"
)

// ApplyMethod is the method name of the plain single-input/single-output shape.
const ApplyMethod = "Apply"

// Handler is the platform function contract.
type Handler interface {
	HandleRequest(ctx context.Context, event []byte) ([]byte, error)
}

// Servlet is the servlet-style base contract.
type Servlet interface {
	http.Handler
}

// Application is implemented by web-bootstrap entry points. Configure mounts
// the application's routes; it runs once per cold start.
type Application interface {
	Configure(r httpx.Router) error
}

var errorType = reflect.TypeFor[error]()

// ApplyShape reports whether instances of t expose Apply(in) out or
// Apply(in) (out, error). t is the instance type (usually *T).
func ApplyShape(t reflect.Type) (reflect.Method, bool) {
	m, ok := t.MethodByName(ApplyMethod)
	if !ok {
		return reflect.Method{}, false
	}
	mt := m.Type // receiver is In(0)
	if mt.NumIn() != 2 || mt.IsVariadic() {
		return reflect.Method{}, false
	}
	switch mt.NumOut() {
	case 1:
		if mt.Out(0) == errorType {
			return reflect.Method{}, false
		}
	case 2:
		if mt.Out(1) != errorType {
			return reflect.Method{}, false
		}
	default:
		return reflect.Method{}, false
	}
	return m, true
}
