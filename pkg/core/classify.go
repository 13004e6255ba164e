package core

import (
	"reflect"
	"strings"

	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"github.com/joeydtaylor/steeze-runtime/pkg/function"
	"go.uber.org/zap"
)

var handlerType = reflect.TypeFor[function.Handler]()

// Classifier decides which FunctionKind an entry point is. It only reads the
// catalog, so one Classifier may serve concurrent cold starts.
type Classifier struct {
	cat *catalog.Catalog
	log *zap.Logger
}

func NewClassifier(c *catalog.Catalog, l *zap.Logger) *Classifier {
	if l == nil {
		l = zap.NewNop()
	}
	return &Classifier{cat: c, log: l}
}

// Classify loads the entry point and returns its kind. Checks run in a fixed
// order and the first match wins; a type matching several shapes gets the
// earliest one.
func (cl *Classifier) Classify(ep EntryPoint) (FunctionKind, *catalog.TypeDescriptor, error) {
	name := ep.Name()
	d, err := cl.cat.Load(name)
	if err != nil {
		return 0, nil, &Error{Kind: KindEntryPointNotFound, EntryPoint: name, Cause: err}
	}

	if _, ok := function.ApplyShape(d.InstanceType()); ok {
		return PlainFunction, d, nil
	}
	if d.InstanceType().Implements(handlerType) {
		return PlatformFunction, d, nil
	}

	servlet := cl.optional(function.ServletCapability, d)
	if servlet == capabilityPresent {
		return ServletStyle, d, nil
	}
	web := cl.optional(function.WebApplicationMarker, d)
	if web == capabilityPresent {
		return WebBootstrap, d, nil
	}

	cl.log.Debug("no function shape matched",
		zap.String("entryPoint", name),
		zap.Stringer("servlet", servlet),
		zap.Stringer("web", web),
		zap.Strings("interfaces", cl.cat.InterfacesOf(d)),
		zap.Strings("annotations", d.Annotations()),
	)
	return 0, nil, &Error{
		Kind:       KindUnsupportedHandler,
		EntryPoint: name,
		Detail:     unsupportedDetail(d, servlet, web),
	}
}

// optional checks a capability the environment may not provide at all.
func (cl *Classifier) optional(name string, d *catalog.TypeDescriptor) capabilityMatch {
	capb, ok := cl.cat.LookupCapability(name)
	if !ok {
		return capabilityAbsent
	}
	if d.AssignableTo(capb) {
		return capabilityPresent
	}
	return capabilityMismatch
}

func unsupportedDetail(d *catalog.TypeDescriptor, servlet, web capabilityMatch) string {
	var b strings.Builder
	b.WriteString(d.InstanceType().String())
	b.WriteString(" has no ")
	b.WriteString(function.ApplyMethod)
	b.WriteString("(in) out method and does not implement function.Handler")
	if servlet != capabilityAbsent {
		b.WriteString(", is not a servlet")
	}
	if web != capabilityAbsent {
		b.WriteString(", is not annotated ")
		b.WriteString(function.WebApplicationMarker)
	}
	return b.String()
}
