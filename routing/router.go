package routing

// Router (C10, spec ssec 4.8) dispatches a parsed reply/query Serder to
// the handler registered against its "r" route field. Route templates use
// the same "{name}" capture-group syntax gorilla/mux already parses and
// compiles into anchored per-segment regexes, so route registration and
// matching are delegated to a mux.Router rather than hand-rolled — mux is
// built for net/http requests, so Dispatch synthesizes a throwaway GET
// request whose URL path is the event's route string purely to reuse that
// matching engine.

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"keri/cesr"
	"keri/kerierr"
	"keri/serder"
)

// ReplyHandler is implemented by anything that can process a dispatched
// reply/query event. route is the event's "r" field as matched.
type ReplyHandler interface {
	ProcessReply(ser *serder.Serder, saider *cesr.Saider, route string, cigars []*cesr.Cigar, tsgs []*cesr.Siger, params map[string]string) error
}

var discardLogger = &logrus.Logger{Out: io.Discard, Level: logrus.PanicLevel}

type Router struct {
	mux      *mux.Router
	handlers map[string]ReplyHandler
	counter  int
	logger   *logrus.Logger
}

// NewRouter builds an empty Router. SetLogger overrides its default
// discard logger.
func NewRouter() *Router {
	return &Router{mux: mux.NewRouter(), handlers: map[string]ReplyHandler{}, logger: discardLogger}
}

// SetLogger replaces r's logger.
func (r *Router) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// AddRoute registers handler against template, per spec ssec 4.8's
// constraints: template must start with '/', contain no "//", and have its
// trailing '/' stripped (except for the root route itself). suffix, if
// non-empty, is appended to the template before compilation (used for
// versioned or grouped route families).
func (r *Router) AddRoute(template string, handler ReplyHandler, suffix string) error {
	if !strings.HasPrefix(template, "/") {
		return fmt.Errorf("%w: route template %q must start with '/'", kerierr.ErrValidation, template)
	}
	if strings.Contains(template, "//") {
		return fmt.Errorf("%w: route template %q contains '//'", kerierr.ErrValidation, template)
	}
	if template != "/" {
		template = strings.TrimSuffix(template, "/")
	}
	if suffix != "" {
		template += suffix
	}
	name := fmt.Sprintf("route-%d", r.counter)
	r.counter++
	if _, err := r.mux.NewRoute().Path(template).Name(name).GetPathTemplate(); err != nil {
		return fmt.Errorf("%w: bad route template %q: %v", kerierr.ErrValidation, template, err)
	}
	r.handlers[name] = handler
	r.logger.Debugf("routing: registered %s -> %s", name, template)
	return nil
}

// Dispatch extracts the "r" field from ser's SAD, finds the first
// registered route whose pattern matches it, and calls that route's
// handler with the named-capture params. No match is a ValidationError.
func (r *Router) Dispatch(ser *serder.Serder, saider *cesr.Saider, cigars []*cesr.Cigar, tsgs []*cesr.Siger) error {
	route, ok := ser.Sad().GetString("r")
	if !ok {
		return fmt.Errorf("%w: event missing \"r\" field", kerierr.ErrValidation)
	}
	req, err := http.NewRequest(http.MethodGet, "http://local"+route, nil)
	if err != nil {
		return fmt.Errorf("%w: malformed route %q: %v", kerierr.ErrValidation, route, err)
	}
	var match mux.RouteMatch
	if !r.mux.Match(req, &match) {
		r.logger.Debugf("routing: no match for %q", route)
		return fmt.Errorf("%w: no route registered for %q", kerierr.ErrValidation, route)
	}
	handler, ok := r.handlers[match.Route.GetName()]
	if !ok {
		return fmt.Errorf("%w: matched route %q has no handler", kerierr.ErrValidation, route)
	}
	r.logger.Debugf("routing: dispatching %q -> %s", route, match.Route.GetName())
	return handler.ProcessReply(ser, saider, route, cigars, tsgs, match.Vars)
}
