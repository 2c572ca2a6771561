package routing

import (
	"strings"
	"testing"

	"keri/cesr"
	"keri/eventing"
	"keri/serder"
)

type recordingHandler struct {
	called bool
	route  string
	params map[string]string
}

func (h *recordingHandler) ProcessReply(ser *serder.Serder, saider *cesr.Saider, route string, cigars []*cesr.Cigar, tsgs []*cesr.Siger, params map[string]string) error {
	h.called = true
	h.route = route
	h.params = params
	return nil
}

func buildQry(route string) *serder.Serder {
	pre := strings.Repeat("D", 44)
	ser, err := eventing.NewQueryEventBuilder(route, map[string]any{"i": pre}, "2021-01-01T00:00:00.000000+00:00").Build()
	if err != nil {
		panic(err)
	}
	return ser
}

func TestRouterFirstMatchWins(t *testing.T) {
	r := NewRouter()
	first := &recordingHandler{}
	second := &recordingHandler{}
	if err := r.AddRoute("/logs/{aid}", first, ""); err != nil {
		t.Fatalf("AddRoute: %v", err)
	}
	if err := r.AddRoute("/logs/{aid}", second, ""); err != nil {
		t.Fatalf("AddRoute: %v", err)
	}

	ser := buildQry("/logs/EabcAID")
	if err := r.Dispatch(ser, nil, nil, nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !first.called || second.called {
		t.Fatalf("first-match-wins violated: first=%v second=%v", first.called, second.called)
	}
	if first.params["aid"] != "EabcAID" {
		t.Fatalf("params[aid] = %q", first.params["aid"])
	}
	if first.route != "/logs/EabcAID" {
		t.Fatalf("handler route = %q, want the dispatched path", first.route)
	}
}

func TestRouterTemplateRegisteredBeforeLiteralWins(t *testing.T) {
	r := NewRouter()
	tmpl := &recordingHandler{}
	lit := &recordingHandler{}
	if err := r.AddRoute("/books/{isbn}", tmpl, ""); err != nil {
		t.Fatalf("AddRoute: %v", err)
	}
	if err := r.AddRoute("/books/special", lit, ""); err != nil {
		t.Fatalf("AddRoute: %v", err)
	}

	ser := buildQry("/books/special")
	if err := r.Dispatch(ser, nil, nil, nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !tmpl.called || lit.called {
		t.Fatalf("earlier-registered template should capture the literal path: tmpl=%v lit=%v", tmpl.called, lit.called)
	}
	if tmpl.params["isbn"] != "special" {
		t.Fatalf("params[isbn] = %q, want %q", tmpl.params["isbn"], "special")
	}
}

func TestRouterNoMatch(t *testing.T) {
	r := NewRouter()
	ser := buildQry("/unregistered")
	if err := r.Dispatch(ser, nil, nil, nil); err == nil {
		t.Fatalf("expected ValidationError for unmatched route")
	}
}

func TestAddRouteRejectsBadTemplate(t *testing.T) {
	r := NewRouter()
	if err := r.AddRoute("no-leading-slash", &recordingHandler{}, ""); err == nil {
		t.Fatalf("expected error for template without leading slash")
	}
	if err := r.AddRoute("/a//b", &recordingHandler{}, ""); err == nil {
		t.Fatalf("expected error for template containing //")
	}
}
