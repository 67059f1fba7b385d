package handler

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"tax-engine/internal/engine"
	"tax-engine/internal/model"
	"tax-engine/internal/session"
	"tax-engine/internal/taxyear"
)

func newHandler() *Handler {
	e := engine.New(taxyear.NewRegistry(""), 2025, zap.NewNop())
	return New(e, session.NewStore(e, zap.NewNop()), zap.NewNop())
}

func do(h *Handler, method, uri, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	h.Handle(ctx)
	return ctx
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx, v any) {
	t.Helper()
	if err := json.Unmarshal(ctx.Response.Body(), v); err != nil {
		t.Fatalf("expected JSON body, got %q: %v", ctx.Response.Body(), err)
	}
}

func TestCalculate(t *testing.T) {
	h := newHandler()
	ctx := do(h, fasthttp.MethodPost, "/calculate", `{
		"return_id": "r1",
		"situation": {
			"tax_year": 2025,
			"profile":  {"filing_status": "single"},
			"documents": {"w2": [{"box1_wages": 60000, "box2_federal_withheld": 7000}]}
		}
	}`)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	if ct := string(ctx.Response.Header.ContentType()); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}

	var resp model.CalculationResponse
	decode(t, ctx, &resp)
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationResult.Return.Totals.Refund != 1928.50 {
		t.Fatalf("expected refund 1928.50, got %v", resp.CalculationResult.Return.Totals.Refund)
	}
}

func TestCalculateRejectsBadRequests(t *testing.T) {
	h := newHandler()
	cases := []struct {
		name, method, body string
		status             int
	}{
		{"wrong method", fasthttp.MethodGet, "", fasthttp.StatusMethodNotAllowed},
		{"bad json", fasthttp.MethodPost, `{"situation":`, fasthttp.StatusBadRequest},
		{"empty", fasthttp.MethodPost, `{}`, fasthttp.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := do(h, c.method, "/calculate", c.body)
			if ctx.Response.StatusCode() != c.status {
				t.Fatalf("expected %d, got %d", c.status, ctx.Response.StatusCode())
			}
			var e model.ErrorResponse
			decode(t, ctx, &e)
			if e.Status != c.status || e.Message == "" {
				t.Fatalf("expected error body with status %d, got %+v", c.status, e)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	h := newHandler()

	ctx := do(h, fasthttp.MethodPost, "/sessions/abc/mutations", `{"mutations": [
		{"mutation_id": "1", "mutation_definition_name": "set_filing_profile", "mutation_properties": {"tax_year": 2025, "filing_status": "single"}},
		{"mutation_id": "2", "mutation_definition_name": "add_income_document", "mutation_properties": {"kind": "w2", "document": {"box1_wages": 60000, "box2_federal_withheld": 7000}}}
	]}`)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var res session.Result
	decode(t, ctx, &res)
	if res.Outcome != model.OutcomeSuccess || res.Snapshot.Version != 1 || len(res.Patch) == 0 {
		t.Fatalf("expected successful first version with a patch, got %+v", res)
	}

	ctx = do(h, fasthttp.MethodGet, "/sessions/abc", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	var snap session.Snapshot
	decode(t, ctx, &snap)
	if snap.Version != 1 || snap.Return == nil || snap.Return.Totals.Wages != 60000 {
		t.Fatalf("expected version 1 with 60000 wages, got %+v", snap)
	}

	ctx = do(h, fasthttp.MethodDelete, "/sessions/abc", "")
	if ctx.Response.StatusCode() != fasthttp.StatusNoContent {
		t.Fatalf("expected 204, got %d", ctx.Response.StatusCode())
	}
	ctx = do(h, fasthttp.MethodGet, "/sessions/abc", "")
	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", ctx.Response.StatusCode())
	}
}

func TestSessionRejectedMutationReturnsFailure(t *testing.T) {
	h := newHandler()
	ctx := do(h, fasthttp.MethodPost, "/sessions/x/mutations", `{"mutations": [
		{"mutation_id": "1", "mutation_definition_name": "does_not_exist", "mutation_properties": {}}
	]}`)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	var res session.Result
	decode(t, ctx, &res)
	if res.Outcome != model.OutcomeFailure || len(res.Messages) != 1 || res.Messages[0].Code != model.CodeUnknownMutation {
		t.Fatalf("expected FAILURE with UNKNOWN_MUTATION, got %+v", res)
	}

	// the rejected first batch does not leave a session behind
	if got := do(h, fasthttp.MethodGet, "/sessions/x", "").Response.StatusCode(); got != fasthttp.StatusNotFound {
		t.Fatalf("expected 404 for session x, got %d", got)
	}
}

func TestRouting(t *testing.T) {
	h := newHandler()
	cases := []struct {
		method, uri, body string
		status            int
	}{
		{fasthttp.MethodGet, "/healthz", "", fasthttp.StatusOK},
		{fasthttp.MethodPost, "/healthz", "", fasthttp.StatusMethodNotAllowed},
		{fasthttp.MethodGet, "/nope", "", fasthttp.StatusNotFound},
		{fasthttp.MethodGet, "/sessions/", "", fasthttp.StatusNotFound},
		{fasthttp.MethodGet, "/sessions/abc/other", "", fasthttp.StatusNotFound},
		{fasthttp.MethodPut, "/sessions/abc", "", fasthttp.StatusMethodNotAllowed},
		{fasthttp.MethodGet, "/sessions/abc/mutations", "", fasthttp.StatusMethodNotAllowed},
		{fasthttp.MethodPost, "/sessions/abc/mutations", `{"mutations": []}`, fasthttp.StatusBadRequest},
		{fasthttp.MethodDelete, "/sessions/abc", "", fasthttp.StatusNotFound},
	}
	for _, c := range cases {
		ctx := do(h, c.method, c.uri, c.body)
		if ctx.Response.StatusCode() != c.status {
			t.Fatalf("%s %s: expected %d, got %d", c.method, c.uri, c.status, ctx.Response.StatusCode())
		}
	}
}
