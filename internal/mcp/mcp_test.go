package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/lexis/internal/config"
	"github.com/hpungsan/lexis/internal/errors"
	"github.com/hpungsan/lexis/internal/store"
)

// testSetup creates an empty store and default config for testing.
func testSetup(t *testing.T) (*Handlers, store.Store, *config.Config) {
	t.Helper()
	st := store.NewMemory()
	t.Cleanup(func() { st.Close() })
	cfg := config.DefaultConfig()
	return NewHandlers(st, cfg), st, cfg
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultText returns the text payload of a tool result.
func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if len(r.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := r.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", r.Content[0])
	}
	return tc.Text
}

// resultJSON decodes a successful tool result.
func resultJSON(t *testing.T, r *mcp.CallToolResult) map[string]any {
	t.Helper()
	if r.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, r))
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(resultText(t, r)), &m); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	return m
}

// errorCode extracts the error code from an error result.
func errorCode(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if !r.IsError {
		t.Fatalf("expected IsError=true, got %s", resultText(t, r))
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(resultText(t, r)), &payload); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	return payload["error"].(map[string]any)["code"].(string)
}

func createValue(t *testing.T, h *Handlers, value string) {
	t.Helper()
	r, err := h.HandleCreate(context.Background(), makeRequest(map[string]any{"value": value}))
	if err != nil {
		t.Fatalf("HandleCreate: %v", err)
	}
	if r.IsError {
		t.Fatalf("HandleCreate(%q) error: %s", value, resultText(t, r))
	}
}

func TestHandleCreate(t *testing.T) {
	h, st, _ := testSetup(t)

	r, err := h.HandleCreate(context.Background(), makeRequest(map[string]any{"value": "Level"}))
	if err != nil {
		t.Fatalf("HandleCreate: %v", err)
	}
	body := resultJSON(t, r)
	props := body["properties"].(map[string]any)
	if props["is_palindrome"] != true {
		t.Errorf("is_palindrome = %v, want true", props["is_palindrome"])
	}

	n, _ := st.Count(context.Background())
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestHandleCreate_Errors(t *testing.T) {
	h, _, _ := testSetup(t)
	createValue(t, h, "dup")

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing", map[string]any{}, "MISSING_FIELD"},
		{"nil args", nil, "INVALID_REQUEST"},
		{"wrong type", map[string]any{"value": 12.0}, "WRONG_TYPE"},
		{"duplicate", map[string]any{"value": "dup"}, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := h.HandleCreate(context.Background(), makeRequest(tt.args))
			if err != nil {
				t.Fatalf("HandleCreate: %v", err)
			}
			if got := errorCode(t, r); got != tt.want {
				t.Errorf("code = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleGetAndDelete(t *testing.T) {
	h, _, _ := testSetup(t)
	createValue(t, h, "find me")
	ctx := context.Background()

	r, err := h.HandleGet(ctx, makeRequest(map[string]any{"value": "find me"}))
	if err != nil {
		t.Fatalf("HandleGet: %v", err)
	}
	if got := resultJSON(t, r)["value"]; got != "find me" {
		t.Errorf("value = %v", got)
	}

	r, err = h.HandleDelete(ctx, makeRequest(map[string]any{"value": "find me"}))
	if err != nil {
		t.Fatalf("HandleDelete: %v", err)
	}
	if got := resultJSON(t, r)["deleted"]; got != true {
		t.Errorf("deleted = %v, want true", got)
	}

	r, _ = h.HandleGet(ctx, makeRequest(map[string]any{"value": "find me"}))
	if got := errorCode(t, r); got != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", got)
	}

	r, _ = h.HandleDelete(ctx, makeRequest(map[string]any{"value": "find me"}))
	if got := errorCode(t, r); got != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", got)
	}
}

func TestHandleList(t *testing.T) {
	h, _, _ := testSetup(t)
	for _, v := range []string{"", "a", "aa", "aba", "ab cd"} {
		createValue(t, h, v)
	}

	r, err := h.HandleList(context.Background(), makeRequest(map[string]any{
		"min_length":    2.0,
		"is_palindrome": true,
	}))
	if err != nil {
		t.Fatalf("HandleList: %v", err)
	}

	body := resultJSON(t, r)
	if body["count"] != 2.0 {
		t.Errorf("count = %v, want 2", body["count"])
	}
	data := body["data"].([]any)
	if data[0].(map[string]any)["value"] != "aa" || data[1].(map[string]any)["value"] != "aba" {
		t.Errorf("data = %v, want [aa aba]", data)
	}
}

func TestHandleList_InvalidArguments(t *testing.T) {
	h, _, _ := testSetup(t)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"negative", map[string]any{"min_length": -1.0}, "INVALID_QUERY_PARAMETER"},
		{"two characters", map[string]any{"contains_character": "ab"}, "INVALID_QUERY_PARAMETER"},
		{"fractional", map[string]any{"word_count": 1.5}, "INVALID_REQUEST"},
		{"string bool", map[string]any{"is_palindrome": "yes"}, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := h.HandleList(context.Background(), makeRequest(tt.args))
			if err != nil {
				t.Fatalf("HandleList: %v", err)
			}
			if got := errorCode(t, r); got != tt.want {
				t.Errorf("code = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleFilterNatural(t *testing.T) {
	h, _, _ := testSetup(t)
	for _, v := range []string{"kayak", "stats", "open door", "zebra"} {
		createValue(t, h, v)
	}

	r, err := h.HandleFilterNatural(context.Background(), makeRequest(map[string]any{
		"query": "strings containing the letter z",
	}))
	if err != nil {
		t.Fatalf("HandleFilterNatural: %v", err)
	}

	body := resultJSON(t, r)
	if body["count"] != 1.0 {
		t.Errorf("count = %v, want 1", body["count"])
	}
	iq := body["interpreted_query"].(map[string]any)
	if iq["parsed_filters"].(map[string]any)["contains_character"] != "z" {
		t.Errorf("parsed_filters = %v", iq["parsed_filters"])
	}
}

func TestHandleFilterNatural_Errors(t *testing.T) {
	h, _, _ := testSetup(t)

	tests := []struct {
		query string
		want  string
	}{
		{"gibberish with no recognized pattern", "UNPARSEABLE_QUERY"},
		{"longer than 5 characters and shorter than 3 characters", "CONFLICTING_FILTERS"},
		{"", "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r, err := h.HandleFilterNatural(context.Background(), makeRequest(map[string]any{"query": tt.query}))
			if err != nil {
				t.Fatalf("HandleFilterNatural: %v", err)
			}
			if got := errorCode(t, r); got != tt.want {
				t.Errorf("code = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleAnalyze_DoesNotStore(t *testing.T) {
	h, st, _ := testSetup(t)

	r, err := h.HandleAnalyze(context.Background(), makeRequest(map[string]any{"value": "hello world"}))
	if err != nil {
		t.Fatalf("HandleAnalyze: %v", err)
	}
	props := resultJSON(t, r)["properties"].(map[string]any)
	if props["word_count"] != 2.0 {
		t.Errorf("word_count = %v, want 2", props["word_count"])
	}

	n, _ := st.Count(context.Background())
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

func TestServerRegistration(t *testing.T) {
	_, st, cfg := testSetup(t)

	s := NewServer(st, cfg, zap.NewNop(), "test")
	tools := s.ListTools()

	expectedTools := []string{
		"string_create",
		"string_get",
		"string_delete",
		"string_list",
		"string_filter_natural",
		"string_analyze",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}
	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	_, st, cfg := testSetup(t)
	cfg.DisabledTools = []string{"string_delete", "string_delete", "not_a_tool"}

	tools := NewServer(st, cfg, zap.NewNop(), "test").ListTools()

	if len(tools) != 5 {
		t.Errorf("registered tool count = %d, want 5", len(tools))
	}
	if _, ok := tools["string_delete"]; ok {
		t.Error("disabled tool string_delete should not be registered")
	}
}

func TestServerRegistration_AllToolsDisabled(t *testing.T) {
	_, st, cfg := testSetup(t)
	cfg.DisabledTools = AllToolNames()

	if tools := NewServer(st, cfg, zap.NewNop(), "test").ListTools(); len(tools) != 0 {
		t.Errorf("registered tool count = %d, want 0 (all disabled)", len(tools))
	}
}

func TestValidateDisabledTools(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantLen int
	}{
		{"all valid", []string{"string_delete", "string_create"}, 0},
		{"one unknown", []string{"string_delete", "fake_tool"}, 1},
		{"all unknown", []string{"foo", "bar", "baz"}, 3},
		{"empty list", []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if unknown := ValidateDisabledTools(tt.input); len(unknown) != tt.wantLen {
				t.Errorf("ValidateDisabledTools() returned %d unknown, want %d", len(unknown), tt.wantLen)
			}
		})
	}
}

func TestErrorResult_InternalDoesNotExposeDetails(t *testing.T) {
	r := errorResult(errors.NewInternal(fmt.Errorf("sql error: database is locked")))

	var payload map[string]any
	if err := json.Unmarshal([]byte(resultText(t, r)), &payload); err != nil {
		t.Fatalf("failed to unmarshal error payload: %v", err)
	}
	errObj := payload["error"].(map[string]any)

	if errObj["code"] != string(errors.ErrInternal) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrInternal)
	}
	if _, ok := errObj["details"]; ok {
		t.Fatal("expected INTERNAL errors to omit details")
	}
}

func TestErrorResult_WrappedError(t *testing.T) {
	r := errorResult(fmt.Errorf("lookup: %w", errors.NewNotFound("abc")))
	if got := errorCode(t, r); got != string(errors.ErrNotFound) {
		t.Errorf("code = %q, want NOT_FOUND", got)
	}
}

func TestErrorResult_PlainErrorIsInternal(t *testing.T) {
	r := errorResult(fmt.Errorf("something broke"))
	if got := errorCode(t, r); got != string(errors.ErrInternal) {
		t.Errorf("code = %q, want INTERNAL", got)
	}
}
