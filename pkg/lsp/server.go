package lsp

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.mar.sh/pkg/diag"
	"src.mar.sh/pkg/eval"
	"src.mar.sh/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/completion": s.completion,

		"textDocument/didClose": noop,
		// Required by spec.
		"initialized": noop,
		// Called by clients even when server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		return fn(ctx, conn, *req.Params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised
	// to support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	dot := lspPositionToIdx(content, params.Position)
	start, prefix := completionPrefix(content, dot)

	lspRange := lsp.Range{
		Start: lspPositionFromIdx(content, start),
		End:   lspPositionFromIdx(content, dot),
	}
	var lspItems []lsp.CompletionItem
	for _, c := range candidates(prefix) {
		lspItems = append(lspItems, lsp.CompletionItem{
			Label: c.text,
			Kind:  c.kind,
			TextEdit: &lsp.TextEdit{
				Range:   lspRange,
				NewText: c.text,
			},
		})
	}
	return lspItems, nil
}

type candidate struct {
	text string
	kind lsp.CompletionItemKind
}

// candidates returns the reserved words and builtin commands that start with
// the given prefix.
func candidates(prefix string) []candidate {
	var cs []candidate
	for _, w := range parse.Keywords() {
		if strings.HasPrefix(w, prefix) {
			cs = append(cs, candidate{w, lsp.CIKKeyword})
		}
	}
	names := eval.BuiltinNames()
	sort.Strings(names)
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			cs = append(cs, candidate{name, lsp.CIKFunction})
		}
	}
	return cs
}

// completionPrefix finds the start of the word the cursor is in, and returns
// the start index along with the text between it and the cursor.
func completionPrefix(content string, dot int) (int, string) {
	start := dot
	for start > 0 {
		r := content[start-1]
		if r == ' ' || r == '\t' || r == '\n' || r == ';' || r == '|' ||
			r == '(' || r == '{' || r == '`' {
			break
		}
		start--
	}
	return start, content[start:dot]
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
}

func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	_, err := parse.Parse(parse.Source{Name: string(uri), Code: content})
	if err == nil {
		return []lsp.Diagnostic{}
	}

	entries := parse.UnpackErrors(err)
	diags := make([]lsp.Diagnostic, len(entries))
	for i, err := range entries {
		diags[i] = lsp.Diagnostic{
			Range:    lspRangeFromRange(content, err),
			Severity: lsp.Error,
			Source:   "parse",
			Message:  err.Message,
		}
	}
	return diags
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
