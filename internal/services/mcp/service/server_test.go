package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/rollexpr/internal/services/mcp/domain"
	"github.com/louisbranch/rollexpr/internal/services/roller"
	"github.com/louisbranch/rollexpr/internal/services/roller/storage/sqlite"
)

func newRoller() *roller.Service {
	return roller.New(roller.Config{MaxExpressionLength: 64, MaxDice: 100})
}

// connect serves a new Server over in-memory transports and returns a client
// session plus a stop function that waits for the server to exit.
func connect(t *testing.T) (*mcp.ClientSession, func()) {
	t.Helper()
	return connectWith(t, newRoller())
}

func connectWith(t *testing.T, roller domain.Roller) (*mcp.ClientSession, func()) {
	t.Helper()

	server, err := New(roller)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()

	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	stop := func() {
		_ = session.Close()
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	}
	return session, stop
}

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatal("expected tool result content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestServerListsDiceTools(t *testing.T) {
	session, stop := connect(t)
	defer stop()

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make(map[string]bool)
	for _, tool := range result.Tools {
		names[tool.Name] = true
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", tool.Name)
		}
	}
	for _, want := range []string{"roll_dice", "render_dice", "roll_history"} {
		if !names[want] {
			t.Errorf("expected tool %s, got %v", want, names)
		}
	}
}

func TestServerRollDice(t *testing.T) {
	session, stop := connect(t)
	defer stop()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "roll_dice",
		Arguments: map[string]any{
			"expression": "2d6 + 1",
			"mode":       "max",
			"difficulty": 10,
		},
	})
	if err != nil {
		t.Fatalf("call roll_dice: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, result))
	}

	output := decodeStructuredContent[domain.RollDiceResult](t, result.StructuredContent)
	if output.Expression != "2d6 + 1" || output.Total != 13 {
		t.Errorf("expected 2d6 + 1 = 13, got %s = %d", output.Expression, output.Total)
	}
	if output.Check == nil || !output.Check.Success || output.Check.Margin != 3 {
		t.Errorf("expected successful check by 3, got %+v", output.Check)
	}
	if output.Range == nil || output.Range.Min != 3 || output.Range.Max != 13 {
		t.Errorf("expected range 3..13, got %+v", output.Range)
	}
}

func TestServerRollDiceSeedReplays(t *testing.T) {
	session, stop := connect(t)
	defer stop()

	call := func() domain.RollDiceResult {
		result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
			Name:      "roll_dice",
			Arguments: map[string]any{"expression": "4d6kh3", "seed": 1234},
		})
		if err != nil {
			t.Fatalf("call roll_dice: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %s", textContent(t, result))
		}
		return decodeStructuredContent[domain.RollDiceResult](t, result.StructuredContent)
	}

	first, second := call(), call()
	if first.Total != second.Total {
		t.Errorf("expected replayed total %d, got %d", first.Total, second.Total)
	}
	if first.Rng == nil || first.Rng.SeedUsed != 1234 || first.Rng.SeedSource != "CLIENT" {
		t.Errorf("expected client seed 1234, got %+v", first.Rng)
	}
}

func TestServerRollDiceLocalizedError(t *testing.T) {
	session, stop := connect(t)
	defer stop()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "roll_dice",
		Arguments: map[string]any{"expression": "5/0", "locale": "pt-BR"},
	})
	if err != nil {
		t.Fatalf("call roll_dice: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error")
	}
	text := textContent(t, result)
	if !strings.HasPrefix(text, "DICE_DIVIDE_BY_ZERO: ") || !strings.Contains(text, "divide por zero") {
		t.Errorf("expected localized divide by zero error, got %q", text)
	}
}

func TestServerRenderDice(t *testing.T) {
	session, stop := connect(t)
	defer stop()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "render_dice",
		Arguments: map[string]any{"expression": "d20 adv", "format": "mermaid"},
	})
	if err != nil {
		t.Fatalf("call render_dice: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, result))
	}
	output := decodeStructuredContent[domain.RenderDiceResult](t, result.StructuredContent)
	if output.Format != "mermaid" || !strings.HasPrefix(output.Output, "graph TB") {
		t.Errorf("expected mermaid graph, got %+v", output)
	}
}

func TestServerRollHistory(t *testing.T) {
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	svc := roller.New(roller.Config{MaxExpressionLength: 64, MaxDice: 100}, roller.WithHistory(store))
	session, stop := connectWith(t, svc)
	defer stop()

	for _, expression := range []string{"d4", "2d6", "3d8"} {
		result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
			Name:      "roll_dice",
			Arguments: map[string]any{"expression": expression, "mode": "max"},
		})
		if err != nil || result.IsError {
			t.Fatalf("roll %s: %v", expression, err)
		}
	}

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "roll_history",
		Arguments: map[string]any{"limit": 2},
	})
	if err != nil {
		t.Fatalf("call roll_history: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, result))
	}
	output := decodeStructuredContent[domain.RollHistoryResult](t, result.StructuredContent)
	if len(output.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", output.Entries)
	}
	if output.Entries[0].Expression != "3d8" || output.Entries[0].Total != 24 {
		t.Errorf("expected newest 3d8 = 24, got %+v", output.Entries[0])
	}
	if output.Entries[1].Expression != "2d6" || output.Entries[1].SeedSource != "NONE" {
		t.Errorf("expected 2d6 with no seed, got %+v", output.Entries[1])
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	err := Run(context.Background(), Config{Transport: "carrier-pigeon"}, newRoller())
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected unsupported transport error, got %v", err)
	}
}

func TestNewRequiresRoller(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil roller")
	}
}

func TestHTTPHandlerServesTools(t *testing.T) {
	server, err := New(newRoller())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	httpServer := httptest.NewServer(server.httpHandler())
	defer httpServer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   httpServer.URL,
		HTTPClient: http.DefaultClient,
	}, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "roll_dice",
		Arguments: map[string]any{"expression": "3d8", "mode": "min"},
	})
	if err != nil {
		t.Fatalf("call roll_dice: %v", err)
	}
	output := decodeStructuredContent[domain.RollDiceResult](t, result.StructuredContent)
	if output.Total != 3 {
		t.Errorf("expected min total 3, got %d", output.Total)
	}
}
