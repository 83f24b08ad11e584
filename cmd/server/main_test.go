package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmynk/groupledger/internal/metrics"
	"github.com/mmynk/groupledger/internal/service"
	"github.com/mmynk/groupledger/internal/storage/memory"
	"github.com/mmynk/groupledger/internal/transport"
)

func setupRouter(t *testing.T) (*httptest.Server, *service.LedgerService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	svc := service.NewLedgerService(memory.New(), service.WithLogger(logger), service.WithMetrics(m))
	server := httptest.NewServer(newRouter(svc, m, logger))
	t.Cleanup(server.Close)
	return server, svc
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	server, _ := setupRouter(t)

	resp, body := get(t, server.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("unexpected health response %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS headers on every route")
	}
}

func TestExportDownload(t *testing.T) {
	server, svc := setupRouter(t)

	created, err := svc.CreateGroup(context.Background(), &service.CreateGroupRequest{
		Name:    "Beach House",
		Members: []string{"Alice", "Bob"},
	})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	id := created.Group.ID

	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantType    string
		wantFile    string
		wantContent string
	}{
		{"default json", "", http.StatusOK, "application/json", "Beach-House-expenses.json", `"name": "Beach House"`},
		{"yaml", "?format=yaml", http.StatusOK, "application/yaml", "Beach-House-expenses.yaml", "name: Beach House"},
		{"bad format", "?format=csv", http.StatusBadRequest, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, server.URL+"/groups/"+id+"/export"+tt.query)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, resp.StatusCode, body)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if got := resp.Header.Get("Content-Type"); got != tt.wantType {
				t.Errorf("expected content type %q, got %q", tt.wantType, got)
			}
			if got := resp.Header.Get("Content-Disposition"); !strings.Contains(got, tt.wantFile) {
				t.Errorf("expected file %q in %q", tt.wantFile, got)
			}
			if !strings.Contains(body, tt.wantContent) {
				t.Errorf("expected %q in export:\n%s", tt.wantContent, body)
			}
		})
	}

	resp, _ := get(t, server.URL+"/groups/missing/export")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown group, got %d", resp.StatusCode)
	}
}

func TestRPCAndMetrics(t *testing.T) {
	server, _ := setupRouter(t)
	client := transport.NewClient(http.DefaultClient, server.URL)

	if _, err := client.ListGroups(context.Background(), &service.ListGroupsRequest{}); err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}

	_, body := get(t, server.URL+"/metrics")
	for _, want := range []string{
		"groupledger_rpc_duration_seconds",
		"groupledger_ledger_operations_total",
		transport.ListGroupsProcedure,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}
