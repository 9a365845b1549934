package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"boothbot/internal/model"
)

func TestClient_ListUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Notion-Version") != apiVersion {
			t.Errorf("missing Notion-Version header")
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		switch r.URL.Query().Get("start_cursor") {
		case "":
			_, _ = io.WriteString(w, `{"results":[
				{"object":"user","id":"u1","type":"person","name":"Alice","person":{"email":"alice@example.com"}},
				{"object":"user","id":"b1","type":"bot","name":"Integration","bot":{}}
			],"has_more":true,"next_cursor":"c2"}`)
		case "c2":
			_, _ = io.WriteString(w, `{"results":[{"object":"user","id":"u2","type":"person","name":"Bob","person":{}}],"has_more":false,"next_cursor":null}`)
		}
	}))
	defer server.Close()

	c := NewClient(Config{Token: "secret", BaseURL: server.URL})

	page, err := c.ListUsers(context.Background(), "")
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	want := model.IdentityPage{
		Members: []model.WorkspaceIdentity{
			{ID: "u1", Email: "alice@example.com", DisplayName: "Alice", Kind: "person"},
			{ID: "b1", DisplayName: "Integration", Kind: "bot"},
		},
		HasMore:    true,
		NextCursor: "c2",
	}
	if !reflect.DeepEqual(page, want) {
		t.Errorf("ListUsers() = %+v, want %+v", page, want)
	}

	page, err = c.ListUsers(context.Background(), "c2")
	if err != nil {
		t.Fatalf("ListUsers(c2) error = %v", err)
	}
	if page.HasMore || len(page.Members) != 1 || page.Members[0].Email != "" {
		t.Errorf("unexpected second page %+v", page)
	}
}

func TestClient_CreatePage(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pages" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"object":"page","id":"p1","url":"https://www.notion.so/p1"}`)
	}))
	defer server.Close()

	c := NewClient(Config{Token: "t", DatabaseID: "db-1", BaseURL: server.URL})
	rec, err := c.CreatePage(context.Background(), map[string]any{"Name": Title("Fix bug")})
	if err != nil {
		t.Fatalf("CreatePage() error = %v", err)
	}
	if rec.URL != "https://www.notion.so/p1" || rec.ID != "p1" {
		t.Errorf("record = %+v", rec)
	}
	parent, _ := got["parent"].(map[string]any)
	if parent["database_id"] != "db-1" || c.DatabaseID() != "db-1" {
		t.Errorf("parent = %v", got["parent"])
	}
}

func TestClient_CreatePage_ProviderError(t *testing.T) {
	const body = `{"object":"error","status":400,"code":"validation_error","message":"Assignee is not a property that exists."}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, body)
	}))
	defer server.Close()

	c := NewClient(Config{Token: "t", DatabaseID: "db", BaseURL: server.URL})
	_, err := c.CreatePage(context.Background(), map[string]any{})
	var perr *model.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.StatusCode != http.StatusBadRequest || perr.Body != body {
		t.Errorf("provider error = %+v", perr)
	}
}

func TestClient_CreatePage_MissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"p1"}`)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	if _, err := c.CreatePage(context.Background(), nil); !errors.Is(err, model.ErrMissingRecordURL) {
		t.Fatalf("expected ErrMissingRecordURL, got %v", err)
	}
}

func TestRichText_SplitsLongContent(t *testing.T) {
	long := strings.Repeat("a", 1999) + "ộ" + strings.Repeat("b", 2001)
	items := RichText(long)["rich_text"].([]map[string]any)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	var joined strings.Builder
	for i, item := range items {
		content := item["text"].(map[string]string)["content"]
		if n := utf8.RuneCountInString(content); n > 2000 {
			t.Errorf("item %d has %d characters", i, n)
		}
		joined.WriteString(content)
	}
	if joined.String() != long {
		t.Error("chunks do not reassemble to the original text")
	}
	if first := items[0]["text"].(map[string]string)["content"]; !strings.HasSuffix(first, "ộ") {
		t.Error("multi-byte character split across items")
	}

	if items := Title("short")["title"].([]map[string]any); len(items) != 1 {
		t.Errorf("short title produced %d items", len(items))
	}
}

func TestPeople_Empty(t *testing.T) {
	b, _ := json.Marshal(People())
	if string(b) != `{"people":[]}` {
		t.Errorf("People() = %s", b)
	}
}
