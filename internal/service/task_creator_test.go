package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"boothbot/config"
	"boothbot/internal/model"
)

func testProps() config.NotionProperties {
	return config.Default().Notion.Properties
}

// asJSON 便于按 Notion 请求体的形状比较
func asJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestTaskCreator_Properties_Full(t *testing.T) {
	due := time.Date(2026, 11, 2, 0, 0, 0, 0, testLoc)
	req := model.NewTaskRequest("Fix bug", "alice", "Booth", "Bug", model.PriorityHigh, "desc", due, "")
	props := NewTaskCreator(nil, testProps()).Properties(req, "id-1")

	checks := map[string]string{
		"Name":        `{"title":[{"text":{"content":"Fix bug"},"type":"text"}]}`,
		"Assignee":    `{"people":[{"id":"id-1","object":"user"}]}`,
		"Due":         `{"date":{"start":"2026-11-02"}}`,
		"Description": `{"rich_text":[{"text":{"content":"desc"},"type":"text"}]}`,
		"Project":     `{"rich_text":[{"text":{"content":"Booth"},"type":"text"}]}`,
		"Type":        `{"select":{"name":"Bug"}}`,
		"Priority":    `{"select":{"name":"High"}}`,
	}
	if len(props) != len(checks) {
		t.Errorf("got %d properties, want %d", len(props), len(checks))
	}
	for name, want := range checks {
		if got := asJSON(t, props[name]); got != want {
			t.Errorf("%s = %s, want %s", name, got, want)
		}
	}
}

func TestTaskCreator_Properties_Minimal(t *testing.T) {
	req := model.NewTaskRequest("t", "bob", "", "", "", "", time.Date(2026, 10, 19, 0, 0, 0, 0, testLoc), "")
	props := NewTaskCreator(nil, testProps()).Properties(req, "")

	if got := asJSON(t, props["Assignee"]); got != `{"people":[]}` {
		t.Errorf("Assignee = %s, want empty assignment", got)
	}
	for _, absent := range []string{"Description", "Project", "Type", "Priority"} {
		if _, ok := props[absent]; ok {
			t.Errorf("%s should be omitted", absent)
		}
	}
}

func TestTaskCreator_Properties_NoteWins(t *testing.T) {
	req := model.NewTaskRequest("t", "a", "", "", "", "typed", time.Now(), "replied text")
	props := NewTaskCreator(nil, testProps()).Properties(req, "")
	if got := asJSON(t, props["Description"]); got != `{"rich_text":[{"text":{"content":"replied text"},"type":"text"}]}` {
		t.Errorf("Description = %s", got)
	}
}

func TestTaskCreator_CustomPropertyNames(t *testing.T) {
	names := testProps()
	names.Title = "Task"
	names.Assignee = "Owner"
	req := model.NewTaskRequest("t", "a", "", "", "", "", time.Now(), "")
	props := NewTaskCreator(nil, names).Properties(req, "id-9")
	if _, ok := props["Task"]; !ok {
		t.Error("title not written under custom name")
	}
	if got := asJSON(t, props["Owner"]); got != `{"people":[{"id":"id-9","object":"user"}]}` {
		t.Errorf("Owner = %s", got)
	}
}

func TestTaskCreator_Create(t *testing.T) {
	pages := &fakePages{rec: model.TaskRecord{ID: "p1", URL: "https://notion.so/p1"}}
	c := NewTaskCreator(pages, testProps())
	req := model.NewTaskRequest("t", "a", "", "", "", "", time.Now(), "")

	rec, err := c.Create(context.Background(), req, "")
	if err != nil || rec.URL != "https://notion.so/p1" {
		t.Fatalf("Create() = %+v, %v", rec, err)
	}

	pages.err = &model.ProviderError{Provider: "notion", StatusCode: 400, Body: "bad"}
	_, err = c.Create(context.Background(), req, "")
	var perr *model.ProviderError
	if !errors.As(err, &perr) || perr.Body != "bad" {
		t.Fatalf("expected wrapped ProviderError, got %v", err)
	}
	if pages.calls != 2 {
		t.Errorf("calls = %d, create must not retry", pages.calls)
	}
}
