package admin

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getreqd/reqd/pkg/runner"
)

func TestExecuteSubstitutesWorkspaceVariables(t *testing.T) {
	var gotPath, gotAuth string
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer target.Close()

	api := newTestAPI(t, WithCodec(newCodec(t)))
	ws := createWorkspace(t, api, "Dev")

	rec := doRequest(t, api, http.MethodPut, "/workspaces/"+ws.ID+"/variables", map[string]any{
		"variables": []map[string]any{
			{"key": "userId", "value": "42"},
			{"key": "token", "value": "sk-secret", "isSecret": true},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("seed variables status=%d", rec.Code)
	}

	rec = doRequest(t, api, http.MethodPost, "/execute", map[string]any{
		"method":      "GET",
		"url":         target.URL + "/users/{{userId}}",
		"headers":     map[string]string{"Authorization": "Bearer {{token}}"},
		"workspaceId": ws.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("execute status=%d body=%s", rec.Code, rec.Body.String())
	}

	if gotPath != "/users/42" {
		t.Errorf("target path = %q", gotPath)
	}
	if gotAuth != "Bearer sk-secret" {
		t.Errorf("target auth = %q", gotAuth)
	}

	var resp runner.Response
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != 200 || resp.BodyType != runner.BodyJSON {
		t.Errorf("response = %+v", resp)
	}
	if resp.BodyText != `{"ok":true}` {
		t.Errorf("bodyText = %q", resp.BodyText)
	}
}

func TestExecuteWithoutWorkspaceLeavesPlaceholders(t *testing.T) {
	var gotPath string
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer target.Close()

	api := newTestAPI(t)

	rec := doRequest(t, api, http.MethodPost, "/execute", map[string]any{
		"method": "GET",
		"url":    target.URL + "/raw/{{untouched}}",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("execute status=%d body=%s", rec.Code, rec.Body.String())
	}
	if gotPath != "/raw/{{untouched}}" {
		t.Errorf("target path = %q (no workspace means no substitution)", gotPath)
	}
}

func TestExecutePostCarriesBody(t *testing.T) {
	var gotBody []byte
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer target.Close()

	api := newTestAPI(t)

	rec := doRequest(t, api, http.MethodPost, "/execute", map[string]any{
		"method": "POST",
		"url":    target.URL,
		"body":   `{"hello":"world"}`,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("execute status=%d", rec.Code)
	}
	if string(gotBody) != `{"hello":"world"}` {
		t.Errorf("target body = %q", gotBody)
	}

	var resp runner.Response
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != http.StatusAccepted {
		t.Errorf("status = %d", resp.Status)
	}
}

func TestExecuteTransportFailure(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := target.URL
	target.Close()

	api := newTestAPI(t)

	rec := doRequest(t, api, http.MethodPost, "/execute", map[string]any{
		"method": "GET",
		"url":    url,
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status=%d, want 502", rec.Code)
	}

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "execution_failed" {
		t.Errorf("error = %q", body["error"])
	}
	if body["message"] == "" {
		t.Error("message is empty; transport errors must carry a message")
	}
}

func TestExecuteRequiresURL(t *testing.T) {
	api := newTestAPI(t)

	rec := doRequest(t, api, http.MethodPost, "/execute", map[string]any{"method": "GET"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status=%d, want 400", rec.Code)
	}
}
