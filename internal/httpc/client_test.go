package httpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"emotion":"Sad","advice":"It will pass."}`))
	}))
	defer srv.Close()

	var got struct {
		Emotion string `json:"emotion"`
		Advice  string `json:"advice"`
	}
	if err := GetJSON(context.Background(), nil, srv.URL, &got); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if got.Emotion != "Sad" || got.Advice != "It will pass." {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Could not capture frame"}`))
	}))
	defer srv.Close()

	var v map[string]any
	err := GetJSON(context.Background(), srv.Client(), srv.URL, &v)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != 500 || se.Body != `{"error":"Could not capture frame"}` {
		t.Errorf("unexpected error %+v", se)
	}
}

func TestGetJSONBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	var v map[string]any
	if err := GetJSON(context.Background(), nil, srv.URL, &v); err == nil {
		t.Error("expected decode error")
	}
}

func TestGetCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var v map[string]any
	if err := GetJSON(ctx, nil, "http://127.0.0.1:1/", &v); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
