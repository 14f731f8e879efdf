package qdrant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"horticulture-assistant/pkg/qdrant"
)

func TestCollectionExists(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collections/horticulture_kb":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	client := qdrant.NewClient(ts.URL)

	exists, err := client.CollectionExists(context.Background(), "horticulture_kb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected collection to exist")
	}

	exists, err = client.CollectionExists(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected collection to be missing")
	}
}

func TestSearchPoints(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/horticulture_kb/points/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var req qdrant.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Limit != 3 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"result": [
				{
					"id": "d2719f51-2e1e-4d8a-9b6a-0a2b3c4d5e6f",
					"score": 0.91,
					"payload": {"text": "Store tomatoes at room temperature", "category": "storage"}
				}
			]
		}`))
	}))
	defer ts.Close()

	client := qdrant.NewClient(ts.URL)

	resp, err := client.SearchPoints(context.Background(), "horticulture_kb", qdrant.SearchRequest{
		Vector:      []float32{0.1, 0.2},
		Limit:       3,
		WithPayload: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Result) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Result))
	}
	if resp.Result[0].Payload["category"] != "storage" {
		t.Errorf("unexpected payload: %v", resp.Result[0].Payload)
	}
}

func TestUpsertPoints_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := qdrant.NewClient(ts.URL)

	err := client.UpsertPoints(context.Background(), "horticulture_kb", qdrant.UpsertPointsRequest{
		Points: []qdrant.Point{{ID: uint64(1), Vector: []float32{0.1}}},
	})
	if err == nil {
		t.Fatal("expected error from 500 response")
	}
}
