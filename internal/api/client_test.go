package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL + "/")
}

func TestMonsters_DecodesList(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/monsters" {
			t.Errorf("Expected path /monsters, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"monsters":[{"name":"StarDino","level":2},{"name":"LavaBee","level":4}]}`)
	})

	got, err := c.Monsters(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 monsters, got %d", len(got))
	}
	if got[1].Name != "LavaBee" || got[1].Level != 4 {
		t.Errorf("Unexpected second monster: %+v", got[1])
	}
}

func TestMonsters_MissingFieldIsEmpty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	got, err := c.Monsters(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", got)
	}
}

func TestStartBattle_SendsQuery(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("wildIndex") != "12" || q.Get("partyIndex") != "0" {
			t.Errorf("Unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"inProgress":true,"partyName":"StarterPal","partyLevel":1,"partyHP":30,"wildName":"TurboCat","wildLevel":3,"wildHP":40}`)
	})

	got, err := c.StartBattle(context.Background(), 12, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.WildName != "TurboCat" || got.WildHP != 40 || got.PartyHP != 30 {
		t.Errorf("Unexpected battle start: %+v", got)
	}
}

func TestSwapPartySlots_SendsBothSlots(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/swapPartySlots" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("slot1") != "2" || q.Get("slot2") != "0" {
			t.Errorf("Unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"message":"Swapped slots 2 and 0"}`)
	})

	got, err := c.SwapPartySlots(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Message != "Swapped slots 2 and 0" {
		t.Errorf("Unexpected message %q", got.Message)
	}
}

func TestStatusError_CarriesBodyVerbatim(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "You cannot remove your final monster!", http.StatusBadRequest)
	})

	_, err := c.RemoveFromParty(context.Background(), 0)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !IsStatus(err) {
		t.Fatalf("Expected status error, got %T", err)
	}
	// http.Error appends a newline
	if got := strings.TrimSpace(ErrorText(err)); got != "You cannot remove your final monster!" {
		t.Errorf("Unexpected error text %q", got)
	}
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	err := NewClient(base).Scan(context.Background())
	if err == nil {
		t.Fatal("Expected transport error")
	}
	if IsStatus(err) {
		t.Error("Transport failure must not be reported as a status error")
	}
	if ErrorText(err) == "" {
		t.Error("Expected non-empty error text")
	}
}

func TestDownloadWigle_StreamsBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "MAC,SSID\n")
	})

	body, hdr, err := c.DownloadWigle(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer body.Close()
	b, _ := io.ReadAll(body)
	if string(b) != "MAC,SSID\n" {
		t.Errorf("Unexpected body %q", b)
	}
	if hdr.Get("Content-Type") != "text/csv" {
		t.Errorf("Unexpected content type %q", hdr.Get("Content-Type"))
	}
}
