package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func waitReady(t *testing.T) {
	t.Helper()
	url := fmt.Sprintf("%s/healthz", baseURL())
	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			return
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("service not ready")
}

func putJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	r, err := http.NewRequest(http.MethodPut, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

type purchase struct {
	Item   string    `json:"item"`
	Change []float64 `json:"change"`
}

func TestIntegration_InsertReturnFlow(t *testing.T) {
	waitReady(t)
	u := baseURL()
	for _, coin := range []string{"1.00", "0.25"} {
		resp, err := http.Post(u+"/coin/"+coin, "application/json", nil)
		if err != nil {
			t.Fatal(err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
	}
	resp, err := http.Get(u + "/coin/status")
	if err != nil {
		t.Fatal(err)
	}
	var status struct {
		Money float64   `json:"money"`
		Coins []float64 `json:"coins"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if status.Money < 1.25 {
		t.Fatalf("expected at least 1.25 in pocket, got %v", status.Money)
	}

	resp, err = http.Get(u + "/coin/return")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(u + "/coin/status")
	if err != nil {
		t.Fatal(err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if status.Money != 0 || len(status.Coins) != 0 {
		t.Fatalf("expected empty pocket after return, got %+v", status)
	}
}

func TestIntegration_PurchaseFlow(t *testing.T) {
	waitReady(t)
	u := baseURL()

	// known machine state: WATER at 0.65 with stock, change coins available
	resp := putJSON(t, u+"/service/item/WATER", `{"price":0.65,"amount":10}`)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	for _, coin := range []string{"0.25", "0.10", "0.05"} {
		resp = putJSON(t, u+"/service/coin/"+coin, `{"amount":10}`)
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
	}

	r, err := http.Post(u+"/coin/1.00", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = r.Body.Close()
	if r.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", r.StatusCode)
	}

	resp2, err := http.Get(u + "/item/buy/WATER")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp2.StatusCode)
	}
	var p purchase
	if err := json.NewDecoder(resp2.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Item != "WATER" {
		t.Fatalf("unexpected purchase: %+v", p)
	}
	var sum float64
	for _, c := range p.Change {
		if c == 1 {
			t.Fatalf("change must never include 1.00 coins: %v", p.Change)
		}
		sum += c
	}
	if fmt.Sprintf("%.2f", sum) != "0.35" {
		t.Fatalf("expected 0.35 change, got %v", p.Change)
	}
}

func TestIntegration_UnsupportedMediaType(t *testing.T) {
	waitReady(t)
	u := baseURL()
	r, _ := http.NewRequest(http.MethodPut, u+"/service/coin/0.05", bytes.NewBufferString("{}"))
	r.Header.Set("Content-Type", "text/plain")
	resp, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.StatusCode)
	}
}

func TestIntegration_OpenAPIServed(t *testing.T) {
	waitReady(t)
	u := baseURL()
	resp, err := http.Get(u + "/openapi.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestIntegration_DocsServed(t *testing.T) {
	waitReady(t)
	u := baseURL()
	resp, err := http.Get(u + "/docs")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	buf := make([]byte, 1024)
	n, _ := resp.Body.Read(buf)
	if !strings.Contains(string(buf[:n]), "swagger-ui") {
		t.Fatalf("expected swagger-ui in docs page")
	}
}
