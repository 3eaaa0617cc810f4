package integration

import (
	"bytes"
	"net/http"
	"testing"
)

func TestIntegration_ValidationErrors(t *testing.T) {
	waitReady(t)
	u := baseURL()

	cases := []struct {
		name, method, path, body string
		want                     int
	}{
		{"invalid_coin", http.MethodPost, "/coin/0.50", "", http.StatusBadRequest},
		{"unknown_item", http.MethodGet, "/item/buy/BEER", "", http.StatusNotFound},
		{"empty_item_update", http.MethodPut, "/service/item/WATER", `{}`, http.StatusBadRequest},
		{"price_out_of_range", http.MethodPut, "/service/item/WATER", `{"price":10.50}`, http.StatusBadRequest},
		{"amount_out_of_range", http.MethodPut, "/service/coin/0.05", `{"amount":120}`, http.StatusBadRequest},
		{"malformed_json", http.MethodPut, "/service/coin/0.05", `{"amount":`, http.StatusBadRequest},
		{"unknown_field", http.MethodPut, "/service/item/WATER", `{"color":"red"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r *http.Request
			var err error
			if tc.body != "" {
				r, err = http.NewRequest(tc.method, u+tc.path, bytes.NewBufferString(tc.body))
				if err == nil {
					r.Header.Set("Content-Type", "application/json")
				}
			} else {
				r, err = http.NewRequest(tc.method, u+tc.path, nil)
			}
			if err != nil {
				t.Fatal(err)
			}
			resp, err := http.DefaultClient.Do(r)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, resp.StatusCode)
			}
		})
	}
}
