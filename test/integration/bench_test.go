package integration

import (
	"net/http"
	"testing"
)

// Benchmark for GET /service/status; to run: go test -bench=. ./test/integration -run ^$
func BenchmarkServiceStatus(b *testing.B) {
	u := baseURL()
	client := &http.Client{}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			resp, err := client.Get(u + "/service/status")
			if err == nil {
				_ = resp.Body.Close()
			}
		}
	})
}
