package beacon_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing/fstest"

	"github.com/bft-labs/beacon"
)

func Example() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := beacon.New(ts.URL)
	res := <-c.SendLiteral(context.Background(), beacon.PayloadA())
	fmt.Println(res)
	// Output: Status: 200
}

func Example_resource() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := beacon.New(ts.URL, beacon.WithBundleFS(fstest.MapFS{
		"checkout.json": {Data: []byte(`{"type":"checkout"}`)},
	}))

	fmt.Println(<-c.SendResource(context.Background(), "checkout"))
	fmt.Println(<-c.SendResource(context.Background(), "refund"))
	// Output:
	// Status: 202
	// Failed to load refund.json: refund.json not found in bundle
}

func Example_invalidDestination() {
	c := beacon.New("   ")
	fmt.Println(<-c.SendLiteral(context.Background(), beacon.PayloadB()))
	// Output: Invalid URL
}
