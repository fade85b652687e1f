package franchiseapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-portal-client/cache"
	"github.com/goliatone/go-portal-client/franchiseapi"
	"github.com/goliatone/go-portal-client/internal/cacheinfra"
	"github.com/goliatone/go-portal-client/pkg/testsupport"
	"github.com/goliatone/go-portal-client/portal"
	"github.com/goliatone/go-portal-client/query"
	"github.com/goliatone/go-portal-client/transport"
)

func newService(t *testing.T) (*franchiseapi.Service, *testsupport.Server) {
	t.Helper()

	srv := testsupport.NewServer()
	t.Cleanup(srv.Close)

	store, err := cacheinfra.NewSturdycStore(cacheinfra.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	api, err := transport.New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	queries := query.New(store, cache.NewStructuralKeySerializer())
	return franchiseapi.New(api, queries), srv
}

func TestReceipts_LoadsOnceThenServesFromCache(t *testing.T) {
	svc, srv := newService(t)
	srv.Respond("GET", "/franchise/receipts", testsupport.Success("data", []portal.Voucher{
		{ID: "V1", Party: "Alice", Amount: 120, Mode: "cash", Status: "settled"},
		{ID: "V2", Party: "Bob", Amount: 75.50, Mode: "transfer", Status: "settled"},
	}))

	ctx := context.Background()

	res := svc.Receipts(ctx, "")
	if res.IsError {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Data) != 2 || res.Data[0].Party != "Alice" {
		t.Errorf("unexpected receipts %v", res.Data)
	}

	svc.Receipts(ctx, "")
	if calls := srv.Calls("GET", "/franchise/receipts"); calls != 1 {
		t.Errorf("expected exactly 1 network call, got %d", calls)
	}
}

func TestReceipts_StatusVariantsAreSeparateKeys(t *testing.T) {
	svc, srv := newService(t)
	srv.Handle("GET", "/franchise/receipts", func(r *http.Request) testsupport.Response {
		if r.URL.Query().Get("status") == "pending" {
			return testsupport.Success("data", []portal.Voucher{{ID: "V3", Status: "pending"}})
		}
		return testsupport.Success("data", []portal.Voucher{
			{ID: "V1", Status: "settled"},
			{ID: "V2", Status: "settled"},
		})
	})

	ctx := context.Background()
	pending := svc.Receipts(ctx, "pending")
	settled := svc.Receipts(ctx, "settled")

	if len(pending.Data) != 1 || len(settled.Data) != 2 {
		t.Errorf("variants leaked into each other: pending=%d settled=%d",
			len(pending.Data), len(settled.Data))
	}
	if calls := srv.Calls("GET", "/franchise/receipts"); calls != 2 {
		t.Errorf("expected 2 network calls, got %d", calls)
	}
}
