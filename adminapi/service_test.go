package adminapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/goliatone/go-portal-client/adminapi"
	"github.com/goliatone/go-portal-client/cache"
	"github.com/goliatone/go-portal-client/internal/cacheinfra"
	"github.com/goliatone/go-portal-client/pkg/testsupport"
	"github.com/goliatone/go-portal-client/portal"
	"github.com/goliatone/go-portal-client/query"
	"github.com/goliatone/go-portal-client/transport"
)

func newService(t *testing.T) (*adminapi.Service, *testsupport.Server) {
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
	return adminapi.New(api, queries), srv
}

func decodeJSONBody(t *testing.T, r *http.Request, out any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		t.Errorf("decode request body: %v", err)
	}
}

func pendingMembers(t *testing.T) []portal.Member {
	t.Helper()
	var members []portal.Member
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("members_pending.json"), &members)
	return members
}

func TestMembers_LoadsOnceThenServesFromCache(t *testing.T) {
	svc, srv := newService(t)
	srv.Respond("GET", "/admin/members", testsupport.Success("members", pendingMembers(t)))

	ctx := context.Background()

	res := svc.Members(ctx, portal.MemberStatusPending)
	if res.IsError {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !res.IsLoading {
		t.Error("first read should report IsLoading")
	}
	if len(res.Data) != 3 {
		t.Fatalf("expected 3 pending members, got %d", len(res.Data))
	}

	res = svc.Members(ctx, portal.MemberStatusPending)
	if res.IsLoading {
		t.Error("cache hit must not report IsLoading")
	}
	if len(res.Data) != 3 {
		t.Errorf("expected cached members, got %d", len(res.Data))
	}

	if calls := srv.Calls("GET", "/admin/members"); calls != 1 {
		t.Errorf("expected exactly 1 network call, got %d", calls)
	}
}

func TestMembers_StatusVariantsAreSeparateKeys(t *testing.T) {
	svc, srv := newService(t)
	srv.Handle("GET", "/admin/members", func(r *http.Request) testsupport.Response {
		if r.URL.Query().Get("status") == portal.MemberStatusPending {
			return testsupport.Success("members", pendingMembers(t))
		}
		return testsupport.Success("members", []portal.Member{{ID: "M9", Status: portal.MemberStatusActive}})
	})

	ctx := context.Background()
	pending := svc.Members(ctx, portal.MemberStatusPending)
	active := svc.Members(ctx, portal.MemberStatusActive)

	if len(pending.Data) != 3 || len(active.Data) != 1 {
		t.Errorf("variants leaked into each other: pending=%d active=%d",
			len(pending.Data), len(active.Data))
	}
	if calls := srv.Calls("GET", "/admin/members"); calls != 2 {
		t.Errorf("expected 2 network calls, got %d", calls)
	}
}

func TestMember_DeferredUntilIDKnown(t *testing.T) {
	svc, srv := newService(t)
	srv.Respond("GET", "/admin/members/M1", testsupport.Success("data", pendingMembers(t)[0]))

	ctx := context.Background()

	res := svc.Member(ctx, "")
	if res.IsLoading || res.IsError {
		t.Errorf("fetch with empty id must stay idle: %+v", res)
	}
	if calls := srv.Calls("GET", "/admin/members/M1"); calls != 0 {
		t.Errorf("deferred fetch hit the network %d times", calls)
	}

	res = svc.Member(ctx, "M1")
	if res.IsError {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Data.Name != "Alice" {
		t.Errorf("unexpected member %+v", res.Data)
	}
}

func TestUpdateMemberStatus_InvalidatesEveryMemberList(t *testing.T) {
	svc, srv := newService(t)
	srv.Respond("GET", "/admin/members", testsupport.Success("members", pendingMembers(t)))
	srv.Respond("PUT", "/admin/update-status/M1", testsupport.Success("data", portal.Member{
		ID: "M1", Status: portal.MemberStatusActive,
	}))

	ctx := context.Background()
	svc.Members(ctx, portal.MemberStatusPending)
	svc.Members(ctx, portal.MemberStatusActive)

	updated, err := svc.UpdateMemberStatus().MutateAsync(ctx, adminapi.UpdateMemberStatusInput{
		MemberID: "M1",
		Status:   portal.MemberStatusActive,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != portal.MemberStatusActive {
		t.Errorf("unexpected mutation result %+v", updated)
	}

	// Both status variants refetch on next read.
	svc.Members(ctx, portal.MemberStatusPending)
	svc.Members(ctx, portal.MemberStatusActive)
	if calls := srv.Calls("GET", "/admin/members"); calls != 4 {
		t.Errorf("expected 4 list calls (2 initial + 2 refetches), got %d", calls)
	}
}

func TestUpdateMemberStatus_InvalidInputNeverReachesNetwork(t *testing.T) {
	svc, srv := newService(t)
	srv.Respond("PUT", "/admin/update-status/M1", testsupport.Success("data", portal.Member{}))

	_, err := svc.UpdateMemberStatus().MutateAsync(context.Background(), adminapi.UpdateMemberStatusInput{
		MemberID: "M1",
		Status:   "Suspended", // not a known status
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if calls := srv.Calls("PUT", "/admin/update-status/M1"); calls != 0 {
		t.Errorf("invalid input reached the network %d times", calls)
	}
}

func TestReplyTicket_MarksSolvedAndInvalidatesTickets(t *testing.T) {
	svc, srv := newService(t)
	srv.Respond("GET", "/admin/tickets", testsupport.Success("tickets", []portal.Ticket{
		{ID: "T1", Subject: "login issue", Status: portal.TicketStatusPending},
	}))
	var sentBody map[string]string
	srv.Handle("PUT", "/admin/ticket/T1", func(r *http.Request) testsupport.Response {
		decodeJSONBody(t, r, &sentBody)
		return testsupport.Success("data", portal.Ticket{ID: "T1", Status: portal.TicketStatusSolved})
	})

	ctx := context.Background()
	svc.Tickets(ctx, portal.TicketStatusPending)

	ticket, err := svc.ReplyTicket().MutateAsync(ctx, adminapi.ReplyTicketInput{
		TicketID: "T1",
		Reply:    "Please reset your password.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if ticket.Status != portal.TicketStatusSolved {
		t.Errorf("unexpected ticket %+v", ticket)
	}
	if sentBody["status"] != portal.TicketStatusSolved {
		t.Errorf("reply body must mark the ticket solved, sent %v", sentBody)
	}

	svc.Tickets(ctx, portal.TicketStatusPending)
	if calls := srv.Calls("GET", "/admin/tickets"); calls != 2 {
		t.Errorf("ticket list must refetch after reply, got %d calls", calls)
	}
}

func TestGenerateEpins_AssignsBatchRefAndInvalidatesSummary(t *testing.T) {
	svc, srv := newService(t)
	srv.Respond("GET", "/admin/epins", testsupport.Success("epins", portal.EpinSummary{Total: 10, Available: 4}))

	var sent adminapi.GenerateEpinsInput
	srv.Handle("POST", "/admin/epins/generate", func(r *http.Request) testsupport.Response {
		decodeJSONBody(t, r, &sent)
		return testsupport.Success("epins", []portal.Epin{{Code: "PIN-1"}, {Code: "PIN-2"}})
	})

	ctx := context.Background()
	svc.EpinSummary(ctx)

	pins, err := svc.GenerateEpins().MutateAsync(ctx, adminapi.GenerateEpinsInput{
		PackageID: "P1",
		Count:     2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(pins) != 2 {
		t.Errorf("expected 2 pins, got %d", len(pins))
	}
	if sent.BatchRef == "" {
		t.Error("expected a client-assigned batch reference")
	}

	svc.EpinSummary(ctx)
	if calls := srv.Calls("GET", "/admin/epins"); calls != 2 {
		t.Errorf("summary must refetch after generation, got %d calls", calls)
	}
}

func TestGenerateEpins_CountBounds(t *testing.T) {
	svc, srv := newService(t)

	for _, count := range []int{0, 501} {
		_, err := svc.GenerateEpins().MutateAsync(context.Background(), adminapi.GenerateEpinsInput{
			PackageID: "P1",
			Count:     count,
		})
		if err == nil {
			t.Errorf("count %d should fail validation", count)
		}
	}
	if calls := srv.Calls("POST", "/admin/epins/generate"); calls != 0 {
		t.Errorf("invalid input reached the network %d times", calls)
	}
}

func TestRewardLoanAction_InvalidatesAllStatusLists(t *testing.T) {
	svc, srv := newService(t)
	srv.Respond("GET", "/admin/reward-loans/Processing", testsupport.Success("data", []portal.LoanRecord{
		{ID: "L1", MemberID: "M1", Status: portal.LoanStatusProcessing},
	}))
	srv.Respond("GET", "/admin/reward-loans/Approved", testsupport.Success("data", []portal.LoanRecord{}))
	srv.Respond("PUT", "/admin/reward-loans/M1/approve", testsupport.Success("data", portal.LoanRecord{
		ID: "L1", Status: portal.LoanStatusApproved,
	}))

	ctx := context.Background()
	svc.RewardLoans(ctx, portal.LoanStatusProcessing)
	svc.RewardLoans(ctx, portal.LoanStatusApproved)

	loan, err := svc.RewardLoanAction().MutateAsync(ctx, adminapi.RewardLoanActionInput{
		MemberID: "M1",
		Action:   adminapi.RewardLoanActionApprove,
	})
	if err != nil {
		t.Fatal(err)
	}
	if loan.Status != portal.LoanStatusApproved {
		t.Errorf("unexpected loan %+v", loan)
	}

	// The record moved between lists; both sides refetch.
	svc.RewardLoans(ctx, portal.LoanStatusProcessing)
	svc.RewardLoans(ctx, portal.LoanStatusApproved)
	if calls := srv.Calls("GET", "/admin/reward-loans/Processing"); calls != 2 {
		t.Errorf("processing list calls = %d, want 2", calls)
	}
	if calls := srv.Calls("GET", "/admin/reward-loans/Approved"); calls != 2 {
		t.Errorf("approved list calls = %d, want 2", calls)
	}
}

func TestRewardLoanAction_RejectsUnknownAction(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.RewardLoanAction().MutateAsync(context.Background(), adminapi.RewardLoanActionInput{
		MemberID: "M1",
		Action:   "escalate",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown action")
	}
}

func TestNewsAndHolidays_CreateInvalidatesList(t *testing.T) {
	svc, srv := newService(t)
	srv.Respond("GET", "/admin/news", testsupport.Success("news", []portal.News{{ID: "N1"}}))
	srv.Respond("POST", "/admin/news", testsupport.Success("data", portal.News{ID: "N2", Title: "Maintenance"}))
	srv.Respond("GET", "/admin/holidays", testsupport.Success("holiday", []portal.Holiday{}))
	srv.Respond("POST", "/admin/holidays", testsupport.Success("holiday", portal.Holiday{ID: "H1"}))

	ctx := context.Background()
	svc.News(ctx)
	svc.Holidays(ctx)

	if _, err := svc.CreateNews().MutateAsync(ctx, adminapi.NewsInput{Title: "Maintenance", Body: "Sunday 02:00"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateHoliday().MutateAsync(ctx, adminapi.HolidayInput{Name: "Founders Day", Date: "2026-10-01"}); err != nil {
		t.Fatal(err)
	}

	svc.News(ctx)
	svc.Holidays(ctx)
	if calls := srv.Calls("GET", "/admin/news"); calls != 2 {
		t.Errorf("news list calls = %d, want 2", calls)
	}
	if calls := srv.Calls("GET", "/admin/holidays"); calls != 2 {
		t.Errorf("holiday list calls = %d, want 2", calls)
	}
}

func TestCreateHoliday_RejectsBadDate(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateHoliday().MutateAsync(context.Background(), adminapi.HolidayInput{
		Name: "Founders Day",
		Date: "01/10/2026",
	})
	if err == nil {
		t.Fatal("expected validation error for non ISO date")
	}
}
