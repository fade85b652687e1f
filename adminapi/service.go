// Package adminapi exposes the administrative surface of the portal: member
// lifecycle, support tickets, announcements, holidays, e-pins and reward
// loans. Every read goes through the query cache; every write is a Mutation
// that declares which cached resources it dirties.
package adminapi

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/goliatone/go-portal-client/portal"
	"github.com/goliatone/go-portal-client/query"
	"github.com/goliatone/go-portal-client/transport"
)

// Cache resource names. Queries and mutations must agree on these; the
// serializer's case normalization covers spelling drift, not different words.
const (
	ResourceMembers     = "members"
	ResourceTickets     = "tickets"
	ResourceNews        = "news"
	ResourceHolidays    = "holidays"
	ResourceEpins       = "epins"
	ResourceRewardLoans = "reward_loans"
)

// MembersKey is the cache key for the member list filtered by status.
func MembersKey(status string) query.Key {
	return query.NewKey(ResourceMembers, status)
}

// MemberKey is the cache key for a single member.
func MemberKey(id string) query.Key {
	return query.NewKey(ResourceMembers, "id", id)
}

// TicketsKey is the cache key for the ticket list filtered by status.
func TicketsKey(status string) query.Key {
	return query.NewKey(ResourceTickets, status)
}

// NewsKey is the cache key for the announcement list.
func NewsKey() query.Key {
	return query.NewKey(ResourceNews)
}

// HolidaysKey is the cache key for the holiday calendar.
func HolidaysKey() query.Key {
	return query.NewKey(ResourceHolidays)
}

// EpinSummaryKey is the cache key for the e-pin summary.
func EpinSummaryKey() query.Key {
	return query.NewKey(ResourceEpins, "summary")
}

// RewardLoansKey is the cache key for reward loans filtered by status.
func RewardLoansKey(status string) query.Key {
	return query.NewKey(ResourceRewardLoans, status)
}

// Service is the admin API client.
type Service struct {
	api   *transport.Client
	cache *query.Client

	updateMemberStatus *query.Mutation[UpdateMemberStatusInput, portal.Member]
	replyTicket        *query.Mutation[ReplyTicketInput, portal.Ticket]
	createNews         *query.Mutation[NewsInput, portal.News]
	updateNews         *query.Mutation[NewsInput, portal.News]
	createHoliday      *query.Mutation[HolidayInput, portal.Holiday]
	generateEpins      *query.Mutation[GenerateEpinsInput, []portal.Epin]
	rewardLoanAction   *query.Mutation[RewardLoanActionInput, portal.LoanRecord]
}

// New wires the admin service over the shared transport and query cache.
func New(api *transport.Client, cache *query.Client) *Service {
	s := &Service{api: api, cache: cache}

	s.updateMemberStatus = query.NewMutation(cache, "update_member_status", s.doUpdateMemberStatus,
		query.WithInvalidateResources(ResourceMembers),
	)
	s.replyTicket = query.NewMutation(cache, "reply_ticket", s.doReplyTicket,
		query.WithInvalidateResources(ResourceTickets),
	)
	s.createNews = query.NewMutation(cache, "create_news", s.doCreateNews,
		query.WithInvalidateKeys(NewsKey()),
	)
	s.updateNews = query.NewMutation(cache, "update_news", s.doUpdateNews,
		query.WithInvalidateKeys(NewsKey()),
	)
	s.createHoliday = query.NewMutation(cache, "create_holiday", s.doCreateHoliday,
		query.WithInvalidateKeys(HolidaysKey()),
	)
	s.generateEpins = query.NewMutation(cache, "generate_epins", s.doGenerateEpins,
		query.WithInvalidateResources(ResourceEpins),
	)
	s.rewardLoanAction = query.NewMutation(cache, "reward_loan_action", s.doRewardLoanAction,
		// A transition moves the record between status lists, so every
		// status variant of the resource is dirty.
		query.WithInvalidateResources(ResourceRewardLoans),
	)

	return s
}

// Members lists members, optionally filtered by status.
func (s *Service) Members(ctx context.Context, status string) query.Result[[]portal.Member] {
	return query.Fetch(ctx, s.cache, MembersKey(status), func(ctx context.Context) ([]portal.Member, error) {
		params := url.Values{}
		if status != "" {
			params.Set("status", status)
		}
		var members []portal.Member
		if err := s.api.Get(ctx, "/admin/members", params, "members", &members); err != nil {
			return nil, err
		}
		return members, nil
	})
}

// Member fetches a single member. The fetch is deferred until id is known.
func (s *Service) Member(ctx context.Context, id string) query.Result[portal.Member] {
	return query.Fetch(ctx, s.cache, MemberKey(id), func(ctx context.Context) (portal.Member, error) {
		var member portal.Member
		err := s.api.Get(ctx, "/admin/members/"+id, nil, "data", &member)
		return member, err
	}, query.WithEnabled(id != ""))
}

// UpdateMemberStatus returns the member status-transition mutation.
func (s *Service) UpdateMemberStatus() *query.Mutation[UpdateMemberStatusInput, portal.Member] {
	return s.updateMemberStatus
}

func (s *Service) doUpdateMemberStatus(ctx context.Context, in UpdateMemberStatusInput) (portal.Member, error) {
	var member portal.Member
	err := s.api.Put(ctx, "/admin/update-status/"+in.MemberID, in, "data", &member)
	return member, err
}

// Tickets lists support tickets by status (pending or solved).
func (s *Service) Tickets(ctx context.Context, status string) query.Result[[]portal.Ticket] {
	return query.Fetch(ctx, s.cache, TicketsKey(status), func(ctx context.Context) ([]portal.Ticket, error) {
		params := url.Values{}
		if status != "" {
			params.Set("status", status)
		}
		var tickets []portal.Ticket
		if err := s.api.Get(ctx, "/admin/tickets", params, "tickets", &tickets); err != nil {
			return nil, err
		}
		return tickets, nil
	})
}

// ReplyTicket returns the ticket-reply mutation.
func (s *Service) ReplyTicket() *query.Mutation[ReplyTicketInput, portal.Ticket] {
	return s.replyTicket
}

func (s *Service) doReplyTicket(ctx context.Context, in ReplyTicketInput) (portal.Ticket, error) {
	body := map[string]string{"reply": in.Reply, "status": portal.TicketStatusSolved}
	var ticket portal.Ticket
	err := s.api.Put(ctx, "/admin/ticket/"+in.TicketID, body, "data", &ticket)
	return ticket, err
}

// News lists announcements.
func (s *Service) News(ctx context.Context) query.Result[[]portal.News] {
	return query.Fetch(ctx, s.cache, NewsKey(), func(ctx context.Context) ([]portal.News, error) {
		var news []portal.News
		if err := s.api.Get(ctx, "/admin/news", nil, "news", &news); err != nil {
			return nil, err
		}
		return news, nil
	})
}

// CreateNews returns the announcement-creation mutation.
func (s *Service) CreateNews() *query.Mutation[NewsInput, portal.News] {
	return s.createNews
}

func (s *Service) doCreateNews(ctx context.Context, in NewsInput) (portal.News, error) {
	var news portal.News
	err := s.api.Post(ctx, "/admin/news", in, "data", &news)
	return news, err
}

// UpdateNews returns the announcement-update mutation.
func (s *Service) UpdateNews() *query.Mutation[NewsInput, portal.News] {
	return s.updateNews
}

func (s *Service) doUpdateNews(ctx context.Context, in NewsInput) (portal.News, error) {
	var news portal.News
	err := s.api.Put(ctx, "/admin/news/"+in.NewsID, in, "data", &news)
	return news, err
}

// Holidays lists the holiday calendar.
func (s *Service) Holidays(ctx context.Context) query.Result[[]portal.Holiday] {
	return query.Fetch(ctx, s.cache, HolidaysKey(), func(ctx context.Context) ([]portal.Holiday, error) {
		var holidays []portal.Holiday
		if err := s.api.Get(ctx, "/admin/holidays", nil, "holiday", &holidays); err != nil {
			return nil, err
		}
		return holidays, nil
	})
}

// CreateHoliday returns the holiday-creation mutation.
func (s *Service) CreateHoliday() *query.Mutation[HolidayInput, portal.Holiday] {
	return s.createHoliday
}

func (s *Service) doCreateHoliday(ctx context.Context, in HolidayInput) (portal.Holiday, error) {
	var holiday portal.Holiday
	err := s.api.Post(ctx, "/admin/holidays", in, "holiday", &holiday)
	return holiday, err
}

// EpinSummary fetches the e-pin counts and pin list.
func (s *Service) EpinSummary(ctx context.Context) query.Result[portal.EpinSummary] {
	return query.Fetch(ctx, s.cache, EpinSummaryKey(), func(ctx context.Context) (portal.EpinSummary, error) {
		var summary portal.EpinSummary
		err := s.api.Get(ctx, "/admin/epins", nil, "epins", &summary)
		return summary, err
	})
}

// GenerateEpins returns the pin-generation mutation. A batch reference is
// assigned client-side when the caller does not provide one.
func (s *Service) GenerateEpins() *query.Mutation[GenerateEpinsInput, []portal.Epin] {
	return s.generateEpins
}

func (s *Service) doGenerateEpins(ctx context.Context, in GenerateEpinsInput) ([]portal.Epin, error) {
	if in.BatchRef == "" {
		in.BatchRef = uuid.NewString()
	}
	var pins []portal.Epin
	if err := s.api.Post(ctx, "/admin/epins/generate", in, "epins", &pins); err != nil {
		return nil, err
	}
	return pins, nil
}

// RewardLoans lists reward-loan requests by status (Processing, Approved or
// Rejected).
func (s *Service) RewardLoans(ctx context.Context, status string) query.Result[[]portal.LoanRecord] {
	return query.Fetch(ctx, s.cache, RewardLoansKey(status), func(ctx context.Context) ([]portal.LoanRecord, error) {
		var loans []portal.LoanRecord
		if err := s.api.Get(ctx, "/admin/reward-loans/"+status, nil, "data", &loans); err != nil {
			return nil, err
		}
		return loans, nil
	})
}

// RewardLoanAction returns the approve/reject transition mutation.
func (s *Service) RewardLoanAction() *query.Mutation[RewardLoanActionInput, portal.LoanRecord] {
	return s.rewardLoanAction
}

func (s *Service) doRewardLoanAction(ctx context.Context, in RewardLoanActionInput) (portal.LoanRecord, error) {
	var loan portal.LoanRecord
	err := s.api.Put(ctx, "/admin/reward-loans/"+in.MemberID+"/"+in.Action, nil, "data", &loan)
	return loan, err
}
