package app

import (
	"context"
	"errors"
	"time"

	"github.com/NvMustang/fomo-sub000/pkg/engine"
	"github.com/NvMustang/fomo-sub000/pkg/event"
	"github.com/NvMustang/fomo-sub000/pkg/eventsource"
	"github.com/NvMustang/fomo-sub000/pkg/filter"
	"github.com/NvMustang/fomo-sub000/pkg/history"
	"github.com/NvMustang/fomo-sub000/pkg/period"
	"github.com/NvMustang/fomo-sub000/pkg/response"
	"github.com/NvMustang/fomo-sub000/pkg/session"
)

// Service is the consumer surface: it composes the history store, the
// optimistic engine and an event source so CLIs and UIs share one read/write
// path.
type Service struct {
	Store  history.Store
	Engine *engine.Engine
	Source eventsource.Source

	// Now is overridable in tests.
	Now      func() time.Time
	Location *time.Location
}

// Respond records a response change optimistically.
func (s *Service) Respond(ctx context.Context, userID, eventID string, r response.Response) (*history.Entry, error) {
	if s.Engine == nil {
		return nil, errors.New("app: no engine configured")
	}
	return s.Engine.SetResponse(ctx, userID, eventID, r)
}

// Invite records an invitation for userID written on behalf of invitedBy.
func (s *Service) Invite(ctx context.Context, userID, eventID, invitedBy string) (*history.Entry, error) {
	if s.Engine == nil {
		return nil, errors.New("app: no engine configured")
	}
	return s.Engine.Invite(ctx, userID, eventID, invitedBy)
}

// View runs one open→close detail view session. A nil selection means the
// user only looked; otherwise the selection is applied before closing. The
// emitted entry, if any, is returned.
func (s *Service) View(ctx context.Context, userID, eventID string, selection *response.Response) *history.Entry {
	sess := session.New(s.Engine)
	sess.Open(userID, eventID)
	if selection != nil {
		sess.SelectionChange(*selection)
	}
	return sess.Close(ctx)
}

// Resolved returns the latest finalResponse per event for one user.
func (s *Service) Resolved(userID string) map[string]response.Response {
	out := make(map[string]response.Response)
	if s.Store == nil {
		return out
	}
	for eventID, e := range s.Store.LatestByEvent(userID) {
		out[eventID] = e.Final
	}
	return out
}

// Who lists, for one event, every user with a live reaction or a pending
// invitation. Seen and cleared markers resolve to no reaction and are
// omitted.
func (s *Service) Who(eventID string) map[string]response.Response {
	out := make(map[string]response.Response)
	if s.Store == nil {
		return out
	}
	for userID, e := range s.Store.LatestByUser(eventID) {
		if e.Final.Standing() || e.Final == response.Invited {
			out[userID] = e.Final
		}
	}
	return out
}

// Events loads the current snapshot from the configured source.
func (s *Service) Events(ctx context.Context) ([]*event.Event, error) {
	if s.Source == nil {
		return nil, errors.New("app: no event source configured")
	}
	return s.Source.Events(ctx)
}

// Feed applies the filter pipeline for userID and groups the visible events
// into calendar buckets.
func (s *Service) Feed(ctx context.Context, userID string, opts filter.Options) ([]*event.Event, []period.Period, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts = s.contextualize(userID, opts)
	visible := filter.Apply(events, opts)
	grouped := period.GroupByPeriods(visible, opts.Now, opts.Location)
	return visible, grouped, nil
}

// TagCounts computes the live badge counts for the tag control.
func (s *Service) TagCounts(ctx context.Context, userID string, opts filter.Options) (map[string]int, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}
	opts = s.contextualize(userID, opts)
	return filter.CountByOption(events, opts, filter.TagExtractor, filter.TagSetter), nil
}

// PeriodCounts computes the live badge counts for the calendar control.
func (s *Service) PeriodCounts(ctx context.Context, userID string, opts filter.Options) (map[string]int, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}
	opts = s.contextualize(userID, opts)
	return filter.CountByOption(events, opts, filter.PeriodExtractor(opts.Now, opts.Location), filter.PeriodSetter), nil
}

// ResponseCounts computes the live badge counts for the response control.
func (s *Service) ResponseCounts(ctx context.Context, userID string, opts filter.Options) (map[string]int, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}
	opts = s.contextualize(userID, opts)
	return filter.CountByOption(events, opts, filter.ResponseExtractor(opts.Resolved), filter.ResponseSetter), nil
}

// History lists every recorded entry, oldest first.
func (s *Service) History(ctx context.Context) ([]*history.Entry, error) {
	if s.Store == nil {
		return nil, errors.New("app: no store configured")
	}
	return s.Store.List(ctx), nil
}

// Wait flushes in-flight remote submissions; CLI paths call it before exit.
func (s *Service) Wait() {
	if s.Engine != nil {
		s.Engine.Wait()
	}
}

func (s *Service) contextualize(userID string, opts filter.Options) filter.Options {
	if opts.Now.IsZero() {
		if s.Now != nil {
			opts.Now = s.Now()
		} else {
			opts.Now = time.Now()
		}
	}
	if opts.Location == nil {
		if s.Location != nil {
			opts.Location = s.Location
		} else {
			opts.Location = time.Local
		}
	}
	if opts.Resolved == nil {
		opts.Resolved = s.Resolved(userID)
	}
	return opts
}
