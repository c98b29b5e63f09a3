package session

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/NvMustang/fomo-sub000/pkg/engine"
	"github.com/NvMustang/fomo-sub000/pkg/history"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

// State tracks the lifecycle of one transient detail view. A session is
// single-use: Unopened → Opened → Closed, no reopening.
type State int

const (
	Unopened State = iota
	Opened
	Closed
)

// Session captures the response visible when an event detail view opens and
// reconciles it against the response held at close time. Only the diff is
// persisted: a real transition, a seen marker, or nothing.
type Session struct {
	Engine *engine.Engine
	Log    *logrus.Logger

	userID  string
	eventID string
	state   State
	initial response.Response
	current response.Response
	touched bool
}

func New(eng *engine.Engine) *Session {
	return &Session{Engine: eng}
}

func (s *Session) State() State { return s.state }

// Open resolves the current response for the pair and captures it as the
// session baseline. Seen and invited are not standing reactions, so the
// baseline normalizes them to none.
func (s *Session) Open(userID, eventID string) {
	if s.state != Unopened {
		return
	}
	s.userID = userID
	s.eventID = eventID
	s.state = Opened

	s.initial = response.Normalize(s.resolve())
	s.current = s.initial
	s.touched = false
}

// SelectionChange records the user toggling a response button while the view
// is open. It never touches the store; Cleared expresses an explicit reset.
func (s *Session) SelectionChange(v response.Response) {
	if s.state != Opened {
		return
	}
	s.current = v
	s.touched = true
}

// Close diffs the open-state against the close-state and emits at most one
// history entry:
//
//  1. no standing reaction before or after (an unacted-on invitation
//     included) → a seen marker
//  2. the selection changed (including to cleared) → the transition
//  3. otherwise → nothing
//
// A cleared baseline also normalizes to none at open, so re-viewing a
// previously cleared event falls under case 1 and records a fresh seen
// marker rather than closing silently.
//
// Close sits in a UI teardown path, so every failure degrades to "emit
// nothing" instead of propagating.
func (s *Session) Close(ctx context.Context) (emitted *history.Entry) {
	if s.state != Opened {
		return nil
	}
	s.state = Closed

	defer func() {
		if r := recover(); r != nil {
			s.logger().WithField("event", s.eventID).Warnf("session: close recovered: %v", r)
			emitted = nil
		}
	}()

	latest := s.current
	if !s.touched {
		latest = response.Normalize(s.resolve())
	}

	switch {
	case s.initial == response.None && latest == response.None:
		// Viewed without any standing reaction. An unacted-on invitation
		// lands here too since invited normalizes to none at open.
		return s.emit(ctx, response.Seen)
	case latest != s.initial:
		return s.emit(ctx, latest)
	}
	return nil
}

func (s *Session) emit(ctx context.Context, final response.Response) *history.Entry {
	if s.Engine == nil {
		return nil
	}
	e, err := s.Engine.SetResponse(ctx, s.userID, s.eventID, final)
	if err != nil {
		s.logger().WithField("event", s.eventID).WithError(err).Warn("session: close emit failed")
		return nil
	}
	return e
}

func (s *Session) resolve() response.Response {
	if s.Engine == nil || s.Engine.Store == nil {
		return response.None
	}
	if latest := s.Engine.Store.Latest(s.userID, s.eventID); latest != nil {
		return latest.Final
	}
	return response.None
}

func (s *Session) logger() *logrus.Logger {
	if s.Log != nil {
		return s.Log
	}
	return logrus.StandardLogger()
}
