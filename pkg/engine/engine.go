package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/NvMustang/fomo-sub000/pkg/history"
	"github.com/NvMustang/fomo-sub000/pkg/response"
)

// Mutation is the tuple forwarded to the remote persistence collaborator.
// InvitedBy is empty except for invitations written on behalf of another
// user.
type Mutation struct {
	UserID    string            `json:"userId"`
	EventID   string            `json:"eventId"`
	Initial   response.Response `json:"initialResponse,omitempty"`
	Final     response.Response `json:"finalResponse"`
	InvitedBy string            `json:"invitedByUserId,omitempty"`
}

// Remote accepts mutations for durable persistence. Submissions happen off
// the caller's critical path; a returned error triggers rollback.
type Remote interface {
	Submit(ctx context.Context, m Mutation) error
}

// Engine appends history entries optimistically and reconciles remote
// failures by rolling back the exact entry it appended, never a newer one.
type Engine struct {
	Store  history.Store
	Remote Remote
	Log    *logrus.Logger

	wg sync.WaitGroup
}

func New(store history.Store, remote Remote) *Engine {
	return &Engine{Store: store, Remote: remote}
}

// SetResponse records a new response. The store reflects the change before
// this returns; remote submission runs asynchronously.
func (g *Engine) SetResponse(ctx context.Context, userID, eventID string, final response.Response) (*history.Entry, error) {
	return g.record(ctx, userID, eventID, final, "")
}

// Invite records an invited entry on behalf of another user.
func (g *Engine) Invite(ctx context.Context, userID, eventID, invitedBy string) (*history.Entry, error) {
	if invitedBy == "" {
		return nil, errors.New("engine: invite requires the inviting user id")
	}
	return g.record(ctx, userID, eventID, response.Invited, invitedBy)
}

func (g *Engine) record(ctx context.Context, userID, eventID string, final response.Response, invitedBy string) (*history.Entry, error) {
	if g.Store == nil {
		return nil, errors.New("engine: no store configured")
	}
	if userID == "" || eventID == "" {
		return nil, errors.New("engine: user and event ids required")
	}

	initial := response.None
	if latest := g.Store.Latest(userID, eventID); latest != nil {
		initial = latest.Final
	}

	e := history.New(userID, eventID, initial, final)
	e.InvitedBy = invitedBy
	if err := g.Store.Append(e); err != nil {
		return nil, err
	}

	if g.Remote != nil {
		m := Mutation{
			UserID:    userID,
			EventID:   eventID,
			Initial:   initial,
			Final:     final,
			InvitedBy: invitedBy,
		}
		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			if err := g.Remote.Submit(ctx, m); err != nil {
				g.rollback(e, err)
			}
		}()
	}
	return e, nil
}

// rollback removes the appended entry, but only while it is still the most
// recent one for its pair. A newer entry supersedes the failed write and
// makes the stale completion irrelevant. The winner check lives inside the
// store's Remove so a concurrent append can never be deleted here.
func (g *Engine) rollback(e *history.Entry, cause error) {
	if removed := g.Store.Remove(e.UserID, e.EventID, e.ID); removed == nil {
		g.logger().WithFields(logrus.Fields{
			"user":  e.UserID,
			"event": e.EventID,
			"entry": e.ID,
		}).WithError(cause).Debug("engine: superseded entry, skipping rollback")
		return
	}
	g.logger().WithFields(logrus.Fields{
		"user":  e.UserID,
		"event": e.EventID,
		"entry": e.ID,
	}).WithError(cause).Warn("engine: remote submission failed, rolled back")
}

// Wait blocks until every in-flight remote submission has completed. CLI
// paths call this before exiting; UIs never need to.
func (g *Engine) Wait() {
	g.wg.Wait()
}

func (g *Engine) logger() *logrus.Logger {
	if g.Log != nil {
		return g.Log
	}
	return logrus.StandardLogger()
}
