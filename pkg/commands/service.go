package commands

import (
	"github.com/NvMustang/fomo-sub000/pkg/app"
	"github.com/NvMustang/fomo-sub000/pkg/engine"
	"github.com/NvMustang/fomo-sub000/pkg/identity"
	"github.com/NvMustang/fomo-sub000/pkg/remote"
	"github.com/NvMustang/fomo-sub000/pkg/store"
)

// newService assembles the store, remote sink and engine for one command
// invocation. The returned cleanup flushes in-flight submissions and closes
// the sink; callers defer it.
func newService(userFlag string) (*app.Service, string, func(), error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, "", nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, "", nil, err
	}
	sink, err := remote.NewBoltSink(cfg.RemotePath())
	if err != nil {
		return nil, "", nil, err
	}

	svc := &app.Service{Store: p, Engine: engine.New(p, sink)}

	user := userFlag
	if user == "" {
		if user, err = identity.Resolve(cfg); err != nil {
			_ = sink.Close()
			return nil, "", nil, err
		}
	}

	cleanup := func() {
		svc.Wait()
		_ = sink.Close()
	}
	return svc, user, cleanup, nil
}
