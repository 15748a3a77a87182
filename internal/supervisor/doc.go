// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package supervisor runs the long-lived parts of the API server under a
suture v4 supervisor tree.

# Overview

	RootSupervisor ("moodreel")
	├── DataSupervisor ("data-layer")
	│   ├── StoreWarmupService (one shot)
	│   └── CacheGCService (badger cache backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff.
Supervisor events are logged through sutureslog, which writes to an
slog.Logger. The server passes logging.NewSlogLogger() so the events land
in the same zerolog output as everything else.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Configuration

Zero TreeConfig fields fall back to suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Service Contract

	nil              -> stopped cleanly, not restarted
	error            -> crashed, restarted
	suture.ErrDoNotRestart -> finished, removed from the tree

The relational store is not a service. It opens lazily on first use and
keeps its outcome for the life of the process; the warmup service only
triggers that first open early.

# Debugging Shutdown

UnstoppedServiceReport lists services that did not return within
ShutdownTimeout after the root context was canceled.
*/
package supervisor
