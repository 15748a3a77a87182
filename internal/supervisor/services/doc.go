// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

/*
Package services adapts server components to suture's Serve(ctx) error
contract.

# Available Services

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine;
canceling the context calls Shutdown with a bounded timeout so in-flight
requests can drain.

StoreWarmupService resolves the favorites and history store once at boot
so the first user request does not pay for opening the database. It
always returns suture.ErrDoNotRestart.

CacheGCService periodically reclaims Badger value log space when the
catalog cache runs on the badger backend.

Every service implements fmt.Stringer; suture logs the name with each
lifecycle event.
*/
package services
