// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestHistoryAppendAndList(t *testing.T) {
	h := setupTestHandle(t)
	store := NewHistory(h)
	store.now = steppedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := store.Append(ctx, "alice", "sad after a breakup", []string{"romance", "drama"}, 12)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	second, err := store.Append(ctx, "alice", "need a laugh", []string{"comedy"}, 8)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := store.Append(ctx, "bob", "bored", nil, 0); err != nil {
		t.Fatalf("Append(bob) error = %v", err)
	}

	got, err := store.List(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]string{second.ID, first.ID}, []string{got[0].ID, got[1].ID}); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(*first, got[1]); diff != "" {
		t.Errorf("stored entry mismatch (-want +got):\n%s", diff)
	}

	bob, err := store.List(ctx, "bob", 0)
	if err != nil || len(bob) != 1 {
		t.Fatalf("List(bob) = %v, %v", bob, err)
	}
	if bob[0].Genres == nil || len(bob[0].Genres) != 0 {
		t.Errorf("nil genres should be stored as an empty list, got %#v", bob[0].Genres)
	}
}

func TestHistoryListLimit(t *testing.T) {
	h := setupTestHandle(t)
	store := NewHistory(h)
	store.now = steppedClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if _, err := store.Append(ctx, "alice", fmt.Sprintf("mood %d", i), []string{"drama"}, i); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultHistoryLimit},
		{-3, DefaultHistoryLimit},
		{5, 5},
		{500, 25},
	}
	for _, tt := range tests {
		got, err := store.List(ctx, "alice", tt.limit)
		if err != nil {
			t.Fatalf("List(%d) error = %v", tt.limit, err)
		}
		if len(got) != tt.want {
			t.Errorf("List(%d) returned %d entries, want %d", tt.limit, len(got), tt.want)
		}
	}

	latest, _ := store.List(ctx, "alice", 1)
	if latest[0].Mood != "mood 24" {
		t.Errorf("newest entry = %q, want %q", latest[0].Mood, "mood 24")
	}
}

func TestClampHistoryLimit(t *testing.T) {
	t.Parallel()

	for in, want := range map[int]int{-1: 20, 0: 20, 1: 1, 20: 20, 100: 100, 101: 100} {
		if got := ClampHistoryLimit(in); got != want {
			t.Errorf("ClampHistoryLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestHistoryClear(t *testing.T) {
	h := setupTestHandle(t)
	store := NewHistory(h)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Append(ctx, "alice", "mood", []string{"drama"}, 1); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Append(ctx, "bob", "mood", []string{"drama"}, 1); err != nil {
		t.Fatal(err)
	}

	n, err := store.Clear(ctx, "alice")
	if err != nil || n != 3 {
		t.Fatalf("Clear() = %d, %v; want 3", n, err)
	}
	if got, _ := store.List(ctx, "alice", 0); len(got) != 0 {
		t.Errorf("alice still has %d entries", len(got))
	}
	if got, _ := store.List(ctx, "bob", 0); len(got) != 1 {
		t.Errorf("bob's history must survive alice's clear, got %d", len(got))
	}
}

func TestHistoryDeleteIsScopedToOwner(t *testing.T) {
	h := setupTestHandle(t)
	store := NewHistory(h)
	ctx := context.Background()

	entry, err := store.Append(ctx, "alice", "sad", []string{"drama"}, 12)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, "bob", entry.ID); err != nil {
		t.Fatalf("foreign Delete() should be a silent no-op, got %v", err)
	}
	if got, _ := store.List(ctx, "alice", 0); len(got) != 1 {
		t.Fatal("foreign Delete() removed alice's entry")
	}

	if err := store.Delete(ctx, "alice", "does-not-exist"); err != nil {
		t.Errorf("Delete() of a missing id should be a no-op, got %v", err)
	}

	if err := store.Delete(ctx, "alice", entry.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := store.List(ctx, "alice", 0); len(got) != 0 {
		t.Errorf("entry still present after owner Delete()")
	}
}
