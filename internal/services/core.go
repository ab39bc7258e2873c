// Package services – Core
//
// This file defines Core, the shared state bundle behind every service:
// the in-memory registry, the inventory ledger, and the durable store.
// A single mutex serializes all mutating operations so that the
// validate / deduct / persist / commit sequence of each operation is
// observed atomically by every other caller.
//
// Persistence discipline: mutations deduct or stage in memory first, then
// persist the touched collections, and commit staged entities to the
// registry only after every durable write succeeded. On a store failure the
// ledger is restored, collections already written in the same sequence are
// re-saved from the untouched registry, and ErrPersistenceFailure (wrapping
// the cause) is returned, so a failed write leaves no visible effect in
// memory or on disk.

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/ledger"
	"github.com/bloodsync/go-bloodbank-backend/internal/registry"
	"github.com/bloodsync/go-bloodbank-backend/internal/store"
)

// Entity id prefixes. Ids are the prefix plus the first 8 hex digits of a
// random UUID, uppercase, matching the historical id scheme of the system.
const (
	prefixDonor      = "DON"
	prefixRequestor  = "REQ"
	prefixRequest    = "BR"
	prefixDonation   = "DN"
	prefixAssignment = "ASGN"
)

// Core bundles the shared mutable state of the blood bank. All services
// mutate through the same Core so a single lock covers every workflow.
type Core struct {
	mu       sync.Mutex
	Registry *registry.Registry
	Ledger   *ledger.Ledger
	Store    store.Store

	// Now is the clock used for timestamps and eligibility checks.
	// Defaults to time.Now via NewCore; tests inject a fixed clock.
	Now func() time.Time
}

// NewCore wires registry, ledger and store into a Core with a real clock.
func NewCore(reg *registry.Registry, led *ledger.Ledger, st store.Store) *Core {
	return &Core{Registry: reg, Ledger: led, Store: st, Now: time.Now}
}

func (c *Core) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

// NewID builds a prefixed entity id such as DON-1A2B3C4D.
func NewID(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + raw[:8]
}

// persistErr wraps a store failure in the stable persistence sentinel.
func persistErr(err error) error {
	return fmt.Errorf("%w: %v", store.ErrPersistenceFailure, err)
}

// saveDonors persists the donor collection with the staged donor swapped in.
func (c *Core) saveDonors(ctx context.Context, staged ...domain.Donor) error {
	all := c.Registry.Donors()
	for _, d := range staged {
		all = replaceDonor(all, d)
	}
	if err := c.Store.SaveDonors(ctx, all); err != nil {
		return persistErr(err)
	}
	return nil
}

func (c *Core) saveRequestors(ctx context.Context, staged ...domain.Requestor) error {
	all := c.Registry.Requestors()
	for _, q := range staged {
		all = replaceRequestor(all, q)
	}
	if err := c.Store.SaveRequestors(ctx, all); err != nil {
		return persistErr(err)
	}
	return nil
}

func (c *Core) saveRequests(ctx context.Context, staged ...domain.BloodRequest) error {
	all := c.Registry.Requests()
	for _, br := range staged {
		all = replaceRequest(all, br)
	}
	if err := c.Store.SaveRequests(ctx, all); err != nil {
		return persistErr(err)
	}
	return nil
}

func (c *Core) saveAssignments(ctx context.Context, staged ...domain.Assignment) error {
	all := c.Registry.Assignments()
	for _, a := range staged {
		all = replaceAssignment(all, a)
	}
	if err := c.Store.SaveAssignments(ctx, all); err != nil {
		return persistErr(err)
	}
	return nil
}

func (c *Core) saveDonations(ctx context.Context, staged ...domain.Donation) error {
	all := c.Registry.Donations()
	for _, dn := range staged {
		all = append(all, dn)
	}
	if err := c.Store.SaveDonations(ctx, all); err != nil {
		return persistErr(err)
	}
	return nil
}

func (c *Core) saveIdempotency(ctx context.Context, staged ...domain.IdempotencyRecord) error {
	all := c.Registry.IdempotencyRecords()
	for _, rec := range staged {
		all = replaceIdemRecord(all, rec)
	}
	if err := c.Store.SaveIdempotency(ctx, all); err != nil {
		return persistErr(err)
	}
	return nil
}

func (c *Core) saveInventory(ctx context.Context) error {
	if err := c.Store.SaveInventory(ctx, c.Ledger.Records()); err != nil {
		return persistErr(err)
	}
	return nil
}

// saveStep pairs a collection write with the compensation that re-saves the
// same collection from the registry. While a persist sequence is in flight
// the registry still holds pre-mutation state, so the compensation restores
// the durable view to exactly what memory will show after the rollback.
type saveStep struct {
	save func(context.Context) error
	undo func(context.Context) error
}

// persistAll runs the steps in order. When a step fails, every collection
// already written is re-saved from the registry so durable and in-memory
// state cannot diverge across a partial sequence. Compensation is best
// effort: its own errors are dropped in favor of the original failure.
//
// Callers roll any ledger movement back themselves after this returns, so
// the inventory step must always come last in a sequence.
func (c *Core) persistAll(ctx context.Context, steps ...saveStep) error {
	for i, st := range steps {
		if err := st.save(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = steps[j].undo(ctx)
			}
			return err
		}
	}
	return nil
}

func (c *Core) stepDonors(staged ...domain.Donor) saveStep {
	return saveStep{
		save: func(ctx context.Context) error { return c.saveDonors(ctx, staged...) },
		undo: func(ctx context.Context) error { return c.Store.SaveDonors(ctx, c.Registry.Donors()) },
	}
}

func (c *Core) stepRequestors(staged ...domain.Requestor) saveStep {
	return saveStep{
		save: func(ctx context.Context) error { return c.saveRequestors(ctx, staged...) },
		undo: func(ctx context.Context) error { return c.Store.SaveRequestors(ctx, c.Registry.Requestors()) },
	}
}

func (c *Core) stepRequests(staged ...domain.BloodRequest) saveStep {
	return saveStep{
		save: func(ctx context.Context) error { return c.saveRequests(ctx, staged...) },
		undo: func(ctx context.Context) error { return c.Store.SaveRequests(ctx, c.Registry.Requests()) },
	}
}

func (c *Core) stepAssignments(staged ...domain.Assignment) saveStep {
	return saveStep{
		save: func(ctx context.Context) error { return c.saveAssignments(ctx, staged...) },
		undo: func(ctx context.Context) error { return c.Store.SaveAssignments(ctx, c.Registry.Assignments()) },
	}
}

func (c *Core) stepDonations(staged ...domain.Donation) saveStep {
	return saveStep{
		save: func(ctx context.Context) error { return c.saveDonations(ctx, staged...) },
		undo: func(ctx context.Context) error { return c.Store.SaveDonations(ctx, c.Registry.Donations()) },
	}
}

func (c *Core) stepIdempotency(staged ...domain.IdempotencyRecord) saveStep {
	return saveStep{
		save: func(ctx context.Context) error { return c.saveIdempotency(ctx, staged...) },
		undo: func(ctx context.Context) error {
			return c.Store.SaveIdempotency(ctx, c.Registry.IdempotencyRecords())
		},
	}
}

func (c *Core) stepInventory() saveStep {
	return saveStep{
		save: func(ctx context.Context) error { return c.saveInventory(ctx) },
		undo: func(ctx context.Context) error { return c.Store.SaveInventory(ctx, c.Ledger.Records()) },
	}
}

func replaceDonor(all []domain.Donor, d domain.Donor) []domain.Donor {
	for i := range all {
		if all[i].ID == d.ID {
			all[i] = d
			return all
		}
	}
	return append(all, d)
}

func replaceRequestor(all []domain.Requestor, q domain.Requestor) []domain.Requestor {
	for i := range all {
		if all[i].ID == q.ID {
			all[i] = q
			return all
		}
	}
	return append(all, q)
}

func replaceRequest(all []domain.BloodRequest, br domain.BloodRequest) []domain.BloodRequest {
	for i := range all {
		if all[i].ID == br.ID {
			all[i] = br
			return all
		}
	}
	return append(all, br)
}

func replaceAssignment(all []domain.Assignment, a domain.Assignment) []domain.Assignment {
	for i := range all {
		if all[i].ID == a.ID {
			all[i] = a
			return all
		}
	}
	return append(all, a)
}

func replaceIdemRecord(all []domain.IdempotencyRecord, rec domain.IdempotencyRecord) []domain.IdempotencyRecord {
	for i := range all {
		if all[i].AssignmentID == rec.AssignmentID && all[i].Key == rec.Key {
			all[i] = rec
			return all
		}
	}
	return append(all, rec)
}
