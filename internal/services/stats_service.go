// Package services – StatsService
//
// This file implements StatsService, the statistics aggregator. Every call
// recomputes from the live registry and ledger with no caching, so a reader
// always observes its own successful writes.

package services

import (
	"context"

	"github.com/bloodsync/go-bloodbank-backend/internal/compat"
	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/ledger"
)

// InventoryGroup is one blood group's slice of the inventory snapshot,
// enriched with its compatibility vectors.
type InventoryGroup struct {
	BloodGroup     domain.BloodGroup   `json:"blood_group"`
	Units          int                 `json:"units"`
	DonorCount     int                 `json:"donor_count"`
	DonorIDs       []string            `json:"donor_ids"`
	Status         ledger.GroupStatus  `json:"status"`
	CanDonateTo    []domain.BloodGroup `json:"can_donate_to"`
	CanReceiveFrom []domain.BloodGroup `json:"can_receive_from"`
}

// InventorySnapshot is the full real-time inventory view.
type InventorySnapshot struct {
	Groups         []InventoryGroup    `json:"groups"`
	TotalUnits     int                 `json:"total_units"`
	TotalDonors    int                 `json:"total_donors"`
	CriticalGroups []domain.BloodGroup `json:"critical_groups"`
}

// GroupStats is the per-group slice of the dashboard breakdown.
type GroupStats struct {
	Units  int                `json:"units"`
	Donors int                `json:"donors"`
	Status ledger.GroupStatus `json:"status"`
}

// DashboardStats is the aggregate system view.
type DashboardStats struct {
	TotalDonors       int                              `json:"total_donors"`
	TotalRequestors   int                              `json:"total_requestors"`
	TotalRequests     int                              `json:"total_requests"`
	ActiveRequests    int                              `json:"active_requests"`
	FulfilledRequests int                              `json:"fulfilled_requests"`
	TotalUnits        int                              `json:"total_units"`
	CriticalGroups    []domain.BloodGroup              `json:"critical_groups"`
	Inventory         map[domain.BloodGroup]GroupStats `json:"inventory"`
}

// StatsService aggregates registry and ledger state into read models.
type StatsService struct {
	Core *Core
}

// Inventory returns the point-in-time inventory snapshot with per-group
// compatibility vectors. Total donors counts distinct donor ids across
// groups.
func (s *StatsService) Inventory(_ context.Context) (*InventorySnapshot, error) {
	snap := s.Core.Ledger.Snapshot()

	groups := make([]InventoryGroup, 0, len(snap))
	totalUnits := 0
	distinct := map[string]struct{}{}
	critical := []domain.BloodGroup{}
	for _, g := range snap {
		groups = append(groups, InventoryGroup{
			BloodGroup:     g.BloodGroup,
			Units:          g.Units,
			DonorCount:     g.DonorCount,
			DonorIDs:       g.DonorIDs,
			Status:         g.Status,
			CanDonateTo:    compat.CanDonateTo(g.BloodGroup),
			CanReceiveFrom: compat.CanReceiveFrom(g.BloodGroup),
		})
		totalUnits += g.Units
		for _, id := range g.DonorIDs {
			distinct[id] = struct{}{}
		}
		if g.Status == ledger.StatusCritical {
			critical = append(critical, g.BloodGroup)
		}
	}

	return &InventorySnapshot{
		Groups:         groups,
		TotalUnits:     totalUnits,
		TotalDonors:    len(distinct),
		CriticalGroups: critical,
	}, nil
}

// Dashboard returns the aggregate dashboard counters.
func (s *StatsService) Dashboard(_ context.Context) (*DashboardStats, error) {
	donors, requestors, requests := s.Core.Registry.Counts()

	active, fulfilled := 0, 0
	for _, br := range s.Core.Registry.Requests() {
		switch br.Status {
		case domain.RequestFulfilled:
			fulfilled++
		case domain.RequestPending, domain.RequestPartial:
			active++
		}
	}

	inventory := make(map[domain.BloodGroup]GroupStats, 8)
	critical := []domain.BloodGroup{}
	totalUnits := 0
	for _, g := range s.Core.Ledger.Snapshot() {
		inventory[g.BloodGroup] = GroupStats{
			Units:  g.Units,
			Donors: g.DonorCount,
			Status: g.Status,
		}
		totalUnits += g.Units
		if g.Status == ledger.StatusCritical {
			critical = append(critical, g.BloodGroup)
		}
	}

	return &DashboardStats{
		TotalDonors:       donors,
		TotalRequestors:   requestors,
		TotalRequests:     requests,
		ActiveRequests:    active,
		FulfilledRequests: fulfilled,
		TotalUnits:        totalUnits,
		CriticalGroups:    critical,
		Inventory:         inventory,
	}, nil
}
