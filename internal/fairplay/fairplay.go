// Package fairplay audits a player's past opponents for accounts that were
// closed over fair-play violations.
package fairplay

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/kyleboon/chess-scripts/internal/chesscom"
	"github.com/kyleboon/chess-scripts/internal/output"
)

// StatusClosedFairPlay is the profile status chess.com assigns to accounts
// banned for fair-play violations.
const StatusClosedFairPlay = "closed:fair_play_violations"

// Report summarizes one audit.
type Report struct {
	Opponents  int
	Violations int
}

// Auditor walks a player's full archive and checks every distinct opponent's
// profile status.
type Auditor struct {
	client *chesscom.Client
	now    func() time.Time
}

// New returns an Auditor over the given client.
func New(client *chesscom.Client) *Auditor {
	return &Auditor{client: client, now: time.Now}
}

// Opponents collects the distinct opponents across every month since the
// account joined, lowercased and sorted. Months that fail with a non-200
// status are skipped, matching the archive's habit of 404ing empty months.
func (a *Auditor) Opponents(ctx context.Context, username string) ([]string, error) {
	profile, err := a.client.Profile(ctx, username)
	if err != nil {
		return nil, err
	}

	joined := time.Unix(profile.Joined, 0).UTC()
	seen := make(map[string]bool)

	for _, m := range chesscom.MonthsSince(joined, a.now().UTC()) {
		games, err := a.client.MonthlyGames(ctx, username, m.Year, m.Month)
		if err != nil {
			var se *chesscom.StatusError
			if errors.As(err, &se) {
				output.Logger.Warn("skipping month", "user", username, "year", m.Year, "month", int(m.Month), "status", se.Code)
				continue
			}
			return nil, err
		}
		for _, g := range games {
			if opp := g.Opponent(username); opp != "" {
				seen[strings.ToLower(opp)] = true
			}
		}
	}

	opponents := make([]string, 0, len(seen))
	for opp := range seen {
		opponents = append(opponents, opp)
	}
	sort.Strings(opponents)
	return opponents, nil
}

// Audit counts opponents whose accounts were closed for fair-play
// violations. Opponents whose profiles cannot be fetched are counted in the
// total but not as violations.
func (a *Auditor) Audit(ctx context.Context, username string) (*Report, error) {
	opponents, err := a.Opponents(ctx, username)
	if err != nil {
		return nil, err
	}

	report := &Report{Opponents: len(opponents)}
	for _, opp := range opponents {
		profile, err := a.client.Profile(ctx, opp)
		if err != nil {
			var se *chesscom.StatusError
			if errors.As(err, &se) {
				continue
			}
			return nil, err
		}
		if profile.Status == StatusClosedFairPlay {
			report.Violations++
		}
	}
	return report, nil
}
