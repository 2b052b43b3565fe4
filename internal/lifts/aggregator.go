package lifts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/liftboard/internal/apperr"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
)

const (
	LeaderboardSize = 10
	// UnknownUsername is shown for leaderboard rows whose owner cannot be resolved.
	UnknownUsername = "unknown"

	usernameLookupConcurrency = 8
)

type SortKey string

const (
	SortByWeight    SortKey = "weight"
	SortByReps      SortKey = "reps"
	SortByOneRepMax SortKey = "one_rep_max"
	SortByCreatedAt SortKey = "created_at"
)

// ParseSortKey defaults to sorting by weight when s is empty.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByWeight, nil
	case SortByWeight, SortByReps, SortByOneRepMax, SortByCreatedAt:
		return SortKey(s), nil
	default:
		return "", apperr.Validation(fmt.Sprintf("invalid sort key: %q", s))
	}
}

type ProfileParams struct {
	SortBy SortKey
	// WeightType is optional, empty means both units
	WeightType WeightType
}

func NewProfileParams(sortBy, weightType string) (ProfileParams, error) {
	key, err := ParseSortKey(sortBy)
	if err != nil {
		return ProfileParams{}, err
	}
	params := ProfileParams{SortBy: key}
	if weightType != "" {
		if params.WeightType, err = ParseWeightType(weightType); err != nil {
			return ProfileParams{}, err
		}
	}
	return params, nil
}

type Profile struct {
	UserID     uuid.UUID           `json:"user_id"`
	SortBy     SortKey             `json:"sort_by"`
	WeightType WeightType          `json:"weight_type,omitempty"`
	Groups     map[LiftType][]Lift `json:"groups"`
}

type LeaderboardEntry struct {
	Lift
	Rank             int    `json:"rank"`
	Username         string `json:"username"`
	OneRepMaxRounded string `json:"one_rep_max_rounded"`
}

// Leaderboard holds the top lifts per type, every type always present.
type Leaderboard map[LiftType][]LeaderboardEntry

// Aggregator builds the read views over stored lifts.
type Aggregator struct {
	repo           liftsRepo
	names          usernameResolver
	metricsManager *metrics.Manager
}

func NewAggregator(repo liftsRepo, names usernameResolver, metricsManager *metrics.Manager) *Aggregator {
	return &Aggregator{
		repo:           repo,
		names:          names,
		metricsManager: metricsManager,
	}
}

func (a *Aggregator) BuildProfile(ctx context.Context, ownerID uuid.UUID, params ProfileParams) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.lifts.profile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("owner.id", ownerID.String()),
		attribute.String("sort_by", string(params.SortBy)),
	)

	if params.SortBy == "" {
		params.SortBy = SortByWeight
	}
	if _, err := ParseSortKey(string(params.SortBy)); err != nil {
		return nil, err
	}
	if params.WeightType != "" {
		if _, err := ParseWeightType(string(params.WeightType)); err != nil {
			return nil, err
		}
	}

	lifts, err := a.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Dependency(err, "list lifts")
	}

	if params.WeightType != "" {
		lifts = filterByWeightType(lifts, params.WeightType)
	}

	return &Profile{
		UserID:     ownerID,
		SortBy:     params.SortBy,
		WeightType: params.WeightType,
		Groups:     GroupLifts(lifts, params.SortBy),
	}, nil
}

// GroupLifts groups lifts by type and sorts each group, descending, by the key.
// The sort is stable, so ties keep their input order.
func GroupLifts(lifts []Lift, sortBy SortKey) map[LiftType][]Lift {
	groups := make(map[LiftType][]Lift, len(AllLiftTypes))
	for _, lt := range AllLiftTypes {
		groups[lt] = []Lift{}
	}
	for _, l := range lifts {
		groups[l.Type] = append(groups[l.Type], l)
	}

	less := sortFunc(sortBy)
	for lt := range groups {
		group := groups[lt]
		sort.SliceStable(group, func(i, j int) bool {
			return less(group[i], group[j])
		})
	}
	return groups
}

func sortFunc(sortBy SortKey) func(a, b Lift) bool {
	switch sortBy {
	case SortByReps:
		return func(a, b Lift) bool { return a.Reps > b.Reps }
	case SortByOneRepMax:
		return func(a, b Lift) bool { return a.OneRepMax > b.OneRepMax }
	case SortByCreatedAt:
		return func(a, b Lift) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return func(a, b Lift) bool { return a.Weight > b.Weight }
	}
}

func filterByWeightType(lifts []Lift, weightType WeightType) []Lift {
	filtered := make([]Lift, 0, len(lifts))
	for _, l := range lifts {
		if l.WeightType == weightType {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// BuildLeaderboard returns the top lifts per type for one unit. Type queries run
// concurrently, and any of them failing fails the whole leaderboard. Usernames that
// cannot be resolved are replaced with UnknownUsername.
func (a *Aggregator) BuildLeaderboard(ctx context.Context, weightType WeightType) (_ Leaderboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.lifts.leaderboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("weight_type", string(weightType)))

	if _, err := ParseWeightType(string(weightType)); err != nil {
		return nil, err
	}

	defer func(begin time.Time) {
		a.metricsManager.HistogramLeaderboardDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())

	// one slot per type keeps the result independent of completion order
	tops := make([][]Lift, len(AllLiftTypes))
	g, gCtx := errgroup.WithContext(ctx)
	for i, liftType := range AllLiftTypes {
		g.Go(func() error {
			top, err := a.repo.ListTop(gCtx, liftType, weightType, LeaderboardSize)
			if err != nil {
				return fmt.Errorf("list top %s lifts: %w", liftType, err)
			}
			if len(top) > LeaderboardSize {
				top = top[:LeaderboardSize]
			}
			tops[i] = top
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.Dependency(err, "build leaderboard")
	}

	usernames := a.resolveUsernames(ctx, tops)

	leaderboard := make(Leaderboard, len(AllLiftTypes))
	for i, liftType := range AllLiftTypes {
		entries := make([]LeaderboardEntry, 0, len(tops[i]))
		for rank, l := range tops[i] {
			entries = append(entries, LeaderboardEntry{
				Lift:             l,
				Rank:             rank + 1,
				Username:         usernames[l.UserID],
				OneRepMaxRounded: strconv.FormatFloat(l.OneRepMax, 'f', 1, 64),
			})
		}
		leaderboard[liftType] = entries
	}

	return leaderboard, nil
}

// resolveUsernames looks up each distinct owner once, concurrently. Lookup errors
// are logged and never fail the leaderboard.
func (a *Aggregator) resolveUsernames(ctx context.Context, tops [][]Lift) map[uuid.UUID]string {
	seen := make(map[uuid.UUID]struct{})
	var ownerIDs []uuid.UUID
	for _, top := range tops {
		for _, l := range top {
			if _, ok := seen[l.UserID]; ok {
				continue
			}
			seen[l.UserID] = struct{}{}
			ownerIDs = append(ownerIDs, l.UserID)
		}
	}

	// lookups write into their own slot, the map is built after all of them are done
	resolved := make([]string, len(ownerIDs))
	var g errgroup.Group
	g.SetLimit(usernameLookupConcurrency)
	for i, userID := range ownerIDs {
		g.Go(func() error {
			username, err := a.names.Username(ctx, userID)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					log.Debugf("leaderboard: owner [%s] not found", userID)
				} else {
					log.Warnf("leaderboard: resolve username of [%s]: %s", userID, err)
				}
				return nil
			}
			resolved[i] = username
			return nil
		})
	}
	_ = g.Wait()

	usernames := make(map[uuid.UUID]string, len(ownerIDs))
	for i, userID := range ownerIDs {
		usernames[userID] = UnknownUsername
		if resolved[i] != "" {
			usernames[userID] = resolved[i]
		}
	}
	return usernames
}
