// Package passview owns the fetch, display, mutate and refetch cycle of the
// pass screen.
//
// The backend is the only source of truth for point balances. After every
// successful mutation the view-model throws its copy away and fetches again;
// it never shows a value it computed itself.
package passview

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"loyalty-console/internal/domain/pass"
	"loyalty-console/internal/pkg/errs"
	"loyalty-console/internal/usecase"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateMutating
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateMutating:
		return "mutating"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

const (
	MsgFetchFailed     = "Failed to fetch pass details."
	MsgPointsAdded     = "Points added successfully!"
	MsgAddPointsFailed = "Failed to add points."
	MsgBonusRedeemed   = "Bonus redeemed successfully!"
	MsgRedeemFailed    = "Failed to redeem bonus."
)

// ErrNotLoaded is returned for a mutation on a screen that has no loaded pass
// for that serial number.
var ErrNotLoaded = errs.New("pass is not loaded")

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeFailure NoticeKind = "failure"
)

// Notice is the outcome of the last mutation, shown as an alert.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Snapshot is a copy of the view-model state, safe to render.
type Snapshot struct {
	State        State
	SerialNumber string
	Pass         *pass.LoyaltyPass
	Err          error  // cause of StateErrored
	Message      string // inline message for StateErrored
	Notice       *Notice
	// Stale is set when the call's result was dropped because the screen
	// moved on to a newer navigation.
	Stale bool
}

type ViewModel struct {
	api    usecase.PassAPI
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	serial     string
	pass       *pass.LoyaltyPass
	err        error
	notice     *Notice
	generation uint64
}

func New(api usecase.PassAPI, logger *slog.Logger) *ViewModel {
	return &ViewModel{
		api:    api,
		logger: logger,
		state:  StateIdle,
	}
}

func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.snapshotLocked()
}

// Open mounts the screen on serialNumber and fetches it. Every call is a new
// navigation: the generation moves on and any response still in flight for an
// older one is dropped when it lands.
func (vm *ViewModel) Open(ctx context.Context, serialNumber string, tokens usecase.TokenProvider) Snapshot {
	vm.mu.Lock()
	gen := vm.beginLoadLocked(serialNumber)
	vm.notice = nil
	vm.mu.Unlock()

	return vm.load(ctx, gen, serialNumber, tokens, nil)
}

// AddPoints submits amount, a non-negative whole number as typed by the user.
func (vm *ViewModel) AddPoints(ctx context.Context, serialNumber, amount string, tokens usecase.TokenProvider) (Snapshot, error) {
	return vm.mutate(ctx, serialNumber, tokens, mutation{
		name:    "add points",
		success: MsgPointsAdded,
		failure: MsgAddPointsFailed,
		prepare: func() (func(context.Context, string) error, error) {
			points, err := pass.ParsePoints(amount)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context, token string) error {
				return vm.api.AddPoints(ctx, serialNumber, points, token)
			}, nil
		},
	})
}

// RedeemBonus asks the backend to redeem; eligibility is decided there.
func (vm *ViewModel) RedeemBonus(ctx context.Context, serialNumber string, tokens usecase.TokenProvider) (Snapshot, error) {
	return vm.mutate(ctx, serialNumber, tokens, mutation{
		name:    "redeem bonus",
		success: MsgBonusRedeemed,
		failure: MsgRedeemFailed,
		prepare: func() (func(context.Context, string) error, error) {
			return func(ctx context.Context, token string) error {
				return vm.api.RedeemBonus(ctx, serialNumber, token)
			}, nil
		},
	})
}

type mutation struct {
	name    string
	success string
	failure string
	// prepare validates local input before the screen leaves StateLoaded.
	prepare func() (func(ctx context.Context, token string) error, error)
}

func (vm *ViewModel) mutate(ctx context.Context, serialNumber string, tokens usecase.TokenProvider, m mutation) (Snapshot, error) {
	vm.mu.Lock()
	if vm.state != StateLoaded || vm.serial != serialNumber {
		snap := vm.snapshotLocked()
		vm.mu.Unlock()
		return snap, errs.Wrapf(ErrNotLoaded, "%s: screen is %s", m.name, snap.State)
	}

	run, err := m.prepare()
	if err != nil {
		vm.notice = &Notice{Kind: NoticeFailure, Message: m.failure}
		snap := vm.snapshotLocked()
		vm.mu.Unlock()
		vm.logger.Warn("Rejected pass mutation input", "operation", m.name, "serial_number", serialNumber, "error", err.Error())
		return snap, err
	}

	vm.state = StateMutating
	vm.notice = nil
	gen := vm.generation
	vm.mu.Unlock()

	err = vm.call(ctx, tokens, run)

	vm.mu.Lock()
	if gen != vm.generation {
		// navigated elsewhere while the call was out; that screen owns the state now
		snap := vm.snapshotLocked()
		vm.mu.Unlock()
		snap.Stale = true
		return snap, errs.Wrap(err, m.name)
	}

	if err != nil {
		vm.state = StateLoaded
		vm.notice = &Notice{Kind: NoticeFailure, Message: failureMessage(m.failure, err)}
		snap := vm.snapshotLocked()
		vm.mu.Unlock()
		vm.logger.Warn("Pass mutation failed", "operation", m.name, "serial_number", serialNumber, "error", err.Error())
		return snap, errs.Wrap(err, m.name)
	}

	gen = vm.beginLoadLocked(serialNumber)
	vm.mu.Unlock()

	return vm.load(ctx, gen, serialNumber, tokens, &Notice{Kind: NoticeSuccess, Message: m.success}), nil
}

// failureMessage appends the reason a backend gave for rejecting the call.
func failureMessage(msg string, err error) string {
	if !errors.Is(err, errs.ErrRejected) {
		return msg
	}
	if detail := errs.Detail(err); detail != "" {
		return msg + " (" + detail + ")"
	}
	return msg
}

func (vm *ViewModel) call(ctx context.Context, tokens usecase.TokenProvider, run func(context.Context, string) error) error {
	token, err := usecase.ResolveToken(ctx, tokens)
	if err != nil {
		return err
	}
	return run(ctx, token)
}

// beginLoadLocked enters StateLoading for a new generation. A different serial
// number drops the previous pass immediately.
func (vm *ViewModel) beginLoadLocked(serialNumber string) uint64 {
	vm.generation++
	if serialNumber != vm.serial {
		vm.pass = nil
	}
	vm.serial = serialNumber
	vm.state = StateLoading
	vm.err = nil
	return vm.generation
}

func (vm *ViewModel) load(ctx context.Context, gen uint64, serialNumber string, tokens usecase.TokenProvider, notice *Notice) Snapshot {
	var p *pass.LoyaltyPass
	token, err := usecase.ResolveToken(ctx, tokens)
	if err == nil {
		p, err = vm.api.FetchPass(ctx, serialNumber, token)
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if gen != vm.generation {
		vm.logger.Debug("Discarding stale pass response", "serial_number", serialNumber, "generation", gen, "current_generation", vm.generation)
		snap := vm.snapshotLocked()
		snap.Stale = true
		return snap
	}

	vm.notice = notice
	if err != nil {
		vm.state = StateErrored
		vm.err = errs.Wrap(err, "fetch pass")
		vm.pass = nil
		vm.logger.Warn("Failed to fetch pass", "serial_number", serialNumber, "error", err.Error())
		return vm.snapshotLocked()
	}

	vm.state = StateLoaded
	vm.pass = p
	return vm.snapshotLocked()
}

func (vm *ViewModel) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:        vm.state,
		SerialNumber: vm.serial,
		Err:          vm.err,
	}
	if vm.pass != nil {
		p := *vm.pass
		if vm.pass.LastUsedAt != nil {
			t := *vm.pass.LastUsedAt
			p.LastUsedAt = &t
		}
		snap.Pass = &p
	}
	if vm.state == StateErrored {
		snap.Message = MsgFetchFailed
	}
	if vm.notice != nil {
		n := *vm.notice
		snap.Notice = &n
	}
	return snap
}
