package flow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/scheduler"
	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/session"
	"github.com/GriffinCanCode/DeskShell/backend/internal/shared/types"
)

const (
	KeyLoggedIn  = "loggedIn"
	KeyGoalShown = "goalOverlayShown"

	// DefaultPIN is the login code of the narrative
	DefaultPIN = "129191"

	// SearchToastDuration is how long the unlock toast stays before the overlay closes
	SearchToastDuration = 2 * time.Second

	searchOwner = "flow:search"
)

var (
	ErrWrongPIN          = errors.New("wrong pin")
	ErrInvalidTransition = errors.New("invalid screen transition")
)

// Vault is the part of the puzzle store the search overlay touches
type Vault interface {
	UnlockVault() bool
	VaultUnlocked() bool
}

// Config tunes a Controller
type Config struct {
	PIN string
	// ResetOnLogout also wipes progression when the visitor logs out
	ResetOnLogout bool
	// OnReset is called on confirmed logout when ResetOnLogout is set
	OnReset func()
}

// Controller is the screen state machine of one workspace
type Controller struct {
	mu       sync.RWMutex
	state    types.FlowState
	kv       session.KV
	vault    Vault
	sched    *scheduler.Scheduler
	cfg      Config
	logger   *zap.Logger
	observer func(from, to types.Screen)
}

// New creates a controller and restores the persisted screen
func New(ctx context.Context, kv session.KV, vault Vault, sched *scheduler.Scheduler, cfg Config, logger *zap.Logger) *Controller {
	if cfg.PIN == "" {
		cfg.PIN = DefaultPIN
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		state:  types.FlowState{Screen: types.ScreenIntro},
		kv:     kv,
		vault:  vault,
		sched:  sched,
		cfg:    cfg,
		logger: logger,
	}
	c.restore(ctx)
	return c
}

// SetObserver installs a screen transition observer
func (c *Controller) SetObserver(fn func(from, to types.Screen)) {
	c.mu.Lock()
	c.observer = fn
	c.mu.Unlock()
}

func (c *Controller) restore(ctx context.Context) {
	if !c.flag(ctx, KeyLoggedIn) {
		return
	}
	c.state.Screen = types.ScreenDesktop
	c.state.GoalOverlay = !c.flag(ctx, KeyGoalShown)
}

func (c *Controller) flag(ctx context.Context, key string) bool {
	v, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Failed to read flow state", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok && v == "true"
}

func (c *Controller) persist(ctx context.Context, key string, on bool) {
	var err error
	if on {
		err = c.kv.Set(ctx, key, "true")
	} else {
		err = c.kv.Delete(ctx, key)
	}
	if err != nil {
		c.logger.Warn("Failed to persist flow state", zap.String("key", key), zap.Error(err))
	}
}

// move must be called with mu held; it returns the observer to notify after unlock
func (c *Controller) move(to types.Screen) func() {
	from := c.state.Screen
	c.state.Screen = to
	obs := c.observer
	if obs == nil || from == to {
		return func() {}
	}
	return func() { obs(from, to) }
}

// State returns a copy of the current flow state
func (c *Controller) State() types.FlowState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// OnDesktop reports whether the desktop screen is showing
func (c *Controller) OnDesktop() bool {
	return c.State().Screen == types.ScreenDesktop
}

// Continue leaves the intro
func (c *Controller) Continue() error {
	c.mu.Lock()
	if c.state.Screen != types.ScreenIntro {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	notify := c.move(types.ScreenLogin)
	c.mu.Unlock()

	notify()
	return nil
}

// Login checks the pin and enters the desktop
func (c *Controller) Login(ctx context.Context, pin string) error {
	c.mu.Lock()
	if c.state.Screen != types.ScreenLogin {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	if pin != c.cfg.PIN {
		c.mu.Unlock()
		return ErrWrongPIN
	}
	notify := c.move(types.ScreenDesktop)
	c.state.GoalOverlay = !c.flag(ctx, KeyGoalShown)
	c.mu.Unlock()

	c.persist(ctx, KeyLoggedIn, true)
	notify()
	return nil
}

// DismissGoal hides the goal overlay for good
func (c *Controller) DismissGoal(ctx context.Context) {
	c.mu.Lock()
	c.state.GoalOverlay = false
	c.mu.Unlock()

	c.persist(ctx, KeyGoalShown, true)
}

// RequestLogout shows the logout confirmation
func (c *Controller) RequestLogout() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Screen != types.ScreenDesktop {
		return ErrInvalidTransition
	}
	c.state.LogoutConfirm = true
	return nil
}

// CancelLogout hides the logout confirmation
func (c *Controller) CancelLogout() {
	c.mu.Lock()
	c.state.LogoutConfirm = false
	c.mu.Unlock()
}

// ConfirmLogout returns to the login screen and forgets the persisted markers.
// Progression survives unless ResetOnLogout is configured.
func (c *Controller) ConfirmLogout(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Screen != types.ScreenDesktop || !c.state.LogoutConfirm {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	notify := c.move(types.ScreenLogin)
	c.state.LogoutConfirm = false
	c.state.GoalOverlay = false
	c.state.SearchOverlay = false
	c.state.SearchToast = false
	c.mu.Unlock()

	c.cancelToast()
	c.persist(ctx, KeyLoggedIn, false)
	c.persist(ctx, KeyGoalShown, false)
	if c.cfg.ResetOnLogout && c.cfg.OnReset != nil {
		c.cfg.OnReset()
	}
	notify()
	return nil
}

// OpenSearch shows the search overlay; only the desktop has one
func (c *Controller) OpenSearch() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Screen != types.ScreenDesktop {
		return ErrInvalidTransition
	}
	c.state.SearchOverlay = true
	return nil
}

// SubmitSearch runs the phrase matcher and reports whether it unlocked the vault
func (c *Controller) SubmitSearch(query string) bool {
	c.mu.Lock()
	if !c.state.SearchOverlay {
		c.mu.Unlock()
		return false
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if (q == "vault" || q == "unlock vault") && !c.vault.VaultUnlocked() {
		c.state.SearchToast = true
		c.mu.Unlock()

		c.vault.UnlockVault()
		c.scheduleToastEnd()
		return true
	}

	c.state.SearchOverlay = false
	c.mu.Unlock()
	return false
}

func (c *Controller) scheduleToastEnd() {
	if c.sched == nil {
		c.CloseSearch()
		return
	}
	c.sched.CancelOwner(searchOwner)
	c.sched.After(searchOwner, SearchToastDuration, c.CloseSearch)
}

func (c *Controller) cancelToast() {
	if c.sched != nil {
		c.sched.CancelOwner(searchOwner)
	}
}

// CloseSearch hides the search overlay and its toast
func (c *Controller) CloseSearch() {
	c.mu.Lock()
	c.state.SearchOverlay = false
	c.state.SearchToast = false
	c.mu.Unlock()

	c.cancelToast()
}
