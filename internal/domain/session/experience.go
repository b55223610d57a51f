package session

import (
	"context"
	"errors"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// ExperienceKey is the storage key of the experience blob
const ExperienceKey = "c3-experience-state"

// ErrUnknownFlag is returned by Mark for a flag name outside ExperienceFlags
var ErrUnknownFlag = errors.New("unknown experience flag")

// ExperienceFlags lists the accepted flag names
var ExperienceFlags = []string{"part1Done", "interfaceDone", "belaDone", "movie1Done", "movie2Done", "movie3Done"}

// ExperienceState holds completion flags unrelated to the desktop puzzle
type ExperienceState struct {
	Part1Done     bool `json:"part1Done"`
	InterfaceDone bool `json:"interfaceDone"`
	BelaDone      bool `json:"belaDone"`
	Movie1Done    bool `json:"movie1Done"`
	Movie2Done    bool `json:"movie2Done"`
	Movie3Done    bool `json:"movie3Done"`
}

func (s *ExperienceState) field(flag string) *bool {
	switch flag {
	case "part1Done":
		return &s.Part1Done
	case "interfaceDone":
		return &s.InterfaceDone
	case "belaDone":
		return &s.BelaDone
	case "movie1Done":
		return &s.Movie1Done
	case "movie2Done":
		return &s.Movie2Done
	case "movie3Done":
		return &s.Movie3Done
	}
	return nil
}

// Experience reads and writes the experience blob of one visitor
type Experience struct {
	kv     KV
	logger *zap.Logger
}

// NewExperience creates an experience store over kv
func NewExperience(kv KV, logger *zap.Logger) *Experience {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experience{kv: kv, logger: logger}
}

// Load returns the stored flags, or defaults when missing or unreadable
func (e *Experience) Load(ctx context.Context) ExperienceState {
	var state ExperienceState

	raw, ok, err := e.kv.Get(ctx, ExperienceKey)
	if err != nil {
		e.logger.Warn("Failed to read experience state", zap.Error(err))
		return ExperienceState{}
	}
	if !ok {
		return state
	}
	if err := sonic.UnmarshalString(raw, &state); err != nil {
		e.logger.Warn("Discarding corrupt experience state", zap.Error(err))
		return ExperienceState{}
	}
	return state
}

// Mark sets one flag and persists the blob
func (e *Experience) Mark(ctx context.Context, flag string) (ExperienceState, error) {
	state := e.Load(ctx)
	p := state.field(flag)
	if p == nil {
		return state, ErrUnknownFlag
	}
	*p = true
	e.save(ctx, state)
	return state, nil
}

// Reset clears every flag
func (e *Experience) Reset(ctx context.Context) ExperienceState {
	if err := e.kv.Delete(ctx, ExperienceKey); err != nil {
		e.logger.Warn("Failed to reset experience state", zap.Error(err))
	}
	return ExperienceState{}
}

func (e *Experience) save(ctx context.Context, state ExperienceState) {
	raw, err := sonic.MarshalString(state)
	if err != nil {
		e.logger.Warn("Failed to encode experience state", zap.Error(err))
		return
	}
	if err := e.kv.Set(ctx, ExperienceKey, raw); err != nil {
		e.logger.Warn("Failed to save experience state", zap.Error(err))
	}
}
