package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"kanban-cli/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventLog is implemented by slots that can also keep board history.
type EventLog interface {
	AppendEvent(ctx context.Context, ev model.Event) error
	TailEvents(ctx context.Context, n int) ([]model.Event, error)
}

// Gateway loads and saves whole board snapshots through a Slot.
type Gateway struct {
	slot Slot
	log  *zap.Logger
	now  func() time.Time
}

func NewGateway(slot Slot, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{slot: slot, log: log, now: time.Now}
}

// Load never fails: an empty slot, a read error or an invalid snapshot all yield the default board.
func (g *Gateway) Load() model.Board {
	return g.LoadContext(context.Background())
}

func (g *Gateway) LoadContext(ctx context.Context) model.Board {
	raw, err := g.slot.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			g.log.Warn("board snapshot unreadable; starting from default board", zap.Error(err))
		}
		return model.DefaultBoard(NewID)
	}
	switch res := Decode(raw).(type) {
	case ValidSnapshot:
		if len(res.Repaired) > 0 {
			g.log.Info("board snapshot repaired on load", zap.Strings("repairs", res.Repaired))
		}
		return res.Board
	case InvalidSnapshot:
		g.log.Warn("board snapshot invalid; starting from default board", zap.Error(res.Reason))
	}
	return model.DefaultBoard(NewID)
}

// Save overwrites the slot with the board's lists, cards and categories.
func (g *Gateway) Save(b model.Board) error {
	return g.SaveContext(context.Background(), b)
}

func (g *Gateway) SaveContext(ctx context.Context, b model.Board) error {
	raw, err := Encode(b)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if err := g.slot.Write(ctx, raw); err != nil {
		return fmt.Errorf("write board snapshot: %w", err)
	}
	return nil
}

// AppendEvent records board history when the slot supports it. Best effort: failures are logged.
func (g *Gateway) AppendEvent(typ, entityID string, payload any) {
	el, ok := g.slot.(EventLog)
	if !ok {
		return
	}
	ev := model.Event{
		ID:       uuid.NewString(),
		TS:       g.now().UTC(),
		Type:     typ,
		EntityID: entityID,
		Payload:  payload,
	}
	if err := el.AppendEvent(context.Background(), ev); err != nil {
		g.log.Warn("append event failed", zap.String("type", typ), zap.String("entity", entityID), zap.Error(err))
	}
}

// TailEvents returns the last n events, or an empty slice when the slot keeps no history.
func (g *Gateway) TailEvents(ctx context.Context, n int) ([]model.Event, error) {
	el, ok := g.slot.(EventLog)
	if !ok {
		return []model.Event{}, nil
	}
	return el.TailEvents(ctx, n)
}

func (g *Gateway) Close() error {
	if c, ok := g.slot.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
