// Package drag tracks one drag-and-drop session over the board.
//
// The engine owns a transient copy of the full ordering (every list id and every list's
// complete card id sequence, filtered or not). Pointer moves rewrite that copy; the board is
// only touched when the caller commits the Result returned by Finish.
package drag

import (
	"errors"
	"math"
	"slices"

	"kanban-cli/internal/model"
	"kanban-cli/internal/viewsync"
)

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

type Kind int

const (
	KindCard Kind = iota + 1
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindCard:
		return "card"
	case KindList:
		return "list"
	default:
		return "none"
	}
}

var (
	ErrBusy           = errors.New("drag: a drag is already in progress")
	ErrFromControl    = errors.New("drag: pointer started on an interactive control")
	ErrEditing        = errors.New("drag: subject is being edited")
	ErrUnknownSubject = errors.New("drag: unknown subject")
	ErrFiltered       = errors.New("drag: card dragging is locked while a filter is active")
	ErrNotDragging    = errors.New("drag: no drag in progress")
)

type Options struct {
	// LockCardsWhileFiltered refuses card drags while a text or category filter is active.
	LockCardsWhileFiltered bool
}

// Start describes a drag-start gesture.
type Start struct {
	Kind Kind
	ID   string
	// FromControl is set when the pointer went down on a button, input or select.
	FromControl bool
	// Editing is set when the subject is in rename or edit mode.
	Editing bool
	// Filtered is set when a text or category filter is active.
	Filtered bool
}

// Box is a candidate's extent along the drag axis (vertical for cards, horizontal for lists).
type Box struct {
	ID    string
	Start float64
	Size  float64
}

func (b Box) Midpoint() float64 {
	return b.Start + b.Size/2
}

// Hover is one pointer-move sample over a candidate region.
type Hover struct {
	// ListID is the list under the pointer. Ignored for list drags.
	ListID  string
	Pointer float64
	// Boxes are the rendered siblings of the subject, in render order.
	Boxes []Box
}

// Order is the transient ordering.
type Order struct {
	Lists []string
	Cards []viewsync.ListCards
}

type Result struct {
	Kind  Kind
	ID    string
	Order Order
}

type Engine struct {
	opts Options

	kind  Kind
	id    string
	lists []string
	cards map[string][]string
}

func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

func (e *Engine) State() State {
	if e.kind == 0 {
		return Idle
	}
	return Dragging
}

// Subject returns the kind and id being dragged. Kind is 0 when idle.
func (e *Engine) Subject() (Kind, string) {
	return e.kind, e.id
}

// Begin captures a drag subject. Only valid from Idle.
func (e *Engine) Begin(b *model.Board, s Start) error {
	if e.kind != 0 {
		return ErrBusy
	}
	if s.FromControl {
		return ErrFromControl
	}
	if s.Editing {
		return ErrEditing
	}
	switch s.Kind {
	case KindCard:
		if _, _, _, ok := b.FindCard(s.ID); !ok {
			return ErrUnknownSubject
		}
		if s.Filtered && e.opts.LockCardsWhileFiltered {
			return ErrFiltered
		}
	case KindList:
		if _, _, ok := b.FindList(s.ID); !ok {
			return ErrUnknownSubject
		}
	default:
		return ErrUnknownSubject
	}

	e.lists = make([]string, 0, len(b.Lists))
	e.cards = make(map[string][]string, len(b.Lists))
	for _, l := range b.Lists {
		e.lists = append(e.lists, l.ID)
		ids := make([]string, 0, len(l.Cards))
		for _, c := range l.Cards {
			ids = append(ids, c.ID)
		}
		e.cards[l.ID] = ids
	}
	e.kind = s.Kind
	e.id = s.ID
	return nil
}

// Move applies a pointer sample. It reports whether the transient order changed.
func (e *Engine) Move(h Hover) bool {
	switch e.kind {
	case KindCard:
		return e.moveCard(h)
	case KindList:
		return e.moveList(h)
	default:
		return false
	}
}

func (e *Engine) moveCard(h Hover) bool {
	target, ok := e.cards[h.ListID]
	if !ok {
		return false
	}
	from := e.cardOwner(e.id)
	if from == "" {
		return false
	}

	anchor, hasAnchor := InsertionAnchor(h.Pointer, h.Boxes, e.id)
	if hasAnchor && !slices.Contains(target, anchor) {
		hasAnchor = false
	}

	src := e.cards[from]
	oldIdx := slices.Index(src, e.id)
	src = slices.Delete(slices.Clone(src), oldIdx, oldIdx+1)

	dst := src
	if h.ListID != from {
		dst = slices.Clone(target)
	}
	at := len(dst)
	if hasAnchor {
		at = slices.Index(dst, anchor)
	} else if tail, ok := lastCandidate(h.Boxes, dst, e.id); ok {
		at = slices.Index(dst, tail) + 1
	} else if h.ListID == from {
		// Nothing else rendered in its own list.
		return false
	}
	dst = slices.Insert(dst, at, e.id)

	if h.ListID == from {
		if slices.Equal(dst, e.cards[from]) {
			return false
		}
		e.cards[from] = dst
		return true
	}
	e.cards[from] = src
	e.cards[h.ListID] = dst
	return true
}

func (e *Engine) moveList(h Hover) bool {
	anchor, hasAnchor := InsertionAnchor(h.Pointer, h.Boxes, e.id)
	if hasAnchor && !slices.Contains(e.lists, anchor) {
		hasAnchor = false
	}
	oldIdx := slices.Index(e.lists, e.id)
	if oldIdx < 0 {
		return false
	}
	next := slices.Delete(slices.Clone(e.lists), oldIdx, oldIdx+1)
	var at int
	if hasAnchor {
		at = slices.Index(next, anchor)
	} else {
		tail, ok := lastCandidate(h.Boxes, next, e.id)
		if !ok {
			return false
		}
		at = slices.Index(next, tail) + 1
	}
	next = slices.Insert(next, at, e.id)
	if slices.Equal(next, e.lists) {
		return false
	}
	e.lists = next
	return true
}

// lastCandidate returns the last rendered box other than excludeID that belongs to seq. Dropping
// past it lands the subject right after it, so siblings hidden further down keep their place.
func lastCandidate(boxes []Box, seq []string, excludeID string) (string, bool) {
	for i := len(boxes) - 1; i >= 0; i-- {
		id := boxes[i].ID
		if id != excludeID && slices.Contains(seq, id) {
			return id, true
		}
	}
	return "", false
}

func (e *Engine) cardOwner(cardID string) string {
	for _, lid := range e.lists {
		if slices.Contains(e.cards[lid], cardID) {
			return lid
		}
	}
	return ""
}

// Order returns a copy of the transient ordering. Zero when idle.
func (e *Engine) Order() Order {
	if e.kind == 0 {
		return Order{}
	}
	out := Order{
		Lists: slices.Clone(e.lists),
		Cards: make([]viewsync.ListCards, 0, len(e.lists)),
	}
	for _, lid := range e.lists {
		out.Cards = append(out.Cards, viewsync.ListCards{ListID: lid, CardIDs: slices.Clone(e.cards[lid])})
	}
	return out
}

// Project returns a copy of b laid out in the transient order, for live rendering.
func (e *Engine) Project(b *model.Board) model.Board {
	out := b.Clone()
	if e.kind == 0 {
		return out
	}
	o := e.Order()
	viewsync.WriteListOrder(&out, o.Lists)
	viewsync.WriteCardOrder(&out, o.Cards)
	return out
}

// Finish ends the drag and returns the final order for committing. Used for both drop and
// cancel: a cancelled drag still commits what the user last saw.
func (e *Engine) Finish() (Result, error) {
	if e.kind == 0 {
		return Result{}, ErrNotDragging
	}
	res := Result{Kind: e.kind, ID: e.id, Order: e.Order()}
	e.Abort()
	return res, nil
}

// Abort returns to Idle without a result.
func (e *Engine) Abort() {
	e.kind = 0
	e.id = ""
	e.lists = nil
	e.cards = nil
}

// InsertionAnchor picks the insert-before candidate for a pointer position: among boxes other
// than excludeID, the one whose midpoint lies beyond the pointer and closest to it. ok is false
// when no midpoint lies beyond the pointer (insert after the last rendered candidate). Ties keep
// the first box scanned.
func InsertionAnchor(pointer float64, boxes []Box, excludeID string) (string, bool) {
	best := ""
	bestOffset := math.Inf(-1)
	for _, b := range boxes {
		if b.ID == excludeID {
			continue
		}
		offset := pointer - b.Midpoint()
		if offset < 0 && offset > bestOffset {
			best = b.ID
			bestOffset = offset
		}
	}
	return best, best != ""
}

// Stack lays ids out as consecutive unit boxes. Callers without real geometry (scripted moves)
// use it to drive the engine.
func Stack(ids []string) []Box {
	out := make([]Box, 0, len(ids))
	for i, id := range ids {
		out = append(out, Box{ID: id, Start: float64(i), Size: 1})
	}
	return out
}

// SlotPointer returns a pointer position that InsertionAnchor resolves to the slot-th box
// other than excludeID. A slot past the last candidate yields a position beyond every box,
// which means insert after the last candidate.
func SlotPointer(boxes []Box, excludeID string, slot int) float64 {
	end := 0.0
	n := 0
	for _, b := range boxes {
		if b.Start+b.Size > end {
			end = b.Start + b.Size
		}
		if b.ID == excludeID {
			continue
		}
		if n == slot {
			return b.Start
		}
		n++
	}
	return end + 1
}

// Slot is the inverse of SlotPointer: the number of candidates other than id rendered before
// it. It returns -1 when id is not among boxes.
func Slot(boxes []Box, id string) int {
	n := 0
	for _, b := range boxes {
		if b.ID == id {
			return n
		}
		n++
	}
	return -1
}
