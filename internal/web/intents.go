package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"kanban-cli/internal/drag"
	"kanban-cli/internal/session"
	"kanban-cli/internal/viewsync"
)

// Intent is the JSON envelope accepted by POST /api/intents. Type selects the operation; the
// other fields are read as that operation needs them.
type Intent struct {
	Type       string `json:"type"`
	ID         string `json:"id,omitempty"`
	ListID     string `json:"listId,omitempty"`
	Title      string `json:"title,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Name       string `json:"name,omitempty"`
	Value      string `json:"value,omitempty"`
	// Flush commits a text filter immediately instead of after the quiet period.
	Flush bool `json:"flush,omitempty"`

	// Drag fields. Kind is "card" or "list".
	Kind        string               `json:"kind,omitempty"`
	FromControl bool                 `json:"fromControl,omitempty"`
	Pointer     float64              `json:"pointer,omitempty"`
	Boxes       []dragBox            `json:"boxes,omitempty"`
	Order       []string             `json:"order,omitempty"`
	Cards       []viewsync.ListCards `json:"cards,omitempty"`
}

type dragBox struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	Size  float64 `json:"size"`
}

// IntentResult is the response to an applied intent.
type IntentResult struct {
	// ID is the id of a created entity.
	ID string `json:"id,omitempty"`
	// Changed reports whether the intent changed anything; no-op intents still succeed.
	Changed  bool              `json:"changed"`
	Snapshot viewsync.Snapshot `json:"snapshot"`
}

var errBadIntent = errors.New("bad intent")

var intentTypes = map[string]bool{
	"list.add": true, "list.rename": true, "list.remove": true, "list.beginRename": true, "list.cancelRename": true,
	"card.add": true, "card.edit": true, "card.remove": true, "card.untag": true,
	"card.openForm": true, "card.closeForm": true, "card.beginEdit": true, "card.cancelEdit": true,
	"category.add": true, "category.remove": true,
	"filter.text": true, "filter.category": true, "filter.project": true,
	"drag.begin": true, "drag.move": true, "drag.commit": true, "drag.cancel": true,
	"order.lists": true, "order.cards": true,
	"board.reset": true, "board.reload": true,
}

// intentLabel keeps the metrics type label bounded to the known intents.
func intentLabel(t string) string {
	if intentTypes[t] {
		return t
	}
	return "unknown"
}

func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var in Intent
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		s.metrics.ObserveIntent("invalid", "bad_request", start)
		writeError(w, http.StatusBadRequest, "bad_request", "invalid intent json: "+err.Error())
		return
	}

	res, err := s.apply(in)
	label := intentLabel(in.Type)
	snap := s.sess.Snapshot()
	s.metrics.ObserveBoard(snap)
	switch {
	case errors.Is(err, errBadIntent):
		s.metrics.ObserveIntent(label, "bad_request", start)
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	case errors.Is(err, session.ErrFilteredCommit), isDragRefusal(err):
		s.metrics.ObserveIntent(label, "refused", start)
		writeError(w, http.StatusConflict, "refused", err.Error())
		return
	case err != nil:
		s.metrics.ObserveIntent(label, "error", start)
		s.log.Error("intent failed", zap.String("type", in.Type), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	outcome := "noop"
	if res.Changed {
		outcome = "applied"
	}
	s.metrics.ObserveIntent(label, outcome, start)
	res.Snapshot = snap
	writeJSON(w, http.StatusOK, res)
}

func isDragRefusal(err error) bool {
	for _, target := range []error{drag.ErrBusy, drag.ErrFromControl, drag.ErrEditing, drag.ErrUnknownSubject, drag.ErrFiltered} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Server) apply(in Intent) (IntentResult, error) {
	var (
		res IntentResult
		err error
	)
	created := func(id string, e error) {
		res.ID, res.Changed, err = id, id != "", e
	}
	changed := func(ok bool, e error) {
		res.Changed, err = ok, e
	}

	switch in.Type {
	case "list.add":
		created(s.sess.AddList(in.Title))
	case "list.rename":
		changed(s.sess.RenameList(in.ID, in.Title))
	case "list.remove":
		changed(s.sess.RemoveList(in.ID))
	case "list.beginRename":
		res.Changed = s.sess.BeginRename(in.ID)
	case "list.cancelRename":
		s.sess.CancelRename()
		res.Changed = true

	case "card.add":
		created(s.sess.AddCard(in.ListID, in.Title, in.CategoryID))
	case "card.edit":
		changed(s.sess.EditCard(in.ID, in.Title, in.CategoryID))
	case "card.remove":
		changed(s.sess.RemoveCard(in.ID))
	case "card.untag":
		changed(s.sess.ClearCardCategory(in.ID))
	case "card.openForm":
		res.Changed = s.sess.OpenCardForm(in.ListID)
	case "card.closeForm":
		s.sess.CloseCardForm()
		res.Changed = true
	case "card.beginEdit":
		res.Changed = s.sess.BeginEditCard(in.ID)
	case "card.cancelEdit":
		s.sess.CancelEditCard()
		res.Changed = true

	case "category.add":
		created(s.sess.AddCategory(in.Name))
	case "category.remove":
		changed(s.sess.RemoveCategory(in.ID))

	case "filter.text":
		s.sess.SetTextFilter(in.Value)
		if in.Flush {
			s.sess.FlushTextFilter()
		}
		res.Changed = true
	case "filter.category":
		s.sess.SetCategoryFilter(in.Value)
		res.Changed = true
	case "filter.project":
		s.sess.SetProjectFilter(in.Value)
		res.Changed = true

	case "drag.begin":
		kind, kerr := parseKind(in.Kind)
		if kerr != nil {
			return res, kerr
		}
		err = s.sess.BeginDrag(kind, in.ID, in.FromControl)
		res.Changed = err == nil
	case "drag.move":
		boxes := make([]drag.Box, 0, len(in.Boxes))
		for _, b := range in.Boxes {
			boxes = append(boxes, drag.Box{ID: b.ID, Start: b.Start, Size: b.Size})
		}
		res.Changed = s.sess.UpdateDragPosition(drag.Hover{ListID: in.ListID, Pointer: in.Pointer, Boxes: boxes})
	case "drag.commit", "drag.cancel":
		kind, _, ok := s.sess.Dragging()
		how := "drop"
		if in.Type == "drag.cancel" {
			how = "cancel"
			err = s.sess.CancelDrag()
		} else {
			err = s.sess.CommitDrag()
		}
		if ok {
			s.metrics.ObserveDrag(kind.String(), how)
		}
		res.Changed = ok

	case "order.lists":
		changed(s.sess.CommitListOrder(in.Order))
	case "order.cards":
		changed(s.sess.CommitCardOrder(in.Cards))

	case "board.reset":
		err = s.sess.Reset()
		res.Changed = true
	case "board.reload":
		s.sess.Reload()
		res.Changed = true

	default:
		return res, fmt.Errorf("%w: unknown type %q", errBadIntent, in.Type)
	}
	return res, err
}

func parseKind(v string) (drag.Kind, error) {
	switch v {
	case "card":
		return drag.KindCard, nil
	case "list":
		return drag.KindList, nil
	default:
		return 0, fmt.Errorf("%w: kind must be card or list, got %q", errBadIntent, v)
	}
}
