package tui

import tea "github.com/charmbracelet/bubbletea"

// Notifier carries "state changed" signals from other goroutines into the board's event loop.
// Signals coalesce: any number of Notify calls before the loop wakes produce one refresh.
type Notifier struct {
	ch chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// Notify never blocks. It is safe to pass as session.Options.OnChange.
func (n *Notifier) Notify() {
	if n == nil {
		return
	}
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

func (n *Notifier) wait() tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		<-n.ch
		return boardChangedMsg{}
	}
}
