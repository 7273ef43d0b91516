package ui

import "landscape/internal/filter"

// undoAction records the filter state before a labelled change.
type undoAction struct {
	label string
	state filter.State
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

// applyFilter runs mutate against a copy of the current state. A mutation
// that changes nothing is not recorded.
func (m *Model) applyFilter(label string, mutate func(*filter.State)) {
	next := m.filters.Clone()
	mutate(&next)
	if next.Equal(m.filters) {
		return
	}
	m.pushUndoAction(undoAction{label: label, state: m.filters})
	m.filters = next
	m.info = label
	m.error = ""
	m.recompute()
}

func (m *Model) undo() {
	if len(m.undoStack) == 0 {
		m.info = "Nothing to undo"
		return
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, undoAction{label: action.label, state: m.filters})
	m.filters = action.state
	m.info = "Undid: " + action.label
	m.recompute()
}

func (m *Model) redo() {
	if len(m.redoStack) == 0 {
		m.info = "Nothing to redo"
		return
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, undoAction{label: action.label, state: m.filters})
	m.filters = action.state
	m.info = "Redid: " + action.label
	m.recompute()
}
