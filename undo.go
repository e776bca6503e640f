package main

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = m.redoStack[:0]
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		return
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	switch action.Type {
	case ActionAdd:
		data := action.Data.(AddData)
		for _, f := range data.Floaters {
			m.canvas.Dismiss(f.ID)
		}
	case ActionDismiss:
		data := action.Data.(DismissData)
		m.canvas.Insert(data.Floater, data.Index)
	case ActionClear:
		data := action.Data.(ClearData)
		for i, f := range data.Floaters {
			m.canvas.Insert(f, i)
		}
	case ActionRestyle:
		data := action.Inverse.(RestyleData)
		for _, change := range data.Changes {
			m.canvas.SetStyle(change.ID, change.Old)
		}
	}

	m.redoStack = append(m.redoStack, action)
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		return
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	switch action.Type {
	case ActionAdd:
		data := action.Data.(AddData)
		for _, f := range data.Floaters {
			m.canvas.Insert(f, m.canvas.Len())
		}
	case ActionDismiss:
		data := action.Data.(DismissData)
		m.canvas.Dismiss(data.Floater.ID)
	case ActionClear:
		m.canvas.Clear()
	case ActionRestyle:
		data := action.Data.(RestyleData)
		for _, change := range data.Changes {
			m.canvas.SetStyle(change.ID, change.New)
		}
	}

	m.undoStack = append(m.undoStack, action)
}
