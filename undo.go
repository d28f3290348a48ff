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

func (m *model) undo() bool {
	if len(m.undoStack) == 0 {
		return false
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	switch action.Type {
	case ActionPlaceGear:
		data := action.Data.(GearData)
		m.workspace.Unplace(data.Gear.ID)
	case ActionRemoveGear:
		data := action.Inverse.(GearData)
		if err := m.workspace.Restore(data.Gear); err != nil {
			m.errorMessage = err.Error()
		}
	case ActionSetDriver:
		data := action.Inverse.(DriverData)
		m.workspace.SetDriver(data.To)
	}

	m.redoStack = append(m.redoStack, action)
	return true
}

func (m *model) redo() bool {
	if len(m.redoStack) == 0 {
		return false
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	switch action.Type {
	case ActionPlaceGear:
		data := action.Data.(GearData)
		if err := m.workspace.Restore(data.Gear); err != nil {
			m.errorMessage = err.Error()
		}
	case ActionRemoveGear:
		data := action.Data.(GearData)
		m.workspace.Unplace(data.Gear.ID)
	case ActionSetDriver:
		data := action.Data.(DriverData)
		m.workspace.SetDriver(data.To)
	}

	m.undoStack = append(m.undoStack, action)
	return true
}
