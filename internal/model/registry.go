package model

// All lists every table owned by this service, in dependency order.
func All() []interface{} {
	return []interface{}{
		&WorkflowCategory{},
		&Workflow{},
		&ChatTurn{},
		&AssistantConfig{},
		&WaitlistEntry{},
	}
}
