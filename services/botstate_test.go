package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialogTransitions(t *testing.T) {
	tests := []struct {
		from BotState
		to   BotState
	}{
		{BotStateRegisterEmail, BotStateRegisterPassword},
		{BotStateRegisterPassword, BotStateIdle},
		{BotStateLoginEmail, BotStateLoginPassword},
		{BotStateLoginPassword, BotStateIdle},
		{BotStateCategoryName, BotStateIdle},
		{BotStateCategoryRename, BotStateIdle},
		{BotStateTxAmount, BotStateTxCategory},
		{BotStateTxCategory, BotStateTxDescription},
		{BotStateTxDescription, BotStateIdle},
		{BotStateIdle, BotStateIdle},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.to, NextState(tt.from), "from %s", tt.from)
	}
}

func TestTerminalSteps(t *testing.T) {
	terminal := []BotState{
		BotStateRegisterPassword,
		BotStateLoginPassword,
		BotStateCategoryName,
		BotStateCategoryRename,
		BotStateTxDescription,
	}
	for _, state := range terminal {
		assert.True(t, Terminal(state), "%s should complete its dialog", state)
	}

	nonTerminal := []BotState{
		BotStateIdle,
		BotStateRegisterEmail,
		BotStateLoginEmail,
		BotStateTxAmount,
		BotStateTxCategory,
	}
	for _, state := range nonTerminal {
		assert.False(t, Terminal(state), "%s should not complete its dialog", state)
	}
}
