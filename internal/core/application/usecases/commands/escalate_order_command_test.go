package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEscalateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewEscalateOrderCommand(id, "customer requested escalation")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "customer requested escalation", cmd.Reason())
}

func TestNewEscalateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewEscalateOrderCommand(kernel.UUID{}, "reason")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewEscalateOrderCommand_EmptyReason(t *testing.T) {
	_, err := commands.NewEscalateOrderCommand(kernel.NewUUID(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrEscalationReasonIsRequired)
}
