package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildconnect/internal/core/application/usecases/commands"
	"buildconnect/internal/core/domain/model/kernel"
)

func TestNewSubmitProviderResponseCommand(t *testing.T) {
	cmd, err := commands.NewSubmitProviderResponseCommand(
		kernel.NewUUID(), kernel.NewUUID(), commands.ActionAccept,
		"can load within the hour", 18500, 3.5)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, commands.ActionAccept, cmd.Action())
	assert.Equal(t, 18500.0, cmd.EstimatedCost())
	assert.Equal(t, 3.5, cmd.EstimatedDurationHours())
}

func TestNewSubmitProviderResponseCommand_Validation(t *testing.T) {
	tests := map[string]struct {
		providerID kernel.UUID
		action     commands.ResponseAction
		cost       float64
	}{
		"empty provider id": {providerID: kernel.UUID{}, action: commands.ActionReject},
		"unknown action":    {providerID: kernel.NewUUID(), action: commands.ActionUnknown},
		"negative cost":     {providerID: kernel.NewUUID(), action: commands.ActionAccept, cost: -1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := commands.NewSubmitProviderResponseCommand(
				kernel.NewUUID(), tc.providerID, tc.action, "", tc.cost, 0)
			require.Error(t, err)
		})
	}
}

func TestSubmitProviderResponseCommand_NotConstructed(t *testing.T) {
	var cmd commands.SubmitProviderResponseCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrSubmitProviderResponseCommandIsNotConstructed)
}

func TestNewCancelDeliveryRequestCommand_Validation(t *testing.T) {
	_, err := commands.NewCancelDeliveryRequestCommand(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)

	var cmd commands.CancelDeliveryRequestCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCancelDeliveryRequestCommandIsNotConstructed)
}

func TestNewDiscloseDriverContactCommand_Validation(t *testing.T) {
	_, err := commands.NewDiscloseDriverContactCommand(kernel.NewUUID(), kernel.NewUUID(), 0, "")
	require.Error(t, err)

	var cmd commands.DiscloseDriverContactCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrDiscloseDriverContactCommandIsNotConstructed)
}
