package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearswap/internal/domain/entity"
	"gearswap/pkg/errors"
)

func swapFixture() (*SwapUseCase, *fakeSwapRepo, *fakeVehicleRepo, *fakePartRepo, *fakeUserRepo, *recordingNotifier) {
	users := newFakeUserRepo(
		&entity.User{ID: "alice", Username: "alice", Email: "alice@example.com"},
		&entity.User{ID: "bob", Username: "bob", Email: "bob@example.com"},
	)
	vehicles := newFakeVehicleRepo(
		&entity.Vehicle{ID: "v-alice", SellerID: "alice", Title: "Civic", Status: entity.ListingStatusActive},
		&entity.Vehicle{ID: "v-bob", SellerID: "bob", Title: "Corolla", Status: entity.ListingStatusActive},
	)
	parts := newFakePartRepo(
		&entity.Part{ID: "p-bob", SellerID: "bob", Title: "Turbocharger", Status: entity.ListingStatusActive},
	)
	swaps := newFakeSwapRepo()
	notifier := &recordingNotifier{}

	uc := NewSwapUseCase(swaps, vehicles, parts, users, notifier)
	return uc, swaps, vehicles, parts, users, notifier
}

func TestProposeSwap(t *testing.T) {
	uc, _, _, _, _, notifier := swapFixture()

	resp, err := uc.Propose(context.Background(), "alice", ProposeSwapInput{
		OfferedVehicleID:  "v-alice",
		RequestedItemType: "vehicle",
		RequestedItemID:   "v-bob",
		Message:           "Interested in a trade?",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SwapStatusPending, resp.Status)
	assert.Equal(t, "alice", resp.InitiatorID)
	assert.Equal(t, "bob", resp.ReceiverID)
	assert.NotEmpty(t, resp.ID)
	require.NotNil(t, resp.Initiator)
	assert.Equal(t, "alice", resp.Initiator.Username)
	require.NotNil(t, resp.OfferedVehicle)
	assert.Equal(t, "Civic", resp.OfferedVehicle.Title)

	calls := notifier.callsFor("bob")
	require.Len(t, calls, 1)
	assert.Equal(t, entity.NotificationSwapProposal, calls[0].Payload.Type)
	assert.True(t, calls[0].Channels.Email)
}

func TestProposeSwapForPart(t *testing.T) {
	uc, _, _, _, _, _ := swapFixture()

	resp, err := uc.Propose(context.Background(), "alice", ProposeSwapInput{
		OfferedVehicleID:  "v-alice",
		RequestedItemType: "part",
		RequestedItemID:   "p-bob",
		AdditionalCash:    150,
		Currency:          "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, "bob", resp.ReceiverID)
	assert.Equal(t, 150.0, resp.AdditionalCash)
}

func TestProposeSwapRejectsForeignVehicle(t *testing.T) {
	uc, _, _, _, _, _ := swapFixture()

	_, err := uc.Propose(context.Background(), "alice", ProposeSwapInput{
		OfferedVehicleID:  "v-bob",
		RequestedItemType: "vehicle",
		RequestedItemID:   "v-alice",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestProposeSwapRejectsSelfSwap(t *testing.T) {
	uc, _, vehicles, _, _, _ := swapFixture()
	require.NoError(t, vehicles.Create(context.Background(), &entity.Vehicle{
		ID: "v-alice-2", SellerID: "alice", Status: entity.ListingStatusActive,
	}))

	_, err := uc.Propose(context.Background(), "alice", ProposeSwapInput{
		OfferedVehicleID:  "v-alice",
		RequestedItemType: "vehicle",
		RequestedItemID:   "v-alice-2",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestProposeSwapRejectsInactiveVehicle(t *testing.T) {
	uc, _, vehicles, _, _, _ := swapFixture()
	require.NoError(t, vehicles.UpdateStatus(context.Background(), "v-alice", entity.ListingStatusSold))

	_, err := uc.Propose(context.Background(), "alice", ProposeSwapInput{
		OfferedVehicleID:  "v-alice",
		RequestedItemType: "vehicle",
		RequestedItemID:   "v-bob",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestProposeSwapRejectsNegativeCash(t *testing.T) {
	uc, _, _, _, _, _ := swapFixture()

	_, err := uc.Propose(context.Background(), "alice", ProposeSwapInput{
		OfferedVehicleID:  "v-alice",
		RequestedItemType: "vehicle",
		RequestedItemID:   "v-bob",
		AdditionalCash:    -50,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestAcceptSwap(t *testing.T) {
	uc, swaps, _, _, _, notifier := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		OfferedVehicleID: "v-alice", RequestedItemType: "vehicle", RequestedItemID: "v-bob",
		Status: entity.SwapStatusPending,
	}))

	resp, err := uc.Accept(context.Background(), "swap-1", "bob", "Deal")
	require.NoError(t, err)

	assert.Equal(t, entity.SwapStatusAccepted, resp.Status)
	assert.Equal(t, "Deal", resp.ResponseNote)
	assert.NotNil(t, resp.RespondedAt)

	calls := notifier.callsFor("alice")
	require.Len(t, calls, 1)
	assert.Equal(t, entity.NotificationSwapAccepted, calls[0].Payload.Type)
	assert.True(t, calls[0].Channels.SMS)
}

func TestAcceptSwapOnlyReceiver(t *testing.T) {
	uc, swaps, _, _, _, _ := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		Status: entity.SwapStatusPending,
	}))

	_, err := uc.Accept(context.Background(), "swap-1", "alice", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestAcceptSwapOnlyPending(t *testing.T) {
	uc, swaps, _, _, _, _ := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		Status: entity.SwapStatusRejected,
	}))

	_, err := uc.Accept(context.Background(), "swap-1", "bob", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRejectSwap(t *testing.T) {
	uc, swaps, _, _, _, notifier := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		Status: entity.SwapStatusPending,
	}))

	resp, err := uc.Reject(context.Background(), "swap-1", "bob", "Not interested")
	require.NoError(t, err)

	assert.Equal(t, entity.SwapStatusRejected, resp.Status)
	assert.Equal(t, entity.NotificationSwapRejected, notifier.lastTypeFor("alice"))
}

func TestCancelSwap(t *testing.T) {
	uc, swaps, _, _, _, notifier := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		Status: entity.SwapStatusPending,
	}))

	resp, err := uc.Cancel(context.Background(), "swap-1", "alice")
	require.NoError(t, err)

	assert.Equal(t, entity.SwapStatusCancelled, resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, entity.NotificationSwapCancelled, notifier.lastTypeFor("bob"))
}

func TestCancelSwapRejectsOutsider(t *testing.T) {
	uc, swaps, _, _, _, _ := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		Status: entity.SwapStatusPending,
	}))

	_, err := uc.Cancel(context.Background(), "swap-1", "mallory")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCancelCompletedSwap(t *testing.T) {
	uc, swaps, _, _, _, _ := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		Status: entity.SwapStatusCompleted,
	}))

	_, err := uc.Cancel(context.Background(), "swap-1", "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCompleteSwap(t *testing.T) {
	uc, swaps, vehicles, _, users, notifier := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		OfferedVehicleID: "v-alice", RequestedItemType: "vehicle", RequestedItemID: "v-bob",
		Status: entity.SwapStatusAccepted,
	}))

	resp, err := uc.Complete(context.Background(), "swap-1", "bob")
	require.NoError(t, err)

	assert.Equal(t, entity.SwapStatusCompleted, resp.Status)
	assert.NotNil(t, resp.CompletedAt)

	offered, err := vehicles.GetByID(context.Background(), "v-alice")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusSwapped, offered.Status)

	requested, err := vehicles.GetByID(context.Background(), "v-bob")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusSwapped, requested.Status)

	for _, id := range []string{"alice", "bob"} {
		user, err := users.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, user.TotalSwaps)
		assert.Equal(t, entity.NotificationSwapCompleted, notifier.lastTypeFor(id))
	}
}

func TestCompleteSwapMarksRequestedPart(t *testing.T) {
	uc, swaps, _, parts, _, _ := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		OfferedVehicleID: "v-alice", RequestedItemType: "part", RequestedItemID: "p-bob",
		Status: entity.SwapStatusAccepted,
	}))

	_, err := uc.Complete(context.Background(), "swap-1", "alice")
	require.NoError(t, err)

	part, err := parts.GetByID(context.Background(), "p-bob")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusSwapped, part.Status)
}

func TestCompleteSwapRequiresAccepted(t *testing.T) {
	uc, swaps, _, _, _, _ := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		Status: entity.SwapStatusPending,
	}))

	_, err := uc.Complete(context.Background(), "swap-1", "bob")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestGetSwapByIDPartyOnly(t *testing.T) {
	uc, swaps, _, _, _, _ := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob",
		Status: entity.SwapStatusPending,
	}))

	_, err := uc.GetSwapByID(context.Background(), "mallory", "swap-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	resp, err := uc.GetSwapByID(context.Background(), "bob", "swap-1")
	require.NoError(t, err)
	assert.Equal(t, "swap-1", resp.ID)
}

func TestListSwapsByRole(t *testing.T) {
	uc, swaps, _, _, _, _ := swapFixture()
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-1", InitiatorID: "alice", ReceiverID: "bob", Status: entity.SwapStatusPending,
	}))
	require.NoError(t, swaps.Create(context.Background(), &entity.Swap{
		ID: "swap-2", InitiatorID: "bob", ReceiverID: "alice", Status: entity.SwapStatusPending,
	}))

	initiated, total, err := uc.ListSwaps(context.Background(), "alice", "initiator", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, initiated, 1)
	assert.Equal(t, "swap-1", initiated[0].ID)

	received, total, err := uc.ListSwaps(context.Background(), "alice", "receiver", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, received, 1)
	assert.Equal(t, "swap-2", received[0].ID)
}
