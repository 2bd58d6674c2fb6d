package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearswap/internal/domain/entity"
	"gearswap/pkg/errors"
)

func reportFixture() (*ReportUseCase, *fakeReportRepo, *fakeUserRepo, *fakeVehicleRepo, *fakeReviewRepo, *recordingNotifier) {
	users := newFakeUserRepo(
		&entity.User{ID: "alice", Username: "alice", Status: "active"},
		&entity.User{ID: "bob", Username: "bob", Status: "active"},
	)
	vehicles := newFakeVehicleRepo(
		&entity.Vehicle{ID: "v-bob", SellerID: "bob", Status: entity.ListingStatusActive},
	)
	parts := newFakePartRepo()
	swaps := newFakeSwapRepo()
	reviews := newFakeReviewRepo(
		&entity.Review{ID: "rev-1", SwapID: "swap-1", ReviewerID: "bob", TargetID: "alice", Rating: 1, Status: "active"},
	)
	reports := newFakeReportRepo()
	notifier := &recordingNotifier{}

	uc := NewReportUseCase(reports, users, vehicles, parts, swaps, reviews, notifier)
	return uc, reports, users, vehicles, reviews, notifier
}

func TestSubmitReport(t *testing.T) {
	uc, _, _, _, _, _ := reportFixture()

	report, err := uc.Submit(context.Background(), "alice", SubmitReportInput{
		TargetType: "vehicle",
		TargetID:   "v-bob",
		Reason:     "scam",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReportStatusPending, report.Status)
	assert.Equal(t, entity.ReportTargetVehicle, report.Target.Type)
	assert.NotEmpty(t, report.ID)
}

func TestSubmitReportInvalidTargetType(t *testing.T) {
	uc, _, _, _, _, _ := reportFixture()

	_, err := uc.Submit(context.Background(), "alice", SubmitReportInput{
		TargetType: "comment",
		TargetID:   "whatever",
		Reason:     "spam",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSubmitReportMissingTarget(t *testing.T) {
	uc, _, _, _, _, _ := reportFixture()

	_, err := uc.Submit(context.Background(), "alice", SubmitReportInput{
		TargetType: "vehicle",
		TargetID:   "no-such-vehicle",
		Reason:     "scam",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSubmitReportDuplicateOpen(t *testing.T) {
	uc, _, _, _, _, _ := reportFixture()

	_, err := uc.Submit(context.Background(), "alice", SubmitReportInput{
		TargetType: "vehicle", TargetID: "v-bob", Reason: "scam",
	})
	require.NoError(t, err)

	_, err = uc.Submit(context.Background(), "alice", SubmitReportInput{
		TargetType: "vehicle", TargetID: "v-bob", Reason: "still a scam",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestResolveReportRemoveListing(t *testing.T) {
	uc, reports, _, vehicles, _, notifier := reportFixture()
	require.NoError(t, reports.Create(context.Background(), &entity.Report{
		ID: "report-1", ReporterID: "alice",
		Target: entity.ReportTarget{Type: entity.ReportTargetVehicle, ID: "v-bob"},
		Status: entity.ReportStatusPending,
	}))

	report, err := uc.Resolve(context.Background(), "admin", "report-1", ResolveReportInput{
		Status:     entity.ReportStatusResolved,
		Resolution: "Listing taken down",
		Action:     entity.ReportActionRemove,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReportStatusResolved, report.Status)
	assert.Equal(t, entity.ReportActionRemove, report.ActionTaken)
	assert.Equal(t, "admin", report.ResolvedBy)
	assert.NotNil(t, report.ResolvedAt)

	vehicle, err := vehicles.GetByID(context.Background(), "v-bob")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusInactive, vehicle.Status)

	assert.Equal(t, entity.NotificationReportResolved, notifier.lastTypeFor("alice"))
}

func TestResolveReportRemoveReview(t *testing.T) {
	uc, reports, _, _, reviews, _ := reportFixture()
	require.NoError(t, reports.Create(context.Background(), &entity.Report{
		ID: "report-1", ReporterID: "alice",
		Target: entity.ReportTarget{Type: entity.ReportTargetReview, ID: "rev-1"},
		Status: entity.ReportStatusPending,
	}))

	_, err := uc.Resolve(context.Background(), "admin", "report-1", ResolveReportInput{
		Status:     entity.ReportStatusResolved,
		Resolution: "Abusive review hidden",
		Action:     entity.ReportActionRemove,
	})
	require.NoError(t, err)

	review, err := reviews.GetByID(context.Background(), "rev-1")
	require.NoError(t, err)
	assert.Equal(t, "removed", review.Status)
}

func TestResolveReportSuspendsListingOwner(t *testing.T) {
	uc, reports, users, _, _, notifier := reportFixture()
	require.NoError(t, reports.Create(context.Background(), &entity.Report{
		ID: "report-1", ReporterID: "alice",
		Target: entity.ReportTarget{Type: entity.ReportTargetVehicle, ID: "v-bob"},
		Status: entity.ReportStatusPending,
	}))

	_, err := uc.Resolve(context.Background(), "admin", "report-1", ResolveReportInput{
		Status:     entity.ReportStatusResolved,
		Resolution: "Repeated scam listings",
		Action:     entity.ReportActionSuspend,
	})
	require.NoError(t, err)

	bob, err := users.GetByID(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "suspended", bob.Status)

	calls := notifier.callsFor("bob")
	require.Len(t, calls, 1)
	assert.Equal(t, entity.NotificationSecurityAlert, calls[0].Payload.Type)
	assert.True(t, calls[0].Channels.SMS)
}

func TestResolveReportDismissedForcesNoAction(t *testing.T) {
	uc, reports, _, vehicles, _, _ := reportFixture()
	require.NoError(t, reports.Create(context.Background(), &entity.Report{
		ID: "report-1", ReporterID: "alice",
		Target: entity.ReportTarget{Type: entity.ReportTargetVehicle, ID: "v-bob"},
		Status: entity.ReportStatusPending,
	}))

	report, err := uc.Resolve(context.Background(), "admin", "report-1", ResolveReportInput{
		Status:     entity.ReportStatusDismissed,
		Resolution: "Nothing wrong with the listing",
		Action:     entity.ReportActionBan,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReportActionNone, report.ActionTaken)

	vehicle, err := vehicles.GetByID(context.Background(), "v-bob")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusActive, vehicle.Status)
}

func TestResolveReportAlreadyClosed(t *testing.T) {
	uc, reports, _, _, _, _ := reportFixture()
	require.NoError(t, reports.Create(context.Background(), &entity.Report{
		ID: "report-1", ReporterID: "alice",
		Target: entity.ReportTarget{Type: entity.ReportTargetVehicle, ID: "v-bob"},
		Status: entity.ReportStatusResolved,
	}))

	_, err := uc.Resolve(context.Background(), "admin", "report-1", ResolveReportInput{
		Status: entity.ReportStatusResolved, Resolution: "again",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestResolveReportInvalidStatus(t *testing.T) {
	uc, reports, _, _, _, _ := reportFixture()
	require.NoError(t, reports.Create(context.Background(), &entity.Report{
		ID: "report-1", ReporterID: "alice",
		Target: entity.ReportTarget{Type: entity.ReportTargetVehicle, ID: "v-bob"},
		Status: entity.ReportStatusPending,
	}))

	_, err := uc.Resolve(context.Background(), "admin", "report-1", ResolveReportInput{
		Status: "investigating", Resolution: "still looking",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
