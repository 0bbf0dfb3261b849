package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-pos-service/internal/config"
	"github.com/spec-kit/salon-pos-service/internal/domain"
	"github.com/spec-kit/salon-pos-service/internal/repository"
)

func newClockFixture(members ...*domain.StaffMember) (*ClockService, *fakeStaffRepo, *fakeAttendanceRepo, *fakeTokenRepo) {
	staffRepo := newFakeStaffRepo(members...)
	ledger := newFakeAttendanceRepo()
	tokenRepo := newFakeTokenRepo()
	tokens := NewTokenService(tokenRepo, config.TerminalConfig{TokenTTLMinutes: 20, ExpiredGraceMinutes: 5}, zap.NewNop())
	svc := NewClockService(ClockDependencies{
		StaffRepo:      staffRepo,
		AttendanceRepo: ledger,
		TokenService:   tokens,
		Logger:         zap.NewNop(),
	})
	return svc, staffRepo, ledger, tokenRepo
}

func testStaff(id, name string) *domain.StaffMember {
	return &domain.StaffMember{
		ID:     id,
		Name:   name,
		Role:   domain.StaffRoleStaff,
		Active: true,
	}
}

func TestToggleClocksInWhenOut(t *testing.T) {
	svc, staffRepo, ledger, _ := newClockFixture(testStaff("s1", "Jessica"))

	result, err := svc.Toggle(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusClockedIn, result.Status)
	assert.Contains(t, result.Message, "Jessica")
	require.NotNil(t, result.Record)
	assert.Nil(t, result.Record.ClockOut)

	member, err := staffRepo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, member.IsClockedIn)
	assert.NotNil(t, member.LastClockIn)

	open, err := ledger.FindOpenRecord(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, result.Record.ID, open.ID)
}

func TestToggleClocksOutWhenIn(t *testing.T) {
	svc, staffRepo, _, _ := newClockFixture(testStaff("s1", "David"))

	_, err := svc.Toggle(context.Background(), "s1")
	require.NoError(t, err)

	result, err := svc.Toggle(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusClockedOut, result.Status)
	require.NotNil(t, result.Record.ClockOut)
	require.NotNil(t, result.Record.DurationHours)

	member, err := staffRepo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, member.IsClockedIn)
}

func TestToggleAlternatesAcrossRepeatedScans(t *testing.T) {
	svc, _, _, _ := newClockFixture(testStaff("s1", "Lisa"))

	want := []domain.ClockStatus{
		domain.StatusClockedIn,
		domain.StatusClockedOut,
		domain.StatusClockedIn,
		domain.StatusClockedOut,
	}
	for i, expected := range want {
		result, err := svc.Toggle(context.Background(), "s1")
		require.NoError(t, err, "toggle %d", i)
		assert.Equal(t, expected, result.Status, "toggle %d", i)
	}
}

func TestClockOutRoundsDurationToTwoDecimals(t *testing.T) {
	svc, _, ledger, _ := newClockFixture(testStaff("s1", "Mike"))

	_, err := svc.Toggle(context.Background(), "s1")
	require.NoError(t, err)

	// Backdate the open record so the shift has a measurable length.
	ledger.mu.Lock()
	for _, record := range ledger.records {
		record.ClockIn = record.ClockIn.Add(-7*time.Hour - 37*time.Minute)
	}
	ledger.mu.Unlock()

	result, err := svc.Toggle(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, result.Record.DurationHours)
	assert.InDelta(t, 7.62, *result.Record.DurationHours, 0.01)
	assert.Contains(t, result.Message, "7.62 hours")
}

func TestScanToggleConsumesTokenThenFlips(t *testing.T) {
	svc, _, _, _ := newClockFixture(testStaff("s1", "Sarah"))

	token, err := svc.tokens.Issue(context.Background())
	require.NoError(t, err)

	result, err := svc.ScanToggle(context.Background(), "s1", token.Value)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClockedIn, result.Status)

	// A second staff member cannot reuse the consumed code.
	_, err = svc.ScanToggle(context.Background(), "s1", token.Value)
	assert.Equal(t, "TOKEN_NOT_FOUND", domainCode(t, err))
}

func TestScanToggleRejectsExpiredTokenWithoutFlipping(t *testing.T) {
	svc, staffRepo, _, tokenRepo := newClockFixture(testStaff("s1", "Sarah"))

	stale := domain.ClockToken{
		Value:     "stale-code",
		IssuedAt:  time.Now().UTC().Add(-30 * time.Minute),
		ExpiresAt: time.Now().UTC().Add(-10 * time.Minute),
	}
	require.NoError(t, tokenRepo.Save(context.Background(), stale, 5*time.Minute))

	_, err := svc.ScanToggle(context.Background(), "s1", stale.Value)
	assert.Equal(t, "TOKEN_EXPIRED", domainCode(t, err))

	member, err := staffRepo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, member.IsClockedIn)
}

func TestToggleUnknownStaffReportsNotFound(t *testing.T) {
	svc, _, _, _ := newClockFixture()

	_, err := svc.Toggle(context.Background(), "ghost")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestClockOutWithoutOpenRecordReportsInconsistentState(t *testing.T) {
	member := testStaff("s1", "Sarah")
	member.IsClockedIn = true
	svc, _, _, _ := newClockFixture(member)

	_, err := svc.Toggle(context.Background(), "s1")
	assert.Equal(t, "INCONSISTENT_STATE", domainCode(t, err))
}

func TestClockOutWithMultipleOpenRecordsReportsInconsistentState(t *testing.T) {
	member := testStaff("s1", "Sarah")
	member.IsClockedIn = true
	svc, _, ledger, _ := newClockFixture(member)

	now := time.Now().UTC()
	ledger.mu.Lock()
	for i := 0; i < 2; i++ {
		id := fmt.Sprintf("r%d", i)
		ledger.records[id] = &domain.AttendanceRecord{
			ID:      id,
			StaffID: "s1",
			ClockIn: now.Add(-time.Hour),
		}
	}
	ledger.mu.Unlock()

	_, err := svc.Toggle(context.Background(), "s1")
	assert.Equal(t, "INCONSISTENT_STATE", domainCode(t, err))
}

func TestClockInWithOpenRecordReportsInconsistentState(t *testing.T) {
	// The flag says clocked out, but the ledger still holds an open record.
	svc, _, ledger, _ := newClockFixture(testStaff("s1", "Sarah"))

	ledger.mu.Lock()
	ledger.records["r1"] = &domain.AttendanceRecord{
		ID:      "r1",
		StaffID: "s1",
		ClockIn: time.Now().UTC().Add(-time.Hour),
	}
	ledger.mu.Unlock()

	_, err := svc.Toggle(context.Background(), "s1")
	assert.Equal(t, "INCONSISTENT_STATE", domainCode(t, err))
}

func TestConcurrentTogglesStaySerialized(t *testing.T) {
	svc, staffRepo, ledger, _ := newClockFixture(testStaff("s1", "Sarah"))

	const toggles = 8
	var wg sync.WaitGroup
	errs := make([]error, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Toggle(context.Background(), "s1")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "toggle %d", i)
	}

	// An even number of toggles lands back at clocked out with every
	// record closed; the serialized engine never opens a second record.
	member, err := staffRepo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, member.IsClockedIn)

	staffID := "s1"
	records, err := ledger.List(context.Background(), repository.AttendanceFilter{StaffID: &staffID})
	require.NoError(t, err)
	assert.Len(t, records, toggles/2)
	for _, record := range records {
		assert.NotNil(t, record.ClockOut)
	}
}
