package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLive(t *testing.T, repo *memLiveRepo) (*LiveController, *mocks.MockTransport) {
	d, transport := newTestDispatcher(t, testMetrics())
	ledger := NewShiftLedger(newMemShiftRepo(), testShiftHour, quietLogger(), at(8, 0))
	boards := NewLeaderboards(newMemShiftRepo(), ledger, []string{"E33", "R33"}, testShiftHour)
	return NewLiveController(repo, boards, d, quietLogger()), transport
}

func TestLiveController_DefaultsWhenNothingPersisted(t *testing.T) {
	c, _ := newTestLive(t, &memLiveRepo{})

	st := c.State()
	assert.False(t, st.Active)
	assert.Equal(t, models.WindowDay, st.Period)
	assert.Equal(t, []string{"LOG"}, st.Threads)
	assert.Equal(t, models.DefaultLiveRefreshSec, st.NextUpdateSec)
}

func TestLiveController_ArmPostsAndPersists(t *testing.T) {
	repo := &memLiveRepo{}
	c, transport := newTestLive(t, repo)
	now := at(9, 0)

	transport.EXPECT().Send(gomock.Any(), "LOG", "LIVE WEEKLY", gomock.Any()).Return(int64(55), nil)

	c.Arm(context.Background(), models.WindowWeek, []string{"LOG"}, now)

	assert.True(t, repo.state.Active)
	assert.Equal(t, models.WindowWeek, repo.state.Period)
	assert.Equal(t, int64(55), repo.state.MsgIDs["LOG"])

	// Интервал не истек и статистика не менялась
	assert.False(t, c.MaybeRefresh(context.Background(), now.Add(10*time.Second), false))
}

func TestLiveController_RefreshEditsInPlace(t *testing.T) {
	repo := &memLiveRepo{state: models.LiveState{
		Active:        true,
		Period:        models.WindowDay,
		Threads:       []string{"LOG"},
		MsgIDs:        map[string]int64{"LOG": 55},
		NextUpdateSec: 30,
	}}
	c, transport := newTestLive(t, repo)

	transport.EXPECT().Edit(gomock.Any(), "LOG", int64(55), "LIVE DAILY", gomock.Any()).Return(nil).Times(2)

	assert.True(t, c.MaybeRefresh(context.Background(), at(9, 0), false))
	assert.True(t, c.MaybeRefresh(context.Background(), at(9, 0).Add(5*time.Second), true))
	assert.False(t, c.MaybeRefresh(context.Background(), at(9, 0).Add(10*time.Second), false))
	assert.Empty(t, repo.saved, "unchanged mapping is not rewritten")
}

func TestLiveController_EditFailureFallsBackToSend(t *testing.T) {
	repo := &memLiveRepo{state: models.LiveState{
		Active:        true,
		Period:        models.WindowDay,
		Threads:       []string{"LOG"},
		MsgIDs:        map[string]int64{"LOG": 55},
		NextUpdateSec: 30,
	}}
	c, transport := newTestLive(t, repo)

	gomock.InOrder(
		transport.EXPECT().Edit(gomock.Any(), "LOG", int64(55), gomock.Any(), gomock.Any()).Return(errors.New("message to edit not found")),
		transport.EXPECT().Send(gomock.Any(), "LOG", "LIVE DAILY", gomock.Any()).Return(int64(77), nil),
	)

	require.True(t, c.MaybeRefresh(context.Background(), at(9, 0), true))
	assert.Equal(t, int64(77), repo.state.MsgIDs["LOG"])
	assert.Equal(t, int64(77), c.State().MsgIDs["LOG"])
}

func TestLiveController_DisarmStopsRefresh(t *testing.T) {
	repo := &memLiveRepo{state: models.LiveState{
		Active:  true,
		Period:  models.WindowDay,
		Threads: []string{"LOG"},
		MsgIDs:  map[string]int64{},
	}}
	c, transport := newTestLive(t, repo)
	transport.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	c.Disarm()

	assert.False(t, repo.state.Active)
	assert.False(t, c.MaybeRefresh(context.Background(), at(9, 0), true))
}

func TestLiveController_ArmHereKeepsWindow(t *testing.T) {
	repo := &memLiveRepo{state: models.LiveState{
		Period:  models.WindowMonth,
		Threads: []string{"LOG"},
		MsgIDs:  map[string]int64{},
	}}
	c, transport := newTestLive(t, repo)

	transport.EXPECT().Send(gomock.Any(), "E33", "LIVE MONTHLY", gomock.Any()).Return(int64(9), nil)

	w := c.ArmHere(context.Background(), "E33", at(9, 0))

	assert.Equal(t, models.WindowMonth, w)
	assert.Equal(t, []string{"E33"}, repo.state.Threads)
	assert.True(t, repo.state.Active)
}
