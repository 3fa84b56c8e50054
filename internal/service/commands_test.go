package service

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeRuns map[string]models.CompletedRun

func (f fakeRuns) LastRun(unit string) (models.CompletedRun, bool) {
	run, ok := f[unit]
	return run, ok
}

func newTestCommands(t *testing.T, runs fakeRuns) (*CommandHandler, *LiveController, *mocks.MockTransport) {
	d, transport := newTestDispatcher(t, testMetrics())
	repo := newMemShiftRepo()
	ledger := NewShiftLedger(repo, testShiftHour, quietLogger(), at(8, 0))
	boards := NewLeaderboards(repo, ledger, []string{"E33", "R33"}, testShiftHour)
	live := NewLiveController(&memLiveRepo{}, boards, d, quietLogger())
	return NewCommandHandler(boards, live, runs, d, quietLogger(), time.UTC), live, transport
}

func TestParseCommand(t *testing.T) {
	assert.Equal(t, "/day", ParseCommand("/Day@DispatchBot extra"))
	assert.Equal(t, "/livehere", ParseCommand("  /LIVEHERE  "))
	assert.Equal(t, "", ParseCommand("   "))
}

func TestCommandHandler_LeaderboardQuery(t *testing.T) {
	h, _, transport := newTestCommands(t, nil)

	transport.EXPECT().
		Send(gomock.Any(), "R33", RecapTitle, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, body string) (int64, error) {
			assert.Contains(t, body, "Weekly runs 04 Mar 2026 - 10 Mar 2026")
			assert.Contains(t, body, "No runs recorded.")
			return 1, nil
		})

	assert.True(t, h.Handle(context.Background(), models.Command{Channel: "R33", Text: "/week@bot"}, at(9, 0)))
}

func TestCommandHandler_LiveArmAndStop(t *testing.T) {
	h, live, transport := newTestCommands(t, nil)
	ctx := context.Background()

	gomock.InOrder(
		transport.EXPECT().Send(gomock.Any(), "LOG", "LIVE YEARLY", gomock.Any()).Return(int64(10), nil),
		transport.EXPECT().Send(gomock.Any(), "R33", "LIVE BOARD", "Enabled live Yearly leaderboard in LOG topic.").Return(int64(11), nil),
		transport.EXPECT().Send(gomock.Any(), "R33", "LIVE BOARD", "Live leaderboard stopped.").Return(int64(12), nil),
	)

	assert.True(t, h.Handle(ctx, models.Command{Channel: "R33", Text: "/liveyear"}, at(9, 0)))
	assert.True(t, live.State().Active)
	assert.Equal(t, models.WindowYear, live.State().Period)

	assert.True(t, h.Handle(ctx, models.Command{Channel: "R33", Text: "/livestop"}, at(9, 1)))
	assert.False(t, live.State().Active)
}

func TestCommandHandler_LiveHere(t *testing.T) {
	h, live, transport := newTestCommands(t, nil)

	gomock.InOrder(
		transport.EXPECT().Send(gomock.Any(), "E33", "LIVE DAILY", gomock.Any()).Return(int64(20), nil),
		transport.EXPECT().Send(gomock.Any(), "E33", "LIVE BOARD", "Live Daily leaderboard will update here.").Return(int64(21), nil),
	)

	assert.True(t, h.Handle(context.Background(), models.Command{Channel: "E33", Text: "/livehere"}, at(9, 0)))
	assert.Equal(t, []string{"E33"}, live.State().Threads)
}

func TestCommandHandler_Times(t *testing.T) {
	runs := fakeRuns{"E33": {
		IncidentID: "INC1",
		UnitID:     "E33",
		Events: []models.Event{
			{Label: "dispatched", At: at(8, 0)},
			{Label: "enroute", At: at(8, 2)},
			{Label: "available", At: at(8, 40)},
		},
	}}
	h, _, transport := newTestCommands(t, runs)

	transport.EXPECT().Send(gomock.Any(), "E33", "TIMES", "E33 latest run\n08:00  dispatched\n08:02  enroute\n08:40  available").Return(int64(1), nil)
	transport.EXPECT().Send(gomock.Any(), "R33", "TIMES", "No completed run recorded.").Return(int64(2), nil)

	assert.True(t, h.Handle(context.Background(), models.Command{Channel: "E33", Text: "/times"}, at(9, 0)))
	assert.True(t, h.Handle(context.Background(), models.Command{Channel: "R33", Text: "/TIMES"}, at(9, 0)))
}

func TestCommandHandler_UnknownIgnored(t *testing.T) {
	h, _, transport := newTestCommands(t, nil)
	transport.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	for _, text := range []string{"hello", "/bogus", "/livefortnight", ""} {
		assert.False(t, h.Handle(context.Background(), models.Command{Channel: "E33", Text: text}, at(9, 0)), text)
	}
}
