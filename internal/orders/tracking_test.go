package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aavkar_pos/internal/models"
)

func stepKeys(steps []Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Key)
	}
	return out
}

func flags(steps []Step, pick func(Step) bool) []string {
	out := []string{}
	for _, s := range steps {
		if pick(s) {
			out = append(out, s.Key)
		}
	}
	return out
}

func TestStepsInProgress(t *testing.T) {
	steps := Steps(models.Order{Status: models.StatusInProgress})

	assert.Equal(t, []string{"placed", "accepted", "inprogress", "completed", "delivered"}, stepKeys(steps))
	assert.Equal(t, []string{"placed", "accepted"}, flags(steps, func(s Step) bool { return s.Completed }))
	assert.Equal(t, []string{"inprogress"}, flags(steps, func(s Step) bool { return s.Active }))
	assert.Empty(t, flags(steps, func(s Step) bool { return s.Cancelled }))
}

func TestStepsDeliveredHidesCancelled(t *testing.T) {
	steps := Steps(models.Order{Status: "Delivered"})
	assert.NotContains(t, stepKeys(steps), "cancelled")
	assert.Equal(t, []string{"delivered"}, flags(steps, func(s Step) bool { return s.Active }))
	assert.Len(t, flags(steps, func(s Step) bool { return s.Completed }), 4)
}

func TestStepsCancelled(t *testing.T) {
	steps := Steps(models.Order{Status: models.StatusCancelled})

	assert.Equal(t, []string{"placed", "accepted", "inprogress", "completed", "cancelled"}, stepKeys(steps))
	assert.Equal(t, []string{"cancelled"}, flags(steps, func(s Step) bool { return s.Cancelled }))
	assert.Empty(t, flags(steps, func(s Step) bool { return s.Completed || s.Active }))
}

func TestStepsUnknownStatus(t *testing.T) {
	steps := Steps(models.Order{Status: "lost"})
	assert.Len(t, steps, 5)
	assert.Empty(t, flags(steps, func(s Step) bool { return s.Completed || s.Active || s.Cancelled }))
}

func TestStepsJoinHistory(t *testing.T) {
	o := models.Order{
		Status: models.StatusAccepted,
		StatusHistory: []models.StatusHistoryEntry{
			{ID: "h1", Status: "PLACED", Date: "d1"},
			{ID: "h2", Status: "accepted", Note: "chef on it"},
		},
	}
	steps := Steps(o)
	require.NotNil(t, steps[0].History)
	assert.Equal(t, "h1", steps[0].History.ID)
	assert.Equal(t, "chef on it", steps[1].History.Note)
	assert.Nil(t, steps[2].History)
}

func TestStatusBadge(t *testing.T) {
	cases := map[string]string{
		"placed":     "placed",
		"accepted":   "reviewed",
		"inprogress": "inprogress",
		"Completed":  "enable",
		"cancelled":  "destructive",
		"delivered":  "delivered",
		"refunded":   "default",
		"":           "default",
	}
	for status, want := range cases {
		assert.Equal(t, want, StatusBadge(status), status)
	}
}

func TestTrackingSummary(t *testing.T) {
	o := models.Order{StatusHistory: []models.StatusHistoryEntry{
		{Status: "placed"},
		{Status: "completed", CustomMessage: "Packed with care"},
		{Status: "delivered", CourierName: "BlueDart"},
	}}
	s := TrackingSummary(o)
	require.NotNil(t, s)
	assert.Equal(t, "completed", s.Status)

	assert.Nil(t, TrackingSummary(models.Order{}))
}

func TestTrack(t *testing.T) {
	tr := Track(models.Order{Status: models.StatusCompleted})
	assert.Equal(t, "enable", tr.Badge)
	assert.Len(t, tr.Steps, 5)
	assert.Nil(t, tr.Summary)
}
