package orders

import (
	"strings"

	"aavkar_pos/internal/models"
)

type stepDef struct {
	Key   string
	Label string
	Text  string
}

var orderSteps = []stepDef{
	{models.StatusPlaced, "Your order has been placed", "Order received in kitchen"},
	{models.StatusAccepted, "Order confirmed and accepted", "Chef has accepted your order"},
	{models.StatusInProgress, "Your order is being prepared", "We're preparing your order with care"},
	{models.StatusCompleted, "Order is ready for delivery", "Your order is ready to go!"},
	{models.StatusCancelled, "Order has been cancelled", "Oops! Order was cancelled"},
	{models.StatusDelivered, "Order has been delivered", "Order successfully delivered"},
}

// Step is one point of the tracking timeline. At most one step is active
// or cancelled; the steps before it are completed.
type Step struct {
	Key       string                     `json:"key"`
	Label     string                     `json:"label"`
	Text      string                     `json:"text"`
	Completed bool                       `json:"completed"`
	Active    bool                       `json:"active"`
	Cancelled bool                       `json:"cancelled"`
	History   *models.StatusHistoryEntry `json:"history,omitempty"`
}

// visibleSteps drops the terminal step that cannot happen: a delivered or
// still running order never shows "cancelled", a cancelled one never shows
// "delivered".
func visibleSteps(status string) []stepDef {
	hide := models.StatusCancelled
	if status == models.StatusCancelled {
		hide = models.StatusDelivered
	}
	out := make([]stepDef, 0, len(orderSteps)-1)
	for _, s := range orderSteps {
		if s.Key != hide {
			out = append(out, s)
		}
	}
	return out
}

func historyFor(history []models.StatusHistoryEntry, key string) *models.StatusHistoryEntry {
	for i := range history {
		if strings.EqualFold(history[i].Status, key) {
			h := history[i]
			return &h
		}
	}
	return nil
}

// Steps builds the tracking timeline of an order. An unknown status gives
// a timeline with nothing completed or active.
func Steps(o models.Order) []Step {
	status := strings.ToLower(o.Status)
	defs := visibleSteps(status)

	current := -1
	for i, d := range defs {
		if d.Key == status {
			current = i
			break
		}
	}
	cancelled := status == models.StatusCancelled

	out := make([]Step, 0, len(defs))
	for i, d := range defs {
		out = append(out, Step{
			Key:       d.Key,
			Label:     d.Label,
			Text:      d.Text,
			Completed: !cancelled && i < current,
			Active:    !cancelled && i == current,
			Cancelled: cancelled && i == current,
			History:   historyFor(o.StatusHistory, d.Key),
		})
	}
	return out
}

var statusBadges = map[string]string{
	models.StatusPlaced:     "placed",
	models.StatusAccepted:   "reviewed",
	models.StatusInProgress: "inprogress",
	models.StatusCompleted:  "enable",
	models.StatusCancelled:  "destructive",
	models.StatusDelivered:  "delivered",
}

// StatusBadge maps an order status to the badge variant the dashboard
// renders it with.
func StatusBadge(status string) string {
	if b, ok := statusBadges[strings.ToLower(status)]; ok {
		return b
	}
	return "default"
}

// TrackingSummary returns the first history entry that carries courier
// details or a custom message, nil when there is none.
func TrackingSummary(o models.Order) *models.StatusHistoryEntry {
	for i := range o.StatusHistory {
		h := o.StatusHistory[i]
		if h.HasTracking() || h.CustomMessage != "" {
			return &h
		}
	}
	return nil
}

type Tracking struct {
	Status  string                     `json:"status"`
	Badge   string                     `json:"badge"`
	Steps   []Step                     `json:"steps"`
	Summary *models.StatusHistoryEntry `json:"summary,omitempty"`
}

func Track(o models.Order) Tracking {
	return Tracking{
		Status:  o.Status,
		Badge:   StatusBadge(o.Status),
		Steps:   Steps(o),
		Summary: TrackingSummary(o),
	}
}
