package domain

import "time"

// TimelineEvent описывает событие в жизненном цикле возврата.
type TimelineEvent struct {
	ReturnID string
	OrderID  string
	Type     string
	Reason   string
	Occurred time.Time
}
