package types

import "time"

// Trigger names what started a delivery run.
type Trigger string

const (
	TriggerSchedule Trigger = "schedule"
	TriggerManual   Trigger = "manual"
	TriggerStartup  Trigger = "startup"
)

type DeliveryStatus string

const (
	DeliverySent          DeliveryStatus = "sent"
	DeliveryFailureNotice DeliveryStatus = "failure_notice"
	DeliveryFailed        DeliveryStatus = "failed"
)

// Delivery is one row of the delivery log. It never carries weather data.
type Delivery struct {
	ID         string         `json:"id"`
	Trigger    Trigger        `json:"trigger"`
	Status     DeliveryStatus `json:"status"`
	Subject    string         `json:"subject"`
	Recipients int            `json:"recipients"`
	Error      string         `json:"error,omitempty"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
}
