package models

import (
	"slices"
	"time"
)

type CaretakerStatus string

const (
	CaretakerAvailable CaretakerStatus = "available"
	CaretakerBusy      CaretakerStatus = "busy"
	CaretakerOnLeave   CaretakerStatus = "on_leave"
	CaretakerBuffer    CaretakerStatus = "buffer"
)

func (s CaretakerStatus) Valid() bool {
	switch s {
	case CaretakerAvailable, CaretakerBusy, CaretakerOnLeave, CaretakerBuffer:
		return true
	}
	return false
}

type CaretakerInfo struct {
	UserID              string          `json:"user_id"`
	Name                string          `json:"name"`
	Phone               string          `json:"phone"`
	Skills              []PackageType   `json:"skills"`
	Status              CaretakerStatus `json:"status"`
	CurrentTaskID       string          `json:"current_task_id,omitempty"`
	LastTaskCompletedAt *time.Time      `json:"last_task_completed_at,omitempty"`
}

func (c CaretakerInfo) HasSkill(p PackageType) bool {
	return slices.Contains(c.Skills, p)
}

func (c CaretakerInfo) Clone() CaretakerInfo {
	out := c
	out.Skills = append([]PackageType(nil), c.Skills...)
	return out
}
