package models

import (
	"errors"
	"fmt"
)

// DaysPerWeek is the fixed number of schedule slots.
const DaysPerWeek = 7

// DayNames labels schedule slots Monday first.
var DayNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ActivityType tags an Activity.
type ActivityType string

const (
	ActAttendMatch     ActivityType = "attend_match"
	ActWatchVideo      ActivityType = "watch_video"
	ActWriteReport     ActivityType = "write_report"
	ActNetworkMeeting  ActivityType = "network_meeting"
	ActRest            ActivityType = "rest"
	ActStudy           ActivityType = "study"
	ActTravel          ActivityType = "travel"
	ActReviewNPC       ActivityType = "review_npc_reports"
	ActManagerMeeting  ActivityType = "manager_meeting"
	ActBoardMeeting    ActivityType = "board_meeting"
	ActAcademyVisit    ActivityType = "academy_visit"
	ActYouthTournament ActivityType = "youth_tournament"
	ActPlacementPitch  ActivityType = "placement_pitch"
	ActTrialSession    ActivityType = "trial_session"
	ActDatabaseQuery   ActivityType = "database_query"
	ActTrainingVisit   ActivityType = "training_visit"
)

var (
	ErrSlotOverflow  = errors.New("activity does not fit in the week")
	ErrSlotCollision = errors.New("activity collides with a scheduled activity")
)

// Activity occupies SlotCost contiguous slots starting at StartSlot.
type Activity struct {
	ID          string       `yaml:"id"`
	Type        ActivityType `yaml:"type"`
	StartSlot   int          `yaml:"start_slot"`
	SlotCost    int          `yaml:"slot_cost"`
	TargetID    string       `yaml:"target_id,omitempty"`
	Description string       `yaml:"description,omitempty"`
}

// WeekSchedule holds the activity id for every day, "" when free.
type WeekSchedule struct {
	Slots      [DaysPerWeek]string `yaml:"slots"`
	Activities []Activity          `yaml:"activities,omitempty"`
}

// CanAddActivity reports whether a could be placed at its StartSlot.
func (s WeekSchedule) CanAddActivity(a Activity) error {
	cost := a.SlotCost
	if cost < 1 {
		cost = 1
	}
	if a.StartSlot < 0 || a.StartSlot+cost > DaysPerWeek {
		return fmt.Errorf("%s on %d for %d days: %w", a.Type, a.StartSlot, cost, ErrSlotOverflow)
	}
	for i := a.StartSlot; i < a.StartSlot+cost; i++ {
		if s.Slots[i] != "" {
			return fmt.Errorf("%s on %s: %w", a.Type, DayNames[i], ErrSlotCollision)
		}
	}
	return nil
}

// AddActivity returns a copy of the schedule with a placed.
func (s WeekSchedule) AddActivity(a Activity) (WeekSchedule, error) {
	if a.SlotCost < 1 {
		a.SlotCost = 1
	}
	if err := s.CanAddActivity(a); err != nil {
		return s, err
	}
	out := s.clone()
	for i := a.StartSlot; i < a.StartSlot+a.SlotCost; i++ {
		out.Slots[i] = a.ID
	}
	out.Activities = append(out.Activities, a)
	return out, nil
}

// RemoveActivity returns a copy of the schedule without the activity id.
func (s WeekSchedule) RemoveActivity(id string) WeekSchedule {
	out := WeekSchedule{}
	for i, slot := range s.Slots {
		if slot != id {
			out.Slots[i] = slot
		}
	}
	for _, a := range s.Activities {
		if a.ID != id {
			out.Activities = append(out.Activities, a)
		}
	}
	return out
}

// Ordered returns the activities in slot order, Monday first.
func (s WeekSchedule) Ordered() []Activity {
	out := make([]Activity, 0, len(s.Activities))
	seen := map[string]bool{}
	for _, id := range s.Slots {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		for _, a := range s.Activities {
			if a.ID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// FreeSlots counts empty days.
func (s WeekSchedule) FreeSlots() int {
	n := 0
	for _, id := range s.Slots {
		if id == "" {
			n++
		}
	}
	return n
}

func (s WeekSchedule) clone() WeekSchedule {
	out := WeekSchedule{Slots: s.Slots}
	if s.Activities != nil {
		out.Activities = append([]Activity(nil), s.Activities...)
	}
	return out
}
