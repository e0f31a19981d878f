package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramStatus type for the program lifecycle.
type ProgramStatus string

const (
	ProgramActive    ProgramStatus = "active"
	ProgramCompleted ProgramStatus = "completed"
	ProgramCancelled ProgramStatus = "cancelled"
)

// Program is one coach-client coaching engagement spanning multiple weeks.
// CurrentWeekID/CurrentDayID form the progression pointer: both nil (unset)
// or both set (positioned), always updated together.
type Program struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CoachID        primitive.ObjectID  `bson:"coachId" json:"coachId"`
	ClientID       primitive.ObjectID  `bson:"clientId" json:"clientId"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Status         ProgramStatus       `bson:"status" json:"status"`
	TotalWeeks     int                 `bson:"totalWeeks" json:"totalWeeks"`
	CompletedWeeks int                 `bson:"completedWeeks" json:"completedWeeks"`
	CurrentWeekID  *primitive.ObjectID `bson:"currentWeekId,omitempty" json:"currentWeekId,omitempty"`
	CurrentDayID   *primitive.ObjectID `bson:"currentDayId,omitempty" json:"currentDayId,omitempty"`
	// WeekSeq is the monotonic order allocator for this program's weeks.
	// It only ever grows, so deleted week orders are never reused.
	WeekSeq   int       `bson:"weekSeq" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProgramWeek is one ordered segment of a program.
type ProgramWeek struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProgramID primitive.ObjectID `bson:"programId" json:"programId"`
	Name      string             `bson:"name" json:"name"`
	Order     int                `bson:"order" json:"order"` // unique within the program
	// DaySeq is the monotonic order allocator for this week's days.
	DaySeq    int       `bson:"daySeq" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProgramDay is one ordered segment of a week, e.g. "Day 2: Lower Body".
type ProgramDay struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WeekID    primitive.ObjectID `bson:"weekId" json:"weekId"`
	ProgramID primitive.ObjectID `bson:"programId" json:"programId"` // denormalized for pointer validation
	Name      string             `bson:"name" json:"name"`
	Order     int                `bson:"order" json:"order"` // unique within the week
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
