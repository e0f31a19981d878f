package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressLog records one performance entry against a (program, week, day,
// exercise) coordinate, or marks a rest day. Rest day logs carry no exercise
// and no measurements. Each measurement field is independently optional;
// a non-rest log must carry at least one.
type ProgressLog struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProgramID  primitive.ObjectID  `bson:"programId" json:"programId"`
	UserID     primitive.ObjectID  `bson:"userId" json:"userId"`
	WeekID     primitive.ObjectID  `bson:"weekId" json:"weekId"`
	DayID      primitive.ObjectID  `bson:"dayId" json:"dayId"`
	ExerciseID *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"` // nil for rest days

	Weight      *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Reps        *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	TimeSeconds *int     `bson:"timeSeconds,omitempty" json:"timeSeconds,omitempty"`
	RPE         *float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`

	IsRestDay       bool      `bson:"isRestDay" json:"isRestDay"`
	WorkoutDuration *int      `bson:"workoutDuration,omitempty" json:"workoutDuration,omitempty"` // seconds
	CompletedAt     time.Time `bson:"completedAt" json:"completedAt"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasMeasurements reports whether any measured value is present.
func (l *ProgressLog) HasMeasurements() bool {
	return l.Weight != nil || l.Reps != nil || l.TimeSeconds != nil || l.RPE != nil
}
