package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayExercise is one exercise's prescription within one program day: the
// many-to-many join between days and exercises, carrying the per-assignment
// target specification. At most one assignment exists per (day, exercise)
// pair; re-assigning the same pair replaces the targets in place.
type DayExercise struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayID      primitive.ObjectID `bson:"dayId" json:"dayId"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Targets    TargetSpec         `bson:"targets" json:"targets"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
