package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is one message on a program, optionally a reply to a top-level
// comment. Threads are exactly one level deep: a reply can never itself
// have replies.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProgramID primitive.ObjectID  `bson:"programId" json:"programId"`
	AuthorID  primitive.ObjectID  `bson:"authorId" json:"authorId"`
	ParentID  *primitive.ObjectID `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Content   string              `bson:"content" json:"content"`
	MediaType string              `bson:"mediaType,omitempty" json:"mediaType,omitempty"`
	// MediaURL is an opaque reference produced by the external upload step.
	// The core only stores it, never validates reachability.
	MediaURL  string    `bson:"mediaUrl,omitempty" json:"mediaUrl,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CommentThread is the externally visible read shape: a top-level comment
// plus its replies, both in creation order.
type CommentThread struct {
	Comment `bson:",inline"`
	Replies []Comment `json:"replies"`
}
