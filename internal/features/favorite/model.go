package favorite

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is the (user, org, file) triple; existence is the favorite flag.
// The compound unique index keeps the triple unique.
type Favorite struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	OrgID     string             `json:"org_id" bson:"org_id"`
	FileID    primitive.ObjectID `json:"file_id" bson:"file_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
