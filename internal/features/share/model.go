package share

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SharedLink is keyed by the file's blob reference and carries a
// denormalized snapshot so the public view needs no authorization and no
// joins. At most one active link per blob reference.
type SharedLink struct {
	ID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	BlobRef   string             `json:"blob_ref" bson:"blob_ref"`
	Name      string             `json:"name" bson:"name"`
	Type      string             `json:"type" bson:"type"`
	URL       string             `json:"url" bson:"url"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
