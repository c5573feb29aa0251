package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionRename   AuditAction = "RENAME"
	AuditActionDelete   AuditAction = "DELETE"
	AuditActionRestore  AuditAction = "RESTORE"
	AuditActionFavorite AuditAction = "FAVORITE"
	AuditActionShare    AuditAction = "SHARE"
	AuditActionSweep    AuditAction = "SWEEP"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID     string             `bson:"org_id,omitempty" json:"org_id,omitempty"`
	Action    AuditAction        `bson:"action" json:"action"`
	FileID    string             `bson:"file_id,omitempty" json:"file_id,omitempty"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is the record shape the async zap sink writes to the logs collection.
type Log struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	AppId        string             `bson:"app_id"`
	Message      string             `bson:"message"`
	Caller       string             `bson:"caller,omitempty"`
	IpAddress    string             `bson:"ip_address,omitempty"`
	LogLevelId   int                `bson:"log_level_id"`
	CreatedOnUtc time.Time          `bson:"created_on_utc"`
}
