package file

import (
	"fmt"
	"strings"
	"time"

	"go-vault/internal/features/access"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FileType string

const (
	TypeImage FileType = "image"
	TypeCSV   FileType = "csv"
	TypePDF   FileType = "pdf"
)

// TypeFromMime maps an upload's content type to the stored file type.
func TypeFromMime(mimeType string) (FileType, error) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return TypeImage, nil
	case mimeType == "text/csv":
		return TypeCSV, nil
	case mimeType == "application/pdf":
		return TypePDF, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", mimeType)
	}
}

// File lives in one of three states: Active (MarkedForDeletion false),
// PendingDeletion (true), and Purged (record removed by the sweeper).
type File struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	OrgID             string             `json:"org_id" bson:"org_id"`
	Type              FileType           `json:"type" bson:"type"`
	BlobRef           string             `json:"blob_ref" bson:"blob_ref"`
	UploaderID        primitive.ObjectID `json:"uploader_id" bson:"uploader_id"`
	MarkedForDeletion bool               `json:"marked_for_deletion" bson:"marked_for_deletion"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`

	// Decorated per-caller on list reads, never persisted.
	IsFavorited bool `json:"is_favorited" bson:"-"`
}

// AccessTarget projects the fields the access gate needs.
func (f *File) AccessTarget() access.Target {
	return access.Target{OrgID: f.OrgID, UploaderID: f.UploaderID.Hex()}
}

// FilterMode selects exactly one list filter per call. Modes do not compose;
// the dispatch below mirrors the precedence the product has always had.
type FilterMode int

const (
	FilterDefault FilterMode = iota
	FilterQuery
	FilterFavorites
	FilterTrash
	FilterType
)

type ListOptions struct {
	Query         string
	FavoritesOnly bool
	TrashOnly     bool
	Type          FileType
}

// Mode resolves the single active filter: a non-empty query wins over
// everything, then favorites, then trash, then type.
func (o ListOptions) Mode() FilterMode {
	switch {
	case o.Query != "":
		return FilterQuery
	case o.FavoritesOnly:
		return FilterFavorites
	case o.TrashOnly:
		return FilterTrash
	case o.Type != "":
		return FilterType
	default:
		return FilterDefault
	}
}
