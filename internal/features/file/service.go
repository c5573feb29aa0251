package file

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-vault/internal/blob"
	"go-vault/internal/common/apperr"
	"go-vault/internal/common/models"
	"go-vault/internal/features/access"
	"go-vault/internal/features/audit"
	"go-vault/internal/features/favorite"
	"go-vault/internal/features/share"
	"go-vault/internal/features/user"

	"go.mongodb.org/mongo-driver/mongo"
)

type CreateFileInput struct {
	Name    string
	OrgID   string
	Type    FileType
	BlobRef string
}

// FileService owns the file lifecycle. Every operation takes the resolved
// caller explicitly; nothing here reads ambient identity.
type FileService interface {
	CreateFile(ctx context.Context, caller *user.User, in CreateFileInput) (*File, error)
	// GetFiles degrades to an empty slice for missing or denied callers.
	GetFiles(ctx context.Context, caller *user.User, orgID string, opts ListOptions) ([]*File, error)
	RenameFile(ctx context.Context, caller *user.User, fileID, newName string) error
	SoftDeleteFile(ctx context.Context, caller *user.User, fileID string) error
	RestoreFile(ctx context.Context, caller *user.User, fileID string) error
	// ToggleFavorite reports the favorite state after the flip.
	ToggleFavorite(ctx context.Context, caller *user.User, fileID string) (bool, error)
	// ToggleShare returns the created link, or nil when it removed one.
	ToggleShare(ctx context.Context, caller *user.User, fileID string) (*share.SharedLink, error)
	// PurgeFile is the sweeper's trusted path: blob first, then the
	// record, then the side-indexes. No per-call authorization.
	PurgeFile(ctx context.Context, f *File) error
}

type FileServiceImpl struct {
	FileRepo     FileRepository
	FavoriteRepo favorite.FavoriteRepository
	ShareRepo    share.ShareRepository
	BlobStore    blob.Store
	AuditService audit.AuditService
}

func NewFileService(
	fileRepo FileRepository,
	favoriteRepo favorite.FavoriteRepository,
	shareRepo share.ShareRepository,
	blobStore blob.Store,
	auditService audit.AuditService,
) FileService {
	return &FileServiceImpl{
		FileRepo:     fileRepo,
		FavoriteRepo: favoriteRepo,
		ShareRepo:    shareRepo,
		BlobStore:    blobStore,
		AuditService: auditService,
	}
}

func (s *FileServiceImpl) CreateFile(ctx context.Context, caller *user.User, in CreateFileInput) (*File, error) {
	if caller == nil {
		return nil, fmt.Errorf("%w: please log in to upload a file", apperr.ErrUnauthenticated)
	}
	if !access.CheckOrgAccess(caller, in.OrgID).Allowed {
		return nil, fmt.Errorf("%w: you do not have access to this organization", apperr.ErrAccessDenied)
	}

	f := &File{
		Name:       in.Name,
		OrgID:      in.OrgID,
		Type:       in.Type,
		BlobRef:    in.BlobRef,
		UploaderID: caller.ID,
		CreatedAt:  time.Now(),
	}
	if err := s.FileRepo.Save(ctx, f); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionCreate, f.OrgID, f.ID.Hex(), caller.ID.Hex(),
		map[string]models.Change{"name": {New: f.Name}, "type": {New: f.Type}})

	return f, nil
}

func (s *FileServiceImpl) GetFiles(ctx context.Context, caller *user.User, orgID string, opts ListOptions) ([]*File, error) {
	if caller == nil {
		return []*File{}, nil
	}
	if !access.CheckOrgAccess(caller, orgID).Allowed {
		return []*File{}, nil
	}

	favSet, err := s.FavoriteRepo.FileIDSet(ctx, caller.ID, orgID)
	if err != nil {
		return nil, err
	}

	var files []*File
	switch opts.Mode() {
	case FilterQuery:
		all, err := s.FileRepo.FindActiveByOrg(ctx, orgID)
		if err != nil {
			return nil, err
		}
		needle := strings.ToLower(opts.Query)
		for _, f := range all {
			if strings.Contains(strings.ToLower(f.Name), needle) {
				files = append(files, f)
			}
		}
	case FilterFavorites:
		all, err := s.FileRepo.FindActiveByOrg(ctx, orgID)
		if err != nil {
			return nil, err
		}
		for _, f := range all {
			if _, ok := favSet[f.ID]; ok {
				files = append(files, f)
			}
		}
	case FilterTrash:
		files, err = s.FileRepo.FindPendingByOrg(ctx, orgID)
		if err != nil {
			return nil, err
		}
	case FilterType:
		all, err := s.FileRepo.FindActiveByOrg(ctx, orgID)
		if err != nil {
			return nil, err
		}
		for _, f := range all {
			if f.Type == opts.Type {
				files = append(files, f)
			}
		}
	default:
		files, err = s.FileRepo.FindActiveByOrg(ctx, orgID)
		if err != nil {
			return nil, err
		}
	}

	if files == nil {
		files = []*File{}
	}
	for _, f := range files {
		_, f.IsFavorited = favSet[f.ID]
	}
	return files, nil
}

func (s *FileServiceImpl) getFile(ctx context.Context, fileID string) (*File, error) {
	f, err := s.FileRepo.Get(ctx, fileID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: this file does not exist", apperr.ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

func (s *FileServiceImpl) RenameFile(ctx context.Context, caller *user.User, fileID, newName string) error {
	if caller == nil {
		return apperr.ErrUnauthenticated
	}

	f, err := s.getFile(ctx, fileID)
	if err != nil {
		return err
	}

	// Rename needs only general org access, not the admin-or-owner gate.
	if !access.CheckFileAccess(caller, f.AccessTarget()).Allowed {
		return fmt.Errorf("%w: you do not have access to this file", apperr.ErrAccessDenied)
	}

	if err := s.FileRepo.Rename(ctx, f.ID, newName); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionRename, f.OrgID, f.ID.Hex(), caller.ID.Hex(),
		map[string]models.Change{"name": {Old: f.Name, New: newName}})
	return nil
}

func (s *FileServiceImpl) SoftDeleteFile(ctx context.Context, caller *user.User, fileID string) error {
	if caller == nil {
		return apperr.ErrUnauthenticated
	}

	f, err := s.getFile(ctx, fileID)
	if err != nil {
		return err
	}

	if err := access.RequireAdminOrOwner(caller, f.AccessTarget()); err != nil {
		return err
	}

	if err := s.FileRepo.SetMarkedForDeletion(ctx, f.ID, true); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionDelete, f.OrgID, f.ID.Hex(), caller.ID.Hex(),
		map[string]models.Change{"marked_for_deletion": {Old: f.MarkedForDeletion, New: true}})
	return nil
}

func (s *FileServiceImpl) RestoreFile(ctx context.Context, caller *user.User, fileID string) error {
	if caller == nil {
		return apperr.ErrUnauthenticated
	}

	f, err := s.getFile(ctx, fileID)
	if err != nil {
		return err
	}

	if err := access.RequireAdminOrOwner(caller, f.AccessTarget()); err != nil {
		return err
	}

	// Restoring an already-Active file is a state no-op.
	if err := s.FileRepo.SetMarkedForDeletion(ctx, f.ID, false); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionRestore, f.OrgID, f.ID.Hex(), caller.ID.Hex(),
		map[string]models.Change{"marked_for_deletion": {Old: f.MarkedForDeletion, New: false}})
	return nil
}

func (s *FileServiceImpl) ToggleFavorite(ctx context.Context, caller *user.User, fileID string) (bool, error) {
	if caller == nil {
		return false, apperr.ErrUnauthenticated
	}

	f, err := s.getFile(ctx, fileID)
	if err != nil {
		return false, err
	}

	if !access.CheckFileAccess(caller, f.AccessTarget()).Allowed {
		return false, fmt.Errorf("%w: you do not have access to this file", apperr.ErrAccessDenied)
	}

	existing, err := s.FavoriteRepo.Find(ctx, caller.ID, f.OrgID, f.ID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if err := s.FavoriteRepo.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		_ = s.AuditService.LogChange(ctx, models.AuditActionFavorite, f.OrgID, f.ID.Hex(), caller.ID.Hex(),
			map[string]models.Change{"favorited": {Old: true, New: false}})
		return false, nil
	}

	err = s.FavoriteRepo.Create(ctx, &favorite.Favorite{
		UserID: caller.ID,
		OrgID:  f.OrgID,
		FileID: f.ID,
	})
	if err != nil {
		return false, err
	}
	_ = s.AuditService.LogChange(ctx, models.AuditActionFavorite, f.OrgID, f.ID.Hex(), caller.ID.Hex(),
		map[string]models.Change{"favorited": {Old: false, New: true}})
	return true, nil
}

func (s *FileServiceImpl) ToggleShare(ctx context.Context, caller *user.User, fileID string) (*share.SharedLink, error) {
	if caller == nil {
		return nil, apperr.ErrUnauthenticated
	}

	f, err := s.getFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !access.CheckFileAccess(caller, f.AccessTarget()).Allowed {
		return nil, fmt.Errorf("%w: you do not have access to this file", apperr.ErrAccessDenied)
	}

	existing, err := s.ShareRepo.FindByBlobRef(ctx, f.BlobRef)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.ShareRepo.DeleteByBlobRef(ctx, f.BlobRef); err != nil {
			return nil, err
		}
		_ = s.AuditService.LogChange(ctx, models.AuditActionShare, f.OrgID, f.ID.Hex(), caller.ID.Hex(),
			map[string]models.Change{"shared": {Old: true, New: false}})
		return nil, nil
	}

	url, err := s.BlobStore.ResolveURL(ctx, f.BlobRef)
	if err != nil {
		return nil, err
	}
	if url == "" {
		// Sharing a file whose content cannot be fetched would hand out
		// a dead link; treat as an invariant violation.
		return nil, fmt.Errorf("%w: file url could not be resolved", apperr.ErrInconsistent)
	}

	link := &share.SharedLink{
		BlobRef: f.BlobRef,
		Name:    f.Name,
		Type:    string(f.Type),
		URL:     url,
	}
	if err := s.ShareRepo.Create(ctx, link); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionShare, f.OrgID, f.ID.Hex(), caller.ID.Hex(),
		map[string]models.Change{"shared": {Old: false, New: true}})
	return link, nil
}

func (s *FileServiceImpl) PurgeFile(ctx context.Context, f *File) error {
	// Blob first. If this fails the record stays PendingDeletion and the
	// next run retries; the record must never outlive its blob silently.
	if err := s.BlobStore.Delete(ctx, f.BlobRef); err != nil {
		return fmt.Errorf("deleting blob %s: %w", f.BlobRef, err)
	}

	// Side-indexes go before the record: the record is the retry handle,
	// so it must be the last thing to disappear. A failure here leaves the
	// file pending and the next run repeats the whole purge.
	if err := s.FavoriteRepo.DeleteByFile(ctx, f.ID); err != nil {
		return fmt.Errorf("deleting favorites for %s: %w", f.ID.Hex(), err)
	}
	if err := s.ShareRepo.DeleteByBlobRef(ctx, f.BlobRef); err != nil {
		return fmt.Errorf("deleting shared link for %s: %w", f.ID.Hex(), err)
	}

	if err := s.FileRepo.Delete(ctx, f.ID); err != nil {
		return fmt.Errorf("deleting file record %s: %w", f.ID.Hex(), err)
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionSweep, f.OrgID, f.ID.Hex(), "sweeper",
		map[string]models.Change{"purged": {Old: false, New: true}})
	return nil
}
