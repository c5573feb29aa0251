package sweeper

import (
	"context"
	"fmt"
	"testing"

	"go-vault/internal/features/file"
	"go-vault/internal/features/share"
	"go-vault/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockFileRepo struct {
	Pending     []*file.File
	CapturedCtx context.Context
}

func (m *MockFileRepo) Save(ctx context.Context, f *file.File) error        { return nil }
func (m *MockFileRepo) Get(ctx context.Context, id string) (*file.File, error) {
	return nil, nil
}
func (m *MockFileRepo) FindActiveByOrg(ctx context.Context, orgID string) ([]*file.File, error) {
	return nil, nil
}
func (m *MockFileRepo) FindPendingByOrg(ctx context.Context, orgID string) ([]*file.File, error) {
	return nil, nil
}
func (m *MockFileRepo) FindAllPending(ctx context.Context) ([]*file.File, error) {
	m.CapturedCtx = ctx
	return m.Pending, nil
}
func (m *MockFileRepo) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	return nil
}
func (m *MockFileRepo) SetMarkedForDeletion(ctx context.Context, id primitive.ObjectID, marked bool) error {
	return nil
}
func (m *MockFileRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }
func (m *MockFileRepo) EnsureIndexes(ctx context.Context) error                 { return nil }

type MockFileService struct {
	PurgedIDs []primitive.ObjectID
	FailOn    primitive.ObjectID
}

func (m *MockFileService) CreateFile(ctx context.Context, caller *user.User, in file.CreateFileInput) (*file.File, error) {
	return nil, nil
}
func (m *MockFileService) GetFiles(ctx context.Context, caller *user.User, orgID string, opts file.ListOptions) ([]*file.File, error) {
	return nil, nil
}
func (m *MockFileService) RenameFile(ctx context.Context, caller *user.User, fileID, newName string) error {
	return nil
}
func (m *MockFileService) SoftDeleteFile(ctx context.Context, caller *user.User, fileID string) error {
	return nil
}
func (m *MockFileService) RestoreFile(ctx context.Context, caller *user.User, fileID string) error {
	return nil
}
func (m *MockFileService) ToggleFavorite(ctx context.Context, caller *user.User, fileID string) (bool, error) {
	return false, nil
}
func (m *MockFileService) ToggleShare(ctx context.Context, caller *user.User, fileID string) (*share.SharedLink, error) {
	return nil, nil
}
func (m *MockFileService) PurgeFile(ctx context.Context, f *file.File) error {
	if f.ID == m.FailOn {
		return fmt.Errorf("blob delete failed")
	}
	m.PurgedIDs = append(m.PurgedIDs, f.ID)
	return nil
}

func pendingFile(name string) *file.File {
	return &file.File{
		ID:                primitive.NewObjectID(),
		Name:              name,
		OrgID:             "org_abc",
		MarkedForDeletion: true,
	}
}

func TestSweepPurgesAllPending(t *testing.T) {
	first := pendingFile("a.pdf")
	second := pendingFile("b.pdf")

	mockService := &MockFileService{}
	sweeper := &SweeperServiceImpl{
		FileRepo:    &MockFileRepo{Pending: []*file.File{first, second}},
		FileService: mockService,
		Logger:      zap.NewNop(),
	}

	purged, failed := sweeper.Sweep(context.Background())
	if purged != 2 || failed != 0 {
		t.Errorf("Expected 2 purged and 0 failed, got %d and %d", purged, failed)
	}
	if len(mockService.PurgedIDs) != 2 {
		t.Errorf("Expected 2 purge calls, got %d", len(mockService.PurgedIDs))
	}
}

func TestSweepIsolatesPerItemFailure(t *testing.T) {
	first := pendingFile("a.pdf")
	second := pendingFile("b.pdf")
	third := pendingFile("c.pdf")

	mockService := &MockFileService{FailOn: second.ID}
	sweeper := &SweeperServiceImpl{
		FileRepo:    &MockFileRepo{Pending: []*file.File{first, second, third}},
		FileService: mockService,
		Logger:      zap.NewNop(),
	}

	purged, failed := sweeper.Sweep(context.Background())
	if purged != 2 {
		t.Errorf("Expected 2 purged, got %d", purged)
	}
	if failed != 1 {
		t.Errorf("Expected 1 failed, got %d", failed)
	}

	// The failing file must not block its neighbors.
	for _, id := range mockService.PurgedIDs {
		if id == second.ID {
			t.Error("Expected the failing file to stay pending")
		}
	}
	if len(mockService.PurgedIDs) != 2 {
		t.Errorf("Expected first and third purged, got %d calls", len(mockService.PurgedIDs))
	}
}

func TestScheduledRunIsTimeBounded(t *testing.T) {
	repo := &MockFileRepo{}
	sweeper := &SweeperServiceImpl{
		FileRepo:    repo,
		FileService: &MockFileService{},
		Logger:      zap.NewNop(),
	}

	sweeper.runScheduled()

	if repo.CapturedCtx == nil {
		t.Fatal("Expected the run to reach the repository")
	}
	if _, ok := repo.CapturedCtx.Deadline(); !ok {
		t.Error("Expected the scheduled sweep context to carry a deadline")
	}
}

func TestSweepEmptyBacklog(t *testing.T) {
	sweeper := &SweeperServiceImpl{
		FileRepo:    &MockFileRepo{},
		FileService: &MockFileService{},
		Logger:      zap.NewNop(),
	}

	purged, failed := sweeper.Sweep(context.Background())
	if purged != 0 || failed != 0 {
		t.Errorf("Expected a no-op sweep, got %d purged and %d failed", purged, failed)
	}
}
