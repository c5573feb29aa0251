package file

import (
	"bytes"
	"errors"
	"path/filepath"

	"go-vault/internal/blob"
	"go-vault/internal/common/apperr"
	"go-vault/internal/features/user"
	"go-vault/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type FileController struct {
	FileService FileService
	UserService user.UserService
	BlobStore   blob.Store
	Logger      *zap.Logger
}

func NewFileController(fileService FileService, userService user.UserService, blobStore blob.Store, logger *zap.Logger) *FileController {
	return &FileController{
		FileService: fileService,
		UserService: userService,
		BlobStore:   blobStore,
		Logger:      logger,
	}
}

// resolveCaller maps the request's claims to a user record. A missing or
// unresolvable identity returns nil with no error so read paths can degrade
// to empty results; inconsistencies propagate.
func (ctrl *FileController) resolveCaller(c *fiber.Ctx) (*user.User, error) {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return nil, nil
	}
	caller, err := ctrl.UserService.ResolveCaller(c.UserContext(), claims.Identity)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			return nil, nil
		}
		return nil, err
	}
	return caller, nil
}

// IssueUploadURL godoc
// @Summary Issue upload target
// @Description Get a blob reference plus a URL to upload raw bytes to
// @Tags files
// @Produce json
// @Success 200 {object} blob.UploadTarget
// @Failure 500 {object} map[string]interface{}
// @Router /api/files/upload-url [post]
func (ctrl *FileController) IssueUploadURL(c *fiber.Ctx) error {
	target, err := ctrl.BlobStore.IssueUploadTarget(c.UserContext())
	if err != nil {
		ctrl.Logger.Error("issuing upload target failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error issuing upload target",
		})
	}
	return c.JSON(target)
}

// UploadBlob godoc
// @Summary Upload raw blob bytes
// @Description Upload target endpoint used by the local storage driver
// @Tags files
// @Param ref path string true "Blob reference"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/blobs/{ref} [put]
func (ctrl *FileController) UploadBlob(c *fiber.Ctx) error {
	ref := c.Params("ref")
	body := c.Body()

	if err := ctrl.BlobStore.Save(c.UserContext(), ref, bytes.NewReader(body), int64(len(body))); err != nil {
		ctrl.Logger.Error("saving blob failed", zap.String("blob_ref", ref), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error saving blob",
		})
	}
	return c.JSON(fiber.Map{"blob_ref": ref})
}

type createFileRequest struct {
	Name    string   `json:"name"`
	OrgID   string   `json:"org_id"`
	Type    FileType `json:"type"`
	BlobRef string   `json:"blob_ref"`
}

// CreateFile godoc
// @Summary Register an uploaded file
// @Description Create the file record for a blob uploaded out-of-band
// @Tags files
// @Accept json
// @Produce json
// @Success 201 {object} File
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/files [post]
func (ctrl *FileController) CreateFile(c *fiber.Ctx) error {
	caller, err := ctrl.resolveCaller(c)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	var req createFileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.OrgID == "" || req.BlobRef == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, org_id and blob_ref are required"})
	}

	f, err := ctrl.FileService.CreateFile(c.UserContext(), caller, CreateFileInput{
		Name:    req.Name,
		OrgID:   req.OrgID,
		Type:    req.Type,
		BlobRef: req.BlobRef,
	})
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(f)
}

// UploadFile godoc
// @Summary Upload file
// @Description Upload a file into an organization in one multipart request
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param org_id formData string true "Organization ID"
// @Success 201 {object} File
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/files/upload [post]
func (ctrl *FileController) UploadFile(c *fiber.Ctx) error {
	caller, err := ctrl.resolveCaller(c)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Error retrieving file"})
	}

	orgID := c.FormValue("org_id")
	name := c.FormValue("name")
	if name == "" {
		name = filepath.Base(fileHeader.Filename)
	}

	fileType, err := TypeFromMime(fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	target, err := ctrl.BlobStore.IssueUploadTarget(c.UserContext())
	if err != nil {
		ctrl.Logger.Error("issuing upload target failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error issuing upload target"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error reading upload"})
	}
	defer src.Close()

	if err := ctrl.BlobStore.Save(c.UserContext(), target.BlobRef, src, fileHeader.Size); err != nil {
		ctrl.Logger.Error("saving blob failed", zap.String("blob_ref", target.BlobRef), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error saving file"})
	}

	f, err := ctrl.FileService.CreateFile(c.UserContext(), caller, CreateFileInput{
		Name:    name,
		OrgID:   orgID,
		Type:    fileType,
		BlobRef: target.BlobRef,
	})
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(f)
}

// GetFiles godoc
// @Summary List files
// @Description List an organization's files through exactly one filter mode
// @Tags files
// @Produce json
// @Param orgId query string true "Organization ID"
// @Param q query string false "Name substring filter"
// @Param favorites query boolean false "Favorites only"
// @Param trash query boolean false "Pending-deletion only"
// @Param type query string false "File type filter"
// @Success 200 {array} File
// @Failure 500 {object} map[string]interface{}
// @Router /api/files [get]
func (ctrl *FileController) GetFiles(c *fiber.Ctx) error {
	caller, err := ctrl.resolveCaller(c)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	opts := ListOptions{
		Query:         c.Query("q"),
		FavoritesOnly: c.Query("favorites") == "true",
		TrashOnly:     c.Query("trash") == "true",
		Type:          FileType(c.Query("type")),
	}

	files, err := ctrl.FileService.GetFiles(c.UserContext(), caller, c.Query("orgId"), opts)
	if err != nil {
		ctrl.Logger.Error("listing files failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error retrieving files"})
	}

	return c.JSON(files)
}

type renameRequest struct {
	Name string `json:"name"`
}

// RenameFile godoc
// @Summary Rename file
// @Tags files
// @Accept json
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/files/{id}/rename [patch]
func (ctrl *FileController) RenameFile(c *fiber.Ctx) error {
	caller, err := ctrl.resolveCaller(c)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	var req renameRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A file name is required"})
	}

	if err := ctrl.FileService.RenameFile(c.UserContext(), caller, c.Params("id"), req.Name); err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "File renamed"})
}

// DeleteFile godoc
// @Summary Soft-delete file
// @Description Mark a file for deletion; the retention sweeper purges it later
// @Tags files
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/files/{id} [delete]
func (ctrl *FileController) DeleteFile(c *fiber.Ctx) error {
	caller, err := ctrl.resolveCaller(c)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.FileService.SoftDeleteFile(c.UserContext(), caller, c.Params("id")); err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "File marked for deletion"})
}

// RestoreFile godoc
// @Summary Restore file
// @Description Clear a file's pending-deletion mark
// @Tags files
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/files/{id}/restore [post]
func (ctrl *FileController) RestoreFile(c *fiber.Ctx) error {
	caller, err := ctrl.resolveCaller(c)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.FileService.RestoreFile(c.UserContext(), caller, c.Params("id")); err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "File restored"})
}

// ToggleFavorite godoc
// @Summary Toggle favorite
// @Tags files
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/files/{id}/favorite [post]
func (ctrl *FileController) ToggleFavorite(c *fiber.Ctx) error {
	caller, err := ctrl.resolveCaller(c)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	favorited, err := ctrl.FileService.ToggleFavorite(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"favorited": favorited})
}

// ToggleShare godoc
// @Summary Toggle public share
// @Description Create or remove the public share link for a file
// @Tags files
// @Param id path string true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/files/{id}/share [post]
func (ctrl *FileController) ToggleShare(c *fiber.Ctx) error {
	caller, err := ctrl.resolveCaller(c)
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	link, err := ctrl.FileService.ToggleShare(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if link == nil {
		return c.JSON(fiber.Map{"shared": false})
	}
	return c.JSON(fiber.Map{"shared": true, "link": link})
}
