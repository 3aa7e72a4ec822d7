package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okamel/cvbank/internal/cache"
	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/repositories"
	"github.com/okamel/cvbank/internal/storage"
	"github.com/okamel/cvbank/internal/utils"
)

// MaxUploadBytes caps accepted documents at 5 MB.
const MaxUploadBytes = 5 * 1024 * 1024

// FileStrategy decides where accepted bytes live. It is fixed at process
// start; records created under one strategy are never migrated to another.
type FileStrategy string

const (
	StrategyBlob   FileStrategy = "blob"   // filesystem or bucket, path on the record
	StrategyInline FileStrategy = "inline" // base64 inside the record
)

// UploadInput is one validated multipart submission: the candidate fields
// plus the document stream the handler already size- and type-checked.
type UploadInput struct {
	Name        string
	Age         int
	Nationality string
	Experience  string

	FileName string
	MimeType string
	Size     int64
	Reader   io.Reader
}

type CVService interface {
	List(ctx context.Context, nationality string) ([]models.CV, error)
	Get(ctx context.Context, id string) (*models.CV, error)
	Upload(ctx context.Context, in UploadInput) (*models.CV, error)
	Update(ctx context.Context, id string, upd models.CVUpdate) (*models.CV, error)
	Delete(ctx context.Context, id string) error
	// OpenFile resolves the record and its document bytes for serving.
	OpenFile(ctx context.Context, id string) (*models.CV, io.ReadCloser, int64, error)
}

type cvService struct {
	repo      repositories.CVRepository
	blobs     storage.Store // nil under StrategyInline
	strategy  FileStrategy
	cache     cache.Cache // nil disables list caching
	cacheTTL  time.Duration
	listLimit int
}

func NewCVService(repo repositories.CVRepository, blobs storage.Store, strategy FileStrategy, c cache.Cache, cacheTTL time.Duration, listLimit int) CVService {
	if listLimit <= 0 {
		listLimit = 50
	}
	return &cvService{
		repo:      repo,
		blobs:     blobs,
		strategy:  strategy,
		cache:     c,
		cacheTTL:  cacheTTL,
		listLimit: listLimit,
	}
}

func listKey(nationality string) string { return "cvs:list:" + nationality }

func (s *cvService) listKeys() []string {
	keys := []string{listKey("all")}
	for _, n := range models.Nationalities {
		keys = append(keys, listKey(n))
	}
	return keys
}

func (s *cvService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, s.listKeys()...)
	}
}

func (s *cvService) List(ctx context.Context, nationality string) ([]models.CV, error) {
	const op = "CVService.List"

	key := listKey("all")
	if nationality != "" && nationality != "all" {
		if !models.ValidNationality(nationality) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "unknown nationality", nil)
		}
		key = listKey(nationality)
	}

	if s.cache != nil {
		var cached []models.CV
		if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit {
			return cached, nil
		}
	}

	var rows []models.CV
	var err error
	if key == listKey("all") {
		rows, err = s.repo.ListAll(ctx, s.listLimit)
	} else {
		rows, err = s.repo.ListByNationality(ctx, nationality, s.listLimit)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list cvs", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, rows, s.cacheTTL)
	}
	return rows, nil
}

func (s *cvService) Get(ctx context.Context, id string) (*models.CV, error) {
	const op = "CVService.Get"

	cv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "cv not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get cv", err)
	}
	return cv, nil
}

func validateFields(op string, name string, age int, nationality, experience string) error {
	if strings.TrimSpace(name) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	if age < 1 || age > 100 {
		return utils.E(utils.CodeInvalidArgument, op, "age must be between 1 and 100", nil)
	}
	if !models.ValidNationality(nationality) {
		return utils.E(utils.CodeInvalidArgument, op, "unknown nationality", nil)
	}
	if strings.TrimSpace(experience) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "experience is required", nil)
	}
	return nil
}

func (s *cvService) Upload(ctx context.Context, in UploadInput) (*models.CV, error) {
	const op = "CVService.Upload"

	if err := validateFields(op, in.Name, in.Age, in.Nationality, in.Experience); err != nil {
		return nil, err
	}
	if in.Reader == nil || in.Size <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file is required", nil)
	}
	if in.Size > MaxUploadBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file too large (max 5MB)", nil)
	}

	cv := &models.CV{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Age:         in.Age,
		Nationality: in.Nationality,
		Experience:  in.Experience,
		FileName:    in.FileName,
		FileType:    models.DeriveFileType(in.MimeType),
		UploadDate:  time.Now().UTC(),
	}

	switch s.strategy {
	case StrategyInline:
		// +1 so a stream that lied about its size still trips the cap
		b, err := io.ReadAll(io.LimitReader(in.Reader, MaxUploadBytes+1))
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to read upload", err)
		}
		if int64(len(b)) > MaxUploadBytes {
			return nil, utils.E(utils.CodeInvalidArgument, op, "file too large (max 5MB)", nil)
		}
		cv.FileContent = base64.StdEncoding.EncodeToString(b)
	default:
		if s.blobs == nil {
			return nil, utils.E(utils.CodeInternal, op, "blob store is not configured", nil)
		}
		objectName := cv.ID + strings.ToLower(filepath.Ext(in.FileName))
		path, err := s.blobs.Save(ctx, objectName, in.MimeType, in.Reader)
		if err != nil {
			return nil, utils.E(utils.CodeUnavailable, op, "failed to store file", err)
		}
		cv.FilePath = path
	}

	if err := s.repo.Create(ctx, cv); err != nil {
		if cv.FilePath != "" {
			// best effort: do not orphan the blob we just wrote
			_ = s.blobs.Remove(ctx, cv.FilePath)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to persist cv", err)
	}

	s.invalidate(ctx)
	return cv, nil
}

func (s *cvService) Update(ctx context.Context, id string, upd models.CVUpdate) (*models.CV, error) {
	const op = "CVService.Update"

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name must not be empty", nil)
	}
	if upd.Age != nil && (*upd.Age < 1 || *upd.Age > 100) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "age must be between 1 and 100", nil)
	}
	if upd.Nationality != nil && !models.ValidNationality(*upd.Nationality) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown nationality", nil)
	}

	cv, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "cv not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update cv", err)
	}

	s.invalidate(ctx)
	return cv, nil
}

func (s *cvService) Delete(ctx context.Context, id string) error {
	const op = "CVService.Delete"

	cv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "cv not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to get cv", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "cv not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete cv", err)
	}

	if cv.FilePath != "" && s.blobs != nil {
		// the record is gone either way; a missing blob is not an error
		_ = s.blobs.Remove(ctx, cv.FilePath)
	}

	s.invalidate(ctx)
	return nil
}

func (s *cvService) OpenFile(ctx context.Context, id string) (*models.CV, io.ReadCloser, int64, error) {
	const op = "CVService.OpenFile"

	cv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil, 0, utils.E(utils.CodeNotFound, op, "cv not found", err)
		}
		return nil, nil, 0, utils.E(utils.CodeInternal, op, "failed to get cv", err)
	}

	if cv.FileContent != "" {
		b, err := base64.StdEncoding.DecodeString(cv.FileContent)
		if err != nil {
			return nil, nil, 0, utils.E(utils.CodeInternal, op, "corrupt inline file content", err)
		}
		return cv, io.NopCloser(bytes.NewReader(b)), int64(len(b)), nil
	}

	if cv.FilePath == "" || s.blobs == nil {
		return nil, nil, 0, utils.E(utils.CodeNotFound, op, "file not found", nil)
	}
	rc, size, err := s.blobs.Open(ctx, cv.FilePath)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil, 0, utils.E(utils.CodeNotFound, op, "file not found", err)
		}
		return nil, nil, 0, utils.E(utils.CodeUnavailable, op, "failed to open file", err)
	}
	return cv, rc, size, nil
}
