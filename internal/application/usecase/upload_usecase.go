package usecase

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Incorpora-api/internal/application/dto"
	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/internal/domain"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
	"github.com/jhoicas/Incorpora-api/pkg/logger"
)

// Extensiones admitidas para recibos y documentos legales.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadInput datos de una subida multipart ya parseada por el handler.
type UploadInput struct {
	RegistrationID string
	Kind           string // payment-receipt, balance-receipt, document
	FileName       string
	ContentType    string
	SizeBytes      int64
	Content        io.Reader
}

// UploadUseCase guarda archivos subidos: contenido en el FileStore y
// metadatos + recibo del registro en una sola transacción.
type UploadUseCase struct {
	regRepo  repository.RegistrationRepository
	fileRepo repository.FileRepository
	txRunner UploadTxRunner
	store    ports.FileStore
	maxBytes int64
	log      *logger.Logger
}

// NewUploadUseCase construye el caso de uso. maxSizeMB limita cada archivo.
func NewUploadUseCase(
	regRepo repository.RegistrationRepository,
	fileRepo repository.FileRepository,
	txRunner UploadTxRunner,
	store ports.FileStore,
	maxSizeMB int,
	log *logger.Logger,
) *UploadUseCase {
	return &UploadUseCase{
		regRepo:  regRepo,
		fileRepo: fileRepo,
		txRunner: txRunner,
		store:    store,
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
		log:      log,
	}
}

// Upload valida y persiste una subida. Si el tipo es un recibo, lo adjunta al
// registro con estado pending en la misma transacción que los metadatos.
func (uc *UploadUseCase) Upload(ctx context.Context, userID, role string, in UploadInput) (*dto.FileResponse, error) {
	switch in.Kind {
	case entity.FileKindPaymentReceipt, entity.FileKindBalanceReceipt, entity.FileKindDocument:
	default:
		return nil, domain.ErrInvalidInput
	}
	ext := strings.ToLower(filepath.Ext(in.FileName))
	if !allowedExtensions[ext] {
		return nil, domain.ErrFileTypeNotAllowed
	}
	if in.SizeBytes <= 0 || in.SizeBytes > uc.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	reg, err := uc.regRepo.GetByID(ctx, in.RegistrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin && reg.UserID != userID {
		return nil, domain.ErrForbidden
	}

	file := &entity.StoredFile{
		ID:             uuid.New().String(),
		RegistrationID: in.RegistrationID,
		Kind:           in.Kind,
		FileName:       in.FileName,
		ContentType:    in.ContentType,
		SizeBytes:      in.SizeBytes,
		UploadedBy:     userID,
		CreatedAt:      time.Now(),
	}
	file.Path = filepath.Join(in.RegistrationID, file.ID+ext)

	written, err := uc.store.Save(ctx, file.Path, in.Content)
	if err != nil {
		return nil, err
	}
	file.SizeBytes = written

	err = uc.txRunner.RunUpload(ctx, func(
		regRepo repository.RegistrationRepository,
		fileRepo repository.FileRepository,
	) error {
		if err := fileRepo.Create(ctx, file); err != nil {
			return err
		}
		switch in.Kind {
		case entity.FileKindPaymentReceipt, entity.FileKindBalanceReceipt:
			receipt := &entity.Receipt{
				FileID:     file.ID,
				FileName:   file.FileName,
				Status:     entity.ReceiptStatusPending,
				UploadedAt: file.CreatedAt,
			}
			return regRepo.AttachReceipt(ctx, in.RegistrationID, in.Kind, receipt)
		}
		return nil
	})
	if err != nil {
		// El contenido ya está en disco: limpieza best-effort.
		if delErr := uc.store.Delete(ctx, file.Path); delErr != nil {
			uc.log.Warn().Err(delErr).Str("path", file.Path).Msg("no se pudo limpiar el archivo huérfano")
		}
		return nil, err
	}

	return toFileResponse(file), nil
}

// Get devuelve los metadatos de un archivo (dueño del registro o admin).
func (uc *UploadUseCase) Get(ctx context.Context, id, userID, role string) (*dto.FileResponse, error) {
	file, err := uc.authorizedFile(ctx, id, userID, role)
	if err != nil {
		return nil, err
	}
	return toFileResponse(file), nil
}

// Open devuelve los metadatos y el contenido para descarga (dueño o admin).
// El caller cierra el ReadCloser.
func (uc *UploadUseCase) Open(ctx context.Context, id, userID, role string) (*dto.FileResponse, io.ReadCloser, error) {
	file, err := uc.authorizedFile(ctx, id, userID, role)
	if err != nil {
		return nil, nil, err
	}
	content, err := uc.store.Open(ctx, file.Path)
	if err != nil {
		return nil, nil, err
	}
	return toFileResponse(file), content, nil
}

// Delete elimina metadatos y contenido. Si el archivo respaldaba el recibo del
// registro, el recibo se desengancha en la misma transacción.
func (uc *UploadUseCase) Delete(ctx context.Context, id, userID, role string) error {
	file, err := uc.authorizedFile(ctx, id, userID, role)
	if err != nil {
		return err
	}

	err = uc.txRunner.RunUpload(ctx, func(
		regRepo repository.RegistrationRepository,
		fileRepo repository.FileRepository,
	) error {
		if err := fileRepo.Delete(ctx, file.ID); err != nil {
			return err
		}
		switch file.Kind {
		case entity.FileKindPaymentReceipt, entity.FileKindBalanceReceipt:
			return regRepo.AttachReceipt(ctx, file.RegistrationID, file.Kind, nil)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := uc.store.Delete(ctx, file.Path); err != nil {
		uc.log.Warn().Err(err).Str("path", file.Path).Msg("metadatos borrados pero el contenido quedó en disco")
	}
	return nil
}

func (uc *UploadUseCase) authorizedFile(ctx context.Context, id, userID, role string) (*entity.StoredFile, error) {
	file, err := uc.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin {
		reg, err := uc.regRepo.GetByID(ctx, file.RegistrationID)
		if err != nil {
			return nil, err
		}
		if reg == nil || reg.UserID != userID {
			return nil, domain.ErrForbidden
		}
	}
	return file, nil
}

func toFileResponse(f *entity.StoredFile) *dto.FileResponse {
	if f == nil {
		return nil
	}
	return &dto.FileResponse{
		ID:             f.ID,
		RegistrationID: f.RegistrationID,
		Kind:           f.Kind,
		FileName:       f.FileName,
		ContentType:    f.ContentType,
		SizeBytes:      f.SizeBytes,
		CreatedAt:      f.CreatedAt,
	}
}
