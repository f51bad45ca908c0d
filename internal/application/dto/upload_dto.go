package dto

import "time"

// FileResponse metadatos de un archivo subido.
type FileResponse struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"registration_id"`
	Kind           string    `json:"kind"`
	FileName       string    `json:"file_name"`
	ContentType    string    `json:"content_type"`
	SizeBytes      int64     `json:"size_bytes"`
	CreatedAt      time.Time `json:"created_at"`
}

// UploadResponse respuesta del endpoint de subida.
type UploadResponse struct {
	Success bool          `json:"success"`
	File    *FileResponse `json:"file,omitempty"`
	Error   string        `json:"error,omitempty"`
}
