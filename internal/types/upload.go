package types

// UploadStatus is the lifecycle state of an upload session.
type UploadStatus string

// Upload statuses
const (
	UploadIdle      UploadStatus = "idle"
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadError     UploadStatus = "error"
)

// FileInfo describes a file picked by the user. The bytes themselves are
// never parsed.
type FileInfo struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
}

// UploadSession tracks one selected file through preview and upload.
type UploadSession struct {
	File        FileInfo     `json:"file"`
	PreviewText string       `json:"preview_text"`
	Status      UploadStatus `json:"status"`
}
