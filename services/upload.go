package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

const (
	// MaxUploadSize caps document uploads at 10MB
	MaxUploadSize = 10 * 1024 * 1024
)

// allowedUploadExtensions maps accepted extensions to the magic bytes the
// file content must start with. An empty prefix list means extension-only
// checking (plain text formats have no reliable signature).
var allowedUploadExtensions = map[string][][]byte{
	".pdf":  {[]byte("%PDF")},
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0}},
	".docx": {{0x50, 0x4B, 0x03, 0x04}},
	".png":  {{0x89, 0x50, 0x4E, 0x47}},
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".txt":  {},
}

// ValidateDocumentUpload checks size, extension and magic bytes before the
// storage collaborator accepts the file.
func ValidateDocumentUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return &ValidationError{Field: "file", Message: "is required"}
	}
	if fileHeader.Size > MaxUploadSize {
		return &ValidationError{Field: "file", Message: "exceeds the maximum allowed size of 10MB"}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	signatures, ok := allowedUploadExtensions[ext]
	if !ok {
		return &ValidationError{Field: "file", Message: fmt.Sprintf("file type %q is not allowed", ext)}
	}
	if len(signatures) == 0 {
		return nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	buffer = buffer[:n]

	for _, signature := range signatures {
		if bytes.HasPrefix(buffer, signature) {
			return nil
		}
	}
	return &ValidationError{Field: "file", Message: "file content does not match its extension"}
}

// BuildDocumentKey returns the storage key for a case document. Keys are
// content-hash + timestamp based so uploads never collide or leak the
// original filename.
func BuildDocumentKey(caseID string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate file hash: %w", err)
	}
	hashStr := hex.EncodeToString(hash.Sum(nil))[:16]

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	return fmt.Sprintf("cases/%s/%s_%d%s", caseID, hashStr, time.Now().Unix(), ext), nil
}
