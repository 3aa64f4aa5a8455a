package infra

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateCodigoQR writes a PNG QR for a redemption code and returns its
// path. Codes are unique, so the file name doubles as a cache key: an
// existing file is reused instead of re-rendered.
func GenerateCodigoQR(codigo, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("qrcode: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("qr_%s.png", codigo))
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	if err := qrcode.WriteFile(codigo, qrcode.Medium, 256, filePath); err != nil {
		return "", fmt.Errorf("qrcode: write file: %w", err)
	}
	return filePath, nil
}
