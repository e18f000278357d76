package router

import (
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const maxUploadBytes = 10 << 20

// RandomString names session tokens and stored media files.
func RandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}

// parseSubmission parses either an urlencoded or a multipart form,
// capping multipart bodies at maxUploadBytes.
func parseSubmission(w http.ResponseWriter, r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		return r.ParseMultipartForm(maxUploadBytes)
	}
	return r.ParseForm()
}

// pageParam reads ?page=, defaulting to 1 on absence or garbage.
func pageParam(r *http.Request) int {
	value := r.URL.Query().Get("page")
	if value == "" {
		return 1
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return 1
	}
	return parsed
}

// formInt parses an optional integer form field, 0 when absent, -1 on
// garbage so validation can reject it.
func formInt(r *http.Request, field string) int {
	value := strings.TrimSpace(r.FormValue(field))
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return -1
	}
	return parsed
}

// pathInt parses a mux path variable already constrained to digits by
// the route pattern.
func pathInt(v string) int {
	parsed, _ := strconv.Atoi(v)
	return parsed
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie("session")
	if err != nil {
		return ""
	}
	return c.Value
}

// saveUpload sniffs the uploaded file's content type and, when it is an
// image, stores it under mediaDir with a random name. The sniffed type
// is always returned so the form schema can reject non-images.
func saveUpload(mediaDir string, file multipart.File, header *multipart.FileHeader) (stored, ctype string, err error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", "", err
	}
	ctype = http.DetectContentType(buf[:n])
	if !strings.HasPrefix(ctype, "image/") {
		return "", ctype, nil
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", ctype, err
	}

	if err = os.MkdirAll(mediaDir, 0o755); err != nil {
		return "", ctype, err
	}

	stored = RandomString(16) + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(mediaDir, stored))
	if err != nil {
		return "", ctype, err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", ctype, err
	}
	return stored, ctype, nil
}
