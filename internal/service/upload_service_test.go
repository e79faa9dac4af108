package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/webbangiay/internal/config"
)

func buildPNGFileHeader(t *testing.T, filename string, width, height int) *multipart.FileHeader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}
	return buildFileHeader(t, filename, pngBuf.Bytes())
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}
	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(10 << 20)
	if err != nil {
		t.Fatalf("read form failed: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func newUploadServiceForTest(t *testing.T) *UploadService {
	t.Helper()
	cfg := newTestConfig()
	cfg.Upload = config.UploadConfig{
		Dir:               t.TempDir(),
		BaseURL:           "http://localhost:8080/uploads/",
		MaxSize:           1 << 20,
		AllowedTypes:      []string{"image/png", "image/jpeg", "image/webp"},
		AllowedExtensions: []string{".png", ".jpg", ".jpeg", ".webp"},
		MaxWidth:          2000,
		MaxHeight:         2000,
	}
	return NewUploadService(cfg, nil)
}

func TestUploadSaveBannerNaming(t *testing.T) {
	svc := newUploadServiceForTest(t)
	file := buildPNGFileHeader(t, "summer.png", 64, 32)

	relative, err := svc.Save(file, "banner", BannerFileName("Summer Sale 2026!"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if relative != "banner/summer-sale-2026-64x32.png" {
		t.Fatalf("unexpected path %s", relative)
	}
	if _, err := os.Stat(filepath.Join(svc.cfg.Dir, "banner", "summer-sale-2026-64x32.png")); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if got := svc.ResolveURL(relative); got != "http://localhost:8080/uploads/banner/summer-sale-2026-64x32.png" {
		t.Fatalf("unexpected resolved url %s", got)
	}
}

func TestUploadSaveProductColorFolders(t *testing.T) {
	svc := newUploadServiceForTest(t)

	main, err := svc.Save(buildPNGFileHeader(t, "a.png", 8, 8), ProductColorFolder(12), UUIDFileName())
	if err != nil {
		t.Fatalf("save main image failed: %v", err)
	}
	if !strings.HasPrefix(main, "product_color/p12/") || !strings.HasSuffix(main, ".png") {
		t.Fatalf("unexpected main image path %s", main)
	}

	extra, err := svc.Save(buildPNGFileHeader(t, "side view.png", 8, 8), ProductColorImageFolder(7), UUIDOriginalFileName("side view.png"))
	if err != nil {
		t.Fatalf("save extra image failed: %v", err)
	}
	if !strings.HasPrefix(extra, "product_color/7/") || !strings.HasSuffix(extra, "_side-view.png") {
		t.Fatalf("unexpected extra image path %s", extra)
	}
}

func TestUploadSaveRejectsInvalidFiles(t *testing.T) {
	svc := newUploadServiceForTest(t)

	if _, err := svc.Save(nil, "banner", nil); !errors.Is(err, ErrFileMissing) {
		t.Fatalf("expected ErrFileMissing, got %v", err)
	}
	if _, err := svc.Save(buildPNGFileHeader(t, "a.png", 4, 4), "../etc", nil); !errors.Is(err, ErrUploadFolderInvalid) {
		t.Fatalf("expected ErrUploadFolderInvalid, got %v", err)
	}
	if _, err := svc.Save(buildFileHeader(t, "note.txt", []byte("hello")), "common", nil); !errors.Is(err, ErrFileTypeNotAllowed) {
		t.Fatalf("expected ErrFileTypeNotAllowed for extension, got %v", err)
	}
	if _, err := svc.Save(buildFileHeader(t, "fake.png", []byte("plain text content")), "common", nil); !errors.Is(err, ErrFileTypeNotAllowed) {
		t.Fatalf("expected ErrFileTypeNotAllowed for content, got %v", err)
	}
	if _, err := svc.Save(buildPNGFileHeader(t, "wide.png", 2100, 10), "common", nil); !errors.Is(err, ErrFileDimensionTooLarge) {
		t.Fatalf("expected ErrFileDimensionTooLarge, got %v", err)
	}
}

func TestUploadDeleteAndRemoveLater(t *testing.T) {
	svc := newUploadServiceForTest(t)
	first, err := svc.Save(buildPNGFileHeader(t, "a.png", 4, 4), "brand", UUIDOriginalFileName("nike.png"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := svc.Save(buildPNGFileHeader(t, "b.png", 4, 4), "avatar", nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := svc.Delete(first); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(svc.cfg.Dir, filepath.FromSlash(first))); !os.IsNotExist(err) {
		t.Fatalf("file should be removed, stat err=%v", err)
	}
	if err := svc.Delete(first); err != nil {
		t.Fatalf("deleting a missing file should be ignored: %v", err)
	}

	// 无队列时同步删除
	svc.RemoveLater(second, "https://cdn.example.com/x.png", "../../etc/passwd")
	if _, err := os.Stat(filepath.Join(svc.cfg.Dir, filepath.FromSlash(second))); !os.IsNotExist(err) {
		t.Fatalf("file should be removed synchronously, stat err=%v", err)
	}
}

func TestUploadResolveURLKeepsAbsolute(t *testing.T) {
	svc := newUploadServiceForTest(t)
	if got := svc.ResolveURL("https://cdn.example.com/a.png"); got != "https://cdn.example.com/a.png" {
		t.Fatalf("absolute url should be kept, got %s", got)
	}
	if got := svc.ResolveURL(""); got != "" {
		t.Fatalf("empty url should stay empty, got %s", got)
	}
}
