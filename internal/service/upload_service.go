package service

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/webbangiay/internal/config"
	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/logger"
	"github.com/webbangiay/internal/queue"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

// uploadCleanupDelay 替换后的旧文件延迟删除，避免前端缓存仍在引用
const uploadCleanupDelay = 30 * time.Second

var allowedUploadRoots = map[string]struct{}{
	constants.UploadFolderBanner:       {},
	constants.UploadFolderBrand:        {},
	constants.UploadFolderProductColor: {},
	constants.UploadFolderAvatar:       {},
	constants.UploadFolderCommon:       {},
}

var (
	uploadSubFolderPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	slugInvalidChars       = regexp.MustCompile(`[^a-z0-9]+`)
	originalNameInvalid    = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// FileNamer 根据扩展名与图片尺寸生成存储文件名
type FileNamer func(ext string, width, height int) string

// UUIDFileName uuid.ext
func UUIDFileName() FileNamer {
	return func(ext string, _, _ int) string {
		return uuid.NewString() + ext
	}
}

// UUIDOriginalFileName uuid_原文件名
func UUIDOriginalFileName(original string) FileNamer {
	return func(ext string, _, _ int) string {
		base := sanitizeOriginalName(original)
		if base == "" {
			return uuid.NewString() + ext
		}
		return uuid.NewString() + "_" + base
	}
}

// BannerFileName 标题 slug + 宽x高
func BannerFileName(title string) FileNamer {
	return func(ext string, width, height int) string {
		slug := slugify(title)
		if slug == "" {
			slug = "banner"
		}
		return fmt.Sprintf("%s-%dx%d%s", slug, width, height, ext)
	}
}

// FileStorage 本地文件存储
type FileStorage interface {
	Save(file *multipart.FileHeader, folder string, namer FileNamer) (string, error)
	Delete(relativeURL string) error
	ResolveURL(relativeURL string) string
	RemoveLater(relativeURLs ...string)
}

// UploadService 文件上传服务
type UploadService struct {
	cfg         config.UploadConfig
	queueClient *queue.Client
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg *config.Config, queueClient *queue.Client) *UploadService {
	svc := &UploadService{queueClient: queueClient}
	if cfg != nil {
		svc.cfg = cfg.Upload
	}
	if strings.TrimSpace(svc.cfg.Dir) == "" {
		svc.cfg.Dir = "uploads"
	}
	return svc
}

// Save 校验并保存上传文件，返回相对路径（folder/filename）
func (s *UploadService) Save(file *multipart.FileHeader, folder string, namer FileNamer) (string, error) {
	if file == nil {
		return "", ErrFileMissing
	}
	normalizedFolder, err := normalizeUploadFolder(folder)
	if err != nil {
		return "", err
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: max %d MB", ErrFileTooLarge, s.cfg.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions) {
			return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 读取文件头部识别 MIME 类型
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(buffer[:n])
	if len(s.cfg.AllowedTypes) > 0 && !isAllowedContentType(contentType, s.cfg.AllowedTypes) {
		return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, contentType)
	}

	width, height := 0, 0
	if strings.HasPrefix(contentType, "image/") {
		width, height, err = decodeImageDimensions(src, contentType)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrFileTypeNotAllowed, err)
		}
		if s.cfg.MaxWidth > 0 && width > s.cfg.MaxWidth {
			return "", fmt.Errorf("%w: width > %d", ErrFileDimensionTooLarge, s.cfg.MaxWidth)
		}
		if s.cfg.MaxHeight > 0 && height > s.cfg.MaxHeight {
			return "", fmt.Errorf("%w: height > %d", ErrFileDimensionTooLarge, s.cfg.MaxHeight)
		}
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if namer == nil {
		namer = UUIDFileName()
	}
	filename := namer(ext, width, height)
	relative := path.Join(normalizedFolder, filename)
	savePath := filepath.Join(s.cfg.Dir, filepath.FromSlash(relative))

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	logger.Infow("upload_file_saved", "path", relative, "size", file.Size, "content_type", contentType)
	return relative, nil
}

// Delete 删除相对路径对应的文件，外部链接与不存在的文件直接忽略
func (s *UploadService) Delete(relativeURL string) error {
	localPath, ok := s.localPath(relativeURL)
	if !ok {
		return nil
	}
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ResolveURL 拼接对外访问地址
func (s *UploadService) ResolveURL(relativeURL string) string {
	value := strings.TrimSpace(relativeURL)
	if value == "" || strings.HasPrefix(value, "http") {
		return value
	}
	base := strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/")
	if base == "" {
		return "/uploads/" + strings.TrimLeft(value, "/")
	}
	return base + "/" + strings.TrimLeft(value, "/")
}

// RemoveLater 投递异步清理任务，队列不可用时同步删除
func (s *UploadService) RemoveLater(relativeURLs ...string) {
	paths := make([]string, 0, len(relativeURLs))
	for _, item := range relativeURLs {
		if _, ok := s.localPath(item); ok {
			paths = append(paths, strings.TrimSpace(item))
		}
	}
	if len(paths) == 0 {
		return
	}
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueUploadCleanup(queue.UploadCleanupPayload{Paths: paths}, uploadCleanupDelay)
		if err == nil {
			return
		}
		logger.Warnw("upload_cleanup_enqueue_failed", "paths", paths, "error", err)
	}
	for _, item := range paths {
		if err := s.Delete(item); err != nil {
			logger.Warnw("upload_file_delete_failed", "path", item, "error", err)
		}
	}
}

// localPath 相对路径转本地路径，拒绝越出上传目录
func (s *UploadService) localPath(relativeURL string) (string, bool) {
	value := strings.TrimSpace(relativeURL)
	if value == "" || strings.HasPrefix(value, "http") {
		return "", false
	}
	value = strings.TrimPrefix(value, "/uploads/")
	cleaned := path.Clean("/" + strings.TrimLeft(value, "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", false
	}
	root := strings.SplitN(cleaned, "/", 2)[0]
	if _, ok := allowedUploadRoots[root]; !ok {
		return "", false
	}
	return filepath.Join(s.cfg.Dir, filepath.FromSlash(cleaned)), true
}

// ProductColorFolder 颜色款主图目录 product_color/p<productID>
func ProductColorFolder(productID uint) string {
	return fmt.Sprintf("%s/p%d", constants.UploadFolderProductColor, productID)
}

// ProductColorImageFolder 颜色款附图目录 product_color/<colorID>
func ProductColorImageFolder(colorID uint) string {
	return fmt.Sprintf("%s/%d", constants.UploadFolderProductColorImage, colorID)
}

func normalizeUploadFolder(raw string) (string, error) {
	value := strings.Trim(strings.TrimSpace(raw), "/")
	if value == "" {
		return constants.UploadFolderCommon, nil
	}
	parts := strings.Split(value, "/")
	if _, ok := allowedUploadRoots[parts[0]]; !ok {
		return "", ErrUploadFolderInvalid
	}
	for _, part := range parts[1:] {
		if !uploadSubFolderPattern.MatchString(part) {
			return "", ErrUploadFolderInvalid
		}
	}
	return strings.Join(parts, "/"), nil
}

func slugify(raw string) string {
	value := slugInvalidChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "-")
	return strings.Trim(value, "-")
}

func sanitizeOriginalName(raw string) string {
	base := filepath.Base(strings.TrimSpace(raw))
	if base == "." || base == "/" {
		return ""
	}
	return strings.Trim(originalNameInvalid.ReplaceAllString(base, "-"), "-")
}

func isAllowedContentType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(contentType, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if strings.EqualFold(contentType, "image/webp") {
		return decodeWebPDimensions(src)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func decodeWebPDimensions(src io.ReadSeeker) (int, int, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, fmt.Errorf("invalid webp header")
	}

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(src, chunkHeader); err != nil {
			return 0, 0, err
		}
		chunkType := string(chunkHeader[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(chunkHeader[4:8]))
		if chunkSize < 0 {
			return 0, 0, fmt.Errorf("invalid webp chunk")
		}
		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(src, data); err != nil {
			return 0, 0, err
		}

		switch chunkType {
		case "VP8X":
			if len(data) < 10 {
				return 0, 0, fmt.Errorf("short VP8X chunk")
			}
			width := 1 + int(data[4]) + int(data[5])<<8 + int(data[6])<<16
			height := 1 + int(data[7]) + int(data[8])<<8 + int(data[9])<<16
			return width, height, nil
		case "VP8 ":
			if len(data) < 10 {
				return 0, 0, fmt.Errorf("short VP8 chunk")
			}
			width := int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF)
			height := int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF)
			return width, height, nil
		case "VP8L":
			if len(data) < 5 || data[0] != 0x2f {
				return 0, 0, fmt.Errorf("invalid VP8L chunk")
			}
			bits := binary.LittleEndian.Uint32(data[1:5])
			return int(bits&0x3FFF) + 1, int((bits>>14)&0x3FFF) + 1, nil
		}

		if chunkSize%2 == 1 {
			if _, err := src.Seek(1, io.SeekCurrent); err != nil {
				return 0, 0, err
			}
		}
	}
}
