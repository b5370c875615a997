package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"employee-http-service/internal/infrastructure/config"

	"github.com/google/uuid"
)

// 上传校验失败时返回的哨兵错误
var (
	ErrFileTooLarge    = errors.New("图片大小不能超过2MB")
	ErrInvalidFileType = errors.New("只允许上传图片文件")
)

// InterfaceUploadService 定义上传服务接口
type InterfaceUploadService interface {
	Store(file *multipart.FileHeader) (string, error)
	Remove(filename string) error
	Dir() string
}

// UploadService 负责校验并保存上传的图片文件
type UploadService struct {
	uploadDir string
}

// NewUploadService 创建一个新的上传服务
func NewUploadService(cfg *config.Config) InterfaceUploadService {
	return &UploadService{
		uploadDir: cfg.UploadDir,
	}
}

// Dir 返回上传文件保存目录
func (s *UploadService) Dir() string {
	return s.uploadDir
}

// Store 校验上传文件并保存到磁盘，返回保存后的文件名。
// 文件名格式为 <毫秒时间戳>-<原始文件名>，避免重名覆盖。
func (s *UploadService) Store(file *multipart.FileHeader) (string, error) {
	if file.Size > config.MaxUploadSize {
		return "", ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrInvalidFileType
	}

	// 确保上传目录存在
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", err
	}

	// 原始文件名只保留基础部分，清洗后为空时退回到随机名
	base := filepath.Base(file.Filename)
	base = strings.ReplaceAll(base, string(os.PathSeparator), "")
	if base == "" || base == "." || base == ".." {
		base = uuid.NewString()
	}
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// 写入失败时清理半写的文件
		os.Remove(filepath.Join(s.uploadDir, filename))
		return "", err
	}

	return filename, nil
}

// Remove 删除已保存的上传文件，用于创建失败后的回滚
func (s *UploadService) Remove(filename string) error {
	if filename == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.uploadDir, filepath.Base(filename)))
}
