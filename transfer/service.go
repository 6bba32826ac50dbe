// Package transfer implements the file upload and download listeners plus
// the glue between them, the catalog, and the control plane announcement.
package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"lan-collab/contract"
	"lan-collab/domain"
	"lan-collab/observability"
	"lan-collab/protocol"
	"lan-collab/repositories"
)

// chunkSize bounds the copy buffer so large files never sit in memory.
const chunkSize = 8192

// Textual replies on the raw transfer sockets, matching what clients
// expect before any length-prefixed framing starts.
const (
	replyOK            = "OK"
	replyTooLarge      = "ERROR: File too large"
	replyNotFound      = "ERROR: File not found"
	replyNotAvailable  = "ERROR: File not available"
	replyBadDescriptor = "ERROR: Invalid file description"
)

// UploadRequest is the length-prefixed descriptor opening an upload.
type UploadRequest struct {
	Filename string `json:"filename" validate:"required"`
	Size     int64  `json:"size" validate:"required,gt=0"`
	Uploader string `json:"uploader"`
}

type uploadReply struct {
	FileID string `json:"file_id"`
}

// Service owns the two transfer listeners and the upload directory.
type Service struct {
	log          *slog.Logger
	host         string
	uploadPort   int
	downloadPort int
	maxFileSize  int64
	dir          string
	catalog      repositories.ICatalog
	monitor      *observability.Monitor
	validate     *validator.Validate

	notifier contract.Notifier

	uploadLn   net.Listener
	downloadLn net.Listener
}

func NewService(
	log *slog.Logger,
	host string,
	uploadPort, downloadPort int,
	maxFileSize int64,
	dir string,
	catalog repositories.ICatalog,
	monitor *observability.Monitor,
) *Service {
	return &Service{
		log:          log,
		host:         host,
		uploadPort:   uploadPort,
		downloadPort: downloadPort,
		maxFileSize:  maxFileSize,
		dir:          dir,
		catalog:      catalog,
		monitor:      monitor,
		validate:     validator.New(),
	}
}

// SetNotifier injects the control plane's announcement hook. Kept as a
// setter because the control plane is constructed after the file service.
func (s *Service) SetNotifier(n contract.Notifier) {
	s.notifier = n
}

// Listen binds both listeners and prepares the upload directory.
func (s *Service) Listen() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("upload dir: %w", err)
	}

	uploadLn, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.uploadPort))
	if err != nil {
		return fmt.Errorf("upload listen: %w", err)
	}
	downloadLn, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.downloadPort))
	if err != nil {
		_ = uploadLn.Close()
		return fmt.Errorf("download listen: %w", err)
	}
	s.uploadLn = uploadLn
	s.downloadLn = downloadLn
	return nil
}

func (s *Service) UploadPort() int {
	if s.uploadLn == nil {
		return s.uploadPort
	}
	return s.uploadLn.Addr().(*net.TCPAddr).Port
}

func (s *Service) DownloadPort() int {
	if s.downloadLn == nil {
		return s.downloadPort
	}
	return s.downloadLn.Addr().(*net.TCPAddr).Port
}

// List returns the current catalog; failures degrade to an empty listing.
func (s *Service) List() []domain.FileRecord {
	records, err := s.catalog.List()
	if err != nil {
		s.log.Error("Catalog listing failed", "error", err)
		return nil
	}
	return records
}

// UploadWorker and DownloadWorker adapt the two accept loops to the
// supervised worker contract.

type UploadWorker struct{ Service *Service }

func (w UploadWorker) Run(ctx context.Context) error {
	s := w.Service
	if s.uploadLn == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	return s.serve(ctx, s.uploadLn, s.handleUpload)
}

type DownloadWorker struct{ Service *Service }

func (w DownloadWorker) Run(ctx context.Context) error {
	s := w.Service
	if s.downloadLn == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	return s.serve(ctx, s.downloadLn, s.handleDownload)
}

func (s *Service) serve(ctx context.Context, ln net.Listener, handle func(net.Conn)) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		go func() {
			defer conn.Close()
			handle(conn)
		}()
	}
}

// handleUpload reads the descriptor, streams the payload to disk in
// bounded chunks, registers the record, and announces the file. A partial
// upload leaves neither a record nor bytes behind.
func (s *Service) handleUpload(conn net.Conn) {
	descriptor, err := protocol.ReadFrame(conn, protocol.MaxControlFrame)
	if err != nil {
		return
	}

	var request UploadRequest
	if err := json.Unmarshal(descriptor, &request); err != nil {
		_, _ = conn.Write([]byte(replyBadDescriptor))
		return
	}
	if err := s.validate.Struct(request); err != nil {
		_, _ = conn.Write([]byte(replyBadDescriptor))
		return
	}
	if request.Size > s.maxFileSize {
		_, _ = conn.Write([]byte(replyTooLarge))
		return
	}
	if request.Uploader == "" {
		request.Uploader = "Unknown"
	}

	if _, err := conn.Write([]byte(replyOK)); err != nil {
		return
	}

	fileID := uuid.NewString()
	path := filepath.Join(s.dir, fileID+"_"+filepath.Base(request.Filename))

	received, err := s.receiveFile(conn, path, request.Size)
	if err != nil || received != request.Size {
		s.log.Warn("Upload aborted",
			"filename", request.Filename, "received", received,
			"declared", request.Size, "error", err)
		_ = os.Remove(path)
		return
	}

	record := domain.FileRecord{
		ID:       fileID,
		Filename: request.Filename,
		Size:     request.Size,
		Path:     path,
		Uploader: request.Uploader,
		At:       time.Now(),
	}
	if err := s.catalog.Store(record); err != nil {
		s.log.Error("Catalog store failed", "file_id", fileID, "error", err)
		_ = os.Remove(path)
		return
	}

	reply, _ := json.Marshal(uploadReply{FileID: fileID})
	_ = protocol.WriteFrame(conn, reply)

	s.monitor.IncrFilesStored()
	s.monitor.AddBytesUploaded(uint64(request.Size))
	s.log.Info("File uploaded",
		"file_id", fileID, "filename", request.Filename,
		"size", request.Size, "uploader", request.Uploader)

	if s.notifier != nil {
		s.notifier.FileAvailable(record)
	}
}

func (s *Service) receiveFile(conn net.Conn, path string, size int64) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, chunkSize)
	return io.CopyBuffer(f, io.LimitReader(conn, size), buf)
}

// handleDownload answers a length-prefixed file id with the record
// descriptor followed by the raw bytes.
func (s *Service) handleDownload(conn net.Conn) {
	idBytes, err := protocol.ReadFrame(conn, protocol.MaxControlFrame)
	if err != nil {
		return
	}

	record, err := s.catalog.Get(string(idBytes))
	if err != nil {
		_, _ = conn.Write([]byte(replyNotFound))
		return
	}

	f, err := os.Open(record.Path)
	if err != nil {
		s.log.Error("Stored file missing", "file_id", record.ID, "path", record.Path)
		_, _ = conn.Write([]byte(replyNotAvailable))
		return
	}
	defer f.Close()

	descriptor, _ := json.Marshal(record)
	if err := protocol.WriteFrame(conn, descriptor); err != nil {
		return
	}

	buf := make([]byte, chunkSize)
	sent, err := io.CopyBuffer(conn, f, buf)
	if err != nil {
		s.log.Warn("Download interrupted", "file_id", record.ID, "sent", sent, "error", err)
		return
	}

	s.monitor.AddBytesDownloaded(uint64(sent))
	s.log.Info("File downloaded", "file_id", record.ID, "filename", record.Filename)
}
