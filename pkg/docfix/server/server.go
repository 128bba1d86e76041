// Package server exposes the docfix engine over HTTP. It owns the thin
// boundary concerns only: multipart decoding, payload ceilings, the package
// prechecker, response headers, and CORS. All document semantics live in the
// docfix package.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/teamsdoc/docfix/pkg/docfix"
)

// docxContentType is the MIME type of the OOXML word-processing package.
const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Server handles document fix requests.
type Server struct {
	config *docfix.Config
	engine *docfix.Engine
	logger *docfix.Logger
	mux    *http.ServeMux
}

// New creates a server around an engine configured with config.
func New(config *docfix.Config) *Server {
	s := &Server{
		config: config,
		engine: docfix.NewWithConfig(config),
		logger: docfix.GetLogger(),
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/fix", s.handleFix)
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the server on the configured address and blocks.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
	}
	s.logger.Info("listening on %s", s.config.ListenAddr)
	return srv.ListenAndServe()
}

func (s *Server) handleFix(w http.ResponseWriter, r *http.Request) {
	s.writeCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Reject oversized requests before reading the body.
	if r.ContentLength > s.config.MaxUploadSize {
		s.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file too large (max %d bytes)", s.config.MaxUploadSize))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize)

	if err := r.ParseMultipartForm(s.config.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file too large (max %d bytes)", s.config.MaxUploadSize))
			return
		}
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "no file received")
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	if !docfix.IsPackage(fileBytes) {
		s.writeError(w, http.StatusBadRequest, "file is not a valid .docx document")
		return
	}

	opts, err := docfix.ParseOptionsJSON([]byte(r.FormValue("options")))
	if err != nil {
		// Unusable options fall back to the defaults rather than failing
		// the upload; the defaults are the safe, fix-everything choice.
		s.logger.Warn("ignoring invalid options: %v", err)
	}

	result, err := s.engine.Process(fileBytes, opts)
	if err != nil {
		s.logger.Error("processing failed: %v", err)
		if docfix.IsMalformedPackage(err) || docfix.IsParseError(err) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, "error while processing the document")
		return
	}

	outName := docfix.DerivedFilename(header.Filename)

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Output)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Output); err != nil {
		s.logger.Warn("write response: %v", err)
	}
}

func (s *Server) writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", s.config.AllowedOrigin)
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	body, _ := json.Marshal(map[string]string{"error": message})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(code)
	w.Write(body) //nolint:errcheck
}
