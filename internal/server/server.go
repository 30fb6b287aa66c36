// Package server 提供预览用的 HTTP 接口：渲染、文件工作区、主题样式和用户偏好
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/riverfjs/mdview-go"
	"github.com/riverfjs/mdview-go/internal/highlight"
	"github.com/riverfjs/mdview-go/internal/settings"
	"github.com/riverfjs/mdview-go/internal/workspace"
)

// maxUploadSize 单次上传的大小上限
const maxUploadSize = 8 << 20

// Server 预览服务
type Server struct {
	files    *workspace.Workspace
	settings *settings.Store
	logger   *log.Logger

	mu   sync.RWMutex
	opts []mdview.Option
}

// New 创建预览服务；opts 用于每次渲染
func New(files *workspace.Workspace, store *settings.Store, logger *log.Logger, opts ...mdview.Option) *Server {
	if files == nil {
		files = workspace.New()
	}
	if store == nil {
		store = settings.NewStore()
	}
	if logger == nil {
		logger = mdview.Logger
	}
	return &Server{files: files, settings: store, logger: logger, opts: opts}
}

// SetOptions 替换渲染选项（配置文件变化时调用）
func (s *Server) SetOptions(opts ...mdview.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

func (s *Server) options() []mdview.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// Handler 返回路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/render", s.handleRender)
	mux.HandleFunc("GET /api/files", s.handleListFiles)
	mux.HandleFunc("POST /api/files", s.handleUpload)
	mux.HandleFunc("POST /api/files/new", s.handleSaveNew)
	mux.HandleFunc("DELETE /api/files", s.handleClearFiles)
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("POST /api/templates/{id}", s.handleSaveTemplate)
	mux.HandleFunc("GET /api/files/{id}", s.handleGetFile)
	mux.HandleFunc("PUT /api/files/{id}", s.handleUpdateFile)
	mux.HandleFunc("DELETE /api/files/{id}", s.handleDeleteFile)
	mux.HandleFunc("POST /api/files/{id}/select", s.handleSelectFile)
	mux.HandleFunc("GET /api/files/{id}/preview", s.handlePreviewFile)
	mux.HandleFunc("GET /theme.css", s.handleThemeCSS)
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("POST /api/settings/reset", s.handleResetSettings)
	mux.HandleFunc("PUT /api/settings/shortcuts/{id}", s.handleUpdateShortcut)
	return mux
}

// --- render ---

type renderRequest struct {
	Markdown string `json:"markdown"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, mdview.RenderDocument(req.Markdown, s.options()...))
}

// --- files ---

type filesResponse struct {
	Files    []workspace.File `json:"files"`
	Selected string           `json:"selected,omitempty"`
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	resp := filesResponse{Files: s.files.Files()}
	if sel := s.files.Selected(); sel != nil {
		resp.Selected = sel.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleUpload 接收 multipart 上传，字段名 file，可多个；
// 单个文件失败不影响其他文件
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "no file")
		return
	}

	type result struct {
		Name  string          `json:"name"`
		File  *workspace.File `json:"file,omitempty"`
		Error string          `json:"error,omitempty"`
	}
	results := make([]result, 0, len(headers))
	failed := 0
	for _, h := range headers {
		res := result{Name: h.Filename}
		f, err := h.Open()
		if err == nil {
			res.File, err = s.files.Upload(h.Filename, f)
			f.Close()
		} else {
			err = errors.Join(workspace.ErrReadFile, err)
		}
		if err != nil {
			s.logger.Printf("upload %s failed: %v", h.Filename, err)
			res.Error = uploadError(err)
			failed++
		}
		results = append(results, res)
	}

	status := http.StatusCreated
	if failed == len(results) {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]interface{}{"results": results})
}

func uploadError(err error) string {
	switch {
	case errors.Is(err, workspace.ErrNotMarkdown):
		return "only .md and .mdx files are supported"
	case errors.Is(err, workspace.ErrReadFile):
		return workspace.ErrReadFile.Error()
	}
	return "failed to process file"
}

type contentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleSaveNew(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusCreated, s.files.SaveNew(req.Content))
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, workspace.Templates())
}

// handleSaveTemplate 以模板新建文件
func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	f, err := s.files.SaveTemplate(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleClearFiles(w http.ResponseWriter, r *http.Request) {
	s.files.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	f, err := s.files.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleUpdateFile(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.files.Update(r.PathValue("id"), req.Content); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.files.Delete(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectFile(w http.ResponseWriter, r *http.Request) {
	if err := s.files.Select(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreviewFile(w http.ResponseWriter, r *http.Request) {
	f, err := s.files.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mdview.RenderDocument(f.Content, s.options()...))
}

// --- theme / settings ---

// handleThemeCSS 返回代码高亮样式；?theme= 优先，其次是用户偏好
func (s *Server) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	theme := r.URL.Query().Get("theme")
	if theme == "" {
		theme = s.settings.Preferences().SyntaxTheme
	}
	var buf bytes.Buffer
	if err := highlight.WriteCSS(&buf, theme); err != nil {
		s.logger.Printf("theme %q: %v", theme, err)
		writeError(w, http.StatusInternalServerError, "could not build stylesheet")
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Preferences())
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	s.settings.Reset()
	writeJSON(w, http.StatusOK, s.settings.Preferences())
}

type shortcutRequest struct {
	Keys []string `json:"keys"`
}

func (s *Server) handleUpdateShortcut(w http.ResponseWriter, r *http.Request) {
	var req shortcutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Keys) == 0 {
		writeError(w, http.StatusBadRequest, "keys required")
		return
	}
	if !s.settings.UpdateShortcut(r.PathValue("id"), req.Keys) {
		writeError(w, http.StatusNotFound, "unknown shortcut")
		return
	}
	writeJSON(w, http.StatusOK, s.settings.Preferences())
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
