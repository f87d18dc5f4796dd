// internal/adapters/in/http/site/handler/admin_handler.go
package siteHandler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"folio/internal/adapters/in/http/middleware"
	usecase "folio/internal/application/usecase"
	assetdom "folio/internal/domain/asset"
)

// maxUploadBytes bounds one multipart upload (3D models are the large case).
const maxUploadBytes = 50 << 20

// AdminHandler serves the editor API. Routes are mounted behind the admin
// auth middleware.
type AdminHandler struct {
	admin  *usecase.AdminUsecase
	assets *usecase.AssetUsecase
	log    *zap.Logger
}

func NewAdminHandler(admin *usecase.AdminUsecase, assets *usecase.AssetUsecase, log *zap.Logger) *AdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{admin: admin, assets: assets, log: log.Named("admin_handler")}
}

func (h *AdminHandler) actor(r *http.Request) zap.Field {
	uid, _ := middleware.AdminUID(r)
	return zap.String("uid", uid)
}

// Create handles POST /api/admin/{kind}.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	var in usecase.ItemInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	it, err := h.admin.Create(r.Context(), kind, in)
	if err != nil {
		h.log.Info("create rejected", h.actor(r), zap.String("kind", string(kind)), zap.Error(err))
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

// Update handles PUT /api/admin/{kind}/{id}.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	var in usecase.ItemInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	it, err := h.admin.Update(r.Context(), kind, chi.URLParam(r, "id"), in)
	if err != nil {
		h.log.Info("update rejected", h.actor(r), zap.String("kind", string(kind)), zap.Error(err))
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// Delete handles DELETE /api/admin/{kind}/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	if err := h.admin.Delete(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		writeUsecaseErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddCategory handles POST /api/admin/categories with {"name": "..."}.
func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	c, err := h.admin.AddCategory(r.Context(), req.Name)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Upload handles POST /api/admin/uploads (multipart: file, type).
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.assets == nil {
		writeUsecaseErr(w, usecase.ErrAssetStorageNotConfigured)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	typ, err := assetdom.ParseType(r.FormValue("type"))
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeUsecaseErr(w, assetdom.ErrNoFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "could not read file")
		return
	}

	stored, err := h.assets.Upload(r.Context(), assetdom.Upload{
		Type:        typ,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.log.Info("upload rejected", h.actor(r), zap.String("file", header.Filename), zap.Error(err))
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}
