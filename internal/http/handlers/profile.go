package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/http/response"
)

// MaxUploadBytes bounds a multipart CV upload.
const MaxUploadBytes = 10 << 20

type ProfileHandler struct {
	profiles *app.ProfileService
}

func NewProfileHandler(profiles *app.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req app.StudentProfileInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.profiles.AddStudent(r.Context(), id, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Student data added successfully.", created)
}

func (h *ProfileHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	item, err := h.profiles.GetStudent(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Student data obtained successfully.", item)
}

func (h *ProfileHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req app.StudentProfileInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.profiles.UpdateStudent(r.Context(), id, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Student data updated successfully.", updated)
}

func (h *ProfileHandler) UploadCV(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	file, header, cleanup, err := readUpload(r, "cv", MaxUploadBytes)
	if err != nil {
		response.Error(w, err)
		return
	}
	defer cleanup()
	if header.Size == 0 {
		response.Error(w, common.NewValidationError("Validation error", map[string]string{"cv": "The submitted file is empty."}))
		return
	}
	updated, err := h.profiles.UploadCV(r.Context(), id, header.Filename, file)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "CV uploaded successfully.", updated)
}

func (h *ProfileHandler) AddCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req app.CompanyProfileInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.profiles.AddCompany(r.Context(), id, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Company data added successfully.", created)
}

func (h *ProfileHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	item, err := h.profiles.GetCompany(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Company data obtained successfully.", item)
}

func (h *ProfileHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req app.CompanyProfileInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.profiles.UpdateCompany(r.Context(), id, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Company data updated successfully.", updated)
}

// readUpload parses a multipart body and opens one file field. cleanup closes
// the file and removes any temp files the parse spilled to disk.
func readUpload(r *http.Request, field string, maxMemory int64) (multipart.File, *multipart.FileHeader, func(), error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, nil, common.NewValidationError("Validation error", map[string]string{field: "The submitted file is too large."})
		}
		return nil, nil, nil, common.NewValidationError("Validation error", map[string]string{field: "The submitted data was not a file."})
	}
	form := r.MultipartForm
	file, header, err := r.FormFile(field)
	if err != nil {
		_ = form.RemoveAll()
		return nil, nil, nil, common.NewValidationError("Validation error", map[string]string{field: "No file was submitted."})
	}
	cleanup := func() {
		_ = file.Close()
		_ = form.RemoveAll()
	}
	return file, header, cleanup, nil
}
