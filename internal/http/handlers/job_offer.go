package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/domain/joboffer"
	"jobboard/internal/http/response"
)

// pathIDIndex is the position of the trailing id in /api/<resource>/<action>/{id}.
const pathIDIndex = 3

type JobOfferHandler struct {
	offers *app.JobOfferService
}

func NewJobOfferHandler(offers *app.JobOfferService) *JobOfferHandler {
	return &JobOfferHandler{offers: offers}
}

type jobOfferPage struct {
	PageInfo  pageInfo            `json:"page_info"`
	JobOffers []joboffer.JobOffer `json:"job_offers"`
}

func (h *JobOfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req app.JobOfferInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.offers.Create(r.Context(), id, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Job offer created successfully.", created)
}

func (h *JobOfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	offerID, err := idFromPath(r, pathIDIndex)
	if err != nil {
		response.Error(w, err)
		return
	}
	offer, err := h.offers.Get(r.Context(), offerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Job offer obtained successfully.", offer)
}

func (h *JobOfferHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, joboffer.Filter{})
}

func (h *JobOfferHandler) Filter(w http.ResponseWriter, r *http.Request) {
	filter, err := jobOfferFilter(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	h.list(w, r, filter)
}

func (h *JobOfferHandler) list(w http.ResponseWriter, r *http.Request, filter joboffer.Filter) {
	page, err := pageRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.offers.List(r.Context(), filter, page)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "The job offers were successfully obtained.", jobOfferPage{
		PageInfo:  newPageInfo(r, result),
		JobOffers: result.Items,
	})
}

func (h *JobOfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	offerID, err := idFromPath(r, pathIDIndex)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req app.JobOfferInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.offers.Update(r.Context(), id, offerID, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Job offer updated successfully.", updated)
}

func (h *JobOfferHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	offerID, err := idFromPath(r, pathIDIndex)
	if err != nil {
		response.Error(w, err)
		return
	}
	closed, err := h.offers.Close(r.Context(), id, offerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Job offer closed successfully.", closed)
}
