package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/domain/postulation"
	"jobboard/internal/http/response"
)

type PostulationHandler struct {
	postulations *app.PostulationService
}

func NewPostulationHandler(postulations *app.PostulationService) *PostulationHandler {
	return &PostulationHandler{postulations: postulations}
}

type postulationPage struct {
	PageInfo     pageInfo                  `json:"page_info"`
	Postulations []postulation.Postulation `json:"postulations"`
}

func (h *PostulationHandler) Postulate(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	jobOfferID, err := idFromPath(r, pathIDIndex)
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.postulations.Postulate(r.Context(), id, jobOfferID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "Postulation created successfully", created)
}

func (h *PostulationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	jobOfferID, err := idFromPath(r, pathIDIndex)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.postulations.Withdraw(r.Context(), id, jobOfferID); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Postulation withdrawn successfully", nil)
}

func (h *PostulationHandler) ListForJobOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	jobOfferID, err := idFromPath(r, pathIDIndex)
	if err != nil {
		response.Error(w, err)
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.postulations.ListForJobOffer(r.Context(), id, jobOfferID, page)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "The postulations were successfully obtained.", postulationPage{
		PageInfo:     newPageInfo(r, result),
		Postulations: result.Items,
	})
}

func (h *PostulationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	page, err := pageRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.postulations.ListMine(r.Context(), id, page)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "The postulations were successfully obtained.", postulationPage{
		PageInfo:     newPageInfo(r, result),
		Postulations: result.Items,
	})
}

func (h *PostulationHandler) AcceptReject(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	jobOfferID, err := idFromPath(r, pathIDIndex)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req []app.DecisionInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.postulations.AcceptReject(r.Context(), id, jobOfferID, req); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Postulations status successfully applied.", nil)
}
