package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/infrastructure/http/response"
)

type AssetHandler struct {
	store outbound.AssetStore
}

func NewAssetHandler(store outbound.AssetStore) *AssetHandler {
	return &AssetHandler{store: store}
}

func (h *AssetHandler) Serve(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["assetID"]
	if assetID == "" {
		response.NotFound(w, "Asset not found")
		return
	}

	data, err := h.store.Resolve(r.Context(), assetID)
	if err != nil {
		if errors.Is(err, outbound.ErrAssetNotFound) {
			response.NotFound(w, "Asset not found")
			return
		}
		response.InternalServerError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
