package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/internal/domain"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/campaigning"
	"github.com/quickcampaigns/campaigns-api/pkg/apiErrors"
	"github.com/quickcampaigns/campaigns-api/pkg/middleware"
)

// maxCreativeSize limita o corpo do upload de criativo (100 MB).
const maxCreativeSize = 100 << 20

// UploadCreative recebe o arquivo de mídia via multipart/form-data no
// campo "file" e o anexa à campanha.
func UploadCreative(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		r.Body = http.MaxBytesReader(w, r.Body, maxCreativeSize)
		if err := r.ParseMultipartForm(maxCreativeSize); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Upload inválido ou arquivo grande demais", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo file é obrigatório", nil)
			return
		}
		defer file.Close()

		upload := &campaigning.CreativeUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Data:        file,
		}

		creative, err := service.AddCreative(r.Context(), userClaims.UserID, campaignID, upload)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(creative)
	}
}

func ListCreatives(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		creatives, err := service.ListCreatives(r.Context(), userClaims.UserID, campaignID)
		if err != nil {
			handleCampaignError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(creatives); err != nil {
			logrus.Error(err)
		}
	}
}

func DeleteCreative(service campaigning.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		campaignID := params.ByName("id")
		creativeID := params.ByName("creative_id")

		if err := service.DeleteCreative(r.Context(), userClaims.UserID, campaignID, creativeID); err != nil {
			handleCampaignError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
