package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/landing-insights/internal/ingest"
	"github.com/AngelCh415/landing-insights/internal/insights"
	"github.com/AngelCh415/landing-insights/internal/models"
	"github.com/AngelCh415/landing-insights/internal/utils"
)

type uploadRequest struct {
	Owner    string `json:"owner"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	MimeType string `json:"mime_type"`
	DataType string `json:"data_type"`
	Content  string `json:"content"` // base64
}

func NewRouter(log *slog.Logger, p *ingest.Pipeline, svc *insights.Service, maxUpload int64) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/uploads", func(w http.ResponseWriter, r *http.Request) {
		if maxUpload > 0 {
			// base64 ocupa ~4/3 del archivo original
			r.Body = http.MaxBytesReader(w, r.Body, maxUpload*4/3+4096)
		}
		var req uploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "bad json", 400)
			return
		}
		up, err := toUpload(req)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		res, err := p.Process(r.Context(), up)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSONStatus(w, http.StatusCreated, res)
	})

	mux.Get("/records/campaigns", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.QueryCampaigns(r.URL.Query().Get("owner"), r.URL.Query()))
	})
	mux.Get("/records/experiments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.QueryExperiments(r.URL.Query().Get("owner"), r.URL.Query()))
	})
	mux.Get("/insights/campaigns", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.CampaignInsights(r.URL.Query().Get("owner"), r.URL.Query()))
	})
	mux.Get("/insights/experiments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.ExperimentInsights(r.URL.Query().Get("owner")))
	})

	mux.Get("/owners", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"owners": svc.Owners()})
	})
	mux.Get("/schema/{dataType}", func(w http.ResponseWriter, r *http.Request) {
		dt, ok := models.ParseDataType(chi.URLParam(r, "dataType"))
		if !ok {
			http.Error(w, ingest.ErrUnknownDataType.Error(), 400)
			return
		}
		writeJSON(w, map[string]any{"data_type": dt, "fields": p.Fields(dt)})
	})

	mux.Post("/export/run", func(w http.ResponseWriter, r *http.Request) {
		owner := r.URL.Query().Get("owner")
		if owner == "" {
			http.Error(w, "owner required", 400)
			return
		}
		n, err := p.ExportOwner(r.Context(), owner)
		if errors.Is(err, ingest.ErrSinkNotConfigured) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), 502)
			return
		}
		writeJSON(w, map[string]any{"exported": n})
	})

	return mux
}

func toUpload(req uploadRequest) (ingest.Upload, error) {
	dt, ok := models.ParseDataType(req.DataType)
	if !ok {
		return ingest.Upload{}, ingest.ErrUnknownDataType
	}
	var ft models.FileType
	if strings.TrimSpace(req.FileType) != "" {
		if ft, ok = models.ParseFileType(req.FileType); !ok {
			return ingest.Upload{}, errors.New("unknown file_type")
		}
	} else {
		ft = ingest.InferFileType(req.FileName, req.MimeType)
	}
	content, err := ingest.DecodeContent(req.Content)
	if err != nil {
		return ingest.Upload{}, err
	}
	return ingest.Upload{Owner: req.Owner, FileName: req.FileName, FileType: ft, DataType: dt, Content: content}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ingest.ErrUnknownDataType):
		return http.StatusBadRequest
	case errors.Is(err, ingest.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingest.ErrEmptyContent),
		errors.Is(err, ingest.ErrNotText),
		errors.Is(err, ingest.ErrInsufficientRows):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v any) { writeJSONStatus(w, http.StatusOK, v) }

func writeJSONStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
