package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/fhuszti/assets-cdn-go/internal/api_context"
	"github.com/fhuszti/assets-cdn-go/internal/port"
	"github.com/fhuszti/assets-cdn-go/internal/usecase/asset"
	"github.com/fhuszti/assets-cdn-go/internal/validation"

	"github.com/fhuszti/assets-cdn-go/internal/logger"
)

func ServeAssetHandler(svc port.AssetServer, cacheControl string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}
		bucket, ok := api_context.BucketFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "bucket is required", nil)
			return
		}

		params, err := parseResizeParams(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if errs := validation.ValidateStruct(params); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			// return the validation errors payload directly
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		in := port.ServeAssetInput{ID: id, Bucket: bucket, Resize: params}
		out, err := svc.ServeAsset(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, asset.ErrAssetNotFound):
				WriteError(w, http.StatusNotFound, "Asset not found", nil)
			case errors.Is(err, asset.ErrContentTypeNotAllowed):
				WriteError(w, http.StatusUnsupportedMediaType, "Content type not allowed", nil)
			case errors.Is(err, asset.ErrStorageUnavailable):
				WriteError(w, http.StatusBadGateway, "Storage unavailable", err)
			default:
				WriteError(w, http.StatusInternalServerError, "Could not serve asset", err)
			}
			return
		}

		w.Header().Set("Content-Type", out.ContentType)
		w.Header().Set("Content-Disposition", out.Disposition)
		w.Header().Set("Cache-Control", cacheControl)
		w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(out.Data); err != nil {
			logger.Errorf(r.Context(), "❌  Failed to write asset body: %v", err)
			return
		}
		log.Printf("✅  Successfully served asset #%s", id)
	}
}

// parseResizeParams reads the overlapping resize query parameters as-is; the
// service decides which one wins.
func parseResizeParams(r *http.Request) (port.ResizeParams, error) {
	var p port.ResizeParams
	var err error

	if p.Size, err = queryInt(r, "size"); err != nil {
		return port.ResizeParams{}, err
	}
	if p.Width, err = queryInt(r, "width"); err != nil {
		return port.ResizeParams{}, err
	}
	if p.Height, err = queryInt(r, "height"); err != nil {
		return port.ResizeParams{}, err
	}
	if p.MaxSide, err = queryInt(r, "max_side"); err != nil {
		return port.ResizeParams{}, err
	}
	p.Fit = r.URL.Query().Get("fit")
	if raw := r.URL.Query().Get("dpr"); raw != "" {
		p.DPR, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return port.ResizeParams{}, fmt.Errorf("parameter %q must be a number", "dpr")
		}
	}

	return p, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be an integer", name)
	}
	return v, nil
}
