package web

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vsinha/plantrecon/pkg/application/services/importer"
	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/tabular"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/xlsx"
)

const (
	maxUploadBytes  = 32 << 20
	workbookMIME    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	formatParameter = "format"
)

// readUpload decodes the request body as a workbook when the content type
// or ?format=xlsx says so, and as CSV otherwise.
func readUpload(r *http.Request) ([][]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == workbookMIME || r.URL.Query().Get(formatParameter) == "xlsx" {
		return xlsx.ReadFrom(r.Body)
	}
	return csv.ReadFrom(r.Body)
}

// importMaster handles POST /api/import/{source}. The body replaces the
// named master table; duplicate drawing numbers are rejected unless
// ?confirm_dedupe=true.
func (h *Handler) importMaster(w http.ResponseWriter, r *http.Request) {
	source := entities.Source(chi.URLParam(r, "source"))
	if source != entities.SourceDrawings && source != entities.SourceMaterials && source != entities.SourceInstallations {
		writeError(w, r, "unknown master table: "+string(source), "NOT_FOUND", http.StatusNotFound)
		return
	}
	confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm_dedupe"))

	records, err := readUpload(r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "upload too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, r, "unreadable upload: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var result *importer.Result
	switch source {
	case entities.SourceDrawings:
		drawings, perr := tabular.ParseDrawings(records)
		if perr != nil {
			writeError(w, r, perr.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		result, err = h.importer.ImportDrawings(r.Context(), drawings, confirm)
	case entities.SourceMaterials:
		materials, perr := tabular.ParseMaterials(records)
		if perr != nil {
			writeError(w, r, perr.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		result, err = h.importer.ImportMaterials(r.Context(), materials)
	case entities.SourceInstallations:
		installations, perr := tabular.ParseInstallations(records)
		if perr != nil {
			writeError(w, r, perr.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		result, err = h.importer.ImportInstallations(r.Context(), installations)
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
