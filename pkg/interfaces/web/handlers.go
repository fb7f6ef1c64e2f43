package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vsinha/plantrecon/pkg/application/dto"
	"github.com/vsinha/plantrecon/pkg/application/services/importer"
	"github.com/vsinha/plantrecon/pkg/application/services/ledger"
	"github.com/vsinha/plantrecon/pkg/application/services/reconciliation"
	"github.com/vsinha/plantrecon/pkg/application/services/snapshot"
	"github.com/vsinha/plantrecon/pkg/domain/entities"
	"github.com/vsinha/plantrecon/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/plantrecon/pkg/interfaces/cli/output"
)

const maxBodyBytes = 1 << 20

// Handler serves the reconciliation views, master uploads and the ledger
// write path over JSON. Every read takes a fresh snapshot.
type Handler struct {
	snapshots *snapshot.Service
	recon     *reconciliation.Service
	ledger    *ledger.Service
	importer  *importer.Service
}

// NewHandler wires the chi router.
func NewHandler(snapshots *snapshot.Service, recon *reconciliation.Service, ledgerSvc *ledger.Service, importSvc *importer.Service) http.Handler {
	h := &Handler{snapshots: snapshots, recon: recon, ledger: ledgerSvc, importer: importSvc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(tagRequest)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/drawings", h.drawings)
		r.Get("/drawings/duplicates", h.duplicates)
		r.Get("/materials", h.materials)
		r.Get("/installations", h.installations)
		r.Get("/summary", h.summary)
		r.Get("/export.xlsx", h.export)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequestSize(maxBodyBytes))
			r.Post("/ledger/receipts", h.receive)
			r.Post("/ledger/issues", h.issue)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequestSize(maxUploadBytes))
			r.Post("/import/{source}", h.importMaster)
		})
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func optionsFrom(r *http.Request) reconciliation.Options {
	q := r.URL.Query()
	dedupe, _ := strconv.ParseBool(q.Get("dedupe"))
	return reconciliation.Options{Category: q.Get("category"), Dedupe: dedupe}
}

// reconcile loads a snapshot and builds every view; it writes the error
// response itself and returns nil on failure.
func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) *dto.ReconciliationResult {
	snap, err := h.snapshots.Load(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return nil
	}
	result, err := h.recon.Reconcile(r.Context(), snap, optionsFrom(r))
	if err != nil {
		writeDomainError(w, r, err)
		return nil
	}
	return result
}

func unavailable(w http.ResponseWriter, r *http.Request, source entities.Source) {
	writeDomainError(w, r, &entities.MissingSourceError{Source: source})
}

// drawings handles GET /api/drawings?category=&dedupe=.
func (h *Handler) drawings(w http.ResponseWriter, r *http.Request) {
	result := h.reconcile(w, r)
	if result == nil {
		return
	}
	if result.Drawings.Unavailable {
		unavailable(w, r, entities.SourceDrawings)
		return
	}
	writeJSON(w, http.StatusOK, result.Drawings)
}

// duplicates handles GET /api/drawings/duplicates.
func (h *Handler) duplicates(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshots.Load(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if err := snap.Require(entities.SourceDrawings); err != nil {
		writeDomainError(w, r, err)
		return
	}
	groups := h.recon.DuplicateGroups(h.recon.BuildDrawingView(snap.Drawings))
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups, "count": len(groups)})
}

// materials handles GET /api/materials.
func (h *Handler) materials(w http.ResponseWriter, r *http.Request) {
	result := h.reconcile(w, r)
	if result == nil {
		return
	}
	if result.Materials.Unavailable {
		unavailable(w, r, entities.SourceMaterials)
		return
	}
	writeJSON(w, http.StatusOK, result.Materials)
}

// installations handles GET /api/installations?category=.
func (h *Handler) installations(w http.ResponseWriter, r *http.Request) {
	result := h.reconcile(w, r)
	if result == nil {
		return
	}
	if result.Installations.Unavailable {
		// the join needs the register as well as the installation table
		writeDomainError(w, r, &entities.MissingSourceError{Source: entities.SourceInstallations, Location: "installations or drawings"})
		return
	}
	writeJSON(w, http.StatusOK, result.Installations)
}

type summaryResponse struct {
	Summary     dto.Summary              `json:"summary"`
	Unavailable map[entities.Source]bool `json:"unavailable"`
}

// summary handles GET /api/summary.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	result := h.reconcile(w, r)
	if result == nil {
		return
	}
	missing := map[entities.Source]bool{
		entities.SourceDrawings:      result.Drawings.Unavailable,
		entities.SourceMaterials:     result.Materials.Unavailable,
		entities.SourceInstallations: result.Installations.Unavailable,
	}
	writeJSON(w, http.StatusOK, summaryResponse{Summary: result.Summarize(), Unavailable: missing})
}

// export handles GET /api/export.xlsx.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	result := h.reconcile(w, r)
	if result == nil {
		return
	}
	var buf bytes.Buffer
	if err := xlsx.Write(&buf, output.Sheets(result)...); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="reconciliation.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

type ledgerRequest struct {
	Date          string `json:"date"`
	IdentCode     string `json:"ident_code"`
	Quantity      int64  `json:"quantity"`
	DrawingNumber string `json:"drawing_no"`
	Remark        string `json:"remark"`
}

func decodeLedgerRequest(w http.ResponseWriter, r *http.Request) (ledger.Request, bool) {
	var body ledgerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return ledger.Request{}, false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return ledger.Request{}, false
	}

	req := ledger.Request{
		IdentCode:     entities.IdentCode(body.IdentCode),
		Quantity:      entities.Quantity(body.Quantity),
		DrawingNumber: entities.DrawingNumber(body.DrawingNumber),
		Remark:        body.Remark,
	}
	if d := strings.TrimSpace(body.Date); d != "" {
		date, err := time.Parse(entities.LedgerDateLayout, d)
		if err != nil {
			writeError(w, r, "invalid date format: "+d+" (expected YYYY-MM-DD)", "BAD_REQUEST", http.StatusBadRequest)
			return ledger.Request{}, false
		}
		req.Date = date
	}
	return req, true
}

// receive handles POST /api/ledger/receipts.
func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLedgerRequest(w, r)
	if !ok {
		return
	}
	result, err := h.ledger.Receive(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// issue handles POST /api/ledger/issues.
func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeLedgerRequest(w, r)
	if !ok {
		return
	}
	result, err := h.ledger.Issue(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
