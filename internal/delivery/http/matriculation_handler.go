package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/logger"
)

// MatriculationService определяет интерфейс финализации
type MatriculationService interface {
	Finalize(ctx context.Context, plate string) (*domain.CertificateRecord, error)
	Status(ctx context.Context, plate string) (*domain.MatriculationStatus, error)
	ListCertificates(ctx context.Context) ([]*domain.CertificateRecord, error)
}

// MatriculationHandler обрабатывает выдачу сертификатов
type MatriculationHandler struct {
	matriculationService MatriculationService
	logger               logger.Logger
}

// NewMatriculationHandler создает новый handler
func NewMatriculationHandler(matriculationService MatriculationService, logger logger.Logger) *MatriculationHandler {
	return &MatriculationHandler{
		matriculationService: matriculationService,
		logger:               logger,
	}
}

// Finalize выдает сертификат матрикуляции
// POST /api/v1/vehicles/{plate}/matriculation
func (h *MatriculationHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	cert, err := h.matriculationService.Finalize(r.Context(), plateParam(r))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to finalize matriculation")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{
		"certificate": cert,
		"valid_until": cert.ValidUntil(),
	})
}

// GetStatus возвращает положение автомобиля в процессе
// GET /api/v1/vehicles/{plate}/status
func (h *MatriculationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.matriculationService.Status(r.Context(), plateParam(r))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to get matriculation status")
		return
	}

	respondSuccess(w, http.StatusOK, status)
}

// ListCertificates возвращает все выданные сертификаты
// GET /api/v1/certificates
func (h *MatriculationHandler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	certificates, err := h.matriculationService.ListCertificates(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to list certificates")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"certificates": certificates,
		"total":        len(certificates),
	})
}
