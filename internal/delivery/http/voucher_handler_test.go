package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/usecase/voucher"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestVoucherHandler_IssueVoucher тестирует выдачу comprobante
func TestVoucherHandler_IssueVoucher(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*MockVoucherService)
		expectedStatus int
	}{
		{
			name:        "успешная выдача",
			requestBody: domain.FeeInputs{ArrearsMonths: 2},
			mockSetup: func(m *MockVoucherService) {
				m.On("IssueForPlate", mock.Anything, "ABC-1234", domain.FeeInputs{ArrearsMonths: 2}).
					Return(&voucher.Issued{Voucher: CreateTestVoucher("ABC-1234"), Breakdown: domain.FeeBreakdown{Total: 122}}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "автомобиль не найден",
			requestBody: nil,
			mockSetup: func(m *MockVoucherService) {
				m.On("IssueForPlate", mock.Anything, "ABC-1234", domain.FeeInputs{}).Return(nil, domain.ErrVehicleNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "невалидный JSON",
			requestBody:    "{",
			mockSetup:      func(m *MockVoucherService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockVoucherService)
			tt.mockSetup(mockService)

			handler := NewVoucherHandler(mockService, logger.NewNoop())

			w := httptest.NewRecorder()
			handler.IssueVoucher(w, newRequest(t, http.MethodPost, "/api/v1/vehicles/ABC-1234/vouchers", "ABC-1234", tt.requestBody))

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestVoucherHandler_GetActiveVoucher тестирует поиск действующего comprobante
func TestVoucherHandler_GetActiveVoucher(t *testing.T) {
	t.Run("просроченный comprobante отдается с признаком", func(t *testing.T) {
		v := CreateTestVoucher("ABC-1234")
		mockService := new(MockVoucherService)
		mockService.On("FindActiveForPlate", mock.Anything, "ABC-1234").Return(v, nil)
		mockService.On("IsExpired", v).Return(true)

		handler := NewVoucherHandler(mockService, logger.NewNoop())

		w := httptest.NewRecorder()
		handler.GetActiveVoucher(w, newRequest(t, http.MethodGet, "/", "ABC-1234", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, true, data["expired"])
		assert.Equal(t, "PENDING", data["voucher"].(map[string]interface{})["status"])
		mockService.AssertExpectations(t)
	})

	t.Run("нет comprobante", func(t *testing.T) {
		mockService := new(MockVoucherService)
		mockService.On("FindActiveForPlate", mock.Anything, "ABC-1234").Return(nil, domain.ErrNoPendingVoucher)

		handler := NewVoucherHandler(mockService, logger.NewNoop())

		w := httptest.NewRecorder()
		handler.GetActiveVoucher(w, newRequest(t, http.MethodGet, "/", "ABC-1234", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		AssertError(t, decodeResponse(t, w))
	})
}

// TestVoucherHandler_ListVouchers тестирует список с действующим статусом
func TestVoucherHandler_ListVouchers(t *testing.T) {
	mockService := new(MockVoucherService)
	mockService.On("ListByPlate", mock.Anything, "ABC-1234").Return([]*voucher.Entry{
		{Voucher: CreateTestVoucher("ABC-1234"), EffectiveStatus: domain.VoucherExpired},
	}, nil)

	handler := NewVoucherHandler(mockService, logger.NewNoop())

	w := httptest.NewRecorder()
	handler.ListVouchers(w, newRequest(t, http.MethodGet, "/", "ABC-1234", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	entry := data[0].(map[string]interface{})
	assert.Equal(t, "PENDING", entry["status"])
	assert.Equal(t, "EXPIRED", entry["effective_status"])
}

// TestVoucherHandler_ExpireOverdue тестирует сохранение EXPIRED
func TestVoucherHandler_ExpireOverdue(t *testing.T) {
	mockService := new(MockVoucherService)
	mockService.On("ExpireOverdue", mock.Anything).Return(3, nil)

	handler := NewVoucherHandler(mockService, logger.NewNoop())

	w := httptest.NewRecorder()
	handler.ExpireOverdue(w, newRequest(t, http.MethodPost, "/api/v1/vouchers/expire", "", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 3.0, data["expired"])
}

// TestVoucherHandler_GetVoucher тестирует поиск comprobante по номеру
func TestVoucherHandler_GetVoucher(t *testing.T) {
	tests := []struct {
		name           string
		number         string
		mockSetup      func(*MockVoucherService)
		expectedStatus int
	}{
		{
			name:   "найден",
			number: "MAT-ABC-1234-20250301-042",
			mockSetup: func(m *MockVoucherService) {
				m.On("GetByNumber", mock.Anything, "MAT-ABC-1234-20250301-042").Return(&voucher.Entry{
					Voucher:         CreateTestVoucher("ABC-1234"),
					EffectiveStatus: domain.VoucherPending,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "не найден",
			number: "MAT-NOPE",
			mockSetup: func(m *MockVoucherService) {
				m.On("GetByNumber", mock.Anything, "MAT-NOPE").Return(nil, domain.ErrVoucherNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockVoucherService)
			tt.mockSetup(mockService)

			handler := NewVoucherHandler(mockService, logger.NewNoop())

			req := newRequest(t, http.MethodGet, "/api/v1/vouchers/"+tt.number, "", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("number", tt.number)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.GetVoucher(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestVoucherHandler_Report тестирует сводку по реестру
func TestVoucherHandler_Report(t *testing.T) {
	mockService := new(MockVoucherService)
	mockService.On("Report", mock.Anything).Return(&domain.VoucherReport{
		Total: 4, Paid: 2, Pending: 1, Expired: 1, Collected: 244, PaidPercent: 50,
	}, nil)

	handler := NewVoucherHandler(mockService, logger.NewNoop())

	w := httptest.NewRecorder()
	handler.Report(w, newRequest(t, http.MethodGet, "/api/v1/reports/vouchers", "", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 4.0, data["total"])
	assert.Equal(t, 244.0, data["collected"])
	assert.Equal(t, 50.0, data["paid_percent"])
}
