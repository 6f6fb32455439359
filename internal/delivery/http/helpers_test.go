package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/usecase/fee"
	"github.com/frontandrew/matricula/internal/usecase/inspection"
	"github.com/frontandrew/matricula/internal/usecase/payment"
	"github.com/frontandrew/matricula/internal/usecase/vehicle"
	"github.com/frontandrew/matricula/internal/usecase/voucher"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVehicleService - мок для vehicle service
type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) Register(ctx context.Context, req *vehicle.RegisterVehicleRequest) (*domain.VehicleRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleRecord), args.Error(1)
}

func (m *MockVehicleService) GetByPlate(ctx context.Context, plate string) (*domain.VehicleRecord, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleRecord), args.Error(1)
}

func (m *MockVehicleService) List(ctx context.Context) ([]*domain.VehicleRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.VehicleRecord), args.Error(1)
}

// MockFeeService - мок для расчета матрикулы
type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) Quote(ctx context.Context, plate string, in domain.FeeInputs) (*domain.FeeBreakdown, error) {
	args := m.Called(ctx, plate, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeBreakdown), args.Error(1)
}

func (m *MockFeeService) Schedule() fee.Schedule {
	return m.Called().Get(0).(fee.Schedule)
}

// MockVoucherService - мок для voucher service
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) IssueForPlate(ctx context.Context, plate string, in domain.FeeInputs) (*voucher.Issued, error) {
	args := m.Called(ctx, plate, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*voucher.Issued), args.Error(1)
}

func (m *MockVoucherService) FindActiveForPlate(ctx context.Context, plate string) (*domain.Voucher, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherService) IsExpired(v *domain.Voucher) bool {
	return m.Called(v).Bool(0)
}

func (m *MockVoucherService) ListByPlate(ctx context.Context, plate string) ([]*voucher.Entry, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*voucher.Entry), args.Error(1)
}

func (m *MockVoucherService) GetByNumber(ctx context.Context, number string) (*voucher.Entry, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*voucher.Entry), args.Error(1)
}

func (m *MockVoucherService) ExpireOverdue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockVoucherService) Report(ctx context.Context) (*domain.VoucherReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherReport), args.Error(1)
}

// MockPaymentService - мок для payment service
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Pay(ctx context.Context, req *payment.PayRequest) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentService) FindByPlate(ctx context.Context, plate string) ([]*domain.PaymentRecord, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentRecord), args.Error(1)
}

// MockInspectionService - мок для inspection service
type MockInspectionService struct {
	mock.Mock
}

func (m *MockInspectionService) Record(ctx context.Context, req *inspection.RecordRequest) (*domain.InspectionRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InspectionRecord), args.Error(1)
}

func (m *MockInspectionService) ListByPlate(ctx context.Context, plate string) ([]*domain.InspectionRecord, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InspectionRecord), args.Error(1)
}

// MockMatriculationService - мок для финализации
type MockMatriculationService struct {
	mock.Mock
}

func (m *MockMatriculationService) Finalize(ctx context.Context, plate string) (*domain.CertificateRecord, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CertificateRecord), args.Error(1)
}

func (m *MockMatriculationService) Status(ctx context.Context, plate string) (*domain.MatriculationStatus, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatriculationStatus), args.Error(1)
}

func (m *MockMatriculationService) ListCertificates(ctx context.Context) ([]*domain.CertificateRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CertificateRecord), args.Error(1)
}

// CreateTestVehicle создает тестовый автомобиль
func CreateTestVehicle(plate string) *domain.VehicleRecord {
	return &domain.VehicleRecord{
		Plate:          plate,
		NationalID:     "1710034065",
		OwnerName:      "Juan Perez",
		Classification: domain.MustClassification(domain.VehicleTypeParticular, domain.SubtypeLiviano),
		ModelYear:      2020,
		AssessedValue:  20000,
		DisplacementCC: 1600,
	}
}

// CreateTestVoucher создает тестовый comprobante
func CreateTestVoucher(plate string) *domain.Voucher {
	issued := time.Date(2025, time.March, 1, 10, 30, 0, 0, time.Local)
	return &domain.Voucher{
		Number:         "MAT-" + plate + "-20250301-042",
		Plate:          plate,
		OwnerName:      "Juan Perez",
		Classification: domain.MustClassification(domain.VehicleTypeParticular, domain.SubtypeLiviano),
		IssuedAt:       issued,
		ExpiresOn:      domain.TruncateToDay(issued).AddDate(0, 0, 30),
		Total:          122,
		Status:         domain.VoucherPending,
	}
}

// newRequest создает запрос с JSON телом и параметром plate в контексте chi
func newRequest(t *testing.T, method, path, plate string, body interface{}) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if plate != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("plate", plate)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

// decodeResponse разбирает JSON ответ в map
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// AssertSuccess проверяет успешный ответ API
func AssertSuccess(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || !success {
		t.Errorf("Expected success=true, got %v", response)
	}
}

// AssertError проверяет ошибочный ответ API
func AssertError(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || success {
		t.Errorf("Expected success=false, got %v", response)
	}
}
