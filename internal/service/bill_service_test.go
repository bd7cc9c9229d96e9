package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wattbill/internal/domain"
	"wattbill/internal/service"
	"wattbill/mocks"
)

func upTo(v float64) *float64 { return &v }

func ptr(v float64) *float64 { return &v }

func cebTariff() *domain.Tariff {
	return &domain.Tariff{
		Name: "domestic",
		TariffLow: domain.SlabList{
			{UpTo: upTo(30), Rate: 4.50, FixedCharge: 80.00},
			{UpTo: upTo(60), Rate: 8.00, FixedCharge: 210.00},
		},
		TariffHigh: domain.SlabList{
			{UpTo: upTo(60), Rate: 12.75, FixedCharge: 0},
			{UpTo: upTo(90), Rate: 18.50, FixedCharge: 400.00},
			{UpTo: upTo(120), Rate: 24.00, FixedCharge: 1000.00},
			{UpTo: upTo(180), Rate: 41.00, FixedCharge: 1500.00},
			{UpTo: nil, Rate: 61.00, FixedCharge: 2100.00},
		},
		SSCLRate: 0.025,
	}
}

func newBillService() (service.BillService, *mocks.MockBillRepo, *mocks.MockUsageService, *mocks.MockTariffService) {
	billRepo := new(mocks.MockBillRepo)
	usageSvc := new(mocks.MockUsageService)
	tariffSvc := new(mocks.MockTariffService)
	return service.NewBillService(billRepo, usageSvc, tariffSvc), billRepo, usageSvc, tariffSvc
}

func TestGenerateBill_FromRecordedUsage(t *testing.T) {
	svc, billRepo, usageSvc, tariffSvc := newBillService()
	householdID := uuid.New()

	usageSvc.On("GetMonthlyTotalUnits", mock.Anything, householdID, 2, 2025).
		Return(&domain.MonthlySummary{TotalUnits: 45, Entries: 3}, nil)
	tariffSvc.On("GetTariff", mock.Anything).Return(cebTariff(), nil)
	billRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Bill")).Return(nil)

	bill, err := svc.GenerateBill(context.Background(), householdID, 2, 2025)

	require.NoError(t, err)
	assert.Equal(t, householdID, bill.HouseholdID)
	assert.Equal(t, 45.0, bill.TotalUnits)
	assert.Equal(t, 255.0, bill.EnergyCharge)
	assert.Equal(t, 210.0, bill.FixedCharge)
	assert.Equal(t, 465.0, bill.SubTotal)
	assert.Equal(t, 11.63, bill.SSCL)
	assert.Equal(t, 476.63, bill.TotalCost)
	assert.Equal(t, domain.BillUnpaid, bill.Status)
	assert.Nil(t, bill.PaidAt)
	assert.Nil(t, bill.PreviousReading)
	assert.Nil(t, bill.CurrentReading)
	assert.Equal(t, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), bill.DueDate)
	billRepo.AssertExpectations(t)
}

func TestGenerateBill_DueDateWrapsYearEnd(t *testing.T) {
	svc, billRepo, usageSvc, tariffSvc := newBillService()
	householdID := uuid.New()

	usageSvc.On("GetMonthlyTotalUnits", mock.Anything, householdID, 12, 2025).
		Return(&domain.MonthlySummary{TotalUnits: 10, Entries: 1}, nil)
	tariffSvc.On("GetTariff", mock.Anything).Return(cebTariff(), nil)
	billRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	bill, err := svc.GenerateBill(context.Background(), householdID, 12, 2025)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), bill.DueDate)
}

func TestGenerateBill_EmptyMonthProducesZeroBill(t *testing.T) {
	svc, billRepo, usageSvc, tariffSvc := newBillService()
	householdID := uuid.New()

	usageSvc.On("GetMonthlyTotalUnits", mock.Anything, householdID, 6, 2025).
		Return(&domain.MonthlySummary{}, nil)
	tariffSvc.On("GetTariff", mock.Anything).Return(cebTariff(), nil)
	billRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	bill, err := svc.GenerateBill(context.Background(), householdID, 6, 2025)

	require.NoError(t, err)
	assert.Equal(t, 0.0, bill.TotalUnits)
	assert.Equal(t, 0.0, bill.TotalCost)
	assert.Empty(t, bill.Breakdown)
}

func TestGenerateBill_ResetsPaymentState(t *testing.T) {
	svc, billRepo, usageSvc, tariffSvc := newBillService()
	householdID := uuid.New()

	usageSvc.On("GetMonthlyTotalUnits", mock.Anything, householdID, 2, 2025).
		Return(&domain.MonthlySummary{TotalUnits: 45, Entries: 3}, nil)
	tariffSvc.On("GetTariff", mock.Anything).Return(cebTariff(), nil)

	var upserted *domain.Bill
	billRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		upserted = args.Get(1).(*domain.Bill)
	}).Return(nil)

	_, err := svc.GenerateBill(context.Background(), householdID, 2, 2025)

	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, domain.BillUnpaid, upserted.Status)
	assert.Nil(t, upserted.PaidAt)
}

func TestCreateUserBill_DirectUnits(t *testing.T) {
	svc, billRepo, _, tariffSvc := newBillService()
	householdID := uuid.New()

	tariffSvc.On("GetTariff", mock.Anything).Return(cebTariff(), nil)
	billRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	bill, err := svc.CreateUserBill(context.Background(), service.CreateBillInput{
		HouseholdID: householdID,
		Month:       3,
		Year:        2025,
		TotalUnits:  ptr(45),
	})

	require.NoError(t, err)
	assert.Equal(t, 45.0, bill.TotalUnits)
	assert.Equal(t, 476.63, bill.TotalCost)
}

func TestCreateUserBill_FromReadings(t *testing.T) {
	svc, billRepo, _, tariffSvc := newBillService()
	householdID := uuid.New()

	tariffSvc.On("GetTariff", mock.Anything).Return(cebTariff(), nil)
	billRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	bill, err := svc.CreateUserBill(context.Background(), service.CreateBillInput{
		HouseholdID:     householdID,
		Month:           3,
		Year:            2025,
		PreviousReading: ptr(100),
		CurrentReading:  ptr(150),
	})

	require.NoError(t, err)
	assert.Equal(t, 50.0, bill.TotalUnits)
	assert.Equal(t, 517.63, bill.TotalCost)
	require.NotNil(t, bill.PreviousReading)
	require.NotNil(t, bill.CurrentReading)
	assert.Equal(t, 100.0, *bill.PreviousReading)
	assert.Equal(t, 150.0, *bill.CurrentReading)
}

func TestCreateUserBill_ReadingsOutOfOrder(t *testing.T) {
	svc, billRepo, _, tariffSvc := newBillService()

	_, err := svc.CreateUserBill(context.Background(), service.CreateBillInput{
		HouseholdID:     uuid.New(),
		Month:           3,
		Year:            2025,
		PreviousReading: ptr(120),
		CurrentReading:  ptr(100),
	})

	assert.ErrorIs(t, err, domain.ErrReadingsOutOfOrder)
	tariffSvc.AssertNotCalled(t, "GetTariff", mock.Anything)
	billRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCreateUserBill_MissingUnitSource(t *testing.T) {
	svc, _, _, _ := newBillService()

	// A single reading is not enough to derive units.
	_, err := svc.CreateUserBill(context.Background(), service.CreateBillInput{
		HouseholdID:    uuid.New(),
		Month:          3,
		Year:           2025,
		CurrentReading: ptr(150),
	})

	assert.ErrorIs(t, err, domain.ErrBillInputMissing)
}

func TestCompareBills_Increased(t *testing.T) {
	svc, billRepo, _, _ := newBillService()
	householdID := uuid.New()

	billRepo.On("GetByPeriod", mock.Anything, householdID, 3, 2025).
		Return(&domain.Bill{Month: 3, Year: 2025, TotalUnits: 180, TotalCost: 5000}, nil)
	billRepo.On("GetByPeriod", mock.Anything, householdID, 2, 2025).
		Return(&domain.Bill{Month: 2, Year: 2025, TotalUnits: 150, TotalCost: 4000}, nil)

	cmp, err := svc.CompareBills(context.Background(), householdID, 3, 2025)

	require.NoError(t, err)
	require.NotNil(t, cmp.Current)
	require.NotNil(t, cmp.Previous)
	require.NotNil(t, cmp.Difference)
	assert.Equal(t, 30.0, cmp.Difference.Units)
	assert.Equal(t, 1000.0, cmp.Difference.Cost)
	require.NotNil(t, cmp.Difference.UnitsChangePercent)
	assert.Equal(t, 20.0, *cmp.Difference.UnitsChangePercent)
	require.NotNil(t, cmp.Difference.CostChangePercent)
	assert.Equal(t, 25.0, *cmp.Difference.CostChangePercent)
	assert.Equal(t, domain.TrendIncreased, cmp.Difference.Trend)
}

func TestCompareBills_Decreased(t *testing.T) {
	svc, billRepo, _, _ := newBillService()
	householdID := uuid.New()

	billRepo.On("GetByPeriod", mock.Anything, householdID, 3, 2025).
		Return(&domain.Bill{Month: 3, Year: 2025, TotalUnits: 150, TotalCost: 3000}, nil)
	billRepo.On("GetByPeriod", mock.Anything, householdID, 2, 2025).
		Return(&domain.Bill{Month: 2, Year: 2025, TotalUnits: 180, TotalCost: 4500}, nil)

	cmp, err := svc.CompareBills(context.Background(), householdID, 3, 2025)

	require.NoError(t, err)
	require.NotNil(t, cmp.Difference)
	assert.Equal(t, -30.0, cmp.Difference.Units)
	assert.Equal(t, -1500.0, cmp.Difference.Cost)
	assert.Equal(t, -16.7, *cmp.Difference.UnitsChangePercent)
	assert.Equal(t, -33.3, *cmp.Difference.CostChangePercent)
	assert.Equal(t, domain.TrendDecreased, cmp.Difference.Trend)
}

func TestCompareBills_NoCurrentBill(t *testing.T) {
	svc, billRepo, _, _ := newBillService()
	householdID := uuid.New()

	billRepo.On("GetByPeriod", mock.Anything, householdID, 3, 2025).
		Return(nil, domain.ErrBillNotFound)
	billRepo.On("GetByPeriod", mock.Anything, householdID, 2, 2025).
		Return(&domain.Bill{Month: 2, Year: 2025, TotalUnits: 150, TotalCost: 4000}, nil)

	cmp, err := svc.CompareBills(context.Background(), householdID, 3, 2025)

	require.NoError(t, err)
	assert.Nil(t, cmp.Current)
	assert.Nil(t, cmp.Previous)
	assert.Nil(t, cmp.Difference)
}

func TestCompareBills_NoPreviousBill(t *testing.T) {
	svc, billRepo, _, _ := newBillService()
	householdID := uuid.New()

	billRepo.On("GetByPeriod", mock.Anything, householdID, 3, 2025).
		Return(&domain.Bill{Month: 3, Year: 2025, TotalUnits: 180, TotalCost: 5000}, nil)
	billRepo.On("GetByPeriod", mock.Anything, householdID, 2, 2025).
		Return(nil, domain.ErrBillNotFound)

	cmp, err := svc.CompareBills(context.Background(), householdID, 3, 2025)

	require.NoError(t, err)
	require.NotNil(t, cmp.Current)
	assert.Nil(t, cmp.Previous)
	assert.Nil(t, cmp.Difference)
}

func TestCompareBills_JanuaryWrapsToPriorDecember(t *testing.T) {
	svc, billRepo, _, _ := newBillService()
	householdID := uuid.New()

	billRepo.On("GetByPeriod", mock.Anything, householdID, 1, 2026).
		Return(&domain.Bill{Month: 1, Year: 2026, TotalUnits: 100, TotalCost: 2624}, nil)
	billRepo.On("GetByPeriod", mock.Anything, householdID, 12, 2025).
		Return(&domain.Bill{Month: 12, Year: 2025, TotalUnits: 100, TotalCost: 2624}, nil)

	cmp, err := svc.CompareBills(context.Background(), householdID, 1, 2026)

	require.NoError(t, err)
	require.NotNil(t, cmp.Previous)
	assert.Equal(t, 12, cmp.Previous.Month)
	assert.Equal(t, 2025, cmp.Previous.Year)
	assert.Equal(t, domain.TrendUnchanged, cmp.Difference.Trend)
	billRepo.AssertExpectations(t)
}

func TestCompareBills_ZeroBaselineSkipsPercentages(t *testing.T) {
	svc, billRepo, _, _ := newBillService()
	householdID := uuid.New()

	billRepo.On("GetByPeriod", mock.Anything, householdID, 3, 2025).
		Return(&domain.Bill{Month: 3, Year: 2025, TotalUnits: 100, TotalCost: 2624}, nil)
	billRepo.On("GetByPeriod", mock.Anything, householdID, 2, 2025).
		Return(&domain.Bill{Month: 2, Year: 2025, TotalUnits: 0, TotalCost: 0}, nil)

	cmp, err := svc.CompareBills(context.Background(), householdID, 3, 2025)

	require.NoError(t, err)
	require.NotNil(t, cmp.Difference)
	assert.Nil(t, cmp.Difference.UnitsChangePercent)
	assert.Nil(t, cmp.Difference.CostChangePercent)
	assert.Equal(t, domain.TrendIncreased, cmp.Difference.Trend)
}

func TestRegenerate_RecomputesFromLatestUsage(t *testing.T) {
	svc, billRepo, usageSvc, tariffSvc := newBillService()
	householdID := uuid.New()
	billID := uuid.New()

	billRepo.On("GetByID", mock.Anything, billID).
		Return(&domain.Bill{ID: billID, HouseholdID: householdID, Month: 4, Year: 2025}, nil)
	usageSvc.On("GetMonthlyTotalUnits", mock.Anything, householdID, 4, 2025).
		Return(&domain.MonthlySummary{TotalUnits: 100, Entries: 10}, nil)
	tariffSvc.On("GetTariff", mock.Anything).Return(cebTariff(), nil)
	billRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	bill, err := svc.Regenerate(context.Background(), billID)

	require.NoError(t, err)
	assert.Equal(t, 100.0, bill.TotalUnits)
	assert.Equal(t, 2624.0, bill.TotalCost)
	assert.Equal(t, domain.BillUnpaid, bill.Status)
}

func TestUpdateStatus_PaidStampsPaidAt(t *testing.T) {
	svc, billRepo, _, _ := newBillService()
	billID := uuid.New()

	billRepo.On("UpdateStatus", mock.Anything, billID, domain.BillPaid,
		mock.MatchedBy(func(paidAt *time.Time) bool { return paidAt != nil })).Return(nil)
	billRepo.On("GetByID", mock.Anything, billID).
		Return(&domain.Bill{ID: billID, Status: domain.BillPaid}, nil)

	bill, err := svc.UpdateStatus(context.Background(), billID, domain.BillPaid)

	require.NoError(t, err)
	assert.Equal(t, domain.BillPaid, bill.Status)
	billRepo.AssertExpectations(t)
}

func TestUpdateStatus_UnpaidClearsPaidAt(t *testing.T) {
	svc, billRepo, _, _ := newBillService()
	billID := uuid.New()

	billRepo.On("UpdateStatus", mock.Anything, billID, domain.BillUnpaid, (*time.Time)(nil)).Return(nil)
	billRepo.On("GetByID", mock.Anything, billID).
		Return(&domain.Bill{ID: billID, Status: domain.BillUnpaid}, nil)

	_, err := svc.UpdateStatus(context.Background(), billID, domain.BillUnpaid)

	require.NoError(t, err)
	billRepo.AssertExpectations(t)
}
