package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/clinicware/admin-api/internal/model"
	"github.com/clinicware/admin-api/internal/repository"
	apperrors "github.com/clinicware/admin-api/pkg/errors"
)

const (
	civilDateLayout   = "2006-01-02"
	monthLayout       = "2006-01"
	lowStockThreshold = 10
	dashboardLimit    = 5
)

// Service aggregates operational and financial reports. Everything is
// computed from the underlying tables on demand; the HTTP layer caches
// responses briefly.
type Service struct {
	patientRepo  repository.PatientRepository
	apptRepo     repository.AppointmentRepository
	paymentRepo  repository.PaymentRepository
	saleRepo     repository.PharmacySaleRepository
	medicineRepo repository.MedicineRepository
	now          func() time.Time
}

func NewService(
	patientRepo repository.PatientRepository,
	apptRepo repository.AppointmentRepository,
	paymentRepo repository.PaymentRepository,
	saleRepo repository.PharmacySaleRepository,
	medicineRepo repository.MedicineRepository,
) *Service {
	return &Service{
		patientRepo:  patientRepo,
		apptRepo:     apptRepo,
		paymentRepo:  paymentRepo,
		saleRepo:     saleRepo,
		medicineRepo: medicineRepo,
		now:          time.Now,
	}
}

// timeRange converts a civil date range to a half-open UTC interval
// [start, end+1d).
func timeRange(r *model.ReportRange) (time.Time, time.Time, error) {
	start, err := time.Parse(civilDateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.BadRequest("invalid start date", err)
	}
	end, err := time.Parse(civilDateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.BadRequest("invalid end date", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.BadRequest("end date before start date", nil)
	}
	return start, end.AddDate(0, 0, 1), nil
}

func (s *Service) PatientStatistics(ctx context.Context, r *model.ReportRange) (*model.PatientStatistics, error) {
	start, end, err := timeRange(r)
	if err != nil {
		return nil, err
	}

	total, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}

	newPatients, err := s.patientRepo.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list new patients: %w", err)
	}

	appointments, err := s.apptRepo.ListByDateRange(ctx, r.StartDate, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	stats := &model.PatientStatistics{
		TotalPatients:      total,
		NewPatients:        int64(len(newPatients)),
		GenderDistribution: make(map[string]int64),
	}

	newIDs := make(map[int64]bool, len(newPatients))
	var ageSum float64
	var ageCount int64
	for _, p := range newPatients {
		newIDs[p.ID] = true
		stats.GenderDistribution[p.Gender]++
		if dob, err := time.Parse(civilDateLayout, p.DateOfBirth); err == nil {
			ageSum += s.now().Sub(dob).Hours() / 24 / 365.25
			ageCount++
		}
	}
	if ageCount > 0 {
		stats.AverageAge = math.Round(ageSum/float64(ageCount)*10) / 10
	}

	seen := make(map[int64]bool)
	for _, a := range appointments {
		if seen[a.PatientID] {
			continue
		}
		seen[a.PatientID] = true
		if !newIDs[a.PatientID] {
			stats.ReturningPatients++
		}
	}

	monthly := make(map[string]*model.MonthlyTrend)
	for _, p := range newPatients {
		key := p.CreatedAt.Format(monthLayout)
		if monthly[key] == nil {
			monthly[key] = &model.MonthlyTrend{Date: key}
		}
		monthly[key].Count++
	}
	stats.MonthlyTrends = sortedTrends(monthly)

	return stats, nil
}

func (s *Service) AppointmentStatistics(ctx context.Context, r *model.ReportRange) (*model.AppointmentStatistics, error) {
	if _, _, err := timeRange(r); err != nil {
		return nil, err
	}

	appointments, err := s.apptRepo.ListByDateRange(ctx, r.StartDate, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	stats := &model.AppointmentStatistics{
		TotalAppointments:         int64(len(appointments)),
		TypeDistribution:          make(map[string]int64),
		TreatmentTypeDistribution: make(map[string]int64),
	}

	monthly := make(map[string]*model.MonthlyTrend)
	for _, a := range appointments {
		switch a.Status {
		case model.AppointmentStatusCompleted:
			stats.CompletedAppointments++
		case model.AppointmentStatusCancelled:
			stats.CancelledAppointments++
		}
		stats.TypeDistribution[string(a.Type)]++
		stats.TreatmentTypeDistribution[string(a.TreatmentType)]++

		if date, err := time.Parse(civilDateLayout, a.Date); err == nil {
			key := date.Format(monthLayout)
			if monthly[key] == nil {
				monthly[key] = &model.MonthlyTrend{Date: key}
			}
			monthly[key].Count++
		}
	}
	stats.MonthlyTrends = sortedTrends(monthly)

	return stats, nil
}

func (s *Service) FinancialStatistics(ctx context.Context, r *model.ReportRange) (*model.FinancialStatistics, error) {
	start, end, err := timeRange(r)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	sales, err := s.saleRepo.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	appointments, err := s.apptRepo.ListByDateRange(ctx, r.StartDate, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	apptTypes := make(map[int64]string, len(appointments))
	for _, a := range appointments {
		apptTypes[a.ID] = string(a.Type)
	}

	stats := &model.FinancialStatistics{}
	monthly := make(map[string]*model.MonthlyTrend)
	procedures := make(map[string]float64)
	paidAppointments := make(map[int64]bool)

	for _, p := range payments {
		stats.AppointmentRevenue += p.Amount
		switch p.PaymentType {
		case model.PaymentTypeCash:
			stats.CashAmount += p.Amount
		case model.PaymentTypeOnline:
			stats.OnlineAmount += p.Amount
		}
		paidAppointments[p.AppointmentID] = true
		if t, ok := apptTypes[p.AppointmentID]; ok {
			procedures[t] += p.Amount
		}

		key := p.CreatedAt.Format(monthLayout)
		if monthly[key] == nil {
			monthly[key] = &model.MonthlyTrend{Date: key}
		}
		monthly[key].Count++
		monthly[key].Total += p.Amount
	}

	for _, sale := range sales {
		stats.PharmacyRevenue += sale.Total

		key := sale.CreatedAt.Format(monthLayout)
		if monthly[key] == nil {
			monthly[key] = &model.MonthlyTrend{Date: key}
		}
		monthly[key].Count++
		monthly[key].Total += sale.Total
	}

	stats.AppointmentRevenue = round2(stats.AppointmentRevenue)
	stats.PharmacyRevenue = round2(stats.PharmacyRevenue)
	stats.CashAmount = round2(stats.CashAmount)
	stats.OnlineAmount = round2(stats.OnlineAmount)
	stats.TotalRevenue = round2(stats.AppointmentRevenue + stats.PharmacyRevenue)

	if n := len(paidAppointments); n > 0 {
		stats.AverageAppointmentValue = round2(stats.AppointmentRevenue / float64(n))
	}
	if n := len(sales); n > 0 {
		stats.AveragePharmacySale = round2(stats.PharmacyRevenue / float64(n))
	}

	for t, revenue := range procedures {
		stats.TopProcedures = append(stats.TopProcedures, model.ProcedureTotal{
			Type:    t,
			Revenue: round2(revenue),
		})
	}
	sortProcedures(stats.TopProcedures)
	for _, trend := range monthly {
		trend.Total = round2(trend.Total)
	}
	stats.MonthlyTrends = sortedTrends(monthly)

	return stats, nil
}

func (s *Service) PharmacyStatistics(ctx context.Context, r *model.ReportRange) (*model.PharmacyStatistics, error) {
	start, end, err := timeRange(r)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	lowStock, err := s.medicineRepo.ListLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}

	stats := &model.PharmacyStatistics{
		TotalSales: int64(len(sales)),
	}

	medicines := make(map[string]*model.MedicineTotal)
	for _, sale := range sales {
		stats.TotalRevenue += sale.Total
		for _, item := range sale.Items {
			m := medicines[item.MedicineName]
			if m == nil {
				m = &model.MedicineTotal{MedicineName: item.MedicineName}
				medicines[item.MedicineName] = m
			}
			m.Quantity += int64(item.Quantity)
			m.Revenue += item.TotalPrice
		}
	}

	stats.TotalRevenue = round2(stats.TotalRevenue)
	if stats.TotalSales > 0 {
		stats.AverageSaleValue = round2(stats.TotalRevenue / float64(stats.TotalSales))
	}

	for _, m := range medicines {
		m.Revenue = round2(m.Revenue)
		stats.TopMedicines = append(stats.TopMedicines, *m)
	}
	sortMedicines(stats.TopMedicines)

	for _, m := range lowStock {
		stats.LowStock = append(stats.LowStock, *m)
	}

	return stats, nil
}

func (s *Service) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	today := s.now().Format(civilDateLayout)

	todayCount, err := s.apptRepo.CountByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}
	totalAppts, err := s.apptRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	totalPatients, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	upcoming, err := s.apptRepo.ListUpcoming(ctx, today, dashboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	recent, err := s.patientRepo.ListRecent(ctx, dashboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent patients: %w", err)
	}

	monthStart := s.now().AddDate(0, -1, 0).Format(civilDateLayout)
	recentAppts, err := s.apptRepo.ListByDateRange(ctx, monthStart, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent appointments: %w", err)
	}

	stats := &model.DashboardStats{
		TodayAppointments: todayCount,
		TotalAppointments: totalAppts,
		TotalPatients:     totalPatients,
		Upcoming:          upcoming,
		RecentPatients:    recent,
		ByType:            make(map[string]int64),
		ByStatus:          make(map[string]int64),
	}
	for _, a := range recentAppts {
		stats.ByType[string(a.Type)]++
		stats.ByStatus[string(a.Status)]++
	}

	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
