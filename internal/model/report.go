package model

// ReportRange bounds a report query; dates are civil (YYYY-MM-DD).
type ReportRange struct {
	Period    string `form:"period" json:"period"`
	StartDate string `form:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" json:"end_date" validate:"required,datetime=2006-01-02"`
}

type PatientStatistics struct {
	TotalPatients      int64            `json:"total_patients"`
	NewPatients        int64            `json:"new_patients"`
	ReturningPatients  int64            `json:"returning_patients"`
	AverageAge         float64          `json:"average_age"`
	GenderDistribution map[string]int64 `json:"gender_distribution"`
	MonthlyTrends      []MonthlyTrend   `json:"monthly_trends"`
}

type AppointmentStatistics struct {
	TotalAppointments         int64            `json:"total_appointments"`
	CompletedAppointments     int64            `json:"completed_appointments"`
	CancelledAppointments     int64            `json:"cancelled_appointments"`
	TypeDistribution          map[string]int64 `json:"type_distribution"`
	TreatmentTypeDistribution map[string]int64 `json:"treatment_type_distribution"`
	MonthlyTrends             []MonthlyTrend   `json:"monthly_trends"`
}

type FinancialStatistics struct {
	TotalRevenue            float64          `json:"total_revenue"`
	AppointmentRevenue      float64          `json:"appointment_revenue"`
	PharmacyRevenue         float64          `json:"pharmacy_revenue"`
	CashAmount              float64          `json:"cash_amount"`
	OnlineAmount            float64          `json:"online_amount"`
	AverageAppointmentValue float64          `json:"average_appointment_value"`
	AveragePharmacySale     float64          `json:"average_pharmacy_sale"`
	TopProcedures           []ProcedureTotal `json:"top_procedures"`
	MonthlyTrends           []MonthlyTrend   `json:"monthly_trends"`
}

type PharmacyStatistics struct {
	TotalSales       int64           `json:"total_sales"`
	TotalRevenue     float64         `json:"total_revenue"`
	AverageSaleValue float64         `json:"average_sale_value"`
	TopMedicines     []MedicineTotal `json:"top_medicines"`
	LowStock         []Medicine      `json:"low_stock"`
}

type MonthlyTrend struct {
	Date  string  `json:"date"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

type ProcedureTotal struct {
	Type    string  `json:"type"`
	Revenue float64 `json:"revenue"`
}

type MedicineTotal struct {
	MedicineName string  `json:"medicine_name"`
	Quantity     int64   `json:"quantity"`
	Revenue      float64 `json:"revenue"`
}

type DashboardStats struct {
	TodayAppointments int64            `json:"today_appointments"`
	TotalAppointments int64            `json:"total_appointments"`
	TotalPatients     int64            `json:"total_patients"`
	Upcoming          []*Appointment   `json:"upcoming_appointments"`
	RecentPatients    []*Patient       `json:"recent_patients"`
	ByType            map[string]int64 `json:"appointments_by_type"`
	ByStatus          map[string]int64 `json:"appointments_by_status"`
}
