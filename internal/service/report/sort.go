package report

import (
	"sort"

	"github.com/clinicware/admin-api/internal/model"
)

func sortedTrends(monthly map[string]*model.MonthlyTrend) []model.MonthlyTrend {
	trends := make([]model.MonthlyTrend, 0, len(monthly))
	for _, t := range monthly {
		trends = append(trends, *t)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Date < trends[j].Date })
	return trends
}

func sortProcedures(procedures []model.ProcedureTotal) {
	sort.Slice(procedures, func(i, j int) bool {
		if procedures[i].Revenue != procedures[j].Revenue {
			return procedures[i].Revenue > procedures[j].Revenue
		}
		return procedures[i].Type < procedures[j].Type
	})
}

func sortMedicines(medicines []model.MedicineTotal) {
	sort.Slice(medicines, func(i, j int) bool {
		if medicines[i].Revenue != medicines[j].Revenue {
			return medicines[i].Revenue > medicines[j].Revenue
		}
		return medicines[i].MedicineName < medicines[j].MedicineName
	})
}
