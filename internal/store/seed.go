package store

import "salarypay-service/internal/model"

// Seed identifiers used as defaults when synthesizing demo users.
const (
	DefaultEmployerID = "emp1"
	DefaultBusinessID = "biz1"
)

// seedData returns the demo dataset every process starts from.
func seedData() *collections {
	return &collections{
		users: []model.User{
			{ID: "u1", Name: "John Doe", Email: "john@techcorp.com", Role: model.RoleConsumer, EmployerID: "emp1", EmployeeID: "u1"},
			{ID: "u2", Name: "Jane Smith", Email: "jane@globallogistics.com", Role: model.RoleConsumer, EmployerID: "emp2", EmployeeID: "u2"},
			{ID: "u3", Name: "Sarah HR", Email: "hr@techcorp.com", Role: model.RoleEmployer, EmployerID: "emp1"},
			{ID: "u4", Name: "Mike Biz", Email: "owner@fitlifegym.com", Role: model.RoleBusiness, BusinessID: "biz1"},
			{ID: "u5", Name: "Admin User", Email: "admin@salarypay.com", Role: model.RoleAdmin},
		},
		employers: []model.Employer{
			{ID: "emp1", Name: "TechCorp Solutions", MaxDeductionPercent: 30, EmployeeCount: 150},
			{ID: "emp2", Name: "Global Logistics", MaxDeductionPercent: 20, EmployeeCount: 400},
		},
		businesses: []model.Business{
			{ID: "biz1", Name: "FitLife Gym", Category: "Health & Fitness", Status: model.BusinessActive, Revenue: 15000},
			{ID: "biz2", Name: "City Electronics", Category: "Retail", Status: model.BusinessActive, Revenue: 42000},
			{ID: "biz3", Name: "Fresh Market", Category: "Groceries", Status: model.BusinessSuspended, Revenue: 0},
		},
		employees: []model.Employee{
			{ID: "u1", EmployerID: "emp1", Name: "John Doe", Email: "john@techcorp.com", Salary: 5000, Status: model.EmployeeEnabled, JoinedDate: "2023-01-15"},
			{ID: "u2", EmployerID: "emp2", Name: "Jane Smith", Email: "jane@globallogistics.com", Salary: 4500, Status: model.EmployeeEnabled, JoinedDate: "2023-03-10"},
			{ID: "e3", EmployerID: "emp1", Name: "Bob Wilson", Email: "bob@techcorp.com", Salary: 6000, Status: model.EmployeeDisabled, JoinedDate: "2022-11-01"},
		},
		commitments: []model.Commitment{
			{
				ID:                "c1",
				ConsumerID:        "u1",
				BusinessID:        "biz1",
				BusinessName:      "FitLife Gym",
				Amount:            50,
				StartDate:         "2023-06-01",
				NextDeductionDate: "2023-11-01",
				Status:            model.CommitmentActive,
				History: []model.PaymentRecord{
					{ID: "p2", Date: "2023-09-01", Amount: 50, Status: model.PaymentPaid},
					{ID: "p1", Date: "2023-10-01", Amount: 50, Status: model.PaymentPaid},
				},
			},
			{
				ID:                "c2",
				ConsumerID:        "u1",
				BusinessID:        "biz2",
				BusinessName:      "City Electronics",
				Amount:            200,
				StartDate:         "2023-08-15",
				NextDeductionDate: "2023-11-15",
				Status:            model.CommitmentActive,
				History: []model.PaymentRecord{
					{ID: "p3", Date: "2023-10-15", Amount: 200, Status: model.PaymentPaid},
				},
			},
		},
		settlements: []model.Settlement{
			{ID: "s1", BusinessID: "biz1", Date: "2023-10-07", Amount: 1250, Status: model.SettlementPaid, ItemsCount: 25},
			{ID: "s2", BusinessID: "biz1", Date: "2023-10-14", Amount: 1400, Status: model.SettlementPending, ItemsCount: 28},
		},
	}
}
