// Package organization defines the company structure the workforce builder
// samples from: departments with their size weights, the positions each
// department staffs, clearance distributions, and seniority ranges.
package organization

import (
	"strings"

	"github.com/threatforge/insider-synth/internal/domain/employee"
)

// Department couples a department's name with its behavioral group, its
// share of the workforce, and the positions it staffs.
type Department struct {
	Name      string
	Group     employee.Group
	Weight    float64
	Positions []string
}

// Departments lists the company's departments. Order is fixed so weighted
// sampling stays reproducible for a given seed.
var Departments = []Department{
	{
		Name:   "R&D Department",
		Group:  employee.GroupEngineering,
		Weight: 0.25,
		Positions: []string{
			"Head of R&D",
			"Systems Engineer",
			"Development Engineer (Hardware / Software / Mechanical)",
			"Algorithm Engineer",
			"Integration and Testing Engineer",
			"Secretary",
		},
	},
	{
		Name:   "Engineering Department",
		Group:  employee.GroupEngineering,
		Weight: 0.20,
		Positions: []string{
			"Process Engineer",
			"Design Engineer",
			"Head of Engineering",
			"Systems Engineer",
			"Test Engineer",
			"Secretary",
		},
	},
	{
		Name:   "Operations and Manufacturing",
		Group:  employee.GroupOffice,
		Weight: 0.15,
		Positions: []string{
			"Operations Manager",
			"Manufacturing Engineer",
			"Logistics Manager",
			"Procurement Officer",
			"Warehouse Manager",
			"Secretary",
		},
	},
	{
		Name:   "Information Technology",
		Group:  employee.GroupIT,
		Weight: 0.12,
		Positions: []string{
			"IT Director",
			"Information Security Specialist",
			"Systems and Network Administrator",
			"BI Developer / Data Analyst",
			"Enterprise Systems Developer (ERP / CRM / SAP)",
			"Data Scientist",
			"Secretary",
		},
	},
	{
		Name:   "Marketing and Business Development",
		Group:  employee.GroupMarketing,
		Weight: 0.08,
		Positions: []string{
			"Business Development Manager",
			"Account Manager",
			"Bid Coordinator",
			"Marketing Manager",
			"Secretary",
		},
	},
	{
		Name:   "Project Management",
		Group:  employee.GroupOffice,
		Weight: 0.08,
		Positions: []string{
			"Project Manager",
			"Project Engineer",
			"Project Coordinator",
			"Secretary",
		},
	},
	{
		Name:   "Finance",
		Group:  employee.GroupOffice,
		Weight: 0.04,
		Positions: []string{
			"Accountant",
			"Financial Analyst",
			"Budget Manager",
			"Finance Manager",
			"Secretary",
		},
	},
	{
		Name:   "Human Resources",
		Group:  employee.GroupOffice,
		Weight: 0.03,
		Positions: []string{
			"HR Manager",
			"Recruitment Coordinator",
			"Employee Welfare Coordinator",
			"Training Coordinator",
			"Secretary",
		},
	},
	{
		Name:   "Security and Information Security",
		Group:  employee.GroupSecurity,
		Weight: 0.03,
		Positions: []string{
			"Physical Access Control",
			"Information Security Investigator",
			"Cyber Analyst",
			"Chief Information Security Officer (CISO)",
			"Security Officer",
		},
	},
	{
		Name:   "Legal and Regulation",
		Group:  employee.GroupOffice,
		Weight: 0.015,
		Positions: []string{
			"Regulatory Affairs Officer",
			"Defense Export Compliance Officer",
			"Legal Advisor",
		},
	},
	{
		Name:   "Executive Management",
		Group:  employee.GroupExecutive,
		Weight: 0.005,
		Positions: []string{
			"Chief Executive Officer (CEO)",
			"Chief Legal Officer",
			"Chief Human Resources Officer (CHRO)",
			"Chief Information Officer (CIO)",
			"Chief Technology Officer (CTO)",
			"Chief Operating Officer (COO)",
			"Chief Financial Officer (CFO)",
			"Chief Marketing and Business Development Officer",
			"Secretary",
		},
	},
}

// DepartmentWeights returns the size weights index-aligned with Departments.
func DepartmentWeights() []float64 {
	weights := make([]float64, len(Departments))
	for i, d := range Departments {
		weights[i] = d.Weight
	}
	return weights
}

// ClassificationLevels is a clearance-level distribution.
type ClassificationLevels struct {
	Levels  []int
	Weights []float64
}

var classificationByDepartment = map[string]ClassificationLevels{
	"Executive Management":              {Levels: []int{3, 4}, Weights: []float64{0.3, 0.7}},
	"Security and Information Security": {Levels: []int{2, 3, 4}, Weights: []float64{0.2, 0.5, 0.3}},
	"Legal and Regulation":              {Levels: []int{2, 3, 4}, Weights: []float64{0.2, 0.5, 0.3}},
	"R&D Department":                    {Levels: []int{2, 3}, Weights: []float64{0.6, 0.4}},
	"Engineering Department":            {Levels: []int{2, 3}, Weights: []float64{0.6, 0.4}},
}

var defaultClassification = ClassificationLevels{
	Levels:  []int{1, 2, 3},
	Weights: []float64{0.5, 0.4, 0.1},
}

// ClassificationFor returns the clearance distribution of a department,
// falling back to the default distribution for departments without a
// dedicated one.
func ClassificationFor(department string) ClassificationLevels {
	if dist, ok := classificationByDepartment[department]; ok {
		return dist
	}
	return defaultClassification
}

// SeniorityRange returns the inclusive years-of-service range for a
// position, keyed off its title.
func SeniorityRange(position string) (min, max int) {
	switch {
	case strings.Contains(position, "Chief"),
		strings.Contains(position, "Head of"),
		strings.Contains(position, "Director"):
		return 8, 31
	case strings.Contains(position, "Manager"):
		return 5, 21
	case strings.Contains(position, "Secretary"):
		return 1, 16
	default:
		return 0, 26
	}
}

// Prevalence of the binary background attributes across the workforce.
const (
	ContractorProbability         = 0.15
	ForeignCitizenshipProbability = 0.15
	CriminalRecordProbability     = 0.05
	MedicalHistoryProbability     = 0.15
)
