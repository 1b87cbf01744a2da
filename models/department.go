package models

// Category groups departments for the booking menu.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Department is one bookable clinic department.
type Department struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	CategoryID string `json:"category_id"`
}

// Categories is the fixed clinic menu structure.
var Categories = []Category{
	{ID: "internal", Label: "Internal Medicine"},
	{ID: "surgical", Label: "Surgical"},
	{ID: "pediatric_women", Label: "Pediatrics & Women's Health"},
	{ID: "examination", Label: "Diagnostics"},
	{ID: "rehabilitation", Label: "Rehabilitation"},
}

// Departments is the master list of bookable departments.
var Departments = []Department{
	{ID: "cardiology", Label: "Cardiology", CategoryID: "internal"},
	{ID: "gastroenterology", Label: "Gastroenterology", CategoryID: "internal"},
	{ID: "respiratory", Label: "Respiratory Medicine", CategoryID: "internal"},
	{ID: "nephrology", Label: "Nephrology", CategoryID: "internal"},
	{ID: "neurology", Label: "Neurology", CategoryID: "internal"},
	{ID: "orthopedics", Label: "Orthopedics", CategoryID: "surgical"},
	{ID: "ophthalmology", Label: "Ophthalmology", CategoryID: "surgical"},
	{ID: "otolaryngology", Label: "Otolaryngology", CategoryID: "surgical"},
	{ID: "dermatology", Label: "Dermatology", CategoryID: "surgical"},
	{ID: "urology", Label: "Urology", CategoryID: "surgical"},
	{ID: "pediatrics", Label: "Pediatrics", CategoryID: "pediatric_women"},
	{ID: "obstetrics", Label: "Obstetrics & Gynecology", CategoryID: "pediatric_women"},
	{ID: "radiology", Label: "Radiology & Imaging", CategoryID: "examination"},
	{ID: "lab", Label: "Clinical Laboratory", CategoryID: "examination"},
	{ID: "rehab", Label: "Rehabilitation", CategoryID: "rehabilitation"},
}

var departmentIndex = func() map[string]Department {
	idx := make(map[string]Department, len(Departments))
	for _, d := range Departments {
		idx[d.ID] = d
	}
	return idx
}()

// DepartmentByID looks up a department in the master list.
func DepartmentByID(id string) (Department, bool) {
	d, ok := departmentIndex[id]
	return d, ok
}
