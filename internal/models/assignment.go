package models

import "time"

// Assignment grants a faculty member responsibility for a sub-criteria.
// At most one assignment may exist per (faculty, sub-criteria) pair;
// assignments are created and deleted, never updated.
type Assignment struct {
	ID            string    `db:"id" json:"id"`
	FacultyID     string    `db:"faculty_id" json:"facultyId"`
	FacultyName   string    `db:"faculty_name" json:"facultyName"`
	CriteriaID    string    `db:"criteria_id" json:"criteriaId"`
	SubCriteriaID string    `db:"sub_criteria_id" json:"subCriteriaId"`
	AssignedBy    string    `db:"assigned_by" json:"assignedBy"`
	AssignedDate  time.Time `db:"assigned_date" json:"assignedDate"`
}
