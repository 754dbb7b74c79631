package models

import "time"

// ReviewStatus is the IQAC review state of a document.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending"
	ReviewApproved ReviewStatus = "Approved"
	ReviewRejected ReviewStatus = "Rejected"
)

// UploadStatusUploaded is the only upload state once a file is stored.
const UploadStatusUploaded = "Uploaded"

// Document is a compliance artifact filed against the NAAC taxonomy.
// JSON field names are camelCase to match the frontend contract.
type Document struct {
	ID           string       `db:"id" json:"id"`
	Date         time.Time    `db:"date" json:"date"`
	Criteria     string       `db:"criteria" json:"criteria"`
	SubCriteria  string       `db:"sub_criteria" json:"subCriteria"`
	FacultyID    string       `db:"faculty_id" json:"facultyId"`
	FacultyName  string       `db:"faculty_name" json:"facultyName"`
	AcademicYear string       `db:"academic_year" json:"academicYear"`
	DocumentURL  string       `db:"document_url" json:"documentUrl"`
	FilePath     string       `db:"file_path" json:"-"`
	FileName     string       `db:"file_name" json:"fileName"`
	FileSize     int64        `db:"file_size" json:"fileSize"`
	MimeType     string       `db:"mime_type" json:"mimeType"`
	UploadStatus string       `db:"upload_status" json:"uploadStatus"`
	ReviewStatus ReviewStatus `db:"iqac_status" json:"iqacStatus"`
	Remarks      string       `db:"remarks" json:"remarks"`
	ApprovedBy   *string      `db:"approved_by" json:"approvedBy"`
	ApprovedDate *time.Time   `db:"approved_date" json:"approvedDate"`
}

// DocumentFilter captures the query parameters of the document listing.
type DocumentFilter struct {
	FacultyID string
	Criteria  string
	Year      string
	Status    ReviewStatus
}
