package models

// SubCriteria is one entry of the NAAC taxonomy.
type SubCriteria struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Criteria groups sub-criteria under one of the seven NAAC criteria.
type Criteria struct {
	ID          string        `json:"id"`
	Number      int           `json:"number"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	SubCriteria []SubCriteria `json:"subCriteria"`
}

// AcademicYears lists the selectable academic years.
var AcademicYears = []string{"2020-21", "2021-22", "2022-23", "2023-24", "2024-25", "2025-26"}

// NAACCriteria is the fixed accreditation taxonomy. It is static reference
// data: documents and assignments are filed against it but never mutate it.
var NAACCriteria = []Criteria{
	{
		ID:          "c1",
		Number:      1,
		Title:       "Curricular Aspects",
		Description: "Curriculum Design and Development",
		SubCriteria: []SubCriteria{
			{ID: "c1.1.1", Code: "1.1.1", Title: "Curricular Planning", Description: "Curriculum is developed and reviewed by involving stakeholders"},
			{ID: "c1.1.2", Code: "1.1.2", Title: "Academic Flexibility", Description: "Choice based credit system and range of courses"},
			{ID: "c1.2.1", Code: "1.2.1", Title: "New Courses", Description: "New courses introduced during the last five years"},
			{ID: "c1.2.2", Code: "1.2.2", Title: "Programs with CBCS", Description: "Programmes with Choice Based Credit System"},
			{ID: "c1.3.1", Code: "1.3.1", Title: "Cross-cutting Issues", Description: "Integration of cross-cutting issues in curriculum"},
			{ID: "c1.3.2", Code: "1.3.2", Title: "Value Added Courses", Description: "Number of value-added courses offered"},
			{ID: "c1.4.1", Code: "1.4.1", Title: "Feedback System", Description: "Structured feedback from stakeholders"},
			{ID: "c1.4.2", Code: "1.4.2", Title: "Feedback Analysis", Description: "Analysis and action taken on feedback"},
		},
	},
	{
		ID:          "c2",
		Number:      2,
		Title:       "Teaching-Learning and Evaluation",
		Description: "Student Enrollment and Learning Process",
		SubCriteria: []SubCriteria{
			{ID: "c2.1.1", Code: "2.1.1", Title: "Student Enrollment", Description: "Enrollment percentage and demand ratio"},
			{ID: "c2.1.2", Code: "2.1.2", Title: "Reserved Categories", Description: "Seats filled against reserved categories"},
			{ID: "c2.2.1", Code: "2.2.1", Title: "Student-Teacher Ratio", Description: "Student-teacher ratio for the institution"},
			{ID: "c2.3.1", Code: "2.3.1", Title: "Student-centric Methods", Description: "ICT enabled tools and student-centric methods"},
			{ID: "c2.3.2", Code: "2.3.2", Title: "Mentoring", Description: "Number of mentors and mentees"},
			{ID: "c2.4.1", Code: "2.4.1", Title: "Full-time Teachers", Description: "Percentage of full-time teachers"},
			{ID: "c2.4.2", Code: "2.4.2", Title: "Faculty Qualifications", Description: "Teachers with Ph.D and NET/SET"},
			{ID: "c2.5.1", Code: "2.5.1", Title: "Evaluation Reforms", Description: "Reforms in examination and evaluation"},
			{ID: "c2.6.1", Code: "2.6.1", Title: "Learning Outcomes", Description: "Program outcomes and course outcomes"},
			{ID: "c2.6.2", Code: "2.6.2", Title: "Attainment of Outcomes", Description: "Attainment of POs and COs"},
		},
	},
	{
		ID:          "c3",
		Number:      3,
		Title:       "Research, Innovations and Extension",
		Description: "Promotion of Research and Extension Activities",
		SubCriteria: []SubCriteria{
			{ID: "c3.1.1", Code: "3.1.1", Title: "Research Grants", Description: "Grants received for research projects"},
			{ID: "c3.1.2", Code: "3.1.2", Title: "Research Facilities", Description: "Research facilities and seed money"},
			{ID: "c3.2.1", Code: "3.2.1", Title: "Ecosystem for Innovation", Description: "Innovation ecosystem in institution"},
			{ID: "c3.2.2", Code: "3.2.2", Title: "Workshops & Seminars", Description: "Workshops and seminars conducted"},
			{ID: "c3.3.1", Code: "3.3.1", Title: "Research Papers", Description: "Papers published in journals"},
			{ID: "c3.3.2", Code: "3.3.2", Title: "Books & Chapters", Description: "Books and chapters published"},
			{ID: "c3.4.1", Code: "3.4.1", Title: "Extension Activities", Description: "Extension and outreach activities"},
			{ID: "c3.4.2", Code: "3.4.2", Title: "Awards for Extension", Description: "Awards received for extension"},
			{ID: "c3.5.1", Code: "3.5.1", Title: "Collaborations", Description: "MoUs and collaborations"},
		},
	},
	{
		ID:          "c4",
		Number:      4,
		Title:       "Infrastructure and Learning Resources",
		Description: "Physical and Academic Support Facilities",
		SubCriteria: []SubCriteria{
			{ID: "c4.1.1", Code: "4.1.1", Title: "Physical Facilities", Description: "Infrastructure for teaching-learning"},
			{ID: "c4.1.2", Code: "4.1.2", Title: "Cultural Activities", Description: "Facilities for cultural activities"},
			{ID: "c4.2.1", Code: "4.2.1", Title: "Library Automation", Description: "Library automation and resources"},
			{ID: "c4.2.2", Code: "4.2.2", Title: "Library Usage", Description: "Library usage by students and staff"},
			{ID: "c4.3.1", Code: "4.3.1", Title: "IT Facilities", Description: "IT facilities and bandwidth"},
			{ID: "c4.3.2", Code: "4.3.2", Title: "Student-Computer Ratio", Description: "Ratio of students to computers"},
			{ID: "c4.4.1", Code: "4.4.1", Title: "Maintenance Budget", Description: "Expenditure on infrastructure maintenance"},
		},
	},
	{
		ID:          "c5",
		Number:      5,
		Title:       "Student Support and Progression",
		Description: "Student Mentoring and Support",
		SubCriteria: []SubCriteria{
			{ID: "c5.1.1", Code: "5.1.1", Title: "Scholarships", Description: "Students benefited by scholarships"},
			{ID: "c5.1.2", Code: "5.1.2", Title: "Career Counseling", Description: "Career counseling activities"},
			{ID: "c5.2.1", Code: "5.2.1", Title: "Placement", Description: "Student placement percentage"},
			{ID: "c5.2.2", Code: "5.2.2", Title: "Higher Education", Description: "Students progressing to higher education"},
			{ID: "c5.3.1", Code: "5.3.1", Title: "Competitive Exams", Description: "Students qualifying exams"},
			{ID: "c5.3.2", Code: "5.3.2", Title: "Sports & Cultural", Description: "Sports and cultural achievements"},
			{ID: "c5.4.1", Code: "5.4.1", Title: "Alumni Association", Description: "Registered alumni association"},
			{ID: "c5.4.2", Code: "5.4.2", Title: "Alumni Contribution", Description: "Alumni contribution and engagement"},
		},
	},
	{
		ID:          "c6",
		Number:      6,
		Title:       "Governance, Leadership and Management",
		Description: "Institutional Vision and Leadership",
		SubCriteria: []SubCriteria{
			{ID: "c6.1.1", Code: "6.1.1", Title: "Vision & Mission", Description: "Governance reflecting vision and mission"},
			{ID: "c6.1.2", Code: "6.1.2", Title: "Decentralization", Description: "Decentralization and participative management"},
			{ID: "c6.2.1", Code: "6.2.1", Title: "Strategic Plan", Description: "Perspective/Strategic development plan"},
			{ID: "c6.2.2", Code: "6.2.2", Title: "Organizational Structure", Description: "Organogram and governance"},
			{ID: "c6.3.1", Code: "6.3.1", Title: "Faculty Empowerment", Description: "Faculty empowerment strategies"},
			{ID: "c6.3.2", Code: "6.3.2", Title: "FDPs", Description: "Faculty development programmes"},
			{ID: "c6.4.1", Code: "6.4.1", Title: "Financial Management", Description: "Resource mobilization and management"},
			{ID: "c6.4.2", Code: "6.4.2", Title: "Grants Utilization", Description: "Utilization of funds and grants"},
			{ID: "c6.5.1", Code: "6.5.1", Title: "IQAC", Description: "IQAC contribution and initiatives"},
			{ID: "c6.5.2", Code: "6.5.2", Title: "Quality Assurance", Description: "Quality assurance initiatives"},
		},
	},
	{
		ID:          "c7",
		Number:      7,
		Title:       "Institutional Values and Best Practices",
		Description: "Institutional Values and Social Responsibility",
		SubCriteria: []SubCriteria{
			{ID: "c7.1.1", Code: "7.1.1", Title: "Gender Equity", Description: "Gender equity initiatives"},
			{ID: "c7.1.2", Code: "7.1.2", Title: "Environmental Initiatives", Description: "Environmental consciousness"},
			{ID: "c7.1.3", Code: "7.1.3", Title: "Disabled-friendly", Description: "Facilities for divyangjan"},
			{ID: "c7.1.4", Code: "7.1.4", Title: "Constitutional Values", Description: "Constitutional obligations and values"},
			{ID: "c7.2.1", Code: "7.2.1", Title: "Best Practices", Description: "Institutional best practices"},
			{ID: "c7.3.1", Code: "7.3.1", Title: "Distinctiveness", Description: "Institutional distinctiveness"},
		},
	},
}
