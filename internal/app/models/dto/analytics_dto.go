package dto

// CollegeAnalyticsResponse summarizes one college's headcounts and content
// inventory.
type CollegeAnalyticsResponse struct {
	CollegeID       int64            `json:"collegeId"`
	CollegeName     string           `json:"collegeName"`
	TotalStudents   int64            `json:"totalStudents"`
	ActiveStudents  int64            `json:"activeStudents"`
	TotalFaculty    int64            `json:"totalFaculty"`
	ActiveFaculty   int64            `json:"activeFaculty"`
	TotalBatches    int64            `json:"totalBatches"`
	TotalSubjects   int64            `json:"totalSubjects"`
	TotalQuestions  int64            `json:"totalQuestions"`
	StudentsByBatch []BatchHeadcount `json:"studentsByBatch"`
}

// BatchHeadcount is the student count of one batch
type BatchHeadcount struct {
	BatchID   int64  `json:"batchId"`
	BatchName string `json:"batchName"`
	Students  int64  `json:"students"`
}

// PlatformAnalyticsResponse summarizes the whole platform for the product
// owner.
type PlatformAnalyticsResponse struct {
	TotalColleges  int64                      `json:"totalColleges"`
	TotalStudents  int64                      `json:"totalStudents"`
	TotalFaculty   int64                      `json:"totalFaculty"`
	TotalQuestions int64                      `json:"totalQuestions"`
	Colleges       []CollegeAnalyticsResponse `json:"colleges"`
}
