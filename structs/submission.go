package structs

type SubmitProjectRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description" binding:"required"`
	TechnologyUsed string `json:"technologyUsed" binding:"required"`
	TeamMembers    string `json:"teamMembers"`
}

type SubmitIdeaRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type FeedbackRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=approve reject"`
	Feedback  string `json:"feedback"`
}

type AssignTeacherRequest struct {
	TeacherID string `json:"teacherId"`
}

type SetDeadlineRequest struct {
	Deadline        string `json:"deadline" binding:"required"`
	TeacherDeadline string `json:"teacherDeadline"`
}
