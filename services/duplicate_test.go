package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"approvehub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeEmbedder returns canned vectors keyed by comparison text and counts how
// many times the model was actually invoked.
type fakeEmbedder struct {
	vectors map[string][]float32
	mu      sync.Mutex
	calls   int
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 0}, nil
}

// fakeSource serves submissions from memory.
type fakeSource struct {
	submissions []models.ProjectSubmission
	guides      map[primitive.ObjectID]string
}

func (f *fakeSource) ApprovedSubmissions(ctx context.Context) ([]models.ProjectSubmission, error) {
	var out []models.ProjectSubmission
	for _, s := range f.submissions {
		if s.Status == models.StatusApproved {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSource) PendingForStudents(ctx context.Context, studentIDs []primitive.ObjectID) ([]models.ProjectSubmission, error) {
	ids := make(map[primitive.ObjectID]bool, len(studentIDs))
	for _, id := range studentIDs {
		ids[id] = true
	}
	var out []models.ProjectSubmission
	for _, s := range f.submissions {
		if s.Status == models.StatusPending && ids[s.StudentID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSource) AllSubmissions(ctx context.Context) ([]models.ProjectSubmission, error) {
	return f.submissions, nil
}

func (f *fakeSource) GuideName(ctx context.Context, studentID primitive.ObjectID) (string, error) {
	return f.guides[studentID], nil
}

func submission(student primitive.ObjectID, studentName, title, description, technology, status string) models.ProjectSubmission {
	return models.ProjectSubmission{
		ID:             primitive.NewObjectID(),
		StudentID:      student,
		StudentName:    studentName,
		Title:          title,
		Description:    description,
		TechnologyUsed: technology,
		Status:         status,
	}
}

func TestCheckNewSubmissionFlagsNearDuplicate(t *testing.T) {
	studentID := primitive.NewObjectID()
	approved := submission(studentID, "Rahul Verma", "Face Recognition System", "AI based", "Python", models.StatusApproved)
	approved.ReviewedByName = "Priya Sharma"

	newText := ComparisonText("Face Recognition", "AI based", "Python")
	approvedText := ComparisonText(approved.Title, approved.Description, approved.TechnologyUsed)

	embedder := &fakeEmbedder{vectors: map[string][]float32{
		newText:      {1, 0, 0},
		approvedText: {1, 0, 0},
	}}
	svc := NewDuplicateService(embedder, &fakeSource{submissions: []models.ProjectSubmission{approved}})

	verdict, err := svc.CheckNewSubmission(context.Background(), "Face Recognition", "AI based", "Python")
	if err != nil {
		t.Fatalf("CheckNewSubmission failed: %v", err)
	}
	if !verdict.IsDuplicate {
		t.Fatalf("Expected near-duplicate to be flagged, got verdict %+v", verdict)
	}
	if verdict.BestScore < DuplicateThreshold {
		t.Errorf("Expected best score >= %d, got %d", DuplicateThreshold, verdict.BestScore)
	}
	if verdict.Match == nil || verdict.Match.ID != approved.ID {
		t.Errorf("Expected match to reference the approved project")
	}
	if !strings.Contains(verdict.Detail, "Face Recognition System") ||
		!strings.Contains(verdict.Detail, "Rahul Verma") ||
		!strings.Contains(verdict.Detail, "Priya Sharma") {
		t.Errorf("Expected detail to name project, student and guide, got %q", verdict.Detail)
	}
}

func TestCheckNewSubmissionAllowsUnrelatedProject(t *testing.T) {
	approved := submission(primitive.NewObjectID(), "Rahul Verma", "Face Recognition System", "AI based", "Python", models.StatusApproved)

	newText := ComparisonText("Quantum Cooking Recipe App", "unrelated text", "Java")
	approvedText := ComparisonText(approved.Title, approved.Description, approved.TechnologyUsed)

	embedder := &fakeEmbedder{vectors: map[string][]float32{
		newText:      {0, 1, 0},
		approvedText: {1, 0, 0},
	}}
	svc := NewDuplicateService(embedder, &fakeSource{submissions: []models.ProjectSubmission{approved}})

	verdict, err := svc.CheckNewSubmission(context.Background(), "Quantum Cooking Recipe App", "unrelated text", "Java")
	if err != nil {
		t.Fatalf("CheckNewSubmission failed: %v", err)
	}
	if verdict.IsDuplicate {
		t.Errorf("Expected unrelated project to pass, got verdict %+v", verdict)
	}
	if verdict.BestScore >= DuplicateThreshold {
		t.Errorf("Expected best score below threshold, got %d", verdict.BestScore)
	}
}

func TestCheckNewSubmissionStopsAtFirstQualifyingHit(t *testing.T) {
	vec := []float32{1, 0, 0}
	first := submission(primitive.NewObjectID(), "A", "AI Drone System", "Drone using AI", "Python", models.StatusApproved)
	second := submission(primitive.NewObjectID(), "B", "AI Drone", "Drone automation", "Python", models.StatusApproved)

	newText := ComparisonText("AI Drone System", "Drone using AI", "Python")
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		newText: vec,
		ComparisonText(first.Title, first.Description, first.TechnologyUsed):    vec,
		ComparisonText(second.Title, second.Description, second.TechnologyUsed): vec,
	}}
	svc := NewDuplicateService(embedder, &fakeSource{submissions: []models.ProjectSubmission{first, second}})

	verdict, err := svc.CheckNewSubmission(context.Background(), "AI Drone System", "Drone using AI", "Python")
	if err != nil {
		t.Fatalf("CheckNewSubmission failed: %v", err)
	}
	if !verdict.IsDuplicate {
		t.Fatalf("Expected duplicate verdict")
	}
	if verdict.Match.ID != first.ID {
		t.Errorf("Expected the first qualifying candidate to be reported, got %v", verdict.Match.ID)
	}
	// Candidate text plus the first approved project only; the scan never
	// reached the second candidate.
	if embedder.calls != 2 {
		t.Errorf("Expected 2 embeddings (early exit), got %d", embedder.calls)
	}
}

func TestCheckNewSubmissionFailsClosedOnEmbeddingError(t *testing.T) {
	approved := submission(primitive.NewObjectID(), "A", "Anything", "At all", "Go", models.StatusApproved)
	embedder := &fakeEmbedder{err: errors.New("model unavailable")}
	svc := NewDuplicateService(embedder, &fakeSource{submissions: []models.ProjectSubmission{approved}})

	if _, err := svc.CheckNewSubmission(context.Background(), "New", "Project", "Go"); err == nil {
		t.Errorf("Expected embedding failure to propagate as an error")
	}
}

func TestCheckNewSubmissionEmptyInputNeverFlags(t *testing.T) {
	approved := submission(primitive.NewObjectID(), "A", "Face Recognition System", "AI based", "Python", models.StatusApproved)
	approvedText := ComparisonText(approved.Title, approved.Description, approved.TechnologyUsed)

	// Empty text embeds to the zero vector: semantic 0, so the fused score is
	// capped at the lexical share (40) and can never reach the threshold.
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		approvedText: {1, 0, 0},
	}}
	svc := NewDuplicateService(embedder, &fakeSource{submissions: []models.ProjectSubmission{approved}})

	verdict, err := svc.CheckNewSubmission(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("CheckNewSubmission failed: %v", err)
	}
	if verdict.IsDuplicate {
		t.Errorf("Expected empty submission never to flag, got verdict %+v", verdict)
	}
}

func TestFusedScoreSymmetry(t *testing.T) {
	a := ComparisonText("AI Drone System", "Drone using AI", "Python")
	b := ComparisonText("AI Drone", "Drone automation", "Python")
	va := []float32{0.6, 0.8, 0}
	vb := []float32{0.8, 0.6, 0}

	ab := FuseScores(SemanticScore(va, vb), WeightedRatio(a, b))
	ba := FuseScores(SemanticScore(vb, va), WeightedRatio(b, a))
	if ab.Fused != ba.Fused {
		t.Errorf("Expected symmetric fused scores, got %d and %d", ab.Fused, ba.Fused)
	}
}

func TestFusedScoreSelfComparisonIs100(t *testing.T) {
	text := ComparisonText("AI Drone System", "Drone using AI", "Python")
	vec := []float32{0.6, 0.8, 0}
	score := FuseScores(SemanticScore(vec, vec), WeightedRatio(text, text))
	if score.Fused != 100 {
		t.Errorf("Expected self-comparison to fuse to 100, got %d", score.Fused)
	}
}

func TestScanPendingForTeacherFindsMutualWarnings(t *testing.T) {
	studentA := primitive.NewObjectID()
	studentB := primitive.NewObjectID()
	pendingA := submission(studentA, "Asha", "AI Drone System", "Drone using AI", "Python", models.StatusPending)
	pendingB := submission(studentB, "Bilal", "AI Drone", "Drone automation", "Python", models.StatusPending)

	vec := []float32{1, 0, 0}
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		ComparisonText(pendingA.Title, pendingA.Description, pendingA.TechnologyUsed): vec,
		ComparisonText(pendingB.Title, pendingB.Description, pendingB.TechnologyUsed): vec,
	}}
	source := &fakeSource{
		submissions: []models.ProjectSubmission{pendingA, pendingB},
		guides:      map[primitive.ObjectID]string{studentA: "Priya Sharma"},
	}
	svc := NewDuplicateService(embedder, source)

	warnings, err := svc.ScanPendingForTeacher(context.Background(), []primitive.ObjectID{studentA, studentB})
	if err != nil {
		t.Fatalf("ScanPendingForTeacher failed: %v", err)
	}

	if len(warnings) != 2 {
		t.Fatalf("Expected warnings for both pending submissions, got %d entries", len(warnings))
	}
	forA, ok := warnings[pendingA.ID.Hex()]
	if !ok || len(forA) != 1 {
		t.Fatalf("Expected exactly one warning for submission A, got %v", warnings)
	}
	if forA[0].OtherID != pendingB.ID {
		t.Errorf("Expected A's warning to reference B")
	}
	if forA[0].Similarity < DuplicateThreshold {
		t.Errorf("Expected warning score >= %d, got %d", DuplicateThreshold, forA[0].Similarity)
	}
	forB := warnings[pendingB.ID.Hex()]
	if len(forB) != 1 || forB[0].OtherID != pendingA.ID {
		t.Errorf("Expected B's warning to reference A")
	}
	// Student B has no guide on record.
	if forA[0].Guide != "N/A" {
		t.Errorf("Expected missing guide to be reported as N/A, got %q", forA[0].Guide)
	}
	if forB[0].Guide != "Priya Sharma" {
		t.Errorf("Expected A's guide name in B's warning, got %q", forB[0].Guide)
	}

	// One embedding per unique submission, despite each appearing in several pairs.
	if embedder.calls != 2 {
		t.Errorf("Expected 2 embeddings via the per-scan cache, got %d", embedder.calls)
	}
}

func TestScanPendingForTeacherExcludesSelfAndQuietSubmissions(t *testing.T) {
	studentA := primitive.NewObjectID()
	studentB := primitive.NewObjectID()
	pendingA := submission(studentA, "Asha", "AI Drone System", "Drone using AI", "Python", models.StatusPending)
	unrelated := submission(studentB, "Bilal", "Library Management", "Book lending tracker", "Java", models.StatusApproved)

	embedder := &fakeEmbedder{vectors: map[string][]float32{
		ComparisonText(pendingA.Title, pendingA.Description, pendingA.TechnologyUsed):    {1, 0, 0},
		ComparisonText(unrelated.Title, unrelated.Description, unrelated.TechnologyUsed): {0, 1, 0},
	}}
	source := &fakeSource{submissions: []models.ProjectSubmission{pendingA, unrelated}}
	svc := NewDuplicateService(embedder, source)

	warnings, err := svc.ScanPendingForTeacher(context.Background(), []primitive.ObjectID{studentA})
	if err != nil {
		t.Fatalf("ScanPendingForTeacher failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings for unrelated submissions, got %v", warnings)
	}
}

func TestVerdictReportsMissingReviewerAsNA(t *testing.T) {
	approved := submission(primitive.NewObjectID(), "Rahul Verma", "Face Recognition System", "AI based", "Python", models.StatusApproved)
	// No ReviewedByName on record.

	newText := ComparisonText("Face Recognition", "AI based", "Python")
	approvedText := ComparisonText(approved.Title, approved.Description, approved.TechnologyUsed)
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		newText:      {1, 0, 0},
		approvedText: {1, 0, 0},
	}}
	svc := NewDuplicateService(embedder, &fakeSource{submissions: []models.ProjectSubmission{approved}})

	verdict, err := svc.CheckNewSubmission(context.Background(), "Face Recognition", "AI based", "Python")
	if err != nil {
		t.Fatalf("CheckNewSubmission failed: %v", err)
	}
	if !verdict.IsDuplicate {
		t.Fatalf("Expected duplicate verdict")
	}
	if !strings.Contains(verdict.Detail, "N/A") {
		t.Errorf("Expected N/A in place of a guide name, got %q", verdict.Detail)
	}
}

func TestCheckIdeaTitlesGate(t *testing.T) {
	approved := submission(primitive.NewObjectID(), "Rahul Verma", "AI System v2", "Machine learning pipeline for grading", "Python", models.StatusApproved)
	// The idea gate must never touch the embedding model.
	embedder := &fakeEmbedder{err: errors.New("model must not be called")}
	svc := NewDuplicateService(embedder, &fakeSource{submissions: []models.ProjectSubmission{approved}})

	verdict, err := svc.CheckIdeaTitles(context.Background(), "AI System", "A completely different write-up")
	if err != nil {
		t.Fatalf("CheckIdeaTitles failed: %v", err)
	}
	if !verdict.IsDuplicate {
		t.Fatalf("Expected near-duplicate title to be rejected by the gate")
	}
	if !strings.Contains(verdict.Detail, "AI System v2") {
		t.Errorf("Expected detail to name the approved project, got %q", verdict.Detail)
	}
	if embedder.calls != 0 {
		t.Errorf("Expected no embedding calls on the idea gate, got %d", embedder.calls)
	}

	verdict, err = svc.CheckIdeaTitles(context.Background(), "Smart Irrigation Controller", "Soil moisture driven watering")
	if err != nil {
		t.Fatalf("CheckIdeaTitles failed: %v", err)
	}
	if verdict.IsDuplicate {
		t.Errorf("Expected unrelated idea to pass the gate, got %+v", verdict)
	}
}
