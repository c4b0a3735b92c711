package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"approvehub/config"
	"approvehub/db"
	"approvehub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CandidateSource supplies the submission pools the duplicate checks compare
// against. Implementations return point-in-time snapshots in stable id order.
// Swap point if classroom scale ever outgrows the exhaustive scans.
type CandidateSource interface {
	ApprovedSubmissions(ctx context.Context) ([]models.ProjectSubmission, error)
	PendingForStudents(ctx context.Context, studentIDs []primitive.ObjectID) ([]models.ProjectSubmission, error)
	AllSubmissions(ctx context.Context) ([]models.ProjectSubmission, error)
	GuideName(ctx context.Context, studentID primitive.ObjectID) (string, error)
}

// SubmissionRef identifies the matched project in a verdict.
type SubmissionRef struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	StudentName string             `json:"studentName"`
	GuideName   string             `json:"guideName"`
}

// DuplicateVerdict is the outcome of a best-match duplicate check.
//
// When IsDuplicate is set, Match is the first candidate that reached the
// threshold, not necessarily the global maximum: the check stops scanning as
// soon as any candidate qualifies. BestScore is the running maximum across
// every candidate seen up to that point.
type DuplicateVerdict struct {
	IsDuplicate bool           `json:"isDuplicate"`
	BestScore   int            `json:"bestScore"`
	Match       *SubmissionRef `json:"match,omitempty"`
	Detail      string         `json:"detail,omitempty"`
}

// SimilarityWarning flags one suspicious pair found by the teacher scan.
type SimilarityWarning struct {
	OtherID      primitive.ObjectID `json:"otherId"`
	OtherStudent string             `json:"otherStudent"`
	OtherTitle   string             `json:"otherTitle"`
	Similarity   int                `json:"similarity"`
	Guide        string             `json:"guide"`
	OtherStatus  string             `json:"otherStatus"`
}

// DuplicateService runs the two duplicate-check pipelines.
//
// Two deliberately different policies coexist: the fused semantic+lexical
// check (CheckNewSubmission, ScanPendingForTeacher) and the lexical-only idea
// gate (CheckIdeaTitles). They shipped with different thresholds and different
// lexical algorithms; unifying them would change observable behavior.
type DuplicateService struct {
	embedder Embedder
	source   CandidateSource
}

var (
	duplicateService *DuplicateService
	duplicateOnce    sync.Once
)

// InitDuplicateService wires the duplicate checker against the shared
// embedding provider and the Mongo-backed candidate source.
func InitDuplicateService(cfg *config.Config) {
	duplicateOnce.Do(func() {
		InitEmbeddingService(cfg)
		duplicateService = NewDuplicateService(GetEmbedder(), db.NewSubmissionSource())
	})
}

// GetDuplicateService returns the singleton duplicate service.
func GetDuplicateService() *DuplicateService {
	return duplicateService
}

// NewDuplicateService builds a duplicate service with explicit collaborators.
func NewDuplicateService(embedder Embedder, source CandidateSource) *DuplicateService {
	return &DuplicateService{embedder: embedder, source: source}
}

// CheckNewSubmission compares a not-yet-saved submission against every
// approved project and returns a verdict. Candidates are scanned in id order
// with an early exit at the first fused score >= DuplicateThreshold. Any
// embedding failure aborts the whole check; the caller must refuse the
// submission rather than let it through unchecked.
func (s *DuplicateService) CheckNewSubmission(ctx context.Context, title, description, technology string) (*DuplicateVerdict, error) {
	text := ComparisonText(title, description, technology)

	cache := newEmbedCache(s.embedder)
	sourceVec, err := cache.embed(ctx, "candidate", text)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}

	approved, err := s.source.ApprovedSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved submissions: %w", err)
	}

	verdict := &DuplicateVerdict{}
	for i := range approved {
		existing := &approved[i]
		existingText := ComparisonText(existing.Title, existing.Description, existing.TechnologyUsed)

		existingVec, err := cache.embed(ctx, existing.ID.Hex(), existingText)
		if err != nil {
			return nil, fmt.Errorf("duplicate check failed: %w", err)
		}

		score := FuseScores(SemanticScore(sourceVec, existingVec), WeightedRatio(text, existingText))

		if score.Fused > verdict.BestScore {
			verdict.BestScore = score.Fused
			verdict.Match = refFor(existing)
		}

		if score.Fused >= DuplicateThreshold {
			verdict.IsDuplicate = true
			verdict.Match = refFor(existing)
			verdict.Detail = fmt.Sprintf(
				"Duplicate detected! Similarity score: %d%%. Similar to '%s' approved for %s (Guide: %s).",
				verdict.BestScore, existing.Title, existing.StudentName, verdict.Match.GuideName,
			)
			break
		}
	}

	return verdict, nil
}

// ScanPendingForTeacher cross-checks every pending submission from the given
// students against every other submission in the system, any student, any
// status. No early exit: every pair at or above the threshold becomes a
// warning, grouped by the pending submission's id. Submissions with no
// warnings are omitted from the result entirely.
func (s *DuplicateService) ScanPendingForTeacher(ctx context.Context, studentIDs []primitive.ObjectID) (map[string][]SimilarityWarning, error) {
	pending, err := s.source.PendingForStudents(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending submissions: %w", err)
	}
	all, err := s.source.AllSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}

	cache := newEmbedCache(s.embedder)
	warningsByID := make(map[string][]SimilarityWarning)

	for i := range pending {
		submission := &pending[i]
		text := ComparisonText(submission.Title, submission.Description, submission.TechnologyUsed)
		vec, err := cache.embed(ctx, submission.ID.Hex(), text)
		if err != nil {
			return nil, fmt.Errorf("similarity scan failed: %w", err)
		}

		var warnings []SimilarityWarning
		for j := range all {
			other := &all[j]
			if other.ID == submission.ID {
				continue
			}

			otherText := ComparisonText(other.Title, other.Description, other.TechnologyUsed)
			otherVec, err := cache.embed(ctx, other.ID.Hex(), otherText)
			if err != nil {
				return nil, fmt.Errorf("similarity scan failed: %w", err)
			}

			score := FuseScores(SemanticScore(vec, otherVec), WeightedRatio(text, otherText))
			if score.Fused < DuplicateThreshold {
				continue
			}

			guide, err := s.source.GuideName(ctx, other.StudentID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve guide: %w", err)
			}
			if guide == "" {
				guide = "N/A"
			}

			warnings = append(warnings, SimilarityWarning{
				OtherID:      other.ID,
				OtherStudent: other.StudentName,
				OtherTitle:   other.Title,
				Similarity:   score.Fused,
				Guide:        guide,
				OtherStatus:  other.Status,
			})
		}

		if len(warnings) > 0 {
			warningsByID[submission.ID.Hex()] = warnings
		}
	}

	return warningsByID, nil
}

// CheckIdeaTitles is the lightweight gate on the project-idea form. It never
// touches the embedding model: titles and descriptions are compared against
// approved projects independently with a token-sort ratio, and either field
// crossing IdeaGateThreshold rejects the idea.
func (s *DuplicateService) CheckIdeaTitles(ctx context.Context, title, description string) (*DuplicateVerdict, error) {
	approved, err := s.source.ApprovedSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved submissions: %w", err)
	}

	for i := range approved {
		existing := &approved[i]
		titleScore := TokenSortRatio(strings.ToLower(title), strings.ToLower(existing.Title))
		descScore := TokenSortRatio(strings.ToLower(description), strings.ToLower(existing.Description))

		if titleScore > IdeaGateThreshold || descScore > IdeaGateThreshold {
			score := titleScore
			if descScore > score {
				score = descScore
			}
			return &DuplicateVerdict{
				IsDuplicate: true,
				BestScore:   score,
				Match:       refFor(existing),
				Detail: fmt.Sprintf(
					"This project is too similar to '%s', which was already approved for %s. Please modify your project idea.",
					existing.Title, existing.StudentName,
				),
			}, nil
		}
	}

	return &DuplicateVerdict{}, nil
}

func refFor(submission *models.ProjectSubmission) *SubmissionRef {
	guide := submission.ReviewedByName
	if guide == "" {
		guide = "N/A"
	}
	return &SubmissionRef{
		ID:          submission.ID,
		Title:       submission.Title,
		StudentName: submission.StudentName,
		GuideName:   guide,
	}
}
