// Package rating is the client for the service-rating registry: invite
// listing, feedback capture and completion marking.
package rating

import (
	"context"
	"fmt"
	"net/url"

	"mamacare/internal/registry"
)

// Invite is one rating session offered to an identity.
type Invite struct {
	ID        string `json:"id"`
	Identity  string `json:"identity"`
	Invite    string `json:"invite,omitempty"`
	Completed bool   `json:"completed"`
	Expired   bool   `json:"expired"`
}

// ListFilter narrows invite listings. Completed and Expired are string-typed
// boolean flags ("True"/"False") passed to the backend verbatim.
type ListFilter struct {
	Identity  string
	Completed string
	Expired   string
}

// Feedback is one answered survey question tied to a rating session.
type Feedback struct {
	Identity     string `json:"identity"`
	Version      int    `json:"version"`
	QuestionID   int    `json:"question_id"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
	AnswerValue  string `json:"answer_value"`
	Invite       string `json:"invite"`
}

// FeedbackResult acknowledges a captured answer.
type FeedbackResult struct {
	Accepted bool `json:"accepted"`
}

// CompletedResult acknowledges a completion mark.
type CompletedResult struct {
	Success bool `json:"success"`
}

type completedRequest struct {
	Completed bool `json:"completed"`
}

// Service wraps one registry client configured for the rating store.
type Service struct {
	client *registry.Client
}

func New(client *registry.Client) *Service {
	return &Service{client: client}
}

// List returns one page of rating invites matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) (*registry.Page[Invite], error) {
	params := url.Values{}
	if filter.Identity != "" {
		params.Set("identity", filter.Identity)
	}
	if filter.Completed != "" {
		params.Set("completed", filter.Completed)
	}
	if filter.Expired != "" {
		params.Set("expired", filter.Expired)
	}
	return registry.List[Invite](ctx, s.client, "serviceratings/", params)
}

// CreateFeedback records one answered question against a rating session.
// inviteID correlates the answer to its invite; version tags the survey
// revision the question came from.
func (s *Service) CreateFeedback(ctx context.Context, identityID string, questionID int, questionText, answerText, answerValue string, version int, inviteID string) (*FeedbackResult, error) {
	if identityID == "" || inviteID == "" {
		return nil, fmt.Errorf("feedback: identity and invite are required")
	}
	req := Feedback{
		Identity:     identityID,
		Version:      version,
		QuestionID:   questionID,
		QuestionText: questionText,
		AnswerText:   answerText,
		AnswerValue:  answerValue,
		Invite:       inviteID,
	}
	var out FeedbackResult
	if err := s.client.Create(ctx, "feedback/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkCompleted closes a rating session.
func (s *Service) MarkCompleted(ctx context.Context, inviteID string) (*CompletedResult, error) {
	if inviteID == "" {
		return nil, fmt.Errorf("servicerating: invite id is required")
	}
	var out CompletedResult
	if err := s.client.Update(ctx, "serviceratings/"+inviteID+"/", completedRequest{Completed: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
