package permitapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type ApproveRequest struct {
	Comments string `json:"comments"`
}

func (r ApproveRequest) Validate() error {
	return nil
}

type RejectRequest struct {
	Comments string `json:"comments"` // reason of rejection
}

func (r RejectRequest) Validate() error {
	if strings.TrimSpace(r.Comments) == "" {
		return errors.New("Comments are required to reject")
	}
	return nil
}

type RevokeRequest struct {
	Reason string `json:"reason"`
}

func (r RevokeRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("Revocation reason is required")
	}
	return nil
}

// RevocationReviewRequest is checked for length by the lifecycle engine.
type RevocationReviewRequest struct {
	Comments string `json:"comments"`
}

func (r RevocationReviewRequest) Validate() error {
	return nil
}

type CompleteRequest struct {
	Remarks string `json:"remarks"` // mandatory for the QHSSE final completion
}

func (r CompleteRequest) Validate() error {
	return nil
}
