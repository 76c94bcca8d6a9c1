package chat

import (
	"context"
	"errors"
	"time"

	"complaint-service/internal/auth"
	"complaint-service/internal/dialogue"
	"complaint-service/internal/model"
	"complaint-service/internal/service"
)

// ServiceGateway adapts the in-process complaint service to the dialogue
// engine. Unlike an HTTP client it cannot receive a 401, so it re-checks the
// session credential (expiry and revocation) before every call to keep the
// forced-logout path alive server-side.
type ServiceGateway struct {
	complaints *service.ComplaintService
	denylist   *auth.Denylist
	claims     *auth.Claims
	principal  model.Principal
}

func NewServiceGateway(complaints *service.ComplaintService, denylist *auth.Denylist, claims *auth.Claims) *ServiceGateway {
	return &ServiceGateway{
		complaints: complaints,
		denylist:   denylist,
		claims:     claims,
		principal: model.Principal{
			UserID:  claims.UserID,
			Email:   claims.Email,
			Role:    claims.Role,
			TokenID: claims.ID,
		},
	}
}

func (g *ServiceGateway) authorize(ctx context.Context) error {
	if g.claims.ExpiresAt != nil && time.Now().After(g.claims.ExpiresAt.Time) {
		return dialogue.ErrUnauthorized
	}
	revoked, err := g.denylist.IsRevoked(ctx, g.claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return dialogue.ErrUnauthorized
	}
	return nil
}

func (g *ServiceGateway) Submit(ctx context.Context, draft dialogue.Draft) (*dialogue.Receipt, error) {
	if err := g.authorize(ctx); err != nil {
		return nil, err
	}

	input := service.CreateComplaintInput{
		VehicleNumber:      draft.VehicleNumber,
		VehicleType:        draft.VehicleType,
		VehicleModel:       draft.VehicleModel,
		VehicleColor:       draft.VehicleColor,
		TheftDate:          draft.TheftDate,
		TheftLocation:      draft.TheftLocation,
		Description:        draft.Description,
		ComplainantName:    draft.ComplainantName,
		ComplainantPhone:   draft.ComplainantPhone,
		ComplainantEmail:   draft.ComplainantEmail,
		ComplainantAddress: draft.ComplainantAddress,
	}

	result, err := g.complaints.Create(ctx, g.principal, input)
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, &dialogue.RejectedError{Message: verrs.First()}
		}
		if errors.Is(err, service.ErrPermissionDenied) {
			return nil, dialogue.ErrUnauthorized
		}
		return nil, err
	}

	return &dialogue.Receipt{
		CaseNumber:  result.CaseNumber,
		ComplaintID: result.ComplaintID,
	}, nil
}

func (g *ServiceGateway) Search(ctx context.Context, term string) ([]dialogue.Summary, error) {
	if err := g.authorize(ctx); err != nil {
		return nil, err
	}

	complaints, err := g.complaints.List(ctx, g.principal, service.ListComplaintsOptions{Search: term})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			return nil, dialogue.ErrUnauthorized
		}
		return nil, err
	}

	summaries := make([]dialogue.Summary, 0, len(complaints))
	for _, c := range complaints {
		summaries = append(summaries, dialogue.Summary{
			CaseNumber:    c.CaseNumber,
			VehicleNumber: c.VehicleNumber,
			VehicleType:   c.VehicleType,
			Status:        string(c.Status),
			TheftDate:     c.TheftDate,
			FiledOn:       c.CreatedAt.Format("Jan 2, 2006"),
		})
	}
	return summaries, nil
}
