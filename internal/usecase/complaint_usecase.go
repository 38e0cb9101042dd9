package usecase

import (
	"context"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/minhtran-ct/collab-view/internal/config"
	"github.com/minhtran-ct/collab-view/internal/kafka"
	"github.com/minhtran-ct/collab-view/internal/models"
	"github.com/minhtran-ct/collab-view/internal/repo/mongodb"
)

type ComplaintUsecase interface {
	FileComplaint(ctx context.Context, store mongodb.TenantStore, params models.ComplaintParams) (string, error)
}

type complaintUsecase struct {
	requireEmployeeID bool
	publisher         kafka.Publisher
	now               func() time.Time
}

func NewComplaintUsecase(conf *config.Config, publisher kafka.Publisher) ComplaintUsecase {
	return &complaintUsecase{
		requireEmployeeID: conf.Complaint.RequireEmployeeID,
		publisher:         publisher,
		now:               time.Now,
	}
}

func (uc *complaintUsecase) FileComplaint(ctx context.Context, store mongodb.TenantStore, params models.ComplaintParams) (string, error) {
	if err := uc.checkRequired(params); err != nil {
		return "", err
	}

	// id_number derives from the creation timestamp; uniqueness is
	// probabilistic, which is acceptable for this domain.
	idNumber := fmt.Sprintf("comp_%d", uc.now().UnixNano())

	if err := store.EnsureCollection(ctx, models.ComplaintsCollection); err != nil {
		return "", err
	}

	complaint := models.Complaint{
		IDNumber:    idNumber,
		Name:        params.Name,
		EmployeeID:  params.EmployeeID,
		Collection:  params.Collection,
		ComplaintOn: params.DocumentKey,
		Complaint:   params.Details,
		Status:      models.ComplaintStatusOpen,
	}
	if _, err := store.Insert(ctx, models.ComplaintsCollection, complaint); err != nil {
		return "", fmt.Errorf("failed to insert complaint: %w", err)
	}

	uc.audit(ctx, store.Name(), complaint)
	return idNumber, nil
}

func (uc *complaintUsecase) checkRequired(params models.ComplaintParams) error {
	if params.Name == "" {
		return fmt.Errorf("%w: name", models.ErrMissingField)
	}
	if params.Details == "" {
		return fmt.Errorf("%w: details", models.ErrMissingField)
	}
	if uc.requireEmployeeID && params.EmployeeID == "" {
		return fmt.Errorf("%w: employee_id", models.ErrMissingField)
	}
	return nil
}

func (uc *complaintUsecase) audit(ctx context.Context, tenant string, complaint models.Complaint) {
	err := uc.publisher.Publish(ctx, kafka.Event{
		Pattern: kafka.PatternComplaintFiled,
		Tenant:  tenant,
		Data: map[string]string{
			"id_number":    complaint.IDNumber,
			"collection":   complaint.Collection,
			"complaint_on": complaint.ComplaintOn,
		},
	})
	if err != nil {
		log.Warnw(ctx, "failed to publish complaint audit event", "error", err)
	}
}
