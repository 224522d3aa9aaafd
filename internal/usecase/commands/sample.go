package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"icms/internal/domain/sample"
	"icms/internal/domain/user"
	"icms/internal/infra"
	"icms/internal/pkg/clock"
	"icms/internal/pkg/errs"
	"icms/internal/pkg/ptr"
	"icms/internal/usecase/queries"
	"icms/internal/usecase/shared"
)

const SampleStatusUpdatedMessage = "Sample status updated successfully"

type UpdateSampleStatusResult struct {
	Message          string
	SampleID         int64
	Status           string
	RequestCompleted bool
}

type SampleCommands interface {
	UpdateStatus(ctx context.Context, sampleID int64, status string) (*UpdateSampleStatusResult, error)
}

type sampleUseCaseImpl struct {
	uow        shared.UnitOfWork
	requests   queries.RequestQueries
	notifier   Notifier
	dispatcher Dispatcher
	clock      clock.Clock
}

func NewSampleCommands(
	uow shared.UnitOfWork,
	requests queries.RequestQueries,
	notifier Notifier,
	dispatcher Dispatcher,
	clk clock.Clock,
) SampleCommands {
	return &sampleUseCaseImpl{
		uow:        uow,
		requests:   requests,
		notifier:   notifier,
		dispatcher: dispatcher,
		clock:      clk,
	}
}

func (uc *sampleUseCaseImpl) UpdateStatus(ctx context.Context, sampleID int64, status string) (*UpdateSampleStatusResult, error) {
	if sampleID <= 0 {
		return nil, errs.Mark(errs.Newf("sample id must be positive, got %d", sampleID), ErrValidation)
	}
	target, err := sample.ParseStatus(status)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var updated *sample.Sample
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, derr := tx.Samples().UpdateStatus(ctx, tx.DB(), sampleID, target)
		if derr != nil {
			return derr
		}
		updated = s
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrSampleNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	result := &UpdateSampleStatusResult{
		Message:  SampleStatusUpdatedMessage,
		SampleID: updated.ID(),
		Status:   updated.Status().String(),
	}

	if !updated.CanCascade() {
		return result, nil
	}

	ref := *updated.ReservationRefNo()
	completedAt := uc.clock.Now()
	flipped, err := uc.completeRequestIfDone(ctx, ref, completedAt)
	if err != nil {
		slog.Error("sample completion cascade failed",
			"sample_id", sampleID,
			"reservation_ref_no", ref,
			"error", err.Error())
		return result, nil
	}
	if !flipped {
		return result, nil
	}

	result.RequestCompleted = true
	slog.Info("request completed", "reservation_ref_no", ref, "sample_id", sampleID)

	accepted := uc.dispatcher.Submit("notify.request_completed", func(ctx context.Context) error {
		return uc.notifyCompletion(ctx, ref, completedAt)
	})
	if !accepted {
		slog.Warn("completion notification dropped", "reservation_ref_no", ref)
	}

	return result, nil
}

// completeRequestIfDone completes the request once its last sample is done.
// The request row lock serializes concurrent completions of sibling samples.
func (uc *sampleUseCaseImpl) completeRequestIfDone(ctx context.Context, ref string, at time.Time) (bool, error) {
	var flipped bool

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		flipped = false

		req, derr := tx.Requests().LockByReference(ctx, tx.DB(), ref)
		if derr != nil {
			return derr
		}
		if req.Status == string(sample.StatusCompleted) {
			return nil
		}

		incomplete, derr := tx.Samples().CountIncomplete(ctx, tx.DB(), ref)
		if derr != nil {
			return derr
		}
		if !sample.ShouldCompleteRequest(incomplete) {
			return nil
		}

		flipped, derr = tx.Requests().Complete(ctx, tx.DB(), ref, at)
		return derr
	})
	if err != nil {
		return false, err
	}
	return flipped, nil
}

func (uc *sampleUseCaseImpl) notifyCompletion(ctx context.Context, ref string, completedAt time.Time) error {
	if !uc.notifier.Enabled() {
		slog.Debug("notifications disabled, skipping", "reservation_ref_no", ref)
		return nil
	}

	contact, err := uc.requests.GetClientContact(ctx, ref)
	if err != nil {
		return errs.Wrap(err, "lookup client contact")
	}
	raw := strings.TrimSpace(ptr.Deref(contact.ClientEmail, ""))
	if raw == "" {
		slog.Info("client has no email, skipping notification", "reservation_ref_no", ref)
		return nil
	}

	email, err := user.NewEmail(raw)
	if err != nil {
		slog.Warn("client email is invalid, skipping notification", "reservation_ref_no", ref)
		return nil
	}

	return uc.notifier.SendCompletion(ctx, CompletionNotice{
		Email:           email.Value(),
		Name:            contact.ClientName,
		ReferenceNumber: contact.ReferenceNumber,
		CompletedAt:     completedAt,
		Details: map[string]any{
			"status": string(sample.StatusCompleted),
		},
	})
}
