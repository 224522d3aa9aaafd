package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"

	"icms/internal/domain/ledger"
	"icms/internal/infra"
	"icms/internal/pkg/clock"
	"icms/internal/pkg/errs"
	"icms/internal/pkg/ptr"
	"icms/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const ActionProcessPayment = "process_payment"

type DiscountInput struct {
	Type  string
	Value decimal.Decimal
}

type ProcessPaymentCommand struct {
	ReservationRefNo string
	PaymentAmount    decimal.Decimal
	PaymentMethod    string
	Discount         *DiscountInput
	ActorID          *uuid.UUID
	ClientIP         string
	IdempotencyKey   string
}

type PaymentResult struct {
	ReservationRefNo string          `json:"reservation_ref_no"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	NewBalance       decimal.Decimal `json:"new_balance"`
	NewStatus        string          `json:"new_status"`
	Replayed         bool            `json:"-"`
}

type PaymentCommands interface {
	ProcessPayment(ctx context.Context, cmd ProcessPaymentCommand) (*PaymentResult, error)
}

type paymentUseCaseImpl struct {
	uow         shared.UnitOfWork
	audit       AuditSink
	dispatcher  Dispatcher
	idempotency IdempotencyStore
	clock       clock.Clock
}

// NewPaymentCommands wires the payment use case. idempotency may be nil, in
// which case Idempotency-Key headers are ignored.
func NewPaymentCommands(
	uow shared.UnitOfWork,
	audit AuditSink,
	dispatcher Dispatcher,
	idempotency IdempotencyStore,
	clk clock.Clock,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:         uow,
		audit:       audit,
		dispatcher:  dispatcher,
		idempotency: idempotency,
		clock:       clk,
	}
}

func (uc *paymentUseCaseImpl) ProcessPayment(ctx context.Context, cmd ProcessPaymentCommand) (*PaymentResult, error) {
	ref := strings.TrimSpace(cmd.ReservationRefNo)
	if ref == "" {
		return nil, errs.Mark(ledger.ErrReferenceRequired, ErrValidation)
	}

	discount, err := toDiscount(cmd.Discount)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	input, err := ledger.NewPaymentInput(cmd.PaymentAmount, cmd.PaymentMethod, discount)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	key := strings.TrimSpace(cmd.IdempotencyKey)
	useKey := key != "" && uc.idempotency != nil
	requestHash := paymentRequestHash(ref, input)

	if useKey {
		replay, claimed, ierr := uc.claimIdempotencyKey(ctx, key, requestHash)
		if ierr != nil {
			return nil, ierr
		}
		if replay != nil {
			return replay, nil
		}
		useKey = claimed
	}

	result, err := uc.applyPayment(ctx, ref, input)
	if err != nil {
		if useKey {
			if rerr := uc.idempotency.Release(ctx, key); rerr != nil {
				slog.Warn("failed to release idempotency key", "key", key, "error", rerr.Error())
			}
		}
		return nil, err
	}

	if useKey {
		record := IdempotencyRecord{
			Status:      IdempotencyCompleted,
			RequestHash: requestHash,
			Result:      result,
			CreatedAt:   uc.clock.Now(),
		}
		if cerr := uc.idempotency.Complete(ctx, key, record); cerr != nil {
			slog.Error("failed to store idempotent payment result",
				"key", key,
				"reservation_ref_no", result.ReservationRefNo,
				"payment_amount", result.PaymentAmount.String(),
				"error", cerr.Error())
			if rerr := uc.idempotency.Release(ctx, key); rerr != nil {
				slog.Error("failed to release idempotency key after a stored payment", "key", key, "error", rerr.Error())
			}
		}
	}

	uc.dispatchAudit(cmd, result)
	return result, nil
}

func (uc *paymentUseCaseImpl) applyPayment(ctx context.Context, ref string, input ledger.PaymentInput) (*PaymentResult, error) {
	var outcome ledger.PaymentOutcome

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, derr := tx.Transactions().GetForUpdate(ctx, tx.DB(), ref)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		outcome = t.ApplyPayment(input, now)
		return tx.Transactions().SaveLedger(ctx, tx.DB(), t, now)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrTransactionNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &PaymentResult{
		ReservationRefNo: ref,
		PaymentAmount:    outcome.PaymentAmount,
		NewBalance:       outcome.NewBalance,
		NewStatus:        outcome.NewStatus.String(),
	}, nil
}

// claimIdempotencyKey reports claimed=false when the store cannot be reached;
// the payment then proceeds without replay protection.
func (uc *paymentUseCaseImpl) claimIdempotencyKey(ctx context.Context, key, requestHash string) (*PaymentResult, bool, error) {
	existing, err := uc.idempotency.Begin(ctx, key, requestHash)
	if err != nil {
		slog.Warn("idempotency store unavailable, processing without replay protection", "key", key, "error", err.Error())
		return nil, false, nil
	}
	if existing == nil {
		return nil, true, nil
	}

	if existing.RequestHash != requestHash {
		return nil, false, ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case IdempotencyCompleted:
		if existing.Result == nil {
			return nil, false, errs.Mark(errs.New("completed payment missing result"), ErrIdempotencyCheckFailed)
		}
		replay := *existing.Result
		replay.Replayed = true
		return &replay, false, nil
	case IdempotencyProcessing:
		return nil, false, ErrIdempotencyInProgress
	default:
		return nil, false, errs.Mark(errs.New("invalid idempotency key status"), ErrIdempotencyCheckFailed)
	}
}

func (uc *paymentUseCaseImpl) dispatchAudit(cmd ProcessPaymentCommand, result *PaymentResult) {
	entry := AuditEntry{
		UserID: cmd.ActorID,
		Action: ActionProcessPayment,
		Details: map[string]any{
			"reservation_ref_no": result.ReservationRefNo,
			"payment_amount":     result.PaymentAmount.InexactFloat64(),
			"new_status":         result.NewStatus,
			"new_balance":        result.NewBalance.InexactFloat64(),
		},
		At: uc.clock.Now(),
	}
	if ip := strings.TrimSpace(cmd.ClientIP); ip != "" {
		entry.IPAddress = ptr.Of(ip)
	}

	accepted := uc.dispatcher.Submit("audit."+ActionProcessPayment, func(ctx context.Context) error {
		return uc.audit.Append(ctx, entry)
	})
	if !accepted {
		slog.Warn("audit entry dropped", "action", entry.Action, "reservation_ref_no", result.ReservationRefNo)
	}
}

func toDiscount(in *DiscountInput) (*ledger.Discount, error) {
	if in == nil {
		return nil, nil
	}
	if strings.TrimSpace(in.Type) == "" && in.Value.IsZero() {
		return nil, nil
	}
	return ledger.NewDiscount(strings.TrimSpace(in.Type), in.Value)
}

func paymentRequestHash(ref string, in ledger.PaymentInput) string {
	var b strings.Builder
	b.WriteString(ref)
	b.WriteByte('|')
	b.WriteString(in.Amount().String())
	b.WriteByte('|')
	b.WriteString(in.Method())
	if d := in.Discount(); d != nil {
		b.WriteByte('|')
		b.WriteString(string(d.Type()))
		b.WriteByte(':')
		b.WriteString(d.Value().String())
	}
	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:])
}
