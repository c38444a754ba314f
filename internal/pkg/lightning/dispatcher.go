package lightning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/app/repository"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemState is the per-payment state machine driven by the sequential
// runner: Pending -> Sent -> Confirmed | Failed. Making the machine explicit
// keeps the one-at-a-time ordering a structural property rather than an
// accident of loop syntax.
type ItemState string

const (
	ItemPending   ItemState = "pending"
	ItemSent      ItemState = "sent"
	ItemConfirmed ItemState = "confirmed"
	ItemFailed    ItemState = "failed"
)

// defaultSendDelay is inserted between sends purely as API courtesy; it has
// no correctness role.
const defaultSendDelay = 150 * time.Millisecond

// BatchPayment is one requested payment in a dispatch run.
type BatchPayment struct {
	EconomyID        uint   `json:"economy_id"`
	EconomyName      string `json:"economy_name"`
	MerchantID       *uint  `json:"merchant_id,omitempty"`
	RecipientAddress string `json:"address"`
	Provider         string `json:"provider"`
	AmountSats       int64  `json:"amount"`
}

// Batch is the full input of one dispatch run.
type Batch struct {
	Payments     []BatchPayment `json:"payments"`
	FundingMonth int            `json:"funding_month"`
	FundingYear  int            `json:"funding_year"`
	Memo         string         `json:"memo"`
	InitiatedBy  uint           `json:"initiated_by"`
}

// PaymentResult is the outcome of one item. AlreadyPaid marks the
// double-disbursement guard firing; it is reported distinctly from an
// ordinary failure so operators do not retry a payment that succeeded in a
// previous run.
type PaymentResult struct {
	EconomyID   uint      `json:"economy_id"`
	EconomyName string    `json:"economy_name"`
	AmountSats  int64     `json:"amount_sats"`
	State       ItemState `json:"state"`
	Success     bool      `json:"success"`
	AlreadyPaid bool      `json:"already_paid,omitempty"`
	PaymentHash string    `json:"payment_hash,omitempty"`
	Error       string    `json:"error,omitempty"`
	Anomaly     string    `json:"anomaly,omitempty"`
}

// BatchResult is the full per-payment result list plus aggregates.
type BatchResult struct {
	BatchID          string          `json:"batch_id"`
	Results          []PaymentResult `json:"results"`
	SuccessCount     int             `json:"success_count"`
	FailureCount     int             `json:"failure_count"`
	AlreadyPaidCount int             `json:"already_paid_count"`
	TotalSent        int64           `json:"total_sent"`
}

// Dispatcher sends batch payments strictly sequentially, recording every
// attempt in the disbursement ledger before moving to the next item. The
// sequential order respects the wallet API's rate limits and keeps balance
// consumption monotonic; a parallel sender could overdraw.
type Dispatcher struct {
	wallet        WalletClient
	disbursements repository.DisbursementRepository
	economies     repository.EconomyRepository
	sendDelay     time.Duration
}

// NewDispatcher creates a dispatcher from its collaborators.
func NewDispatcher(wallet WalletClient, disbursements repository.DisbursementRepository, economies repository.EconomyRepository) *Dispatcher {
	return &Dispatcher{
		wallet:        wallet,
		disbursements: disbursements,
		economies:     economies,
		sendDelay:     defaultSendDelay,
	}
}

// WithSendDelay overrides the inter-payment courtesy delay.
func (d *Dispatcher) WithSendDelay(delay time.Duration) *Dispatcher {
	d.sendDelay = delay
	return d
}

// SendBatch runs the batch. Items are processed one at a time, in the
// caller-supplied order: item i+1 never starts before item i's ledger write
// completed. There is no mid-batch cancellation and no automatic retry;
// retries are an operator-triggered re-run over the failed subset.
func (d *Dispatcher) SendBatch(ctx context.Context, batch Batch) (*BatchResult, error) {
	if len(batch.Payments) == 0 {
		return nil, errors.New("batch contains no payments")
	}
	if batch.FundingMonth < 1 || batch.FundingMonth > 12 {
		return nil, fmt.Errorf("invalid funding month %d", batch.FundingMonth)
	}

	result := &BatchResult{
		BatchID: uuid.New().String(),
		Results: make([]PaymentResult, 0, len(batch.Payments)),
	}

	for i, payment := range batch.Payments {
		itemResult := d.processOne(ctx, batch, payment, result.BatchID)
		result.Results = append(result.Results, itemResult)

		switch {
		case itemResult.AlreadyPaid:
			result.AlreadyPaidCount++
		case itemResult.Success:
			result.SuccessCount++
			result.TotalSent += itemResult.AmountSats
		default:
			result.FailureCount++
		}

		if i < len(batch.Payments)-1 {
			time.Sleep(d.sendDelay)
		}
	}

	log.Infof("payment batch %s finished: %d sent, %d failed, %d already paid, %d sats total",
		result.BatchID, result.SuccessCount, result.FailureCount, result.AlreadyPaidCount, result.TotalSent)

	return result, nil
}

// processOne drives a single payment through the item state machine and
// returns once its ledger row reflects the final state.
func (d *Dispatcher) processOne(ctx context.Context, batch Batch, payment BatchPayment, batchID string) PaymentResult {
	itemResult := PaymentResult{
		EconomyID:   payment.EconomyID,
		EconomyName: payment.EconomyName,
		AmountSats:  payment.AmountSats,
		State:       ItemPending,
	}

	// Double-disbursement guard: the ledger is consulted immediately before
	// every send, not once per batch.
	if existing, err := d.disbursements.GetCompleted(payment.EconomyID, batch.FundingMonth, batch.FundingYear); err == nil {
		itemResult.AlreadyPaid = true
		itemResult.PaymentHash = existing.PaymentHash
		itemResult.Error = fmt.Sprintf("already paid for %s", existing.FundingPeriodKey())
		return itemResult
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		itemResult.State = ItemFailed
		itemResult.Error = fmt.Sprintf("ledger pre-check failed: %v", err)
		return itemResult
	}

	now := time.Now()
	row := &models.FundingDisbursement{
		EconomyID:        payment.EconomyID,
		MerchantID:       payment.MerchantID,
		AmountSats:       payment.AmountSats,
		FundingMonth:     batch.FundingMonth,
		FundingYear:      batch.FundingYear,
		BatchID:          batchID,
		Status:           models.DisbursementStatusPending,
		PaymentMethod:    models.PaymentMethodLightning,
		RecipientAddress: payment.RecipientAddress,
		InitiatedBy:      batch.InitiatedBy,
		ProcessedAt:      &now,
	}

	// Address resolution happens before the wallet API is contacted; an
	// unresolvable address is an immediate per-item failure. Items without a
	// provider fall back to the generic grammar.
	provider := payment.Provider
	if provider == "" {
		provider = ProviderLightning
	}
	validation := ValidateAddress(payment.RecipientAddress, provider)
	if !validation.Valid {
		row.Status = models.DisbursementStatusFailed
		row.ErrorMessage = "Invalid address format: " + validation.Error
		if err := d.disbursements.Create(row); err != nil {
			log.Errorf("ledger write failed for economy %d: %v", payment.EconomyID, err)
			itemResult.Anomaly = fmt.Sprintf("ledger write failed: %v", err)
		}
		itemResult.State = ItemFailed
		itemResult.Error = row.ErrorMessage
		return itemResult
	}

	if err := d.disbursements.Create(row); err != nil {
		itemResult.State = ItemFailed
		itemResult.Error = fmt.Sprintf("ledger write failed: %v", err)
		return itemResult
	}

	// Single best-effort attempt.
	itemResult.State = ItemSent
	resp, sendErr := d.wallet.SendPayment(ctx, validation.NormalizedAddress, payment.AmountSats, batch.Memo)

	if sendErr != nil {
		row.Status = models.DisbursementStatusFailed
		row.ErrorMessage = sendErr.Error()
		if err := d.disbursements.Update(row); err != nil {
			log.Errorf("ledger write failed for economy %d: %v", payment.EconomyID, err)
			itemResult.Anomaly = fmt.Sprintf("ledger write failed: %v", err)
		}
		itemResult.State = ItemFailed
		itemResult.Error = sendErr.Error()
		return itemResult
	}

	completedAt := time.Now()
	row.Status = models.DisbursementStatusCompleted
	row.PaymentHash = resp.PaymentHash
	row.CompletedAt = &completedAt
	if err := d.disbursements.Update(row); err != nil {
		// The payment went out but the ledger does not show it: surface
		// loudly, do not swallow.
		log.Errorf("anomaly: payment sent but ledger write failed for economy %d: %v", payment.EconomyID, err)
		itemResult.Anomaly = fmt.Sprintf("payment sent but ledger write failed: %v", err)
	}

	// Running total moves in the same logical step as the ledger write.
	if err := d.economies.IncrementFundingReceived(payment.EconomyID, payment.AmountSats); err != nil {
		log.Errorf("anomaly: ledger updated but economy total not incremented for economy %d: %v", payment.EconomyID, err)
		itemResult.Anomaly = fmt.Sprintf("economy total not incremented: %v", err)
	}

	itemResult.State = ItemConfirmed
	itemResult.Success = true
	itemResult.PaymentHash = resp.PaymentHash
	return itemResult
}
