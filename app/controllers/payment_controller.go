package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/DavidKiarie/CircleFund/app/repository"
	"github.com/DavidKiarie/CircleFund/internal/pkg/cache"
	"github.com/DavidKiarie/CircleFund/internal/pkg/funding"
	"github.com/DavidKiarie/CircleFund/internal/pkg/lightning"
	"github.com/DavidKiarie/CircleFund/internal/pkg/usercontext"
)

const (
	walletBalanceCacheKey = "wallet:balance"
	walletBalanceCacheTTL = time.Minute
)

// walletClient is swappable for tests; production wiring is done once in
// InitializePaymentController.
var walletClient lightning.WalletClient

// InitializePaymentController wires the wallet API client.
func InitializePaymentController() {
	walletClient = lightning.NewClientFromEnv()
}

type sendPaymentsRequest struct {
	Payments     []lightning.BatchPayment `json:"payments"`
	FundingMonth int                      `json:"funding_month"`
	FundingYear  int                      `json:"funding_year"`
	Memo         string                   `json:"memo"`
}

type validateAddressRequest struct {
	Address  string `json:"address"`
	Provider string `json:"provider"`
	Verify   bool   `json:"verify"`
}

// HandleSendPayments runs a batch disbursement. Super-admin only (enforced
// by the router); the dispatcher itself carries no role knowledge.
func HandleSendPayments(c *fiber.Ctx) error {
	var req sendPaymentsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if len(req.Payments) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "payments is empty")
	}

	repos := repository.GetGlobalFactory()
	dispatcher := lightning.NewDispatcher(
		walletClient,
		repos.GetDisbursementRepository(),
		repos.GetEconomyRepository(),
	)

	batch := lightning.Batch{
		Payments:     req.Payments,
		FundingMonth: req.FundingMonth,
		FundingYear:  req.FundingYear,
		Memo:         req.Memo,
		InitiatedBy:  usercontext.GetUserID(c),
	}

	result, err := dispatcher.SendBatch(c.Context(), batch)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	}

	// The batch mutates wallet state; drop the cached balance.
	if err := cache.Delete(walletBalanceCacheKey); err != nil {
		log.Warnf("wallet balance cache not invalidated: %v", err)
	}

	return c.JSON(result)
}

// HandlePaymentHistory returns paginated ledger rows plus aggregate stats
// for the same filter.
func HandlePaymentHistory(c *fiber.Ctx) error {
	filter := repository.DisbursementFilter{
		Status:    c.Query("status"),
		EconomyID: uint(c.QueryInt("economy_id", 0)),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}

	if p := c.Query("period"); p != "" {
		period, err := funding.ParsePeriod(p)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
		}
		filter.FundingMonth = period.Month
		filter.FundingYear = period.Year
	}

	repo := repository.GetGlobalFactory().GetDisbursementRepository()

	rows, total, err := repo.List(filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load payment history")
	}
	stats, err := repo.Stats(filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "failed to load payment stats")
	}

	return c.JSON(fiber.Map{
		"disbursements": rows,
		"total":         total,
		"stats":         stats,
	})
}

// HandleWalletBalance returns the wallet's spendable balance, cached briefly
// so dashboard refreshes do not hammer the wallet API.
func HandleWalletBalance(c *fiber.Ctx) error {
	if cached, err := cache.Get(walletBalanceCacheKey); err == nil {
		if sats, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return c.JSON(fiber.Map{"balance_sats": sats, "cached": true})
		}
	}

	balance, err := walletClient.GetBalance(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusBadGateway, "wallet_unavailable", err.Error())
	}

	if err := cache.Set(walletBalanceCacheKey, strconv.FormatInt(balance.BalanceSats, 10), walletBalanceCacheTTL); err != nil {
		log.Warnf("wallet balance not cached: %v", err)
	}

	return c.JSON(fiber.Map{"balance_sats": balance.BalanceSats, "cached": false})
}

// HandleValidateAddress runs the syntactic address check. With "verify": true
// it additionally probes the address's LNURL-pay endpoint; the syntactic
// result never depends on that outcome.
func HandleValidateAddress(c *fiber.Ctx) error {
	var req validateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	result := lightning.ValidateAddress(req.Address, req.Provider)
	if !req.Verify || !result.Valid {
		return c.JSON(result)
	}

	response := fiber.Map{
		"valid":              result.Valid,
		"normalized_address": result.NormalizedAddress,
	}
	if err := lightning.VerifyAddressReachable(c.Context(), result.NormalizedAddress); err != nil {
		response["reachable"] = false
		response["verify_error"] = err.Error()
	} else {
		response["reachable"] = true
	}
	return c.JSON(response)
}
